package model

// Store keys. Values are JSON: "summary" holds an array of strings (newest
// first), "pinnedSummary" holds a single string or is absent.
const (
	HistoryKey = "summary"
	PinnedKey  = "pinnedSummary"
)

// SummaryEntry is one history element prepared for display
type SummaryEntry struct {
	Text    string   `json:"text"`
	Bullets []string `json:"bullets"`
}

// Snapshot is the view of the summary client state
type Snapshot struct {
	History    []SummaryEntry `json:"history"`
	Pinned     *string        `json:"pinned"`
	Submitting bool           `json:"submitting"`
	Copied     bool           `json:"copied"`
}
