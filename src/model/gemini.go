package model

import "time"

// ----------------------------------------------------
// ================ Config ================
// GeminiConfig holds configuration for the summarization service
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL string        `yaml:"base_url" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

// ----------------------------------------------------
// ================ Request ================
// GenerateContentRequest is the body of a generateContent call
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content is a single turn of the conversation sent to or returned by the model
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is one piece of a Content; only text parts are used
type Part struct {
	Text string `json:"text"`
}

// ----------------------------------------------------
// ================ Response ================
// GenerateContentResponse is the success payload of generateContent. Fields
// are pointers so that absent members can be told apart from empty ones.
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one generated answer
type Candidate struct {
	Content      *CandidateContent `json:"content"`
	FinishReason string            `json:"finishReason,omitempty"`
}

type CandidateContent struct {
	Role  string          `json:"role,omitempty"`
	Parts []CandidatePart `json:"parts"`
}

type CandidatePart struct {
	Text *string `json:"text"`
}
