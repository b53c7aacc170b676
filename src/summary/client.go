package summary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"summarizer/src/logger"
	"summarizer/src/model"
)

// CopyFeedbackDuration is how long the shared "copied" flag stays set
const CopyFeedbackDuration = 1500 * time.Millisecond

// Summarizer turns text into a bullet-point summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Repository persists the history and exposes the pinned summary
type Repository interface {
	LoadHistory(ctx context.Context) ([]string, error)
	SaveHistory(ctx context.Context, history []string) error
	LoadPinned(ctx context.Context) (string, bool, error)
}

// Client holds the summary history and drives submissions, copies and
// deletions against the summarizer and the repository.
//
// The mutex guards state only. It is released while the summarizer runs, so
// two concurrent submissions both write the repository and the last one wins.
type Client struct {
	summarizer   Summarizer
	repo         Repository
	clipboard    Clipboard
	metrics      *Metrics
	copyFeedback time.Duration

	mu         sync.Mutex
	history    []string
	pinned     *string
	submitting bool
	copied     bool
}

type Option func(*Client)

func WithClipboard(cb Clipboard) Option {
	return func(c *Client) { c.clipboard = cb }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(summarizer Summarizer, repo Repository, opts ...Option) *Client {
	c := &Client{
		summarizer:   summarizer,
		repo:         repo,
		copyFeedback: CopyFeedbackDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads history and the pinned summary from the repository. Errors
// here, including malformed stored JSON, must stop initialization.
func (c *Client) Load(ctx context.Context) error {
	history, err := c.repo.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	pinned, ok, err := c.repo.LoadPinned(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pinned summary: %w", err)
	}

	c.mu.Lock()
	c.history = history
	c.pinned = nil
	if ok {
		c.pinned = &pinned
	}
	c.mu.Unlock()

	c.metrics.setHistorySize(len(history))
	logger.Debug().Int("entries", len(history)).Bool("pinned", ok).Msg("Summary history loaded")
	return nil
}

// Submit summarizes input and prepends the result to the stored history.
// Blank input is ignored. Failures are logged and swallowed; the return
// value reports whether history changed.
func (c *Client) Submit(ctx context.Context, input string) bool {
	c.setSubmitting(true)
	defer c.setSubmitting(false)

	if strings.TrimSpace(input) == "" {
		c.metrics.observeSubmit(outcomeSkipped, 0)
		return false
	}

	start := time.Now()
	text, err := c.summarizer.Summarize(ctx, input)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.observeSubmit(classify(err), elapsed)
		logger.Error().Err(err).Int("input_length", len(input)).Msg("Fetch error")
		return false
	}

	// The stored history is re-read rather than the in-memory copy, so a
	// writer sharing the store is not overwritten by a stale list.
	existing, err := c.repo.LoadHistory(ctx)
	if err != nil {
		c.metrics.observeSubmit(outcomeStoreError, elapsed)
		logger.Error().Err(err).Msg("Failed to read stored history")
		return false
	}
	updated := make([]string, 0, len(existing)+1)
	updated = append(updated, text)
	updated = append(updated, existing...)

	if err := c.repo.SaveHistory(ctx, updated); err != nil {
		c.metrics.observeSubmit(outcomeStoreError, elapsed)
		logger.Error().Err(err).Msg("Failed to save history")
		return false
	}

	c.mu.Lock()
	c.history = updated
	c.mu.Unlock()

	c.metrics.observeSubmit(outcomeSuccess, elapsed)
	c.metrics.setHistorySize(len(updated))
	logger.Info().
		Int("input_length", len(input)).
		Int("summary_length", len(text)).
		Dur("elapsed", elapsed).
		Msg("Summary added")
	return true
}

// Copy writes entry to the clipboard when one is available, then raises the
// shared copied flag for CopyFeedbackDuration. Every copy schedules its own
// reset, so an earlier copy can clear the flag raised by a later one.
func (c *Client) Copy(entry string) error {
	if c.clipboard != nil && c.clipboard.Available() {
		if err := c.clipboard.WriteText(entry); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}

	c.mu.Lock()
	c.copied = true
	c.mu.Unlock()
	c.metrics.incCopies()

	time.AfterFunc(c.copyFeedback, func() {
		c.mu.Lock()
		c.copied = false
		c.mu.Unlock()
	})
	return nil
}

// Delete removes every history entry equal to entry and persists the rest.
// It does nothing before Load.
func (c *Client) Delete(ctx context.Context, entry string) error {
	c.mu.Lock()
	if c.history == nil {
		c.mu.Unlock()
		return nil
	}
	filtered := make([]string, 0, len(c.history))
	for _, h := range c.history {
		if h != entry {
			filtered = append(filtered, h)
		}
	}
	c.history = filtered
	c.mu.Unlock()

	c.metrics.setHistorySize(len(filtered))
	if err := c.repo.SaveHistory(ctx, filtered); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// History returns a copy of the in-memory history, nil before Load
func (c *Client) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.history == nil {
		return nil
	}
	return append([]string(nil), c.history...)
}

func (c *Client) Pinned() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned == nil {
		return "", false
	}
	return *c.pinned, true
}

func (c *Client) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Client) CopyFeedbackActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

// Snapshot returns the current state with each entry rendered to bullets
func (c *Client) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := model.Snapshot{
		History:    make([]model.SummaryEntry, 0, len(c.history)),
		Submitting: c.submitting,
		Copied:     c.copied,
	}
	if c.pinned != nil {
		pinned := *c.pinned
		snap.Pinned = &pinned
	}
	for _, h := range c.history {
		snap.History = append(snap.History, model.SummaryEntry{Text: h, Bullets: Bullets(h)})
	}
	return snap
}

func (c *Client) setSubmitting(v bool) {
	c.mu.Lock()
	c.submitting = v
	c.mu.Unlock()
}
