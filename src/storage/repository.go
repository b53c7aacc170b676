package storage

import (
	"context"
	"fmt"

	"summarizer/src/model"

	"github.com/bytedance/sonic"
)

// StoreParseFailure reports a stored value that is not the JSON the key
// should hold.
type StoreParseFailure struct {
	Key string
	Err error
}

func (e *StoreParseFailure) Error() string {
	return fmt.Sprintf("failed to parse stored %q: %v", e.Key, e.Err)
}

func (e *StoreParseFailure) Unwrap() error {
	return e.Err
}

// HistoryRepository reads and writes the summary history and the pinned
// summary as JSON values of a Store.
type HistoryRepository struct {
	store  Store
	prefix string
}

func NewHistoryRepository(store Store, prefix string) *HistoryRepository {
	return &HistoryRepository{store: store, prefix: prefix}
}

func (r *HistoryRepository) key(name string) string {
	return r.prefix + name
}

// LoadHistory returns the stored history, newest first. An absent, empty or
// null value yields an empty, non-nil slice.
func (r *HistoryRepository) LoadHistory(ctx context.Context) ([]string, error) {
	raw, ok, err := r.store.Get(ctx, r.key(model.HistoryKey))
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []string{}, nil
	}

	var history []string
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &history); err != nil {
		return nil, &StoreParseFailure{Key: r.key(model.HistoryKey), Err: err}
	}
	if history == nil {
		history = []string{}
	}
	return history, nil
}

// SaveHistory replaces the stored history
func (r *HistoryRepository) SaveHistory(ctx context.Context, history []string) error {
	if history == nil {
		history = []string{}
	}
	data, err := sonic.ConfigStd.MarshalToString(history)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return r.store.Set(ctx, r.key(model.HistoryKey), data)
}

// LoadPinned returns the pinned summary if one is stored. Nothing in this
// repository writes it.
func (r *HistoryRepository) LoadPinned(ctx context.Context) (string, bool, error) {
	raw, ok, err := r.store.Get(ctx, r.key(model.PinnedKey))
	if err != nil {
		return "", false, err
	}
	if !ok || raw == "" {
		return "", false, nil
	}

	var pinned *string
	if err := sonic.ConfigStd.UnmarshalFromString(raw, &pinned); err != nil {
		return "", false, &StoreParseFailure{Key: r.key(model.PinnedKey), Err: err}
	}
	if pinned == nil || *pinned == "" {
		return "", false, nil
	}
	return *pinned, true, nil
}
