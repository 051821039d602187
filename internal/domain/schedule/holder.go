package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Source produces a fresh schedule table, typically from a published
// spreadsheet.
type Source interface {
	Fetch(ctx context.Context) (Table, error)
}

// Holder keeps the last successfully loaded table. A failed reload leaves
// the previous table in place.
type Holder struct {
	source Source
	group  singleflight.Group

	mu       sync.RWMutex
	table    Table
	loadedAt time.Time
}

func NewHolder(source Source) *Holder {
	return &Holder{source: source}
}

// Current returns the loaded table and the time it was loaded.
func (h *Holder) Current() (Table, time.Time, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.loadedAt.IsZero() {
		return Table{}, time.Time{}, ErrNotLoaded
	}
	return h.table, h.loadedAt, nil
}

// Ensure returns the current table, loading it first when nothing has been
// loaded yet.
func (h *Holder) Ensure(ctx context.Context) (Table, error) {
	if table, _, err := h.Current(); err == nil {
		return table, nil
	}
	return h.Reload(ctx)
}

// Reload fetches the table from the source. Concurrent callers share one
// fetch.
func (h *Holder) Reload(ctx context.Context) (Table, error) {
	result, err, shared := h.group.Do("reload", func() (any, error) {
		table, err := h.source.Fetch(ctx)
		if err != nil {
			return Table{}, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		if table.IsEmpty() {
			return Table{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, ErrEmptyTable)
		}
		h.mu.Lock()
		h.table = table
		h.loadedAt = time.Now()
		h.mu.Unlock()
		return table, nil
	})
	if err != nil {
		slog.Warn("schedule reload failed", "err", err, "shared", shared)
		return Table{}, err
	}
	return result.(Table), nil
}

// Replace installs a table directly, bypassing the source.
func (h *Holder) Replace(table Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = table
	h.loadedAt = time.Now()
}
