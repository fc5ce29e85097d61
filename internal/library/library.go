// Package library manages the visitor's personal reading list: a set of
// saved article copies persisted independently from the main article
// snapshot, plus its export and import formats.
package library

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"techtimes/internal/kvstore"
	"techtimes/internal/model"
)

// List holds the saved entries in display order, most recently saved first.
// Entries are full copies of the article at save time, not references, so
// later edits to the repository never change a saved entry.
type List struct {
	mu      sync.Mutex
	store   kvstore.Store
	log     *slog.Logger
	entries []model.Article
}

// Load hydrates the reading list from the store. Anything unreadable or
// malformed starts the visitor with an empty list.
func Load(ctx context.Context, store kvstore.Store, log *slog.Logger) *List {
	l := &List{store: store, log: log}
	if raw, ok := store.Get(ctx, kvstore.KeyLibrary); ok {
		if err := json.Unmarshal([]byte(raw), &l.entries); err != nil {
			log.Warn("persisted reading list unreadable, starting empty", "error", err)
			l.entries = nil
		}
	}
	return l
}

// Entries returns a copy of the saved entries in display order.
func (l *List) Entries() []model.Article {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Article, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of saved entries.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Saved reports whether an entry with the given ID exists.
func (l *List) Saved(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.index(id) >= 0
}

// ToggleSave saves a copy of a at the front of the list, or removes the
// existing entry with the same ID. It returns true when the article was
// saved, which is the signal to reveal the list to the visitor.
func (l *List) ToggleSave(ctx context.Context, a model.Article) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.index(a.ID); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		l.persist(ctx)
		return false
	}
	l.entries = append([]model.Article{a}, l.entries...)
	l.persist(ctx)
	return true
}

// Remove deletes the entry with the given ID, if present.
func (l *List) Remove(ctx context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	l.persist(ctx)
}

// index returns the position of id in entries, or -1. Caller holds mu.
func (l *List) index(id string) int {
	for i := range l.entries {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// persist writes the entry list back through the store. Caller holds mu.
func (l *List) persist(ctx context.Context) {
	raw, err := json.Marshal(l.entries)
	if err != nil {
		l.log.Warn("reading list not serialized", "error", err)
		return
	}
	if !l.store.Set(ctx, kvstore.KeyLibrary, string(raw)) {
		l.log.Warn("reading list not persisted", "count", len(l.entries))
	}
}
