// Package news holds the authoritative in-memory article list and keeps it
// consistent with the visitor's upvote actions.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"techtimes/internal/kvstore"
	"techtimes/internal/model"
)

// Repository owns the working article list and the visitor's upvote set.
// All mutations persist both through the store best-effort: a failed write
// costs durability, never correctness of the in-memory state.
type Repository struct {
	mu       sync.Mutex
	store    kvstore.Store
	log      *slog.Logger
	articles []model.Article
	upvoted  map[string]bool
	now      func() time.Time
}

// Load hydrates a Repository from the store. The persisted snapshot is used
// as the base only when it is non-empty and at least as long as the bundled
// dataset; a newer deployment with more bundled articles always wins over a
// smaller snapshot. Each article then gains one displayed upvote per ID in
// the visitor's upvote set, applied exactly once.
func Load(ctx context.Context, store kvstore.Store, bundled []model.Article, log *slog.Logger) *Repository {
	r := &Repository{
		store:   store,
		log:     log,
		upvoted: make(map[string]bool),
		now:     time.Now,
	}

	var upvoteIDs []string
	readJSON(ctx, store, kvstore.KeyUpvotes, &upvoteIDs, log)
	for _, id := range upvoteIDs {
		r.upvoted[id] = true
	}

	var persisted []model.Article
	readJSON(ctx, store, kvstore.KeyArticles, &persisted, log)

	base := bundled
	if len(persisted) > 0 && len(persisted) >= len(bundled) {
		base = persisted
	}

	r.articles = make([]model.Article, len(base))
	copy(r.articles, base)
	for i := range r.articles {
		if r.upvoted[r.articles[i].ID] {
			r.articles[i].Upvotes++
		}
	}

	return r
}

// readJSON loads and decodes a persisted value into out. Absent or malformed
// values leave out at its zero value: persisted data is never trusted to
// match the in-memory schema.
func readJSON(ctx context.Context, store kvstore.Store, key string, out any, log *slog.Logger) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn("discarding malformed persisted value", "key", key, "error", err)
	}
}

// Articles returns a copy of the working list in insertion order.
func (r *Repository) Articles() []model.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Article, len(r.articles))
	copy(out, r.articles)
	return out
}

// Get returns the article with the given ID.
func (r *Repository) Get(id string) (model.Article, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.articles {
		if a.ID == id {
			return a, true
		}
	}
	return model.Article{}, false
}

// Upvoted reports whether the visitor has upvoted the given article.
func (r *Repository) Upvoted(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upvoted[id]
}

// Upvote toggles the visitor's upvote on the article with the given ID and
// adjusts its displayed counter in the same action, clamped at zero. It
// returns the article's new counter and whether the ID was known.
func (r *Repository) Upvote(ctx context.Context, id string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.articles {
		if r.articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}

	if r.upvoted[id] {
		delete(r.upvoted, id)
		if r.articles[idx].Upvotes > 0 {
			r.articles[idx].Upvotes--
		}
	} else {
		r.upvoted[id] = true
		r.articles[idx].Upvotes++
	}

	r.persist(ctx)
	return r.articles[idx].Upvotes, true
}

// Submission is the raw input of the contribution form.
type Submission struct {
	Title       string `json:"title"`
	Publisher   string `json:"publisher"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Year        string `json:"year"`
}

// minDescription is the shortest accepted submission description.
const minDescription = 50

// Validate reports the first human-readable problem with s, or "" when s is
// acceptable.
func (s Submission) Validate() string {
	if strings.TrimSpace(s.Title) == "" ||
		strings.TrimSpace(s.Publisher) == "" ||
		strings.TrimSpace(s.Link) == "" ||
		strings.TrimSpace(s.Description) == "" {
		return "Please fill out all required fields."
	}
	if len(s.Description) < minDescription {
		return "Description is too short."
	}
	return ""
}

// Submit validates s, builds a new article, and prepends it to the working
// list. The identifier derives from the current time and the counter starts
// at one. It returns the created article or the validation message.
func (r *Repository) Submit(ctx context.Context, s Submission) (model.Article, string) {
	if msg := s.Validate(); msg != "" {
		return model.Article{}, msg
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	category := s.Category
	if category == "" {
		category = "General"
	}
	year := s.Year
	if year == "" {
		year = fmt.Sprintf("%d", now.Year())
	}

	preview := s.Description
	if len(preview) > 150 {
		preview = preview[:150]
	}
	preview += "..."

	article := model.Article{
		ID:              fmt.Sprintf("sub-%d", now.UnixMilli()),
		Title:           s.Title,
		Publisher:       s.Publisher,
		Authors:         []string{s.Publisher},
		Preview:         preview,
		Body:            s.Description,
		PublicationDate: year,
		Category:        category,
		Link:            s.Link,
		WhyMatters:      "Community submission pending analysis.",
		Upvotes:         1,
		Timestamp:       now.UnixMilli(),
		Insights:        []string{"Analysis pending..."},
	}

	r.articles = append([]model.Article{article}, r.articles...)
	r.persist(ctx)
	return article, ""
}

// persist writes the working list and the upvote set back through the store.
// Failures are logged and swallowed. Callers must hold r.mu.
func (r *Repository) persist(ctx context.Context) {
	if raw, err := json.Marshal(r.articles); err == nil {
		if !r.store.Set(ctx, kvstore.KeyArticles, string(raw)) {
			r.log.Warn("article snapshot not persisted", "count", len(r.articles))
		}
	}

	ids := make([]string, 0, len(r.upvoted))
	for _, a := range r.articles {
		if r.upvoted[a.ID] {
			ids = append(ids, a.ID)
		}
	}
	if raw, err := json.Marshal(ids); err == nil {
		if !r.store.Set(ctx, kvstore.KeyUpvotes, string(raw)) {
			r.log.Warn("upvote set not persisted", "count", len(ids))
		}
	}
}
