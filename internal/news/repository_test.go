package news

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"techtimes/internal/kvstore"
	"techtimes/internal/model"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func bundled() []model.Article {
	return []model.Article{
		{ID: "a", Title: "Alpha", Authors: []string{"A"}, Upvotes: 5, PublicationDate: "2024"},
		{ID: "b", Title: "Beta", Authors: []string{"B"}, Upvotes: 5, PublicationDate: "2023"},
		{ID: "c", Title: "Gamma", Authors: []string{"C"}, Upvotes: 7, PublicationDate: "2020"},
	}
}

func upvotes(t *testing.T, articles []model.Article) map[string]int {
	t.Helper()
	out := make(map[string]int, len(articles))
	for _, a := range articles {
		out[a.ID] = a.Upvotes
	}
	return out
}

func TestLoadEmptyStoreUsesBundled(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)

	r := Load(ctx, store, bundled(), testLog)

	want := map[string]int{"a": 5, "b": 5, "c": 7}
	if diff := cmp.Diff(want, upvotes(t, r.Articles())); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReconcilesUpvoteSet(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	store.Set(ctx, kvstore.KeyUpvotes, `["a","c","ghost"]`)

	r := Load(ctx, store, bundled(), testLog)

	// Exactly one increment per upvoted ID; unknown IDs are harmless.
	want := map[string]int{"a": 6, "b": 5, "c": 8}
	if diff := cmp.Diff(want, upvotes(t, r.Articles())); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
	if !r.Upvoted("a") || r.Upvoted("b") {
		t.Error("upvote membership not reflected")
	}
}

func TestLoadPrefersLargerSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)

	snapshot := append(bundled(), model.Article{ID: "d", Title: "Delta", Authors: []string{"D"}, Upvotes: 1})
	raw, _ := json.Marshal(snapshot)
	store.Set(ctx, kvstore.KeyArticles, string(raw))

	r := Load(ctx, store, bundled(), testLog)
	if len(r.Articles()) != 4 {
		t.Fatalf("expected persisted snapshot of 4, got %d", len(r.Articles()))
	}
}

func TestLoadPrefersBundledOverSmallerSnapshot(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)

	raw, _ := json.Marshal(bundled()[:1])
	store.Set(ctx, kvstore.KeyArticles, string(raw))

	r := Load(ctx, store, bundled(), testLog)
	if len(r.Articles()) != 3 {
		t.Fatalf("expected bundled dataset of 3, got %d", len(r.Articles()))
	}
}

func TestLoadTreatsMalformedStateAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	store.Set(ctx, kvstore.KeyUpvotes, `{broken`)
	store.Set(ctx, kvstore.KeyArticles, `not json either`)

	r := Load(ctx, store, bundled(), testLog)

	want := map[string]int{"a": 5, "b": 5, "c": 7}
	if diff := cmp.Diff(want, upvotes(t, r.Articles())); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
}

func TestUpvoteToggleRestoresCounter(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	r := Load(ctx, store, bundled(), testLog)

	got, ok := r.Upvote(ctx, "a")
	if !ok || got != 6 {
		t.Fatalf("first toggle = %d, %v; want 6, true", got, ok)
	}
	got, _ = r.Upvote(ctx, "a")
	if got != 5 {
		t.Fatalf("second toggle = %d; want original 5", got)
	}
}

func TestUpvoteClampsAtZero(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	store.Set(ctx, kvstore.KeyUpvotes, `["z"]`)

	// Persisted membership over a zero base counter: the reconciled +1
	// toggles off back to zero, never below.
	r := Load(ctx, store, []model.Article{{ID: "z", Authors: []string{"Z"}, Upvotes: 0}}, testLog)

	if got, _ := r.Upvote(ctx, "z"); got != 0 {
		t.Fatalf("counter = %d; want 0", got)
	}
	if got, _ := r.Upvote(ctx, "z"); got != 1 {
		t.Fatalf("counter after re-upvote = %d; want 1", got)
	}
}

func TestUpvoteUnknownID(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	r := Load(ctx, store, bundled(), testLog)

	if _, ok := r.Upvote(ctx, "nope"); ok {
		t.Fatal("expected unknown ID to be rejected")
	}
}

func TestUpvotePersistsBothKeys(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	r := Load(ctx, store, bundled(), testLog)

	r.Upvote(ctx, "b")

	raw, ok := store.Get(ctx, kvstore.KeyUpvotes)
	if !ok {
		t.Fatal("upvote set not written")
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		t.Fatalf("unmarshal upvote set: %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, ids); diff != "" {
		t.Errorf("upvote set mismatch (-want +got):\n%s", diff)
	}
	if _, ok := store.Get(ctx, kvstore.KeyArticles); !ok {
		t.Error("article snapshot not written")
	}
}

func TestSubmissionValidate(t *testing.T) {
	long := "This description carries just enough detail to clear the bar."
	base := Submission{Title: "T", Publisher: "P", Link: "https://example.com", Description: long}

	tests := []struct {
		name   string
		mutate func(*Submission)
		want   string
	}{
		{name: "valid", mutate: func(*Submission) {}, want: ""},
		{name: "missing title", mutate: func(s *Submission) { s.Title = "" }, want: "Please fill out all required fields."},
		{name: "missing publisher", mutate: func(s *Submission) { s.Publisher = " " }, want: "Please fill out all required fields."},
		{name: "missing link", mutate: func(s *Submission) { s.Link = "" }, want: "Please fill out all required fields."},
		{name: "missing description", mutate: func(s *Submission) { s.Description = "" }, want: "Please fill out all required fields."},
		{
			name:   "forty characters is too short",
			mutate: func(s *Submission) { s.Description = "0123456789012345678901234567890123456789" },
			want:   "Description is too short.",
		},
		{
			name:   "fifty characters is accepted",
			mutate: func(s *Submission) { s.Description = "01234567890123456789012345678901234567890123456789" },
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			if diff := cmp.Diff(tt.want, s.Validate()); diff != "" {
				t.Errorf("Validate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSubmitPrepends(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory(0, kvstore.KeyArticles)
	r := Load(ctx, store, bundled(), testLog)
	r.now = func() time.Time { return time.UnixMilli(1712345678901) }

	article, msg := r.Submit(ctx, Submission{
		Title:       "State of AI 2024",
		Publisher:   "Analyst House",
		Link:        "https://example.com/report.pdf",
		Description: "A long enough description of the submitted report, well past fifty characters.",
	})
	if msg != "" {
		t.Fatalf("unexpected validation message %q", msg)
	}

	if article.ID != "sub-1712345678901" {
		t.Errorf("ID = %q; want time-derived sub-1712345678901", article.ID)
	}
	if article.Upvotes != 1 {
		t.Errorf("Upvotes = %d; want 1", article.Upvotes)
	}
	if article.Category != "General" {
		t.Errorf("Category = %q; want default General", article.Category)
	}
	if diff := cmp.Diff([]string{"Analyst House"}, article.Authors); diff != "" {
		t.Errorf("Authors mismatch (-want +got):\n%s", diff)
	}

	list := r.Articles()
	if list[0].ID != article.ID {
		t.Errorf("submission not prepended; first ID = %q", list[0].ID)
	}
	if len(list) != 4 {
		t.Errorf("len = %d; want 4", len(list))
	}
}

func TestMutationsSurviveWriteFailure(t *testing.T) {
	ctx := context.Background()
	// Quota of one byte: every Set fails, including after eviction.
	store := kvstore.NewMemory(1, kvstore.KeyArticles)
	r := Load(ctx, store, bundled(), testLog)

	if got, ok := r.Upvote(ctx, "a"); !ok || got != 6 {
		t.Fatalf("upvote under failing store = %d, %v; want 6, true", got, ok)
	}
	// In-memory state stays valid for the session; only durability is lost.
	if a, _ := r.Get("a"); a.Upvotes != 6 {
		t.Errorf("in-memory counter = %d; want 6", a.Upvotes)
	}
}
