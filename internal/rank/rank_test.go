package rank

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"techtimes/internal/model"
)

func ids(articles []model.Article) []string {
	out := make([]string, 0, len(articles))
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestRank(t *testing.T) {
	tests := []struct {
		name     string
		articles []model.Article
		want     []string
	}{
		{
			name: "upvotes dominate dates",
			articles: []model.Article{
				{ID: "a", Upvotes: 5, PublicationDate: "2024"},
				{ID: "b", Upvotes: 5, PublicationDate: "2023"},
				{ID: "c", Upvotes: 7, PublicationDate: "2020"},
			},
			want: []string{"c", "a", "b"},
		},
		{
			name: "equal upvotes break by newer date",
			articles: []model.Article{
				{ID: "old", Upvotes: 3, PublicationDate: "2019"},
				{ID: "new", Upvotes: 3, PublicationDate: "2025"},
			},
			want: []string{"new", "old"},
		},
		{
			name: "unparseable date sorts last among equals",
			articles: []model.Article{
				{ID: "nodate", Upvotes: 3, PublicationDate: "spring"},
				{ID: "dated", Upvotes: 3, PublicationDate: "2001"},
			},
			want: []string{"dated", "nodate"},
		},
		{
			name:     "empty input",
			articles: nil,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Rank(tt.articles))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRankIsStable(t *testing.T) {
	articles := []model.Article{
		{ID: "first", Upvotes: 4, PublicationDate: "2022"},
		{ID: "second", Upvotes: 4, PublicationDate: "2022"},
		{ID: "third", Upvotes: 4, PublicationDate: "2022"},
	}

	once := Rank(articles)
	twice := Rank(once)

	if diff := cmp.Diff([]string{"first", "second", "third"}, ids(once)); diff != "" {
		t.Errorf("equal keys must keep input order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
		t.Errorf("re-ranking a ranked list changed the order (-want +got):\n%s", diff)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	articles := []model.Article{
		{ID: "low", Upvotes: 1},
		{ID: "high", Upvotes: 9},
	}
	Rank(articles)
	if diff := cmp.Diff([]string{"low", "high"}, ids(articles)); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	articles := []model.Article{
		{ID: "markets", Title: "Chip rally", Publisher: "Market Watch", Body: "Semiconductors surge", Category: "Markets", PublicationDate: "2024"},
		{ID: "cyber", Title: "Zero day", Publisher: "The Wire", Body: "A new exploit", Category: "Cyber", PublicationDate: "2023"},
		{ID: "undated", Title: "Timeless opinion", Publisher: "Columnist", Body: "Evergreen", Category: "Opinion", PublicationDate: "n.d."},
	}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "front page applies no category restriction",
			q:    Query{Category: model.FrontPage},
			want: []string{"markets", "cyber", "undated"},
		},
		{
			name: "legacy all alias behaves like front page",
			q:    Query{Category: model.CategoryAll},
			want: []string{"markets", "cyber", "undated"},
		},
		{
			name: "category matches exactly and case-sensitively",
			q:    Query{Category: "Cyber"},
			want: []string{"cyber"},
		},
		{
			name: "lowercase category does not match",
			q:    Query{Category: "cyber"},
			want: []string{},
		},
		{
			name: "query matches title case-insensitively",
			q:    Query{Category: model.FrontPage, Text: "CHIP"},
			want: []string{"markets"},
		},
		{
			name: "query matches publisher",
			q:    Query{Category: model.FrontPage, Text: "wire"},
			want: []string{"cyber"},
		},
		{
			name: "query matches body",
			q:    Query{Category: model.FrontPage, Text: "exploit"},
			want: []string{"cyber"},
		},
		{
			name: "query matches category label",
			q:    Query{Category: model.FrontPage, Text: "opinion"},
			want: []string{"undated"},
		},
		{
			name: "year range is inclusive",
			q:    Query{Category: model.FrontPage, StartYear: 2023, EndYear: 2024},
			want: []string{"markets", "cyber"},
		},
		{
			name: "active bound excludes unparseable dates",
			q:    Query{Category: model.FrontPage, StartYear: 2000},
			want: []string{"markets", "cyber"},
		},
		{
			name: "no bounds include unparseable dates",
			q:    Query{Category: model.FrontPage},
			want: []string{"markets", "cyber", "undated"},
		},
		{
			name: "filters compose conjunctively",
			q:    Query{Category: "Markets", Text: "surge", StartYear: 2024, EndYear: 2024},
			want: []string{"markets"},
		},
		{
			name: "end bound only",
			q:    Query{Category: model.FrontPage, EndYear: 2023},
			want: []string{"cyber"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(articles, tt.q))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPager(t *testing.T) {
	articles := make([]model.Article, 45)
	for i := range articles {
		articles[i] = model.Article{ID: fmt.Sprintf("a%02d", i)}
	}

	p := NewPager()
	q := Query{Category: model.FrontPage}

	if got := len(p.Visible(articles, q)); got != PageSize {
		t.Fatalf("initial window = %d, want %d", got, PageSize)
	}

	p.More()
	if got := len(p.Visible(articles, q)); got != 2*PageSize {
		t.Fatalf("window after More = %d, want %d", got, 2*PageSize)
	}

	p.More()
	if got := len(p.Visible(articles, q)); got != 45 {
		t.Fatalf("window capped at len = %d, want 45", got)
	}

	// Any filter input change resets the window.
	if got := len(p.Visible(articles, Query{Category: "Cyber"})); got != PageSize {
		t.Fatalf("window after filter change = %d, want %d", got, PageSize)
	}
}
