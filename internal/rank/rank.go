// Package rank implements the article ranking, filtering, and pagination engine.
package rank

import (
	"sort"
	"strconv"
	"strings"

	"techtimes/internal/model"
)

// PageSize is the initial and incremental number of visible articles.
const PageSize = 20

// YearAny disables a year bound.
const YearAny = 0

// Rank returns the articles ordered by upvotes descending, ties broken by
// publication date parsed as an integer descending. Dates that do not parse
// sort last. The sort is stable: equal keys keep their input order.
// The input slice is not modified.
func Rank(articles []model.Article) []model.Article {
	ranked := make([]model.Article, len(articles))
	copy(ranked, articles)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Upvotes != ranked[j].Upvotes {
			return ranked[i].Upvotes > ranked[j].Upvotes
		}
		return dateKey(ranked[i].PublicationDate) > dateKey(ranked[j].PublicationDate)
	})
	return ranked
}

// dateKey parses a publication date as an integer for ordinal comparison.
// Unparseable dates map to the smallest key so they rank last.
func dateKey(date string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(date), 10, 64)
	if err != nil {
		return -1 << 62
	}
	return n
}

// Query holds the filter inputs. Zero values mean "no restriction":
// an empty or front-page Category, an empty Text, and YearAny bounds.
type Query struct {
	Category  string
	Text      string
	StartYear int
	EndYear   int
}

// Signature returns a stable identity for the filter inputs, used to detect
// when the visible window must reset.
func (q Query) Signature() string {
	return q.Category + "\x00" + q.Text + "\x00" +
		strconv.Itoa(q.StartYear) + "\x00" + strconv.Itoa(q.EndYear)
}

func (q Query) categoryOpen() bool {
	return q.Category == "" || q.Category == model.FrontPage || q.Category == model.CategoryAll
}

// Filter returns the articles matching q. The three filters compose
// conjunctively: exact case-sensitive category (unless the category is the
// front-page value), case-insensitive substring search over title, publisher,
// body, and category, and an inclusive year range. Articles whose publication
// date does not parse as an integer are excluded whenever a year bound is
// active.
func Filter(articles []model.Article, q Query) []model.Article {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	result := make([]model.Article, 0, len(articles))

	for _, a := range articles {
		if !q.categoryOpen() && a.Category != q.Category {
			continue
		}
		if text != "" && !matchesText(a, text) {
			continue
		}
		if !matchesYears(a, q.StartYear, q.EndYear) {
			continue
		}
		result = append(result, a)
	}
	return result
}

func matchesText(a model.Article, text string) bool {
	return strings.Contains(strings.ToLower(a.Title), text) ||
		strings.Contains(strings.ToLower(a.Publisher), text) ||
		strings.Contains(strings.ToLower(a.Body), text) ||
		strings.Contains(strings.ToLower(a.Category), text)
}

func matchesYears(a model.Article, start, end int) bool {
	if start == YearAny && end == YearAny {
		return true
	}
	year, err := strconv.Atoi(strings.TrimSpace(a.PublicationDate))
	if err != nil {
		return false
	}
	if start != YearAny && year < start {
		return false
	}
	if end != YearAny && year > end {
		return false
	}
	return true
}

// Pager tracks the monotonically growing visible count. The count starts at
// PageSize, grows by PageSize on More, and resets whenever the filter inputs
// change.
type Pager struct {
	visible int
	sig     string
}

// NewPager returns a pager showing the first page.
func NewPager() *Pager {
	return &Pager{visible: PageSize}
}

// Visible returns the window of filtered that is currently shown for q,
// resetting the window first if q differs from the previous query.
func (p *Pager) Visible(filtered []model.Article, q Query) []model.Article {
	if sig := q.Signature(); sig != p.sig {
		p.sig = sig
		p.visible = PageSize
	}
	if len(filtered) <= p.visible {
		return filtered
	}
	return filtered[:p.visible]
}

// More grows the visible window by one page.
func (p *Pager) More() {
	p.visible += PageSize
}
