package library

import (
	"fmt"
	"regexp"
	"strings"

	"techtimes/internal/model"
)

// preprintID matches bare numeric preprint identifiers like "2403.11207".
var preprintID = regexp.MustCompile(`^\d{4}\.\d{4,5}`)

// nonAlpha strips everything but letters when deriving citation keys.
var nonAlpha = regexp.MustCompile(`[^a-zA-Z]`)

// isPreprint reports whether the article's external identifier points at a
// preprint server rather than a published venue.
func isPreprint(link string) bool {
	return preprintID.MatchString(link) || strings.Contains(strings.ToLower(link), "arxiv")
}

// citeKey derives a citation key from the last whitespace-delimited token of
// the first author, alphabetic characters only and lowercased, concatenated
// with the publication date string.
func citeKey(a model.Article) string {
	surname := "author"
	if len(a.Authors) > 0 {
		fields := strings.Fields(a.Authors[0])
		if len(fields) > 0 {
			if s := strings.ToLower(nonAlpha.ReplaceAllString(fields[len(fields)-1], "")); s != "" {
				surname = s
			}
		}
	}
	return surname + a.PublicationDate
}

// ArticleURL resolves the canonical external URL of an article: the preprint
// abstract page for preprint identifiers, a DOI resolver URL for published
// links, and the article's own page when no real external link exists.
func ArticleURL(a model.Article) string {
	switch {
	case isPreprint(a.Link):
		return "https://arxiv.org/abs/" + stripPrefix(a.Link)
	case a.HasLink():
		return "https://doi.org/" + a.Link
	default:
		return "https://thetechtimes.com/articles/" + a.ID
	}
}

// stripPrefix removes a leading "arXiv:" venue marker, case-insensitively.
func stripPrefix(link string) string {
	if len(link) >= 6 && strings.EqualFold(link[:6], "arxiv:") {
		return link[6:]
	}
	return link
}

// BibTeX renders the reading list as a plain-text BibTeX document, one
// @article block per entry in display order, blocks separated by a blank
// line.
func (l *List) BibTeX() string {
	entries := l.Entries()
	var b strings.Builder
	for i, a := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		writeEntry(&b, a)
	}
	return b.String()
}

func writeEntry(b *strings.Builder, a model.Article) {
	fmt.Fprintf(b, "@article{%s,\n", citeKey(a))
	fmt.Fprintf(b, "  title={%s},\n", a.Title)
	fmt.Fprintf(b, "  author={%s},\n", strings.Join(a.Authors, " and "))
	fmt.Fprintf(b, "  year={%s},\n", a.PublicationDate)
	if isPreprint(a.Link) {
		id := stripPrefix(a.Link)
		b.WriteString("  journal={arXiv Preprint},\n")
		fmt.Fprintf(b, "  eprint={%s},\n", id)
		b.WriteString("  archivePrefix={arXiv},\n")
		fmt.Fprintf(b, "  url={https://arxiv.org/abs/%s}\n", id)
	} else {
		b.WriteString("  journal={The Tech Times},\n")
		fmt.Fprintf(b, "  url={%s}\n", ArticleURL(a))
	}
	b.WriteString("}")
}
