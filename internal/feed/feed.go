// Package feed renders the ranked article list as an RSS 2.0 document,
// generated on demand and never persisted.
package feed

import (
	"encoding/xml"
	"time"

	"techtimes/internal/library"
	"techtimes/internal/model"
	"techtimes/internal/rank"
)

// maxItems caps the channel at one page of ranked articles.
const maxItems = rank.PageSize

// Channel metadata of the published feed.
const (
	channelTitle       = "The Tech Times"
	channelLink        = "https://thetechtimes.com"
	channelDescription = "Curated technology news, ranked by reader upvotes."
)

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
	Category    string `xml:"category,omitempty"`
	Author      string `xml:"author,omitempty"`
}

// Render produces the RSS document for the given articles. Articles are
// ranked first, so the feed leads with the same entries as the front page.
func Render(articles []model.Article) ([]byte, error) {
	ranked := rank.Rank(articles)
	if len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}

	items := make([]item, 0, len(ranked))
	for _, a := range ranked {
		it := item{
			Title:       a.Title,
			Link:        library.ArticleURL(a),
			Description: a.Preview,
			PubDate:     time.UnixMilli(a.Timestamp).UTC().Format(time.RFC1123Z),
			GUID:        a.ID,
			Category:    a.Category,
		}
		if len(a.Authors) > 0 {
			it.Author = a.Authors[0]
		}
		items = append(items, it)
	}

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:       channelTitle,
			Link:        channelLink,
			Description: channelDescription,
			Items:       items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
