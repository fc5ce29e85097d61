// Package model defines the domain types used across the application.
package model

// NoLink is the placeholder value for articles without an external link.
const NoLink = "N/A"

// Category labels used for filtering. FrontPage is the distinguished value
// meaning "no category restriction". CategoryAll is a legacy alias of it
// kept for old persisted state.
const (
	FrontPage   = "Front Page"
	CategoryAll = "All"
)

// Categories lists the fixed section labels, front page first.
var Categories = []string{FrontPage, "Global Tech", "Markets", "Opinion", "Gadgets", "Cyber"}

// Article is a single content record surfaced to readers.
// ID and Authors are immutable once created; only Upvotes changes after that
// (and, implicitly, during upvote reconciliation at load time).
// JSON tags match the persisted snapshot format.
type Article struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Publisher       string   `json:"publisher"`
	Authors         []string `json:"authors"`
	Preview         string   `json:"abstractPreview"`
	Body            string   `json:"abstract"`
	PublicationDate string   `json:"publicationDate"`
	Category        string   `json:"category"`
	Link            string   `json:"doi"`
	WhyMatters      string   `json:"whyMatters"`
	Upvotes         int      `json:"upvotes"`
	Timestamp       int64    `json:"timestamp"`
	Insights        []string `json:"aiInsights,omitempty"`
	ReadTime        string   `json:"readTime,omitempty"`
}

// HasLink reports whether the article carries a real external link.
func (a Article) HasLink() bool {
	return a.Link != "" && a.Link != NoLink
}

// ChatRole identifies the author of a chat message.
type ChatRole string

// Chat roles. RoleModel matches the wire format of the generation API.
const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role      ChatRole `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
}

// ContactMessage is a reader message submitted through the contact form.
type ContactMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
