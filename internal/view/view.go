// Package view models the navigation state machine: exactly one screen is
// active at a time, and every transition is driven by an explicit reader
// action.
package view

import (
	"sync"

	"techtimes/internal/model"
)

// Kind identifies the active screen.
type Kind string

const (
	KindHome      Kind = "home"
	KindArticle   Kind = "article"
	KindPublisher Kind = "publisher"
	KindSubmit    Kind = "submit"
	KindStatic    Kind = "static"
)

// Static page identifiers.
const (
	PageAbout   = "about"
	PagePrivacy = "privacy"
	PageTerms   = "terms"
	PageContact = "contact"
	PageFAQ     = "faq"
)

var staticPages = map[string]bool{
	PageAbout:   true,
	PagePrivacy: true,
	PageTerms:   true,
	PageContact: true,
	PageFAQ:     true,
}

// ScrollTarget is the post-transition scroll instruction, reported once the
// destination screen exists instead of being fired on a timer.
type ScrollTarget string

const (
	ScrollTop  ScrollTarget = "top"
	ScrollGrid ScrollTarget = "grid"
)

// State is the active view. Exactly one payload field is meaningful,
// selected by Kind: Category for home, ArticleID for article, Publisher for
// publisher, Page for static.
type State struct {
	Kind      Kind   `json:"kind"`
	Category  string `json:"category,omitempty"`
	ArticleID string `json:"articleId,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Page      string `json:"page,omitempty"`
}

// Home is the initial state: the front page with no category restriction.
func Home() State {
	return State{Kind: KindHome, Category: model.FrontPage}
}

// Controller owns the current state and validates transitions.
type Controller struct {
	mu    sync.Mutex
	state State
}

// NewController starts at the front page.
func NewController() *Controller {
	return &Controller{state: Home()}
}

// Current returns the active state.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GoHome shows the ranked list for the given category. An empty or legacy
// "All" category means the front page.
func (c *Controller) GoHome(category string) (State, ScrollTarget) {
	if category == "" || category == model.CategoryAll {
		category = model.FrontPage
	}
	return c.set(State{Kind: KindHome, Category: category}, ScrollGrid)
}

// OpenArticle shows a single article.
func (c *Controller) OpenArticle(id string) (State, ScrollTarget) {
	return c.set(State{Kind: KindArticle, ArticleID: id}, ScrollTop)
}

// OpenPublisher shows every article from one publisher.
func (c *Controller) OpenPublisher(name string) (State, ScrollTarget) {
	return c.set(State{Kind: KindPublisher, Publisher: name}, ScrollTop)
}

// OpenSubmit shows the submission form.
func (c *Controller) OpenSubmit() (State, ScrollTarget) {
	return c.set(State{Kind: KindSubmit}, ScrollTop)
}

// OpenStatic shows one of the fixed informational pages. Unknown pages are
// rejected and the state is unchanged.
func (c *Controller) OpenStatic(page string) (State, ScrollTarget, bool) {
	if !staticPages[page] {
		return c.Current(), "", false
	}
	s, target := c.set(State{Kind: KindStatic, Page: page}, ScrollTop)
	return s, target, true
}

// SubmissionAccepted returns to the front page after a successful
// submission.
func (c *Controller) SubmissionAccepted() (State, ScrollTarget) {
	return c.set(Home(), ScrollGrid)
}

func (c *Controller) set(s State, target ScrollTarget) (State, ScrollTarget) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	return s, target
}
