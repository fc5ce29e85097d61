// Package server exposes the application over a local HTTP API: articles,
// the reading list, the assistant chat, navigation, and reader
// correspondence.
package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"techtimes/internal/assistant"
	"techtimes/internal/contact"
	"techtimes/internal/library"
	"techtimes/internal/model"
	"techtimes/internal/news"
	"techtimes/internal/rank"
	"techtimes/internal/view"
)

// Server holds the application state behind the HTTP surface. There is one
// reader session per process, so the pager, navigation state, and chat
// history live here directly.
type Server struct {
	repo    *news.Repository
	list    *library.List
	book    *contact.Book
	bridge  *assistant.Bridge
	nav     *view.Controller
	log     *slog.Logger

	mu    sync.Mutex
	pager *rank.Pager

	chatMu      sync.Mutex
	chatPending bool
	history     []model.ChatMessage
}

// New assembles a Server around the loaded application state.
func New(repo *news.Repository, list *library.List, book *contact.Book,
	bridge *assistant.Bridge, log *slog.Logger) *Server {
	return &Server{
		repo:   repo,
		list:   list,
		book:   book,
		bridge: bridge,
		nav:    view.NewController(),
		log:    log,
		pager:  rank.NewPager(),
	}
}

// Router builds the chi handler with the standard middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		recoverer(s.log),
		requestID(),
		logging(s.log),
		metrics(),
	)

	r.Get("/articles", s.handleListArticles)
	r.Post("/articles/more", s.handleMoreArticles)
	r.Get("/articles/{id}", s.handleGetArticle)
	r.Post("/articles/{id}/upvote", s.handleUpvote)
	r.Post("/articles", s.handleSubmit)

	r.Get("/library", s.handleLibrary)
	r.Post("/library/toggle", s.handleLibraryToggle)
	r.Delete("/library/{id}", s.handleLibraryRemove)
	r.Get("/library/export.bib", s.handleExportBibTeX)
	r.Get("/library/export.json", s.handleExportBackup)
	r.Post("/library/import", s.handleImport)

	r.Get("/feed.xml", s.handleFeed)

	r.Post("/assistant/chat", s.handleChat)
	r.Get("/assistant/history", s.handleChatHistory)

	r.Get("/view", s.handleView)
	r.Post("/navigate", s.handleNavigate)

	r.Post("/newsletter", s.handleNewsletter)
	r.Post("/contact", s.handleContact)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
