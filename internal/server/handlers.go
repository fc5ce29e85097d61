package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"techtimes/internal/feed"
	"techtimes/internal/model"
	"techtimes/internal/news"
	"techtimes/internal/rank"
	"techtimes/internal/view"
)

// maxBodyBytes caps request bodies; imports of large libraries fit well
// within it.
const maxBodyBytes = 1 << 20

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform shape of validation and failure responses.
type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body unreadable")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "request body is not valid JSON")
		return false
	}
	return true
}

// queryFromRequest maps list-endpoint query parameters onto a rank.Query.
func queryFromRequest(r *http.Request) rank.Query {
	q := rank.Query{
		Category: r.URL.Query().Get("category"),
		Text:     r.URL.Query().Get("q"),
	}
	if q.Category == "" {
		q.Category = model.FrontPage
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("start_year")); err == nil {
		q.StartYear = y
	}
	if y, err := strconv.Atoi(r.URL.Query().Get("end_year")); err == nil {
		q.EndYear = y
	}
	return q
}

// articlePage is the list response: the visible window plus enough state
// for the client to render the "more" control.
type articlePage struct {
	Articles []model.Article `json:"articles"`
	Total    int             `json:"total"`
	HasMore  bool            `json:"hasMore"`
}

func (s *Server) page(q rank.Query) articlePage {
	filtered := rank.Rank(rank.Filter(s.repo.Articles(), q))

	s.mu.Lock()
	visible := s.pager.Visible(filtered, q)
	s.mu.Unlock()

	return articlePage{
		Articles: visible,
		Total:    len(filtered),
		HasMore:  len(visible) < len(filtered),
	}
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.page(queryFromRequest(r)))
}

func (s *Server) handleMoreArticles(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)

	s.mu.Lock()
	s.pager.More()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, s.page(q))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.repo.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		model.Article
		Upvoted bool `json:"upvoted"`
		Saved   bool `json:"saved"`
	}{a, s.repo.Upvoted(id), s.list.Saved(id)})
}

func (s *Server) handleUpvote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count, ok := s.repo.Upvote(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"upvotes": count,
		"upvoted": s.repo.Upvoted(id),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub news.Submission
	if !decodeBody(w, r, &sub) {
		return
	}
	article, msg := s.repo.Submit(r.Context(), sub)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Successful submission lands the reader back on the front page.
	state, target := s.nav.SubmissionAccepted()
	writeJSON(w, http.StatusCreated, map[string]any{
		"article": article,
		"view":    state,
		"scroll":  target,
	})
}

func (s *Server) handleLibrary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": s.list.Entries(),
	})
}

func (s *Server) handleLibraryToggle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	a, ok := s.repo.Get(body.ID)
	if !ok {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	saved := s.list.ToggleSave(r.Context(), a)
	writeJSON(w, http.StatusOK, map[string]any{
		"saved": saved,
		// Saving the first entry is the cue to reveal the list panel.
		"reveal": saved && s.list.Len() == 1,
	})
}

func (s *Server) handleLibraryRemove(w http.ResponseWriter, r *http.Request) {
	s.list.Remove(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportBibTeX(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="citations.bib"`)
	_, _ = w.Write([]byte(s.list.BibTeX()))
}

func (s *Server) handleExportBackup(w http.ResponseWriter, _ *http.Request) {
	out, err := s.list.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="library-backup.json"`)
	_, _ = w.Write(out)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body unreadable")
		return
	}
	if !s.list.Import(r.Context(), raw) {
		writeError(w, http.StatusBadRequest, "The selected file is not a valid library backup.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": s.list.Entries(),
	})
}

func (s *Server) handleFeed(w http.ResponseWriter, _ *http.Request) {
	out, err := feed.Render(s.repo.Articles())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "feed generation failed")
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Text == "" {
		writeError(w, http.StatusBadRequest, "message text is required")
		return
	}

	// One turn at a time; a second request while pending is refused rather
	// than queued so replies cannot arrive out of order.
	s.chatMu.Lock()
	if s.chatPending {
		s.chatMu.Unlock()
		writeError(w, http.StatusConflict, "A reply is already on its way.")
		return
	}
	s.chatPending = true
	s.history = append(s.history, model.ChatMessage{
		Role:      model.RoleUser,
		Text:      body.Text,
		Timestamp: nowMillis(),
	})
	history := make([]model.ChatMessage, len(s.history))
	copy(history, s.history)
	s.chatMu.Unlock()

	reply := s.bridge.Send(r.Context(), history)

	s.chatMu.Lock()
	s.history = append(s.history, model.ChatMessage{
		Role:      model.RoleModel,
		Text:      reply,
		Timestamp: nowMillis(),
	})
	s.chatPending = false
	s.chatMu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, _ *http.Request) {
	s.chatMu.Lock()
	history := make([]model.ChatMessage, len(s.history))
	copy(history, s.history)
	pending := s.chatPending
	s.chatMu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": history,
		"pending":  pending,
	})
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.nav.Current())
}

// navigateRequest selects one transition; exactly one action field applies,
// chosen by Action.
type navigateRequest struct {
	Action    string `json:"action"`
	Category  string `json:"category,omitempty"`
	ArticleID string `json:"articleId,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Page      string `json:"page,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var body navigateRequest
	if !decodeBody(w, r, &body) {
		return
	}

	var (
		state  view.State
		target view.ScrollTarget
	)
	switch body.Action {
	case "home":
		state, target = s.nav.GoHome(body.Category)
	case "article":
		if _, ok := s.repo.Get(body.ArticleID); !ok {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}
		state, target = s.nav.OpenArticle(body.ArticleID)
	case "publisher":
		state, target = s.nav.OpenPublisher(body.Publisher)
	case "submit":
		state, target = s.nav.OpenSubmit()
	case "static":
		var ok bool
		state, target, ok = s.nav.OpenStatic(body.Page)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown page")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "unknown navigation action")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"view":   state,
		"scroll": target,
	})
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if msg := s.book.Subscribe(r.Context(), body.Email); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subscribed": true})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	m, msg := s.book.Submit(r.Context(), body.Name, body.Email, body.Subject, body.Message)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}
