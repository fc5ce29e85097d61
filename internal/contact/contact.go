// Package contact persists reader correspondence: newsletter subscriptions
// and contact-form messages.
package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"techtimes/internal/kvstore"
	"techtimes/internal/model"
)

// Validation messages shown inline next to the form.
const (
	msgBadEmail      = "Please enter a valid email address."
	msgMissingFields = "Please fill out all required fields."
)

// defaultSubject matches the contact form's preselected topic.
const defaultSubject = "general"

// Book holds the persisted subscriber list and message archive.
type Book struct {
	mu       sync.Mutex
	store    kvstore.Store
	log      *slog.Logger
	emails   []string
	messages []model.ContactMessage
	now      func() time.Time
}

// Load hydrates the book from the store. Unreadable state starts empty.
func Load(ctx context.Context, store kvstore.Store, log *slog.Logger) *Book {
	b := &Book{store: store, log: log, now: time.Now}
	readJSON(ctx, store, kvstore.KeyNewsletter, &b.emails, log)
	readJSON(ctx, store, kvstore.KeyContact, &b.messages, log)
	return b
}

func readJSON(ctx context.Context, store kvstore.Store, key string, out any, log *slog.Logger) {
	raw, ok := store.Get(ctx, key)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn("persisted state unreadable, starting empty", "key", key, "error", err)
	}
}

// Subscribe adds an email to the newsletter list. Duplicates are accepted
// silently without growing the list. Returns a validation message, or ""
// on success.
func (b *Book) Subscribe(ctx context.Context, email string) string {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return msgBadEmail
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.emails {
		if strings.EqualFold(e, email) {
			return ""
		}
	}
	b.emails = append(b.emails, email)
	b.persist(ctx, kvstore.KeyNewsletter, b.emails)
	return ""
}

// Subscribers returns the current newsletter list.
func (b *Book) Subscribers() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.emails))
	copy(out, b.emails)
	return out
}

// Submit archives a contact-form message. Name, email, and message are
// required; an empty subject defaults to "general". Returns the stored
// message or a validation message.
func (b *Book) Submit(ctx context.Context, name, email, subject, message string) (model.ContactMessage, string) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return model.ContactMessage{}, msgMissingFields
	}
	if !validEmail(email) {
		return model.ContactMessage{}, msgBadEmail
	}
	if strings.TrimSpace(subject) == "" {
		subject = defaultSubject
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	m := model.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Timestamp: b.now().UTC().Format(time.RFC3339),
	}
	b.messages = append(b.messages, m)
	b.persist(ctx, kvstore.KeyContact, b.messages)
	return m, ""
}

// Messages returns the archived contact messages in submission order.
func (b *Book) Messages() []model.ContactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.ContactMessage, len(b.messages))
	copy(out, b.messages)
	return out
}

// validEmail applies the same shallow shape check a form would: one "@"
// with a dot somewhere after it.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// persist writes one key back through the store. Caller holds mu.
func (b *Book) persist(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		b.log.Warn("correspondence not serialized", "key", key, "error", err)
		return
	}
	if !b.store.Set(ctx, key, string(raw)) {
		b.log.Warn("correspondence not persisted", "key", key)
	}
}
