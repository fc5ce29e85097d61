package library

import (
	"context"
	"encoding/json"
	"time"

	"techtimes/internal/model"
)

// Backup format constants. Version bumps only on incompatible changes to the
// entry encoding.
const (
	backupSource  = "The Tech Times"
	backupVersion = "2"
)

// Backup is the portable JSON form of a reading list.
type Backup struct {
	ExportedAt string          `json:"exportedAt"`
	Source     string          `json:"source"`
	Version    string          `json:"version"`
	Articles   []model.Article `json:"articles"`
}

// Export renders the current reading list as a backup document.
func (l *List) Export() ([]byte, error) {
	return json.MarshalIndent(Backup{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Source:     backupSource,
		Version:    backupVersion,
		Articles:   l.Entries(),
	}, "", "  ")
}

// Import merges a backup document into the reading list. Existing entries
// always win; imported entries with new IDs are prepended in their backup
// order. Malformed JSON and a missing articles field are the same failure
// from the visitor's point of view, so both return false.
func (l *List) Import(ctx context.Context, raw []byte) bool {
	var b Backup
	if err := json.Unmarshal(raw, &b); err != nil || b.Articles == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing := make(map[string]bool, len(l.entries))
	for _, a := range l.entries {
		existing[a.ID] = true
	}

	var fresh []model.Article
	for _, a := range b.Articles {
		if !existing[a.ID] {
			fresh = append(fresh, a)
			existing[a.ID] = true
		}
	}
	if len(fresh) > 0 {
		l.entries = append(fresh, l.entries...)
		l.persist(ctx)
	}
	return true
}
