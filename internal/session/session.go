// Package session keeps open documents in memory, one editor core per
// session, and evicts sessions that have gone idle.
package session

import (
	"sync"
	"time"

	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

// Session is one open document and its editing surface. All access goes
// through Do, which serializes calls the way a single editor thread would.
type Session struct {
	mu sync.Mutex

	ID        string
	Source    string
	CreatedAt time.Time

	updatedAt time.Time
	doc       *editor.Document
	buf       *surface.Buffer
	closed    bool
	now       func() time.Time
}

// Do runs fn with exclusive access to the document and its surface.
func (s *Session) Do(fn func(d *editor.Document, buf *surface.Buffer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.now()
	return fn(s.doc, s.buf)
}

// Closed reports whether the document navigated away.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot is a JSON-safe view of a session.
type Snapshot struct {
	ID        string          `json:"id"`
	Source    string          `json:"source,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Closed    bool            `json:"closed"`
	Cursor    int             `json:"cursor"`
	Content   string          `json:"content"`
	Document  editor.Snapshot `json:"document"`
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        s.ID,
		Source:    s.Source,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
		Closed:    s.closed,
		Cursor:    s.buf.Cursor(),
		Content:   s.buf.Content(),
		Document:  s.doc.Snapshot(),
	}
}

// DoSnapshot runs fn like Do and returns the state it left behind.
func (s *Session) DoSnapshot(fn func(d *editor.Document, buf *surface.Buffer) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = s.now()
	err := fn(s.doc, s.buf)
	return s.snapshotLocked(), err
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed || now.Sub(s.updatedAt) > ttl
}
