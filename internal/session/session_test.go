package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/publish"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestRegistry(ttl time.Duration) (*Registry, *clock) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := publish.SinkFunc(func(context.Context, publish.Publication) error { return nil })
	r := NewRegistry(ttl, sink, editor.DefaultOptions(), log)
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	r.now = c.now
	return r, c
}

func TestRegistry_OpenGet(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s, err := r.Open(editor.Init{Title: "Doc", ExtractedText: "<p>x</p>"}, "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID == "" {
		t.Fatal("expected a session id")
	}
	if got := r.Get(s.ID); got != s {
		t.Fatalf("expected to get session back")
	}
	if r.Get("nonexistent") != nil {
		t.Error("expected nil for missing session")
	}

	snap := s.Snapshot()
	if snap.Document.Title != "Doc" {
		t.Errorf("expected title %q, got %q", "Doc", snap.Document.Title)
	}
	if snap.Content != "<p>x</p>" {
		t.Errorf("expected surface content %q, got %q", "<p>x</p>", snap.Content)
	}
	if snap.Source != "notes.txt" {
		t.Errorf("expected source %q, got %q", "notes.txt", snap.Source)
	}
}

func TestRegistry_UniqueIDs(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	seen := map[string]bool{}
	for range 20 {
		s, err := r.Open(editor.Init{}, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if r.Len() != 20 {
		t.Errorf("expected 20 sessions, got %d", r.Len())
	}
}

func TestSession_DoTouches(t *testing.T) {
	r, c := newTestRegistry(time.Hour)
	s, _ := r.Open(editor.Init{}, "")
	created := s.Snapshot().UpdatedAt

	c.advance(time.Minute)
	err := s.Do(func(d *editor.Document, buf *surface.Buffer) error {
		buf.Edit("<p>typed</p>")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if !snap.UpdatedAt.After(created) {
		t.Error("expected UpdatedAt to advance after Do")
	}
	if !snap.Document.UnsavedChanges {
		t.Error("expected unsaved changes after an edit")
	}
}

func TestSession_ConcurrentDo(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s, _ := r.Open(editor.Init{}, "")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(d *editor.Document, _ *surface.Buffer) error {
				d.AddChapter()
				return nil
			})
		}()
	}
	wg.Wait()

	if n := len(s.Snapshot().Document.Chapters); n != 11 {
		t.Errorf("expected 11 chapters, got %d", n)
	}
}

func TestRegistry_TTLCleanup(t *testing.T) {
	r, c := newTestRegistry(time.Hour)
	old, _ := r.Open(editor.Init{}, "")
	c.advance(90 * time.Minute)
	fresh, _ := r.Open(editor.Init{}, "")

	if removed := r.Cleanup(); removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if r.Get(old.ID) != nil {
		t.Error("expected expired session to be cleaned up")
	}
	if r.Get(fresh.ID) == nil {
		t.Error("expected fresh session to survive cleanup")
	}
}

func TestRegistry_CleanupClosed(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	s, _ := r.Open(editor.Init{}, "")

	err := s.Do(func(d *editor.Document, _ *surface.Buffer) error {
		_, err := d.RequestBack()
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Closed() {
		t.Fatal("expected session closed after navigating back")
	}
	r.Cleanup()
	if r.Len() != 0 {
		t.Errorf("expected closed session removed, %d left", r.Len())
	}
}

func TestRegistry_StartStop(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	r.Start(context.Background())
	r.Stop()
	// Stop without Start should not block.
	r2, _ := newTestRegistry(time.Hour)
	r2.Stop()
}
