package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/publish"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

const cleanupInterval = 5 * time.Minute

// Registry is a thread-safe in-memory session registry with TTL eviction.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	sink     publish.Sink
	opts     editor.Options
	log      *slog.Logger
	now      func() time.Time

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRegistry creates a registry whose documents publish to sink.
func NewRegistry(ttl time.Duration, sink publish.Sink, opts editor.Options, log *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		sink:     sink,
		opts:     opts,
		log:      log,
		now:      time.Now,
	}
}

// Open starts a session for a new document.
func (r *Registry) Open(init editor.Init, source string) (*Session, error) {
	now := r.now()
	s := &Session{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: now,
		updatedAt: now,
		buf:       surface.NewReadyBuffer(),
		now:       r.now,
	}

	opts := r.opts
	opts.Log = r.log.With("session_id", s.ID)
	// OnBack runs inside Do, with s.mu held.
	opts.OnBack = func() { s.closed = true }

	doc, err := editor.Open(init, s.buf, r.sink, opts)
	if err != nil {
		return nil, err
	}
	s.doc = doc

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.Info("session opened", "session_id", s.ID, "source", source, "chapters", len(doc.Chapters()))
	return s, nil
}

// Get returns a session by ID, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Remove drops a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Cleanup removes closed and expired sessions and returns how many went.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if s.expired(now, r.ttl) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("sessions evicted", "count", removed, "remaining", len(r.sessions))
	}
	return removed
}

// Start launches the cleanup loop.
func (r *Registry) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				r.Cleanup()
			}
		}
	}()
}

// Stop ends the cleanup loop and waits for it.
func (r *Registry) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}
