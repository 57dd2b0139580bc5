package editor

import (
	"fmt"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

// Synchronizer keeps the editing surface showing exactly the active
// chapter and writes every edit back to the store.
//
// Edits are flushed inside the surface's change notification, so by the
// time activation moves to another chapter the previous chapter's content
// is already stored. While the surface is not ready, activation only
// records the requested chapter; it is loaded once the surface reports
// ready.
type Synchronizer struct {
	store       *chapter.Store
	surface     surface.Surface
	placeholder string

	activeID string
	loaded   bool
	unsaved  bool
}

func newSynchronizer(store *chapter.Store, sf surface.Surface, placeholder string) *Synchronizer {
	s := &Synchronizer{
		store:       store,
		surface:     sf,
		placeholder: placeholder,
	}
	sf.OnChange(s.handleChange)
	sf.OnReady(s.load)
	return s
}

// ActiveID returns the active (or requested, while not ready) chapter.
func (s *Synchronizer) ActiveID() string {
	return s.activeID
}

// Activate makes id the active chapter and loads it into the surface.
func (s *Synchronizer) Activate(id string) error {
	if _, ok := s.store.Get(id); !ok {
		return fmt.Errorf("%w: %q", chapter.ErrNotFound, id)
	}
	s.activeID = id
	s.loaded = false
	s.load()
	return nil
}

// Flush writes the surface buffer into the active chapter. It is a no-op
// unless the surface is showing that chapter.
func (s *Synchronizer) Flush() {
	if !s.loaded || !s.surface.Ready() {
		return
	}
	_ = s.store.ReplaceContent(s.activeID, s.surface.Content())
}

// Unsaved reports edits or title changes since load or the last publish.
func (s *Synchronizer) Unsaved() bool {
	return s.unsaved
}

func (s *Synchronizer) markUnsaved() { s.unsaved = true }

func (s *Synchronizer) markSaved() { s.unsaved = false }

func (s *Synchronizer) load() {
	if s.activeID == "" || !s.surface.Ready() {
		return
	}
	ch, ok := s.store.Get(s.activeID)
	if !ok {
		return
	}
	content := ch.Content
	if content == "" {
		content = s.placeholder
	}
	s.surface.SetContent(content)
	s.loaded = true
}

func (s *Synchronizer) handleChange() {
	if !s.loaded || !s.surface.Ready() {
		return
	}
	if err := s.store.ReplaceContent(s.activeID, s.surface.Content()); err != nil {
		return
	}
	s.unsaved = true
}
