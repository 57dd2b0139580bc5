package chapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Store is the ordered chapter sequence of one document. Display order is
// slice order. The store is not safe for concurrent use; callers serialize
// access (see session.Session).
type Store struct {
	chapters []Chapter
}

// NewStore seeds a store. At least one chapter is required and ids must be
// unique.
func NewStore(seed []Chapter) (*Store, error) {
	if len(seed) == 0 {
		return nil, ErrNoChapters
	}
	seen := make(map[string]bool, len(seed))
	chapters := make([]Chapter, 0, len(seed))
	for _, ch := range seed {
		if seen[ch.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, ch.ID)
		}
		seen[ch.ID] = true
		chapters = append(chapters, ch)
	}
	return &Store{chapters: chapters}, nil
}

// Len returns the number of chapters.
func (s *Store) Len() int {
	return len(s.chapters)
}

// List returns a copy of the chapter sequence.
func (s *Store) List() []Chapter {
	out := make([]Chapter, len(s.chapters))
	copy(out, s.chapters)
	return out
}

// Get returns a chapter by id.
func (s *Store) Get(id string) (Chapter, bool) {
	if i := s.index(id); i >= 0 {
		return s.chapters[i], true
	}
	return Chapter{}, false
}

// First returns the chapter at the head of the sequence.
func (s *Store) First() Chapter {
	return s.chapters[0]
}

// NextID returns max(numeric ids, 0) + 1.
func (s *Store) NextID() int {
	highest := 0
	for _, ch := range s.chapters {
		if n := NumericID(ch.ID); n > highest {
			highest = n
		}
	}
	return highest + 1
}

// Add appends a chapter with a freshly allocated id, the templated default
// title and the given content. It returns the new id.
func (s *Store) Add(content string) string {
	id := strconv.Itoa(s.NextID())
	s.chapters = append(s.chapters, Chapter{
		ID:      id,
		Title:   DefaultTitle(id),
		Content: content,
	})
	return id
}

// Delete removes a chapter. Removing the only chapter is refused.
func (s *Store) Delete(id string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if len(s.chapters) == 1 {
		return ErrLastChapter
	}
	s.chapters = append(s.chapters[:i], s.chapters[i+1:]...)
	return nil
}

// Rename replaces a chapter's title in place. Titles that are empty after
// trimming are refused.
func (s *Store) Rename(id, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.chapters[i].Title = title
	return nil
}

// ReplaceContent overwrites a chapter's stored content.
func (s *Store) ReplaceContent(id, content string) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.chapters[i].Content = content
	return nil
}

// ApplySplit rewrites chapter id with first and appends rest in order. It
// is all-or-nothing: either every change lands or the store is untouched.
func (s *Store) ApplySplit(id string, first Chapter, rest []Chapter) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	seen := make(map[string]bool, len(s.chapters)+len(rest))
	for _, ch := range s.chapters {
		seen[ch.ID] = true
	}
	for _, ch := range rest {
		if seen[ch.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, ch.ID)
		}
		seen[ch.ID] = true
	}

	s.chapters[i].Title = first.Title
	s.chapters[i].Content = first.Content
	s.chapters = append(s.chapters, rest...)
	return nil
}

func (s *Store) index(id string) int {
	for i, ch := range s.chapters {
		if ch.ID == id {
			return i
		}
	}
	return -1
}
