package editor

import (
	"fmt"

	"github.com/dgallion1/chapterdesk/internal/chapter"
)

// ActionKind names a destructive action that needs confirmation.
type ActionKind string

const (
	ActionDeleteChapter ActionKind = "delete_chapter"
	ActionNavigateAway  ActionKind = "navigate_away"
)

// Pending is a destructive action awaiting Confirm or Cancel.
type Pending struct {
	Kind      ActionKind `json:"kind"`
	ChapterID string     `json:"chapter_id,omitempty"`
}

// RequestDestructiveAction starts the confirmation for kind. chapterID is
// only read for ActionDeleteChapter.
func (d *Document) RequestDestructiveAction(kind ActionKind, chapterID string) (*Pending, error) {
	switch kind {
	case ActionDeleteChapter:
		return d.RequestDelete(chapterID)
	case ActionNavigateAway:
		return d.RequestBack()
	default:
		return nil, fmt.Errorf("unknown action %q", kind)
	}
}

// RequestDelete asks to delete a chapter. Deleting the only chapter is
// refused up front, without asking.
func (d *Document) RequestDelete(id string) (*Pending, error) {
	if _, ok := d.store.Get(id); !ok {
		return nil, fmt.Errorf("%w: %q", chapter.ErrNotFound, id)
	}
	if d.store.Len() == 1 {
		return nil, chapter.ErrLastChapter
	}
	return d.request(Pending{Kind: ActionDeleteChapter, ChapterID: id})
}

// RequestBack asks to navigate away. With nothing unsaved OnBack runs at
// once and no confirmation is needed.
func (d *Document) RequestBack() (*Pending, error) {
	if !d.sync.Unsaved() {
		if d.pending != nil {
			return nil, ErrConfirmationPending
		}
		d.opts.OnBack()
		return nil, nil
	}
	return d.request(Pending{Kind: ActionNavigateAway})
}

// PendingAction returns the action awaiting confirmation, if any.
func (d *Document) PendingAction() *Pending {
	if d.pending == nil {
		return nil
	}
	p := *d.pending
	return &p
}

// Confirm applies the pending action.
func (d *Document) Confirm() error {
	p := d.pending
	if p == nil {
		return ErrNoPendingConfirmation
	}
	d.pending = nil
	switch p.Kind {
	case ActionDeleteChapter:
		return d.deleteChapter(p.ChapterID)
	case ActionNavigateAway:
		d.opts.OnBack()
		return nil
	default:
		return fmt.Errorf("unknown action %q", p.Kind)
	}
}

// Cancel abandons the pending action.
func (d *Document) Cancel() error {
	if d.pending == nil {
		return ErrNoPendingConfirmation
	}
	d.pending = nil
	return nil
}

func (d *Document) request(p Pending) (*Pending, error) {
	if d.pending != nil {
		return nil, ErrConfirmationPending
	}
	d.pending = &p
	out := p
	return &out, nil
}
