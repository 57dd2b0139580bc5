package editor

import (
	"fmt"

	"github.com/dgallion1/chapterdesk/internal/chapter"
)

// ViewState is presentation state kept beside the document. Nothing in the
// store, synchronizer or split engine reads it.
type ViewState struct {
	DarkMode            bool   `json:"dark_mode"`
	SplitPending        bool   `json:"split_pending"`
	EditingTitle        bool   `json:"editing_title"`
	EditingChapterID    string `json:"editing_chapter_id,omitempty"`
	EditingChapterTitle string `json:"editing_chapter_title,omitempty"`
}

// Label is one entry of the fixed label palette.
type Label struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Name  string `json:"name"`
}

var Labels = []Label{
	{ID: "red", Color: "#ef4444", Name: "Red"},
	{ID: "orange", Color: "#f97316", Name: "Orange"},
	{ID: "yellow", Color: "#eab308", Name: "Yellow"},
	{ID: "green", Color: "#2ea058", Name: "Green"},
	{ID: "blue", Color: "#3c71c7", Name: "Blue"},
	{ID: "purple", Color: "#8e4fc8", Name: "Purple"},
	{ID: "gray", Color: "#8b8f97", Name: "Gray"},
}

// IsLabel reports whether id names a palette entry.
func IsLabel(id string) bool {
	for _, l := range Labels {
		if l.ID == id {
			return true
		}
	}
	return false
}

// View returns the current view state.
func (d *Document) View() ViewState { return d.view }

func (d *Document) ToggleDarkMode() { d.view.DarkMode = !d.view.DarkMode }

func (d *Document) BeginTitleEdit() { d.view.EditingTitle = true }

func (d *Document) EndTitleEdit() { d.view.EditingTitle = false }

// BeginRename opens inline title editing for a chapter with its current
// title as the draft.
func (d *Document) BeginRename(id string) error {
	ch, ok := d.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", chapter.ErrNotFound, id)
	}
	d.view.EditingChapterID = id
	d.view.EditingChapterTitle = ch.Title
	return nil
}

// CommitRename applies the draft to the chapter being edited. A blank
// draft is refused and editing stays open.
func (d *Document) CommitRename(title string) error {
	if d.view.EditingChapterID == "" {
		return ErrNotEditing
	}
	d.view.EditingChapterTitle = title
	if err := d.RenameChapter(d.view.EditingChapterID, title); err != nil {
		return err
	}
	d.view.EditingChapterID = ""
	d.view.EditingChapterTitle = ""
	return nil
}

// CancelRename closes inline title editing without changes.
func (d *Document) CancelRename() {
	d.view.EditingChapterID = ""
	d.view.EditingChapterTitle = ""
}
