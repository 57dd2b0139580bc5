// Package editor is the chaptered document core: one document, its chapter
// store, and the single editing surface that shows one chapter at a time.
//
// A Document is not safe for concurrent use. Every call is expected to run
// on one event stream, the way a browser editor delivers input and change
// notifications on one thread.
package editor

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/publish"
	"github.com/dgallion1/chapterdesk/internal/surface"
)

const (
	DefaultDocumentTitle     = "New material"
	DefaultPlaceholder       = "<p>Enter content...</p>"
	DefaultNewChapterContent = "<p>Enter the new chapter's content...</p>"
)

// Options configure a document.
type Options struct {
	// StrictPublish refuses publishing while any chapter is blank or still
	// holds a placeholder.
	StrictPublish bool
	// Placeholder is shown for chapters without content.
	Placeholder string
	// NewChapterContent seeds chapters created by AddChapter.
	NewChapterContent string
	// OnBack is invoked when navigating away is allowed.
	OnBack func()
	Log    *slog.Logger
}

// DefaultOptions returns the strict configuration with default placeholders.
func DefaultOptions() Options {
	return Options{
		StrictPublish:     true,
		Placeholder:       DefaultPlaceholder,
		NewChapterContent: DefaultNewChapterContent,
	}
}

// Init is the state a document is opened with. Chapters win over
// ExtractedText; with neither, one placeholder chapter is created.
type Init struct {
	Title         string            `json:"title"`
	Chapters      []chapter.Chapter `json:"chapters,omitempty"`
	ExtractedText string            `json:"extracted_text,omitempty"`
}

// Document is one open document.
type Document struct {
	title   string
	label   string
	store   *chapter.Store
	surface surface.Surface
	sync    *Synchronizer
	sink    publish.Sink
	opts    Options
	log     *slog.Logger

	view    ViewState
	pending *Pending
}

// Open creates a document from init, bound to the given surface and sink.
func Open(init Init, sf surface.Surface, sink publish.Sink, opts Options) (*Document, error) {
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.NewChapterContent == "" {
		opts.NewChapterContent = DefaultNewChapterContent
	}
	if opts.OnBack == nil {
		opts.OnBack = func() {}
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	seed := init.Chapters
	if len(seed) == 0 {
		content := init.ExtractedText
		if strings.TrimSpace(content) == "" {
			content = opts.Placeholder
		}
		seed = []chapter.Chapter{{ID: "1", Title: chapter.DefaultTitle("1"), Content: content}}
	}
	store, err := chapter.NewStore(seed)
	if err != nil {
		return nil, err
	}

	title := init.Title
	if title == "" {
		title = DefaultDocumentTitle
	}

	d := &Document{
		title:   title,
		store:   store,
		surface: sf,
		sink:    sink,
		opts:    opts,
		log:     log,
		view:    ViewState{SplitPending: true},
	}
	d.sync = newSynchronizer(store, sf, opts.Placeholder)
	if err := d.sync.Activate(store.First().ID); err != nil {
		return nil, err
	}
	return d, nil
}

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// SetTitle changes the document title. Any change counts as unsaved.
func (d *Document) SetTitle(title string) {
	if title == d.title {
		return
	}
	d.title = title
	d.sync.markUnsaved()
}

// Label returns the selected label id, or "".
func (d *Document) Label() string { return d.label }

// SetLabel selects a label from Labels. "" clears the selection.
func (d *Document) SetLabel(id string) error {
	if id != "" && !IsLabel(id) {
		return ErrUnknownLabel
	}
	d.label = id
	return nil
}

// Chapters returns the chapter sequence with the active chapter's content
// as currently stored.
func (d *Document) Chapters() []chapter.Chapter {
	return d.store.List()
}

// ActiveChapterID returns the active chapter.
func (d *Document) ActiveChapterID() string {
	return d.sync.ActiveID()
}

// Unsaved reports whether there are edits since open or the last
// successful publish. Surface edits, title changes and every structural
// change to the chapter sequence count.
func (d *Document) Unsaved() bool {
	return d.sync.Unsaved()
}

// AddChapter appends a chapter with placeholder content and activates it.
func (d *Document) AddChapter() string {
	id := d.store.Add(d.opts.NewChapterContent)
	d.sync.markUnsaved()
	_ = d.sync.Activate(id)
	d.log.Debug("chapter added", "chapter_id", id)
	return id
}

// Activate switches the surface to chapter id.
func (d *Document) Activate(id string) error {
	return d.sync.Activate(id)
}

// RenameChapter retitles a chapter. Blank titles are refused.
func (d *Document) RenameChapter(id, title string) error {
	if err := d.store.Rename(id, title); err != nil {
		return err
	}
	d.sync.markUnsaved()
	return nil
}

// deleteChapter removes a chapter. When it was active, activation falls
// back to the first remaining chapter.
func (d *Document) deleteChapter(id string) error {
	wasActive := id == d.sync.ActiveID()
	if err := d.store.Delete(id); err != nil {
		return err
	}
	d.sync.markUnsaved()
	if wasActive {
		_ = d.sync.Activate(d.store.First().ID)
	}
	d.log.Debug("chapter deleted", "chapter_id", id)
	return nil
}

// Snapshot is a JSON-safe view of a document.
type Snapshot struct {
	Title           string            `json:"title"`
	Label           string            `json:"label,omitempty"`
	Chapters        []chapter.Chapter `json:"chapters"`
	ActiveChapterID string            `json:"active_chapter_id"`
	UnsavedChanges  bool              `json:"unsaved_changes"`
	SurfaceReady    bool              `json:"surface_ready"`
	View            ViewState         `json:"view"`
	Pending         *Pending          `json:"pending,omitempty"`
}

// Snapshot returns a copy of the document state.
func (d *Document) Snapshot() Snapshot {
	var pending *Pending
	if d.pending != nil {
		p := *d.pending
		pending = &p
	}
	return Snapshot{
		Title:           d.title,
		Label:           d.label,
		Chapters:        d.store.List(),
		ActiveChapterID: d.sync.ActiveID(),
		UnsavedChanges:  d.sync.Unsaved(),
		SurfaceReady:    d.surface.Ready(),
		View:            d.view,
		Pending:         pending,
	}
}
