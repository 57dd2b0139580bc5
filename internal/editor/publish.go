package editor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/dgallion1/chapterdesk/internal/markup"
	"github.com/dgallion1/chapterdesk/internal/publish"
)

// Validate checks what Publish would check, without publishing. In strict
// mode every blank chapter is reported.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.title) == "" {
		return ErrEmptyDocumentTitle
	}
	if !d.opts.StrictPublish {
		return nil
	}
	var errs error
	for _, ch := range d.store.List() {
		if markup.IsBlank(ch.Content, d.opts.Placeholder, d.opts.NewChapterContent) {
			errs = multierr.Append(errs, &EmptyChapterError{ChapterID: ch.ID, Title: ch.Title})
		}
	}
	return errs
}

// Publish validates the document and hands it to the sink. The unsaved
// flag is cleared only once the sink accepts the publication; a sink
// failure comes back wrapped in ErrSinkFailed and is not retried here.
func (d *Document) Publish(ctx context.Context) error {
	d.sync.Flush()
	if err := d.Validate(); err != nil {
		d.log.Info("publish refused", "error", err)
		return err
	}

	p := publish.Publication{
		Title:    d.title,
		Label:    d.label,
		Chapters: d.store.List(),
	}
	if err := d.sink.Publish(ctx, p); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkFailed, err)
	}
	d.sync.markSaved()
	d.log.Info("document published", "title", d.title, "chapters", len(p.Chapters))
	return nil
}
