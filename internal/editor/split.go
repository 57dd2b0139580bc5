package editor

import (
	"strconv"
	"strings"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/markup"
)

// InsertMarker puts a chapter break at the surface cursor.
func (d *Document) InsertMarker() error {
	if !d.surface.Ready() {
		return ErrSurfaceNotReady
	}
	d.surface.InsertMarker()
	d.view.SplitPending = true
	return nil
}

// Split partitions the surface content at chapter breaks. The active
// chapter keeps its id and position and takes the first fragment; the
// remaining fragments become new chapters appended in order. It returns
// the number of fragments.
func (d *Document) Split() (int, error) {
	if !d.surface.Ready() {
		return 0, ErrSurfaceNotReady
	}
	fragments := markup.Partition(d.surface.Content())
	if len(fragments) < 2 {
		return 0, ErrNothingToSplit
	}

	activeID := d.sync.ActiveID()
	prior, ok := d.store.Get(activeID)
	if !ok {
		return 0, chapter.ErrNotFound
	}
	fallback := prior.Title
	if strings.TrimSpace(fallback) == "" {
		fallback = chapter.DefaultTitle(activeID)
	}
	first := chapter.Chapter{
		ID:      activeID,
		Title:   inferTitle(fragments[0], fallback),
		Content: fragments[0],
	}

	base := d.store.NextID()
	rest := make([]chapter.Chapter, 0, len(fragments)-1)
	for i, f := range fragments[1:] {
		id := strconv.Itoa(base + i)
		rest = append(rest, chapter.Chapter{
			ID:      id,
			Title:   inferTitle(f, chapter.DefaultTitle(id)),
			Content: f,
		})
	}

	if err := d.store.ApplySplit(activeID, first, rest); err != nil {
		return 0, err
	}
	d.view.SplitPending = false
	d.sync.markUnsaved()
	_ = d.sync.Activate(activeID)

	d.log.Info("chapter split", "chapter_id", activeID, "fragments", len(fragments))
	return len(fragments), nil
}

func inferTitle(fragment, fallback string) string {
	if t := markup.FirstHeading(fragment); t != "" {
		return t
	}
	return fallback
}
