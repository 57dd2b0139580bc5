// Package surface models the single shared rich-text editing surface. The
// surface holds one transient buffer and knows nothing about chapters.
package surface

import "github.com/dgallion1/chapterdesk/internal/markup"

// Surface is what the editor core needs from an editing surface.
type Surface interface {
	// Ready reports whether asynchronous setup has completed.
	Ready() bool
	// Content serializes the current buffer.
	Content() string
	// SetContent replaces the buffer without firing a change notification.
	SetContent(markup string)
	// InsertMarker places a chapter-break node at the cursor and fires a
	// change notification.
	InsertMarker()
	// OnChange registers a handler called synchronously after every edit.
	OnChange(fn func())
	// OnReady registers a handler called once setup completes. If the
	// surface is already ready the handler runs immediately.
	OnReady(fn func())
}

// Buffer is an in-memory Surface. The cursor is a byte offset into the
// serialized buffer.
type Buffer struct {
	ready   bool
	content string
	cursor  int

	onChange []func()
	onReady  []func()
}

// NewBuffer returns a buffer that becomes usable after MarkReady.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewReadyBuffer returns a buffer that is usable immediately.
func NewReadyBuffer() *Buffer {
	return &Buffer{ready: true}
}

func (b *Buffer) Ready() bool { return b.ready }

func (b *Buffer) Content() string {
	if !b.ready {
		return ""
	}
	return b.content
}

func (b *Buffer) SetContent(markup string) {
	if !b.ready {
		return
	}
	b.content = markup
	b.cursor = len(markup)
}

func (b *Buffer) InsertMarker() {
	if !b.ready {
		return
	}
	b.content, b.cursor = markup.InsertMarker(b.content, b.cursor)
	b.notify()
}

func (b *Buffer) OnChange(fn func()) {
	b.onChange = append(b.onChange, fn)
}

func (b *Buffer) OnReady(fn func()) {
	if b.ready {
		fn()
		return
	}
	b.onReady = append(b.onReady, fn)
}

// MarkReady completes setup and runs pending ready handlers in order.
func (b *Buffer) MarkReady() {
	if b.ready {
		return
	}
	b.ready = true
	handlers := b.onReady
	b.onReady = nil
	for _, fn := range handlers {
		fn()
	}
}

// Edit replaces the buffer as a user edit and fires a change notification.
func (b *Buffer) Edit(markup string) {
	if !b.ready {
		return
	}
	b.content = markup
	if b.cursor > len(markup) {
		b.cursor = len(markup)
	}
	b.notify()
}

// SetCursor moves the cursor, clamped to the buffer.
func (b *Buffer) SetCursor(pos int) {
	switch {
	case pos < 0:
		pos = 0
	case pos > len(b.content):
		pos = len(b.content)
	}
	b.cursor = pos
}

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

func (b *Buffer) notify() {
	for _, fn := range b.onChange {
		fn()
	}
}
