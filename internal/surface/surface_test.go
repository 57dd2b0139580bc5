package surface

import (
	"testing"

	"github.com/dgallion1/chapterdesk/internal/markup"
	"github.com/stretchr/testify/require"
)

func TestBuffer_NotReadyIgnoresCommands(t *testing.T) {
	b := NewBuffer()
	fired := 0
	b.OnChange(func() { fired++ })

	b.SetContent("<p>a</p>")
	b.Edit("<p>b</p>")
	b.InsertMarker()

	require.False(t, b.Ready())
	require.Empty(t, b.Content())
	require.Zero(t, fired)
}

func TestBuffer_ReadyHandlersRunOnce(t *testing.T) {
	b := NewBuffer()
	calls := 0
	b.OnReady(func() { calls++ })
	b.MarkReady()
	b.MarkReady()
	require.Equal(t, 1, calls)

	b.OnReady(func() { calls++ })
	require.Equal(t, 2, calls, "handler registered after ready runs immediately")
}

func TestBuffer_SetContentDoesNotNotify(t *testing.T) {
	b := NewReadyBuffer()
	fired := 0
	b.OnChange(func() { fired++ })
	b.SetContent("<p>loaded</p>")
	require.Zero(t, fired)

	b.Edit("<p>typed</p>")
	require.Equal(t, 1, fired)
	require.Equal(t, "<p>typed</p>", b.Content())
}

func TestBuffer_InsertMarkerAtCursor(t *testing.T) {
	b := NewReadyBuffer()
	b.SetContent("<p>one</p><p>two</p>")
	b.SetCursor(5)
	fired := 0
	b.OnChange(func() { fired++ })

	b.InsertMarker()

	require.Equal(t, 1, fired)
	require.Equal(t, "<p>one</p>"+markup.Marker()+"<p>two</p>", b.Content())
	require.Equal(t, len("<p>one</p>"+markup.Marker()), b.Cursor())
}

func TestBuffer_SetCursorClamps(t *testing.T) {
	b := NewReadyBuffer()
	b.SetContent("<p>x</p>")
	b.SetCursor(-3)
	require.Zero(t, b.Cursor())
	b.SetCursor(99)
	require.Equal(t, len("<p>x</p>"), b.Cursor())
}
