package publish

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/pathstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func samplePublication() Publication {
	return Publication{
		Title: "Intro to Go!",
		Label: "blue",
		Chapters: []chapter.Chapter{
			{ID: "1", Title: "Basics", Content: "<h1>Basics</h1><p>Hello <strong>world</strong></p>"},
			{ID: "2", Title: "Chapter 2", Content: "<p>More</p>"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown("<h1>Basics</h1><p>Hello <strong>world</strong></p>")
	require.NoError(t, err)
	require.Contains(t, md, "# Basics")
	require.Contains(t, md, "Hello **world**")
}

func TestSlug(t *testing.T) {
	require.Equal(t, "intro-to-go", Slug("Intro to Go!"))
	require.Equal(t, "untitled", Slug("   "))
	require.LessOrEqual(t, len(Slug(strings.Repeat("word ", 40))), 50)
}

func TestNewMaterial(t *testing.T) {
	m, err := NewMaterial(samplePublication(), "2026-01-02T03:04:05Z")
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Equal(t, "intro-to-go", m.Slug)
	require.Equal(t, "blue", m.Label)
	require.Len(t, m.Chapters, 2)
	require.Equal(t, "1", m.Chapters[0].ID)
	require.Equal(t, "More", m.Chapters[1].Markdown)
	require.Equal(t, "materials/intro-to-go/"+m.ID, MaterialKey(m))

	other, err := NewMaterial(samplePublication(), "2026-01-02T03:04:05Z")
	require.NoError(t, err)
	require.NotEqual(t, m.ID, other.ID)
}

func TestSinkFunc(t *testing.T) {
	var got Publication
	sink := SinkFunc(func(_ context.Context, p Publication) error {
		got = p
		return nil
	})
	require.NoError(t, sink.Publish(context.Background(), samplePublication()))
	require.Equal(t, "Intro to Go!", got.Title)
}

func TestLogSink(t *testing.T) {
	require.NoError(t, NewLogSink(discardLogger()).Publish(context.Background(), samplePublication()))
}

func TestPathstoreSink_StoresMaterial(t *testing.T) {
	var gotPath, gotAuth, gotMethod string
	var decodeErr error
	var body struct {
		Value  Material `json:"value"`
		Source string   `json:"source"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		decodeErr = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sink := NewPathstoreSink(pathstore.NewClient(srv.URL, "secret"), discardLogger())
	sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, sink.Publish(context.Background(), samplePublication()))
	require.NoError(t, decodeErr)
	require.Equal(t, http.MethodPut, gotMethod)
	require.True(t, strings.HasPrefix(gotPath, "/kv/materials/intro-to-go/"), gotPath)
	require.Equal(t, "Bearer secret", gotAuth)
	require.Equal(t, "chapterdesk", body.Source)
	require.Equal(t, "2026-01-02T03:04:05Z", body.Value.PublishedAt)
	require.Len(t, body.Value.Chapters, 2)
}

func TestPathstoreSink_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewPathstoreSink(pathstore.NewClient(srv.URL, "k"), discardLogger())
	sink.backoff = func(int) time.Duration { return 0 }

	require.NoError(t, sink.Publish(context.Background(), samplePublication()))
	require.Equal(t, int32(3), calls.Load())
}

func TestPathstoreSink_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad", http.StatusBadRequest)
	}))
	defer srv.Close()

	sink := NewPathstoreSink(pathstore.NewClient(srv.URL, "k"), discardLogger())
	sink.backoff = func(int) time.Duration { return 0 }

	err := sink.Publish(context.Background(), samplePublication())
	require.Error(t, err)
	require.False(t, IsRetryable(err))
	require.Equal(t, int32(1), calls.Load())
}

func TestBackoffBounds(t *testing.T) {
	for attempt := range 8 {
		d := Backoff(attempt)
		require.GreaterOrEqual(t, d, time.Second)
		require.Less(t, d, 45*time.Second)
	}
}
