package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/chapterdesk/internal/pathstore"
)

// LogSink writes publications to a structured log. It is the fallback when
// no pathstore is configured.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, p Publication) error {
	ids := make([]string, 0, len(p.Chapters))
	for _, ch := range p.Chapters {
		ids = append(ids, ch.ID)
	}
	s.log.Info("material published",
		"title", p.Title,
		"label", p.Label,
		"chapters", len(p.Chapters),
		"chapter_ids", ids,
	)
	return nil
}

// PathstoreSink stores each publication under materials/{slug}/{id}.
type PathstoreSink struct {
	ps      *pathstore.Client
	log     *slog.Logger
	now     func() time.Time
	backoff func(attempt int) time.Duration
}

func NewPathstoreSink(ps *pathstore.Client, log *slog.Logger) *PathstoreSink {
	return &PathstoreSink{
		ps:      ps,
		log:     log,
		now:     time.Now,
		backoff: Backoff,
	}
}

// MaterialKey is the pathstore key of a stored material.
func MaterialKey(m Material) string {
	return fmt.Sprintf("materials/%s/%s", m.Slug, m.ID)
}

func (s *PathstoreSink) Publish(ctx context.Context, p Publication) error {
	m, err := NewMaterial(p, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}
	key := MaterialKey(m)
	log := s.log.With("key", key)

	var lastErr error
	for attempt := range MaxRetries {
		lastErr = s.ps.PutNode(ctx, key, pathstore.NodeRequest{
			Value:  m,
			Source: "chapterdesk",
		})
		if lastErr == nil || !IsRetryable(lastErr) || attempt == MaxRetries-1 {
			break
		}
		log.Warn("retryable publish error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(s.backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if lastErr != nil {
		log.Error("publish failed", "error", lastErr)
		return fmt.Errorf("store material: %w", lastErr)
	}
	log.Info("material stored", "chapters", len(m.Chapters))
	return nil
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *pathstore.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

const MaxRetries = 3
