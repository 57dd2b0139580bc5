// Package publish delivers finished documents to an external sink.
package publish

import (
	"context"

	"github.com/dgallion1/chapterdesk/internal/chapter"
)

// Publication is a finished document as handed to a sink.
type Publication struct {
	Title    string            `json:"title"`
	Label    string            `json:"label,omitempty"`
	Chapters []chapter.Chapter `json:"chapters"`
}

// Sink receives publications. Retry policy, if any, belongs to the sink.
type Sink interface {
	Publish(ctx context.Context, p Publication) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, p Publication) error

func (f SinkFunc) Publish(ctx context.Context, p Publication) error {
	return f(ctx, p)
}
