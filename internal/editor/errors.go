package editor

import (
	"errors"
	"fmt"
)

// Refusals. Each leaves the document unchanged.
var (
	ErrNothingToSplit        = errors.New("nothing to split: add a chapter break first")
	ErrEmptyDocumentTitle    = errors.New("document title is empty")
	ErrEmptyChapterContent   = errors.New("chapter has no content")
	ErrUnknownLabel          = errors.New("unknown label")
	ErrSurfaceNotReady       = errors.New("editing surface is not ready")
	ErrConfirmationPending   = errors.New("another action is awaiting confirmation")
	ErrNoPendingConfirmation = errors.New("no action is awaiting confirmation")
	ErrNotEditing            = errors.New("no chapter title is being edited")
)

// ErrSinkFailed wraps errors returned by the publish sink.
var ErrSinkFailed = errors.New("publish sink failed")

// EmptyChapterError names a chapter that blocked a strict publish.
type EmptyChapterError struct {
	ChapterID string
	Title     string
}

func (e *EmptyChapterError) Error() string {
	return fmt.Sprintf("chapter %s (%q) has no content", e.ChapterID, e.Title)
}

func (e *EmptyChapterError) Unwrap() error {
	return ErrEmptyChapterContent
}
