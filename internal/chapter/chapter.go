package chapter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrNotFound    = errors.New("chapter not found")
	ErrLastChapter = errors.New("at least one chapter is required")
	ErrEmptyTitle  = errors.New("chapter title is empty")
	ErrDuplicateID = errors.New("duplicate chapter id")
	ErrNoChapters  = errors.New("no chapters")
)

// Chapter is one titled unit of rich-text content within a document.
type Chapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DefaultTitle is the templated title for chapters without an explicit one.
func DefaultTitle(id string) string {
	return fmt.Sprintf("Chapter %s", id)
}

// NumericID parses an id for allocation purposes. Ids that are not
// integers count as 0.
func NumericID(id string) int {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return 0
	}
	return n
}
