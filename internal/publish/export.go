package publish

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ChapterRecord is the stored form of one published chapter.
type ChapterRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Markdown string `json:"markdown"`
}

// Material is the stored form of a publication.
type Material struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Label       string          `json:"label,omitempty"`
	Chapters    []ChapterRecord `json:"chapters"`
	PublishedAt string          `json:"published_at"`
}

// Markdown converts chapter markup to Markdown. Chapter-break markers never
// reach here; split consumes them.
func Markdown(content string) (string, error) {
	md, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// NewMaterial builds the stored record for p. Each call gets a fresh id.
func NewMaterial(p Publication, publishedAt string) (Material, error) {
	m := Material{
		ID:          uuid.NewString(),
		Title:       p.Title,
		Slug:        Slug(p.Title),
		Label:       p.Label,
		Chapters:    make([]ChapterRecord, 0, len(p.Chapters)),
		PublishedAt: publishedAt,
	}
	for _, ch := range p.Chapters {
		md, err := Markdown(ch.Content)
		if err != nil {
			return Material{}, fmt.Errorf("chapter %s: %w", ch.ID, err)
		}
		m.Chapters = append(m.Chapters, ChapterRecord{
			ID:       ch.ID,
			Title:    ch.Title,
			Content:  ch.Content,
			Markdown: md,
		})
	}
	return m, nil
}

// Slug returns a path-safe key segment for a material title.
func Slug(title string) string {
	s := slug.Make(title)
	if s == "" {
		return "untitled"
	}
	if len(s) > 50 {
		s = strings.Trim(s[:50], "-")
	}
	return s
}
