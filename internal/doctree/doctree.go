// Package doctree holds the sectioned outline an uploaded file is reduced
// to before it seeds a document.
package doctree

import "strings"

// Outline is a parsed file: a title and its sections in reading order.
type Outline struct {
	Title    string
	Sections []Section
}

// Section is a run of paragraphs under one heading. Level is 1..6 for a
// heading and 0 for text that precedes the first heading.
type Section struct {
	Heading    string
	Level      int
	Paragraphs []string
	Page       int // source page, 0 if N/A
}

// Empty reports whether the outline carries no text at all.
func (o *Outline) Empty() bool {
	for _, s := range o.Sections {
		if s.Heading != "" || len(s.Paragraphs) > 0 {
			return false
		}
	}
	return true
}

// TopLevel returns the smallest heading level in use, or 0 when the
// outline has no headings.
func (o *Outline) TopLevel() int {
	top := 0
	for _, s := range o.Sections {
		if s.Level > 0 && (top == 0 || s.Level < top) {
			top = s.Level
		}
	}
	return top
}

// Builder assembles an Outline from a stream of headings and paragraphs.
type Builder struct {
	out Outline
}

func NewBuilder(title string) *Builder {
	return &Builder{out: Outline{Title: title}}
}

// Heading opens a new section. Blank headings are ignored.
func (b *Builder) Heading(level int, text string, page int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.out.Sections = append(b.out.Sections, Section{Heading: text, Level: level, Page: page})
}

// Paragraph appends text to the current section, opening a level-0
// section if none exists yet.
func (b *Builder) Paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if len(b.out.Sections) == 0 {
		b.out.Sections = append(b.out.Sections, Section{})
	}
	last := &b.out.Sections[len(b.out.Sections)-1]
	last.Paragraphs = append(last.Paragraphs, text)
}

// Page opens an untitled section for a new source page.
func (b *Builder) Page(page int) {
	b.out.Sections = append(b.out.Sections, Section{Page: page})
}

// Outline returns the assembled outline without sections that ended up
// with neither heading nor text.
func (b *Builder) Outline() *Outline {
	out := Outline{Title: b.out.Title}
	for _, s := range b.out.Sections {
		if s.Heading == "" && len(s.Paragraphs) == 0 {
			continue
		}
		out.Sections = append(out.Sections, s)
	}
	return &out
}
