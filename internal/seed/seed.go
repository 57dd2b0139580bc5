// Package seed turns an uploaded file's outline into the initial state of
// a document.
package seed

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/chapterdesk/internal/chapter"
	"github.com/dgallion1/chapterdesk/internal/doctree"
	"github.com/dgallion1/chapterdesk/internal/editor"
	"github.com/dgallion1/chapterdesk/internal/markup"
)

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// Init builds the open payload for an outline. With splitHeadings each
// top-level section starts its own chapter; otherwise the whole outline
// becomes the extracted text of a single chapter. A non-blank title
// overrides the outline's.
func Init(o *doctree.Outline, title string, splitHeadings bool) editor.Init {
	init := editor.Init{Title: strings.TrimSpace(title)}
	if init.Title == "" {
		init.Title = o.Title
	}
	if o.Empty() {
		return init
	}
	if splitHeadings {
		init.Chapters = Chapters(o)
		return init
	}
	init.ExtractedText = Markup(o.Sections)
	return init
}

// Chapters splits an outline at its top-level headings. Text before the
// first top-level heading forms a chapter of its own.
func Chapters(o *doctree.Outline) []chapter.Chapter {
	top := o.TopLevel()
	var groups [][]doctree.Section
	for _, s := range o.Sections {
		if len(groups) == 0 || (top > 0 && s.Level == top) {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], s)
	}

	chapters := make([]chapter.Chapter, 0, len(groups))
	for i, g := range groups {
		id := strconv.Itoa(i + 1)
		content := Markup(g)
		title := markup.FirstHeading(content)
		if title == "" {
			title = chapter.DefaultTitle(id)
		}
		chapters = append(chapters, chapter.Chapter{ID: id, Title: title, Content: content})
	}
	return chapters
}

// Markup renders sections as chapter markup: one heading element per
// titled section and one <p> per paragraph, with line breaks kept as <br>.
func Markup(sections []doctree.Section) string {
	var buf strings.Builder
	for _, s := range sections {
		if s.Heading != "" {
			render(&buf, heading(s.Level, s.Heading))
		}
		for _, p := range s.Paragraphs {
			render(&buf, paragraph(p))
		}
	}
	return buf.String()
}

func heading(level int, text string) *html.Node {
	if level < 1 || level > 6 {
		level = 1
	}
	a := headingAtoms[level-1]
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func paragraph(text string) *html.Node {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.AppendChild(&html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
		}
		p.AppendChild(&html.Node{Type: html.TextNode, Data: line})
	}
	return p
}

func render(buf *strings.Builder, n *html.Node) {
	// Rendering into a strings.Builder cannot fail.
	_ = html.Render(buf, n)
}
