package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/chapterdesk/internal/doctree"
)

func headings(o *doctree.Outline) []string {
	var out []string
	for _, s := range o.Sections {
		out = append(out, s.Heading)
	}
	return out
}

func TestTextParser_ParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\n\n\nThird paragraph.\n   \nFourth."
	p := &TextParser{}
	o, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", o.Title)
	}
	if len(o.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(o.Sections))
	}
	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
		"Fourth.",
	}
	if got := o.Sections[0].Paragraphs; !reflect.DeepEqual(got, want) {
		t.Errorf("paragraphs = %q, want %q", got, want)
	}
	if o.Sections[0].Level != 0 {
		t.Errorf("expected level 0, got %d", o.Sections[0].Level)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	o, err := (&TextParser{}).Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.Empty() {
		t.Errorf("expected empty outline, got %d sections", len(o.Sections))
	}
}

func TestMarkdownParser_Sections(t *testing.T) {
	input := `Preamble.

# Title

Intro text with *emphasis*.

## Section A

- item one
- item two

### Subsection A1

Subsection A1 content.

---

## Section B

` + "```\nGET /api/users\n```\n"

	o, err := (&MarkdownParser{}).Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", o.Title)
	}

	wantHeadings := []string{"", "Title", "Section A", "Subsection A1", "Section B"}
	if got := headings(o); !reflect.DeepEqual(got, wantHeadings) {
		t.Fatalf("headings = %q, want %q", got, wantHeadings)
	}

	wantLevels := []int{0, 1, 2, 3, 2}
	for i, s := range o.Sections {
		if s.Level != wantLevels[i] {
			t.Errorf("section %d: level %d, want %d", i, s.Level, wantLevels[i])
		}
	}
	if got := o.Sections[1].Paragraphs; !reflect.DeepEqual(got, []string{"Intro text with emphasis."}) {
		t.Errorf("intro paragraphs = %q", got)
	}
	if got := o.Sections[2].Paragraphs; !reflect.DeepEqual(got, []string{"item one", "item two"}) {
		t.Errorf("list paragraphs = %q", got)
	}
	if got := o.Sections[4].Paragraphs; len(got) != 1 || got[0] != "GET /api/users" {
		t.Errorf("code paragraphs = %q", got)
	}
	if o.TopLevel() != 1 {
		t.Errorf("expected top level 1, got %d", o.TopLevel())
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		o, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if o.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, o.Title)
		}
	}
}

func TestHTMLParser_Sections(t *testing.T) {
	input := `<html><head><title>Guide</title><style>p{}</style></head><body>
<nav><p>skip me</p></nav>
<h2>Start</h2><p>Hello <b>there</b></p><ul><li>one</li></ul>
<h2>  </h2>
<h3>Detail</h3><blockquote>quoted</blockquote>
<script>var x;</script>
</body></html>`

	o, err := (&HTMLParser{}).Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Title != "Guide" {
		t.Errorf("expected title %q, got %q", "Guide", o.Title)
	}
	if got := headings(o); !reflect.DeepEqual(got, []string{"Start", "Detail"}) {
		t.Fatalf("headings = %q", got)
	}
	if got := o.Sections[0].Paragraphs; !reflect.DeepEqual(got, []string{"Hello there", "one"}) {
		t.Errorf("paragraphs = %q", got)
	}
	if o.TopLevel() != 2 {
		t.Errorf("expected top level 2, got %d", o.TopLevel())
	}
}

func TestPDFOutline_Pages(t *testing.T) {
	o := pdfOutline("report", "Page one a.\n\nPage one b.\f\fPage three.")
	if len(o.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(o.Sections))
	}
	if o.Sections[0].Page != 1 || len(o.Sections[0].Paragraphs) != 2 {
		t.Errorf("unexpected first section: %+v", o.Sections[0])
	}
	if o.Sections[1].Page != 3 {
		t.Errorf("expected page 3, got %d", o.Sections[1].Page)
	}
}

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "a.MD", "a.markdown", "a.html", "a.htm", "a.pdf", "a.docx"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("%s: expected supported", name)
		}
	}
	if _, err := ForFile("a.csv", Options{}); err == nil {
		t.Error("expected error for .csv")
	}
	p, _ := ForFile("scan.pdf", Options{PDFFallbackPdftotext: true})
	if !p.(*PDFParser).FallbackPdftotext {
		t.Error("expected pdftotext fallback to be set")
	}
}
