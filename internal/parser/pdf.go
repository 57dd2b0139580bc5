package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/chapterdesk/internal/doctree"
)

// PDFParser handles PDF files. It tries the Go library first, then falls
// back to pdftotext if enabled. Pages carry no headings; each page's
// blank-line separated blocks become paragraphs.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Outline, error) {
	// ledongthuc/pdf opens by path.
	tmp, err := os.CreateTemp("", "chapterdesk-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return pdfOutline(baseTitle(filename), text), nil
}

// pdfOutline builds an outline from form-feed separated page text.
func pdfOutline(title, text string) *doctree.Outline {
	b := doctree.NewBuilder(title)
	for i, page := range strings.Split(text, "\f") {
		b.Page(i + 1)
		for _, block := range strings.Split(strings.ReplaceAll(page, "\r\n", "\n"), "\n\n") {
			b.Paragraph(block)
		}
	}
	return b.Outline()
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if i > 1 {
			buf.WriteString("\f")
		}
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
