package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// A chapter break is an <hr> carrying data-chapter-break="true". Both the
// element and the attribute value must match; a plain <hr> or a <div> with
// the attribute is ordinary content.
const (
	MarkerAttr  = "data-chapter-break"
	MarkerValue = "true"
	MarkerClass = "ae-chapter-break"
)

var markerHTML = renderMarker()

// Marker returns the serialized chapter-break node.
func Marker() string {
	return markerHTML
}

func renderMarker() string {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "hr",
		DataAtom: atom.Hr,
		Attr: []html.Attribute{
			{Key: MarkerAttr, Val: MarkerValue},
			{Key: "class", Val: MarkerClass},
		},
	}
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return `<hr ` + MarkerAttr + `="` + MarkerValue + `" class="` + MarkerClass + `"/>`
	}
	return buf.String()
}

func isMarker(tok html.Token) bool {
	if tok.Type != html.StartTagToken && tok.Type != html.SelfClosingTagToken {
		return false
	}
	if tok.DataAtom != atom.Hr {
		return false
	}
	for _, a := range tok.Attr {
		if a.Key == MarkerAttr && a.Val == MarkerValue {
			return true
		}
	}
	return false
}

// Split cuts markup at every chapter-break marker and removes the markers.
// Pieces are returned untrimmed, including empty ones. Markers inside text,
// comments or raw-text elements are not tags and never match.
//
// Cuts are made on the serialized bytes, not the tree: a marker nested in
// a container leaves that container's tags unbalanced across the pieces.
// InsertMarker only places markers between top-level blocks.
func Split(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var parts []string
	start, offset := 0, 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or not, whatever was not cut stays with the last piece.
			break
		}
		tokStart := offset
		offset += len(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		if isMarker(z.Token()) {
			parts = append(parts, markup[start:tokStart])
			start = offset
		}
	}
	return append(parts, markup[start:])
}

// Partition splits markup into trimmed, non-empty fragments.
func Partition(markup string) []string {
	var fragments []string
	for _, p := range Split(markup) {
		p = strings.TrimSpace(p)
		if p != "" {
			fragments = append(fragments, p)
		}
	}
	return fragments
}

// CountMarkers returns the number of chapter-break markers in markup.
func CountMarkers(markup string) int {
	return len(Split(markup)) - 1
}

var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// BlockBoundary returns the first offset at or after pos where no element
// is open, so a block node inserted there lands between top-level blocks.
// Positions past the last boundary resolve to len(markup).
func BlockBoundary(markup string, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(markup) {
		return len(markup)
	}
	z := html.NewTokenizer(strings.NewReader(markup))
	depth, offset := 0, 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return len(markup)
		}
		offset += len(z.Raw())
		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[atom.Lookup(name)] {
				depth++
			}
		case html.EndTagToken:
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && offset >= pos {
			return offset
		}
	}
}

// InsertMarker places a chapter-break marker at the block boundary nearest
// to pos. It returns the new markup and the offset just past the marker.
func InsertMarker(markup string, pos int) (string, int) {
	at := BlockBoundary(markup, pos)
	out := markup[:at] + markerHTML + markup[at:]
	return out, at + len(markerHTML)
}
