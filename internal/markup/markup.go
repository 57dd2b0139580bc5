// Package markup understands the few structurally significant tokens of
// chapter markup: headings and the chapter-break marker. Everything else
// is passed through byte for byte.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// bodyContext is the parse context for chapter fragments.
var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// ParseFragment parses chapter markup as the children of a <body>.
func ParseFragment(fragment string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(fragment), bodyContext)
}

// FirstHeading returns the trimmed text of the first h1..h6 element in
// document order, or "" if there is none or it has no text.
func FirstHeading(fragment string) string {
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return ""
	}
	for _, n := range nodes {
		if h := findHeading(n); h != nil {
			return NodeText(h)
		}
	}
	return ""
}

// TextContent returns the text of a fragment with tags removed and runs of
// whitespace collapsed to single spaces.
func TextContent(fragment string) string {
	nodes, err := ParseFragment(fragment)
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	var words []string
	for _, n := range nodes {
		words = append(words, strings.Fields(NodeText(n))...)
	}
	return strings.Join(words, " ")
}

// IsBlank reports whether content carries nothing a reader would see: it is
// empty, equals one of the placeholders, or holds neither text nor media.
func IsBlank(content string, placeholders ...string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return true
	}
	for _, p := range placeholders {
		if content == strings.TrimSpace(p) {
			return true
		}
	}
	nodes, err := ParseFragment(content)
	if err != nil {
		return false
	}
	for _, n := range nodes {
		if NodeText(n) != "" || hasMedia(n) {
			return false
		}
	}
	return true
}

func findHeading(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && HeadingLevel(n.Data) > 0 {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if h := findHeading(c); h != nil {
			return h
		}
	}
	return nil
}

func hasMedia(n *html.Node) bool {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img, atom.Video, atom.Audio, atom.Iframe, atom.Table, atom.Svg, atom.Math:
			return true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasMedia(c) {
			return true
		}
	}
	return false
}

// HeadingLevel returns 1..6 for h1..h6 and 0 for any other tag.
func HeadingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// NodeText returns the trimmed concatenated text beneath n.
func NodeText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
