// Package render turns message bodies into short plain-text previews for
// thread cards.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"

	"github.com/jobtrail/jobtrail/internal/model"
)

// Snippet builds a single-line preview for an email, preferring the HTML
// body when present and degrading to the plain body, then to "".
func Snippet(e model.EmailRecord, width int) string {
	text := ""
	if strings.TrimSpace(e.HTMLBody) != "" {
		text = HTMLToText(e.HTMLBody)
	}
	if strings.TrimSpace(text) == "" {
		text = e.Body
	}
	text = strings.Join(strings.Fields(text), " ")
	if width > 0 {
		text = runewidth.Truncate(text, width, "…")
	}
	return text
}

// HTMLToText extracts readable text from an HTML body. Malformed markup is
// handled by the tolerant parser; a body that cannot be parsed at all
// degrades to "".
func HTMLToText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch strings.ToLower(n.Data) {
			case "head", "style", "script", "title", "meta", "link":
				return
			case "br", "p", "div", "tr", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "p", "div", "tr", "li", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString(" ")
			}
		}
	}
	visit(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}
