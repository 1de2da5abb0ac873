// Package sections splits a document page into titled sections of text.
package sections

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/verge88/api-npa3/internal/domain"
	"github.com/verge88/api-npa3/internal/textnorm"
)

const (
	// IntroTitle names text that precedes the first heading.
	IntroTitle = "Введение"
	// WholeDocumentTitle names the single section of a page without headings.
	WholeDocumentTitle = "Содержание документа"

	// NoiseSelectors are removed before any text is read.
	NoiseSelectors = "script, style, nav, header, footer, aside"

	headingSelectors = "h1, h2, h3, h4, h5, h6"
)

// contentSelectors locate the main content region, most specific first.
var contentSelectors = []string{
	".document-content",
	".doc-content",
	".main-content",
	"main",
	".content",
	"article",
}

// StripNoise removes non-content subtrees from doc in place.
func StripNoise(doc *goquery.Document) {
	doc.Find(NoiseSelectors).Remove()
}

// ContentRegion returns the main content region, falling back to <body>.
func ContentRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if region := doc.Find(selector).First(); region.Length() > 0 {
			return region
		}
	}
	return doc.Find("body").First()
}

// Split strips noise from doc (mutating it) and returns the content region's
// sections in document order. Pages whose region has no headings yield one
// section holding all of its text.
func Split(doc *goquery.Document) []domain.Section {
	StripNoise(doc)

	region := ContentRegion(doc)
	if region.Length() == 0 {
		return []domain.Section{}
	}
	root := region.Get(0)

	if region.Find(headingSelectors).Length() == 0 {
		text := textnorm.Join(textNodes(root)...)
		if text == "" {
			return []domain.Section{}
		}
		return []domain.Section{{Title: WholeDocumentTitle, Content: text}}
	}

	state := NewState()
	for _, n := range descendants(root) {
		switch {
		case isHeading(n):
			state.Heading(textnorm.Join(textNodes(n)...))
		case n.Type == html.TextNode && !isNoise(n.Parent):
			state.Text(n.Data)
		}
	}

	if out := state.Finish(); out != nil {
		return out
	}
	return []domain.Section{}
}

// descendants lists the nodes below root in document (pre-)order without
// recursion, so deeply nested markup cannot exhaust the stack.
func descendants(root *html.Node) []*html.Node {
	var out []*html.Node
	stack := childrenReversed(root, nil)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = childrenReversed(n, stack)
	}
	return out
}

func childrenReversed(n *html.Node, stack []*html.Node) []*html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		stack = append(stack, c)
	}
	return stack
}

// textNodes returns the text node data under n in document order.
// Comments are not text.
func textNodes(n *html.Node) []string {
	var out []string
	for _, d := range descendants(n) {
		if d.Type == html.TextNode && !isNoise(d.Parent) {
			out = append(out, d.Data)
		}
	}
	return out
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func isNoise(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Nav, atom.Header, atom.Footer, atom.Aside:
		return true
	}
	return false
}
