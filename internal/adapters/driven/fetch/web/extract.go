package web

import (
	"strings"

	"golang.org/x/net/html"
)

// contentSelectors are tried in order; the first matching element with
// any text becomes the extraction root. The page body is the fallback.
var contentSelectors = []selector{
	{class: "main-content"},
	{tag: "main"},
	{tag: "article"},
	{class: "post-content"},
	{class: "article-content"},
	{attr: "role", attrValue: "main"},
	{class: "content"},
}

// strippedTags are removed from the extraction root before text
// collection.
var strippedTags = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"footer": true,
	"aside":  true,
}

// textTags are the paragraph-level elements whose text makes up the
// article body.
var textTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"blockquote": true, "li": true,
}

// selector is the small subset of CSS selection the content scan
// needs: a tag name, a class token, or an attribute equality.
type selector struct {
	tag       string
	class     string
	attr      string
	attrValue string
}

func (s selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case s.tag != "":
		return n.Data == s.tag
	case s.class != "":
		return hasClass(n, s.class)
	case s.attr != "":
		return attr(n, s.attr) == s.attrValue
	default:
		return false
	}
}

// extractText runs the readability pass over a parsed page and returns
// the article text.
func extractText(doc *html.Node) string {
	root := findContentRoot(doc)
	if root == nil {
		return ""
	}

	stripChrome(root)

	var parts []string
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && textTags[n.Data] {
			if text := elementText(n); text != "" {
				parts = append(parts, text)
			}
		}
	})

	return strings.Join(parts, " ")
}

// findContentRoot picks the extraction root: the first selector, in
// priority order, whose first match carries any text. Falls back to
// the document body.
func findContentRoot(doc *html.Node) *html.Node {
	for _, sel := range contentSelectors {
		if n := findFirst(doc, sel.matches); n != nil && elementText(n) != "" {
			return n
		}
	}
	return findFirst(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "body"
	})
}

// stripChrome removes navigation, style and script subtrees in place.
func stripChrome(root *html.Node) {
	var doomed []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && strippedTags[n.Data] {
			doomed = append(doomed, n)
		}
	})
	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// findFirst returns the first node in document order satisfying match.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

// walk visits every node under n in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// elementText returns the subtree's text with whitespace collapsed to
// single spaces.
func elementText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// hasClass reports whether the node's class attribute contains the
// given class token.
func hasClass(n *html.Node, class string) bool {
	for _, token := range strings.Fields(attr(n, "class")) {
		if token == class {
			return true
		}
	}
	return false
}

// attr returns the value of the named attribute, or empty.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
