// Package newsletter extracts article listings from newsletter emails.
// The digest layout marks each article with a known container class,
// a bold title element carrying an id, and a wrapping link.
package newsletter

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/sumdiff-cli/internal/core/domain"
	"github.com/custodia-labs/sumdiff-cli/internal/core/ports/driven"
)

// containerClass is the class attribute the digest stamps on every
// article container div.
const containerClass = "cb cc cd ce cf cg ch ci cj"

// Ensure Extractor implements the interface.
var _ driven.ArticleExtractor = (*Extractor)(nil)

// Extractor pulls article titles and links out of digest HTML.
type Extractor struct{}

// New creates a new article extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML and returns the articles found, in document
// order. Containers without both a title and a link are skipped.
func (e *Extractor) Extract(content string) ([]domain.Article, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var articles []domain.Article
	for _, container := range articleContainers(root) {
		titleNode := titleElement(container)
		if titleNode == nil {
			continue
		}
		link := ancestorLink(titleNode)
		if link == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title: textContent(titleNode),
			Link:  link,
		})
	}

	return articles, nil
}

// articleContainers returns every div whose class attribute matches
// the digest container class, in document order.
func articleContainers(root *html.Node) []*html.Node {
	var containers []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			classes := strings.Join(strings.Fields(attr(n, "class")), " ")
			if classes == containerClass {
				containers = append(containers, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return containers
}

// titleElement returns the first descendant <b> carrying an id
// attribute, or nil.
func titleElement(container *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "b" && hasAttr(n, "id") {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(container)
	return found
}

// ancestorLink returns the href of the nearest ancestor <a>, or "".
// The wrapping link may sit above the container itself, so the walk
// does not stop at the container boundary.
func ancestorLink(n *html.Node) string {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "a" {
			if href := attr(p, "href"); href != "" {
				return href
			}
		}
	}
	return ""
}

// textContent concatenates the stripped text of every descendant
// text node.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// hasAttr reports whether the node carries the named attribute.
func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
