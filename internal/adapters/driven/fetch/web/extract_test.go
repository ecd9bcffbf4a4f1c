package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parsePage(t *testing.T, page string) *html.Node {
	t.Helper()

	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestExtractText_PrefersMainContentClass(t *testing.T) {
	page := `<html><body>
		<div class="sidebar"><p>Sidebar junk</p></div>
		<div class="main-content"><p>The real article.</p></div>
	</body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "The real article.", text)
}

func TestExtractText_SelectorPriority(t *testing.T) {
	page := `<html><body>
		<div class="content"><p>Generic content block.</p></div>
		<main><p>Main element wins.</p></main>
	</body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Main element wins.", text)
}

func TestExtractText_ArticleElement(t *testing.T) {
	page := `<html><body>
		<article><h1>Title</h1><p>Body text.</p></article>
	</body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Title Body text.", text)
}

func TestExtractText_RoleMain(t *testing.T) {
	page := `<html><body>
		<div role="main"><p>Landmark content.</p></div>
	</body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Landmark content.", text)
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	page := `<html><body><p>No container at all.</p></body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "No container at all.", text)
}

// An empty preferred container yields to the next selector.
func TestExtractText_SkipsEmptyContainer(t *testing.T) {
	page := `<html><body>
		<div class="main-content"></div>
		<main><p>Fallback target.</p></main>
	</body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Fallback target.", text)
}

func TestExtractText_StripsChrome(t *testing.T) {
	page := `<html><body><article>
		<nav><li>Home</li></nav>
		<script>var x = 1;</script>
		<style>p { color: red; }</style>
		<p>Kept paragraph.</p>
		<aside><p>Related posts</p></aside>
		<footer><p>Copyright</p></footer>
	</article></body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Kept paragraph.", text)
}

func TestExtractText_JoinsParagraphLevelElements(t *testing.T) {
	page := `<html><body><article>
		<h2>Heading</h2>
		<p>First paragraph.</p>
		<blockquote>A quote.</blockquote>
		<ul><li>Item one</li><li>Item two</li></ul>
	</article></body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Heading First paragraph. A quote. Item one Item two", text)
}

// Text sitting directly in a div is layout noise, not article body.
func TestExtractText_IgnoresBareDivText(t *testing.T) {
	page := `<html><body><article>
		<div>loose layout text</div>
		<p>Actual paragraph.</p>
	</article></body></html>`

	text := extractText(parsePage(t, page))

	assert.Equal(t, "Actual paragraph.", text)
}

func TestExtractText_CollapsesWhitespace(t *testing.T) {
	page := "<html><body><article><p>spread \n\t out   <em>words</em> here</p></article></body></html>"

	text := extractText(parsePage(t, page))

	assert.Equal(t, "spread out words here", text)
}

func TestExtractText_EmptyPage(t *testing.T) {
	text := extractText(parsePage(t, "<html><body></body></html>"))

	assert.Empty(t, text)
}
