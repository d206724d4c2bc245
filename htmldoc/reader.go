// Package htmldoc imports HTML content as document element sequences.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/quillkit/quill/model"
)

// Reader provides access to HTML content as a flat sequence of document
// elements. Block structure is reduced to line breaks, images become
// image references, and preformatted text keeps its breaks and tabs.
type Reader struct {
	doc      *html.Node
	title    string
	elements []model.Element
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		doc:      doc,
		elements: make([]model.Element, 0),
	}

	reader.extractTitle(doc)
	reader.extractBody(doc)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the content of the <title> element, if any.
func (r *Reader) Title() string {
	return r.title
}

// Elements returns the imported element sequence.
func (r *Reader) Elements() ([]model.Element, error) {
	out := make([]model.Element, len(r.elements))
	copy(out, r.elements)
	return out, nil
}

// Document returns the imported content as a document.
func (r *Reader) Document() (*model.Document, error) {
	doc := model.NewDocument()
	for _, el := range r.elements {
		doc.AddElement(el)
	}
	return doc, nil
}

// extractTitle pulls the title out of the head element.
func (r *Reader) extractTitle(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "title" {
				r.title = collapseWhitespace(rawTextContent(c))
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractTitle(c)
	}
}

// extractBody converts the body element into the element sequence.
func (r *Reader) extractBody(n *html.Node) {
	body := findElement(n, "body")
	if body == nil {
		// No body tag, extract from the root
		body = n
	}

	ctx := &parseContext{}
	r.traverseNode(body, ctx)
	r.flushText(ctx)
}

// parseContext tracks the current parsing state: the text run being
// accumulated and the pending separator from a closed block or cell.
// Pending separators are emitted lazily so boundaries coalesce and the
// sequence never starts or ends with an implicit break.
type parseContext struct {
	run       strings.Builder
	needBreak bool
	needTab   bool
	emitted   bool
}

// traverseNode recursively processes DOM nodes.
func (r *Reader) traverseNode(n *html.Node, ctx *parseContext) {
	switch n.Type {
	case html.TextNode:
		ctx.run.WriteString(n.Data)
		return

	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "br":
			r.flushText(ctx)
			r.flushPending(ctx)
			r.emit(ctx, &model.LineBreak{})
			return

		case "img":
			r.flushText(ctx)
			if src := attrValue(n, "src"); src != "" {
				r.flushPending(ctx)
				r.emit(ctx, &model.Image{Path: src})
			}
			return

		case "pre":
			r.flushText(ctx)
			r.emitPreformatted(ctx, rawTextContent(n))
			if ctx.emitted {
				ctx.needBreak = true
			}
			return

		case "td", "th":
			r.flushText(ctx)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.traverseNode(c, ctx)
			}
			r.flushText(ctx)
			if ctx.emitted {
				ctx.needTab = true
			}
			return
		}

		if isBlockElement(n.Data) {
			// Text before the block belongs to the previous run.
			r.flushText(ctx)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.traverseNode(c, ctx)
			}
			r.flushText(ctx)
			if ctx.emitted {
				ctx.needBreak = true
			}
			return
		}

		// Inline element: its text joins the current run.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.traverseNode(c, ctx)
		}
		return

	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			r.traverseNode(c, ctx)
		}
	}
}

// flushText converts the accumulated text run into a Text element.
// Whitespace runs collapse to single spaces; whitespace-only runs vanish.
func (r *Reader) flushText(ctx *parseContext) {
	raw := ctx.run.String()
	ctx.run.Reset()

	text := collapseWhitespace(raw)
	if text == "" {
		return
	}
	r.flushPending(ctx)
	r.emit(ctx, &model.Text{Content: text})
}

// flushPending emits the separator owed by a previously closed block or
// table cell. A block boundary wins over a cell boundary.
func (r *Reader) flushPending(ctx *parseContext) {
	if ctx.needBreak {
		r.elements = append(r.elements, &model.LineBreak{})
	} else if ctx.needTab {
		r.elements = append(r.elements, &model.Tab{})
	}
	ctx.needBreak = false
	ctx.needTab = false
}

func (r *Reader) emit(ctx *parseContext, el model.Element) {
	r.elements = append(r.elements, el)
	ctx.emitted = true
}

// emitPreformatted emits preformatted text verbatim, converting newlines
// and tabs into their element forms. A single leading newline is dropped,
// matching how browsers treat <pre> content.
func (r *Reader) emitPreformatted(ctx *parseContext, raw string) {
	raw = strings.TrimPrefix(raw, "\n")
	raw = strings.TrimRight(raw, "\n")
	if raw == "" {
		return
	}

	r.flushPending(ctx)

	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			r.emit(ctx, &model.Text{Content: run.String()})
			run.Reset()
		}
	}
	for _, c := range raw {
		switch c {
		case '\n':
			flush()
			r.emit(ctx, &model.LineBreak{})
		case '\t':
			flush()
			r.emit(ctx, &model.Tab{})
		default:
			run.WriteRune(c)
		}
	}
	flush()
}

// shouldSkipElement returns true if the element should be skipped during
// content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

// isBlockElement returns true for elements that end a text run and leave
// a line break behind them.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "dl", "dt", "dd",
		"table", "thead", "tbody", "tfoot", "tr",
		"blockquote", "figure", "figcaption", "hr", "form",
		"article", "section", "main", "header", "footer", "nav", "aside":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// rawTextContent concatenates all text beneath a node, turning <br> into
// a newline and skipping non-content subtrees.
func rawTextContent(n *html.Node) string {
	var result strings.Builder
	rawTextContentRecursive(n, &result)
	return result.String()
}

func rawTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rawTextContentRecursive(c, result)
	}
}

// collapseWhitespace reduces every whitespace run to a single space and
// trims the edges.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
