// Package markup re-serialises a rendered <table> fragment as well-formed
// XHTML, either on a single line or indented for reading.
package markup

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultWrapAt = 120
	DefaultIndent = 4
)

// Options configures Normalize.
type Options struct {
	// Beautify indents nested elements and wraps long start tags.
	Beautify bool
	// WrapAt is the line width used when beautifying. Zero means DefaultWrapAt.
	WrapAt int
	// Indent is the number of spaces per nesting level. Zero means
	// DefaultIndent.
	Indent int
}

// Error is returned when a fragment cannot be normalised. It indicates the
// renderer produced markup that does not parse to a single table.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("normalize markup: %s: %v", e.Reason, e.Err)
	}
	return "normalize markup: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

var bodyContext = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

// Normalize parses fragment, which must hold exactly one <table> element, and
// serialises it again. Without Beautify every line break is removed so the
// result is a single line.
func Normalize(fragment string, opts Options) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext)
	if err != nil {
		return "", &Error{Reason: "parse fragment", Err: err}
	}

	var root *html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
			continue
		case n.Type == html.ElementNode && n.DataAtom == atom.Table && root == nil:
			root = n
		default:
			return "", &Error{Reason: fmt.Sprintf("unexpected %s outside the table", describe(n))}
		}
	}
	if root == nil {
		return "", &Error{Reason: "fragment has no table"}
	}

	if !opts.Beautify {
		var buf bytes.Buffer
		if err := html.Render(&buf, root); err != nil {
			return "", &Error{Reason: "render", Err: err}
		}
		return strings.NewReplacer("\r", "", "\n", "").Replace(buf.String()), nil
	}

	p := printer{wrapAt: opts.WrapAt, indent: opts.Indent}
	if p.wrapAt <= 0 {
		p.wrapAt = DefaultWrapAt
	}
	if p.indent <= 0 {
		p.indent = DefaultIndent
	}
	if err := p.block(root, 0); err != nil {
		return "", &Error{Reason: "render", Err: err}
	}
	return p.buf.String(), nil
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.ElementNode:
		return "<" + n.Data + ">"
	case html.TextNode:
		return "text"
	case html.CommentNode:
		return "comment"
	}
	return "node"
}

type printer struct {
	buf    strings.Builder
	wrapAt int
	indent int
}

// block writes an element with each child element on its own line. Elements
// that contain no child elements are written inline.
func (p *printer) block(n *html.Node, depth int) error {
	if !hasElementChild(n) {
		return p.inline(n, depth)
	}
	pad := strings.Repeat(" ", depth*p.indent)
	p.startTag(n, pad)
	p.buf.WriteByte('\n')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if err := p.block(c, depth+1); err != nil {
				return err
			}
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				p.buf.WriteString(pad + strings.Repeat(" ", p.indent) + stdhtml.EscapeString(text) + "\n")
			}
		}
	}
	p.buf.WriteString(pad + "</" + n.Data + ">\n")
	return nil
}

func (p *printer) inline(n *html.Node, depth int) error {
	p.startTag(n, strings.Repeat(" ", depth*p.indent))
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&p.buf, c); err != nil {
			return err
		}
	}
	p.buf.WriteString("</" + n.Data + ">\n")
	return nil
}

// startTag writes "<name attr...>" after pad. Attributes that would push the
// line past wrapAt continue on the next line, one level deeper.
func (p *printer) startTag(n *html.Node, pad string) {
	line := pad + "<" + n.Data
	for _, a := range n.Attr {
		attr := fmt.Sprintf(`%s="%s"`, a.Key, stdhtml.EscapeString(a.Val))
		if len(line)+1+len(attr) > p.wrapAt && strings.TrimSpace(line) != "<"+n.Data {
			p.buf.WriteString(line + "\n")
			line = pad + strings.Repeat(" ", p.indent) + attr
			continue
		}
		line += " " + attr
	}
	p.buf.WriteString(line + ">")
}

func hasElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}
