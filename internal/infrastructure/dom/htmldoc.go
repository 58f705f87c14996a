package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/wrfweb/taskmonitor/internal/core/ports"
)

// HTMLDocument is a server-rendered page held in memory. It is not safe
// for concurrent use; callers confine it to one goroutine.
type HTMLDocument struct {
	root     *html.Node
	handlers map[*html.Node]map[string][]func()
}

var _ ports.Document = (*HTMLDocument)(nil)

func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return &HTMLDocument{
		root:     root,
		handlers: make(map[*html.Node]map[string][]func()),
	}, nil
}

func ParseString(s string) (*HTMLDocument, error) {
	return Parse(strings.NewReader(s))
}

func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *HTMLDocument) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *HTMLDocument) Query(role ports.Role, taskID string) (ports.Element, bool) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if matches(n, role) {
			if id, ok := attr(n, ports.TaskIDAttr); ok && id == taskID {
				found = n
				return false
			}
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return d.element(found), true
}

func (d *HTMLDocument) QueryAll(role ports.Role) []ports.Element {
	var out []ports.Element
	walk(d.root, func(n *html.Node) bool {
		if matches(n, role) {
			out = append(out, d.element(n))
		}
		return true
	})
	return out
}

func (d *HTMLDocument) Meta(name string) (string, bool) {
	var content string
	var ok bool
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
			if v, has := attr(n, "name"); has && v == name {
				content, ok = attr(n, "content")
				return false
			}
		}
		return true
	})
	return content, ok
}

// Dispatch fires every handler registered for event on el, in registration
// order. It stands in for the browser's event dispatch.
func (d *HTMLDocument) Dispatch(el ports.Element, event string) {
	e, ok := el.(*HTMLElement)
	if !ok || e.doc != d {
		return
	}
	// Browsers do not deliver clicks to disabled controls.
	if event == ports.EventClick && e.Disabled() {
		return
	}
	for _, h := range d.handlers[e.node][event] {
		h()
	}
}

func (d *HTMLDocument) element(n *html.Node) *HTMLElement {
	return &HTMLElement{doc: d, node: n}
}

// HTMLElement is a handle on a node of an HTMLDocument. Handles are cheap;
// two handles for the same node share state.
type HTMLElement struct {
	doc  *HTMLDocument
	node *html.Node
}

var _ ports.Element = (*HTMLElement)(nil)

func (e *HTMLElement) Attr(name string) (string, bool) {
	return attr(e.node, name)
}

func (e *HTMLElement) SetAttr(name, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

func (e *HTMLElement) removeAttr(name string) {
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	e.node.Attr = kept
}

func (e *HTMLElement) Text() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func (e *HTMLElement) SetText(text string) {
	clearChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *HTMLElement) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

func (e *HTMLElement) SetClasses(classes ...string) {
	e.SetAttr("class", strings.Join(classes, " "))
}

func (e *HTMLElement) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

func (e *HTMLElement) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.removeAttr("disabled")
}

func (e *HTMLElement) ReplaceWithLink(href, label string, classes ...string) {
	clearChildren(e.node)
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr:     []html.Attribute{{Key: "href", Val: href}},
	}
	if len(classes) > 0 {
		a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: strings.Join(classes, " ")})
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: label})
	e.node.AppendChild(a)
}

func (e *HTMLElement) On(event string, handler func()) {
	byEvent := e.doc.handlers[e.node]
	if byEvent == nil {
		byEvent = make(map[string][]func())
		e.doc.handlers[e.node] = byEvent
	}
	byEvent[event] = append(byEvent[event], handler)
}

// InnerHTML renders the element's children.
func (e *HTMLElement) InnerHTML() string {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func matches(n *html.Node, role ports.Role) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if role.Tag != "" && n.Data != role.Tag {
		return false
	}
	if role.Class != "" {
		v, _ := attr(n, "class")
		for _, c := range strings.Fields(v) {
			if c == role.Class {
				return true
			}
		}
		return false
	}
	_, ok := attr(n, role.Attr)
	return ok
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}
