// Package htmldom is a headless host for listeners: elements are nodes of an
// HTML document parsed with golang.org/x/net/html, and events are dispatched
// from Go. It is meant for server-side code and for tests that need a
// document without a browser.
package htmldom

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"

	"github.com/atdiar/listeners"
)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used to trace dispatches at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Document) {
		d.log = l.With().Str("component", "htmldom").Logger()
	}
}

// Document wraps a parsed HTML tree and hands out one Element per node.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	log      zerolog.Logger
}

// Parse parses an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing html document")
	}
	return NewDocument(n, opts...), nil
}

// NewDocument wraps an existing HTML tree.
func NewDocument(root *html.Node, opts ...Option) *Document {
	d := &Document{
		root:     root,
		elements: make(map[*html.Node]*Element),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// ElementOf returns the Element for n. Repeated calls with the same node
// return the same Element.
func (d *Document) ElementOf(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	e, ok := d.elements[n]
	if !ok {
		e = &Element{doc: d, node: n, subs: make(map[string][]*listeners.Listener)}
		d.elements[n] = e
	}
	return e
}

// GetElementByID returns the first element whose id attribute equals id,
// or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	n := find(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
	return d.ElementOf(n)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderIndent writes the document as indented HTML.
func (d *Document) RenderIndent(w io.Writer) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, d.root); err != nil {
		return err
	}
	_, err := io.WriteString(w, gohtml.Format(buf.String()))
	return err
}

// Element is an HTML node able to hold event listeners.
type Element struct {
	doc  *Document
	node *html.Node
	subs map[string][]*listeners.Listener
}

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node { return e.node }

// ID returns the id attribute of the node.
func (e *Element) ID() string { return attr(e.node, "id") }

func (e *Element) String() string {
	if id := e.ID(); id != "" {
		return e.node.Data + "#" + id
	}
	return e.node.Data
}

// AddEventListener subscribes l for event. Adding a listener that is already
// subscribed for that event does nothing.
func (e *Element) AddEventListener(event string, l *listeners.Listener) {
	for _, v := range e.subs[event] {
		if v == l {
			return
		}
	}
	e.subs[event] = append(e.subs[event], l)
}

func (e *Element) RemoveEventListener(event string, l *listeners.Listener) {
	list := e.subs[event]
	for i, v := range list {
		if v != l {
			continue
		}
		e.subs[event] = append(list[:i:i], list[i+1:]...)
		return
	}
}

// Listening returns the number of listeners subscribed for typ.
func (e *Element) Listening(typ string) int { return len(e.subs[typ]) }

// Dispatch fires an event of type typ at e. The listeners subscribed when
// the dispatch starts are called in subscription order. Dispatch returns
// false if one of them prevented the default action.
func (e *Element) Dispatch(typ string, native interface{}) bool {
	list := e.subs[typ]
	evt := listeners.NewEvent(typ, e, native)
	for _, l := range list {
		l.Handle(evt)
	}
	e.doc.log.Debug().Str("element", e.String()).Str("event", typ).Int("listeners", len(list)).Msg("event dispatched")
	return !evt.DefaultPrevented()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := find(c, match); m != nil {
			return m
		}
	}
	return nil
}
