package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a host document holding custom element instances.
type Document struct {
	registry *Registry
	root     *html.Node
	elements map[*html.Node]*Element
	shadows  map[*html.Node]*ShadowRoot

	listeners map[string][]Listener
}

// NewDocument creates an empty document bound to reg.
func NewDocument(reg *Registry) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := newElementNode("html")
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(newElementNode("head"))
	htmlNode.AppendChild(newElementNode("body"))

	return newDocument(reg, root)
}

// Parse reads an HTML document from r. Defined custom elements found in the
// markup are upgraded and connected in tree order.
func Parse(r io.Reader, reg *Registry) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := newDocument(reg, root)
	if err := doc.connectSubtree(root); err != nil {
		return nil, err
	}
	return doc, nil
}

func newDocument(reg *Registry, root *html.Node) *Document {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Document{
		registry: reg,
		root:     root,
		elements: make(map[*html.Node]*Element),
		shadows:  make(map[*html.Node]*ShadowRoot),
	}
}

// Registry returns the registry used to upgrade elements.
func (d *Document) Registry() *Registry {
	return d.registry
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the <body> element, or nil if the document has none.
func (d *Document) Body() *Element {
	return d.firstByAtom(atom.Body)
}

// Head returns the <head> element, or nil if the document has none.
func (d *Document) Head() *Element {
	return d.firstByAtom(atom.Head)
}

func (d *Document) firstByAtom(a atom.Atom) *Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// CreateElement creates a detached element. Defined tags are upgraded
// immediately; no lifecycle callback fires until the element is connected.
func (d *Document) CreateElement(tag string) *Element {
	return d.wrap(newElementNode(strings.ToLower(tag)))
}

// Render serializes the document, shadow roots included.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String returns the serialized document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Attached reports that n was inserted under a connected node by a renderer
// working on the raw tree. Custom elements inside n are upgraded and
// connected.
func (d *Document) Attached(n *html.Node) error {
	if !d.isConnected(n) {
		return nil
	}
	return d.connectSubtree(n)
}

// Detached reports that n was removed by a renderer working on the raw tree
// and will not be reused. Connected custom elements inside n are
// disconnected and forgotten.
func (d *Document) Detached(n *html.Node) error {
	err := d.disconnectSubtree(n)
	walk(n, func(c *html.Node) bool {
		delete(d.elements, c)
		delete(d.shadows, c)
		return true
	})
	return err
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}

	el := &Element{doc: d, node: n}
	d.elements[n] = el

	if n.Type == html.ElementNode {
		if def, ok := d.registry.Lookup(n.Data); ok {
			el.upgrade(def)
		}
	}
	return el
}

func (d *Document) isConnected(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// connectSubtree fires ConnectedCallback for every custom element under n in
// tree order. Elements removed by an earlier callback are skipped.
func (d *Document) connectSubtree(n *html.Node) error {
	for _, node := range elementNodes(n) {
		if !d.isConnected(node) {
			continue
		}
		el := d.wrap(node)
		if el.connected {
			continue
		}
		el.connected = true
		if el.custom == nil {
			continue
		}
		if err := el.custom.ConnectedCallback(); err != nil {
			return fmt.Errorf("connect <%s>: %w", node.Data, err)
		}
	}
	return nil
}

func (d *Document) disconnectSubtree(n *html.Node) error {
	var firstErr error
	for _, node := range elementNodes(n) {
		el, ok := d.elements[node]
		if !ok || !el.connected {
			continue
		}
		el.connected = false
		if el.custom == nil {
			continue
		}
		if err := el.custom.DisconnectedCallback(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("disconnect <%s>: %w", node.Data, err)
		}
	}
	return firstErr
}

func newElementNode(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// walk visits n and its descendants depth first; fn returns false to skip
// the children of the visited node.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func elementNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode {
			nodes = append(nodes, c)
		}
		return true
	})
	return nodes
}
