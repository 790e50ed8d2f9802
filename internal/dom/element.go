package dom

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrNotChild is returned by RemoveChild for a node with another parent.
var ErrNotChild = errors.New("node is not a child of this element")

// ErrHierarchy is returned when an insertion would create a cycle.
var ErrHierarchy = errors.New("node cannot be inserted under one of its descendants")

// Element wraps an element node of a Document.
type Element struct {
	doc        *Document
	node       *html.Node
	custom     CustomElement
	observed   map[string]struct{}
	shadow     *ShadowRoot
	properties map[string]any
	listeners  map[string][]Listener
	connected  bool
}

func (e *Element) upgrade(def Definition) {
	e.observed = make(map[string]struct{}, len(def.ObservedAttributes))
	for _, name := range def.ObservedAttributes {
		e.observed[name] = struct{}{}
	}
	e.custom = def.New(e)
}

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Tag returns the lower-cased tag name.
func (e *Element) Tag() string { return e.node.Data }

// Custom returns the custom element behaviour, or nil for plain elements.
func (e *Element) Custom() CustomElement { return e.custom }

// IsConnected reports whether the element is part of its document tree.
func (e *Element) IsConnected() bool {
	return e.doc.isConnected(e.node)
}

// Parent returns the parent element, or nil at the top of a tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the light-tree child elements.
func (e *Element) Children() []*Element {
	var children []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, isShadow := e.doc.shadows[c]; isShadow {
			continue
		}
		children = append(children, e.doc.wrap(c))
	}
	return children
}

// GetAttribute returns the attribute value, or "" when absent.
func (e *Element) GetAttribute(name string) string {
	value, _ := e.attribute(name)
	return value
}

// HasAttribute reports whether the attribute is present.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.attribute(name)
	return ok
}

func (e *Element) attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttribute sets an attribute. For observed attributes of custom elements
// the AttributeChangedCallback fires with the previous value ("" if absent).
func (e *Element) SetAttribute(name, value string) error {
	name = strings.ToLower(name)
	old, _ := e.attribute(name)

	replaced := false
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			replaced = true
			break
		}
	}
	if !replaced {
		e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	}

	return e.attributeChanged(name, old, value)
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) error {
	name = strings.ToLower(name)
	old, ok := e.attribute(name)
	if !ok {
		return nil
	}

	attrs := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		attrs = append(attrs, attr)
	}
	e.node.Attr = attrs

	return e.attributeChanged(name, old, "")
}

func (e *Element) attributeChanged(name, old, value string) error {
	if e.custom == nil {
		return nil
	}
	if _, ok := e.observed[name]; !ok {
		return nil
	}
	if err := e.custom.AttributeChangedCallback(name, old, value); err != nil {
		return fmt.Errorf("attribute %q on <%s>: %w", name, e.Tag(), err)
	}
	return nil
}

// SetProperty assigns an explicit property. Custom elements implementing
// PropertyObserver are notified with the previous value.
func (e *Element) SetProperty(name string, value any) error {
	if e.properties == nil {
		e.properties = make(map[string]any)
	}
	old := e.properties[name]
	e.properties[name] = value

	observer, ok := e.custom.(PropertyObserver)
	if !ok {
		return nil
	}
	if err := observer.PropertyChangedCallback(name, old, value); err != nil {
		return fmt.Errorf("property %q on <%s>: %w", name, e.Tag(), err)
	}
	return nil
}

// Property returns an explicitly assigned property.
func (e *Element) Property(name string) (any, bool) {
	value, ok := e.properties[name]
	return value, ok
}

// AppendChild appends child, moving it from its previous parent if needed.
// Custom elements in the child subtree are connected when e is connected.
func (e *Element) AppendChild(child *Element) error {
	for cur := e.node; cur != nil; cur = cur.Parent {
		if cur == child.node {
			return ErrHierarchy
		}
	}

	if parent := child.node.Parent; parent != nil {
		parent.RemoveChild(child.node)
		if err := e.doc.disconnectSubtree(child.node); err != nil {
			return err
		}
	}

	e.node.AppendChild(child.node)
	if !e.IsConnected() {
		return nil
	}
	return e.doc.connectSubtree(child.node)
}

// RemoveChild detaches child and disconnects the custom elements inside it.
func (e *Element) RemoveChild(child *Element) error {
	if child.node.Parent != e.node {
		return ErrNotChild
	}
	e.node.RemoveChild(child.node)
	return e.doc.disconnectSubtree(child.node)
}

// Remove detaches the element from its parent.
func (e *Element) Remove() error {
	parent := e.node.Parent
	if parent == nil {
		return nil
	}
	parent.RemoveChild(e.node)
	return e.doc.disconnectSubtree(e.node)
}

// AttachShadow creates the element's shadow root. Later calls return the
// existing root.
func (e *Element) AttachShadow() *ShadowRoot {
	if e.shadow != nil {
		return e.shadow
	}

	tmpl := newElementNode("template")
	tmpl.Attr = []html.Attribute{{Key: "shadowrootmode", Val: "open"}}
	e.node.InsertBefore(tmpl, e.node.FirstChild)

	e.shadow = &ShadowRoot{host: e, node: tmpl}
	e.doc.shadows[tmpl] = e.shadow
	return e.shadow
}

// ShadowRoot returns the shadow root, or nil when none is attached.
func (e *Element) ShadowRoot() *ShadowRoot { return e.shadow }

// TextContent concatenates the light-tree text under the element.
func (e *Element) TextContent() string {
	return e.doc.textContent(e.node)
}

// InnerHTML serializes the element's children, shadow root included.
func (e *Element) InnerHTML() string {
	return renderChildren(e.node)
}

// QuerySelector returns the first light-tree descendant matching sel.
func (e *Element) QuerySelector(sel string) (*Element, error) {
	return e.doc.queryFirst(e.node, sel)
}

// QuerySelectorAll returns the light-tree descendants matching sel.
func (e *Element) QuerySelectorAll(sel string) ([]*Element, error) {
	return e.doc.queryAll(e.node, sel)
}

func (d *Document) textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c != n {
			if _, isShadow := d.shadows[c]; isShadow {
				return false
			}
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func renderChildren(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}
