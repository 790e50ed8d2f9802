package dom

import "golang.org/x/net/html"

// ShadowRoot is an encapsulated subtree attached to a host element.
type ShadowRoot struct {
	host *Element
	node *html.Node
}

// Host returns the element the root is attached to.
func (s *ShadowRoot) Host() *Element { return s.host }

// Node returns the container node holding the shadow tree.
func (s *ShadowRoot) Node() *html.Node { return s.node }

// TextContent concatenates the text of the shadow tree.
func (s *ShadowRoot) TextContent() string {
	return s.host.doc.textContent(s.node)
}

// InnerHTML serializes the shadow tree.
func (s *ShadowRoot) InnerHTML() string {
	return renderChildren(s.node)
}

// QuerySelector returns the first element of the shadow tree matching sel.
func (s *ShadowRoot) QuerySelector(sel string) (*Element, error) {
	return s.host.doc.queryFirst(s.node, sel)
}

// QuerySelectorAll returns the elements of the shadow tree matching sel.
func (s *ShadowRoot) QuerySelectorAll(sel string) ([]*Element, error) {
	return s.host.doc.queryAll(s.node, sel)
}
