package render

import "fmt"

// Props are the inputs of a component render.
type Props map[string]any

// String returns the prop formatted as text, or "" when absent or nil.
func (p Props) String(key string) string {
	value, ok := p[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Attrs are the attributes of an element node.
type Attrs map[string]string

// Node is a renderable description of output.
type Node interface {
	isNode()
}

type elementNode struct {
	tag      string
	attrs    Attrs
	children []Node
}

type textNode struct {
	value string
}

type fragmentNode struct {
	children []Node
}

type htmlNode struct {
	markup string
}

type componentNode struct {
	component Component
	props     Props
	children  []Node
}

type providerNode struct {
	key      any
	value    any
	children []Node
}

func (elementNode) isNode()   {}
func (textNode) isNode()      {}
func (fragmentNode) isNode()  {}
func (htmlNode) isNode()      {}
func (componentNode) isNode() {}
func (providerNode) isNode()  {}

// El describes an element.
func El(tag string, attrs Attrs, children ...Node) Node {
	return elementNode{tag: tag, attrs: attrs, children: children}
}

// Text describes a text node. The value is escaped on output.
func Text(value string) Node {
	return textNode{value: value}
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...Node) Node {
	return fragmentNode{children: children}
}

// HTML describes trusted markup, parsed as a body fragment when mounted.
func HTML(markup string) Node {
	return htmlNode{markup: markup}
}

// C describes a component render with the given props. The children are
// available to the component through Context.Children.
func C(component Component, props Props, children ...Node) Node {
	return componentNode{component: component, props: props, children: children}
}

// Provide makes value available under key to every component below it.
func Provide(key, value any, children ...Node) Node {
	return providerNode{key: key, value: value, children: children}
}
