package render

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Observer is told about nodes a Root inserts into or removes from its
// container. Removed nodes are never reused.
type Observer interface {
	Attached(n *html.Node) error
	Detached(n *html.Node) error
}

// Option configures a Root.
type Option func(*Root)

// WithObserver installs o as the attachment observer.
func WithObserver(o Observer) Option {
	return func(r *Root) {
		r.observer = o
	}
}

// Root owns the rendered content of a container node.
type Root struct {
	container *html.Node
	observer  Observer
	slots     map[string]*slot
	mounted   bool
}

// NewRoot returns a root rendering into container.
func NewRoot(container *html.Node, opts ...Option) *Root {
	r := &Root{container: container, slots: make(map[string]*slot)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Container returns the node the root renders into.
func (r *Root) Container() *html.Node { return r.container }

// Mounted reports whether the root currently holds rendered output.
func (r *Root) Mounted() bool { return r.mounted }

// Render replaces the container's content with the output of n. The new
// tree is built completely first; when a component fails the previous
// content stays in place and the error is returned.
func (r *Root) Render(n Node) error {
	b := &builder{root: r, visited: make(map[string]*slot)}
	nodes, err := b.build(n, &Context{}, "0")
	if err != nil {
		return err
	}

	if err := r.clear(); err != nil {
		return err
	}
	for _, node := range nodes {
		r.container.AppendChild(node)
	}

	for key, s := range r.slots {
		if _, kept := b.visited[key]; !kept {
			s.unmount()
		}
	}
	r.slots = b.visited
	r.mounted = true

	if r.observer != nil {
		for _, node := range nodes {
			if node.Parent != r.container {
				continue
			}
			if err := r.observer.Attached(node); err != nil {
				return err
			}
		}
	}

	for _, key := range sortedKeys(r.slots) {
		r.slots[key].mount()
	}
	return nil
}

// Unmount removes the rendered content and discards component state.
func (r *Root) Unmount() error {
	err := r.clear()
	for _, s := range r.slots {
		s.unmount()
	}
	r.slots = make(map[string]*slot)
	r.mounted = false
	return err
}

func (r *Root) clear() error {
	var firstErr error
	for c := r.container.FirstChild; c != nil; {
		next := c.NextSibling
		r.container.RemoveChild(c)
		if r.observer != nil {
			if err := r.observer.Detached(c); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		c = next
	}
	return firstErr
}

type builder struct {
	root    *Root
	visited map[string]*slot
}

func (b *builder) build(n Node, ctx *Context, path string) ([]*html.Node, error) {
	switch node := n.(type) {
	case nil:
		return nil, nil
	case textNode:
		return []*html.Node{{Type: html.TextNode, Data: node.value}}, nil
	case elementNode:
		return b.buildElement(node, ctx, path)
	case fragmentNode:
		return b.buildChildren(node.children, ctx, path)
	case providerNode:
		return b.buildChildren(node.children, ctx.withValue(node.key, node.value), path)
	case htmlNode:
		return parseMarkup(node.markup)
	case componentNode:
		return b.buildComponent(node, ctx, path)
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}
}

func (b *builder) buildElement(node elementNode, ctx *Context, path string) ([]*html.Node, error) {
	tag := strings.ToLower(node.tag)
	el := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}

	for _, key := range sortedKeys(node.attrs) {
		el.Attr = append(el.Attr, html.Attribute{Key: key, Val: node.attrs[key]})
	}

	children, err := b.buildChildren(node.children, ctx, path)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		el.AppendChild(child)
	}
	return []*html.Node{el}, nil
}

func (b *builder) buildChildren(children []Node, ctx *Context, path string) ([]*html.Node, error) {
	var out []*html.Node
	for i, child := range children {
		nodes, err := b.build(child, ctx, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (b *builder) buildComponent(node componentNode, ctx *Context, path string) ([]*html.Node, error) {
	if node.component == nil {
		return nil, ErrNilComponent
	}

	key := path + ":" + componentKey(node.component)
	s, ok := b.root.slots[key]
	if !ok {
		s = &slot{}
	}
	b.visited[key] = s

	props := node.props.Clone()
	out, err := node.component.Render(ctx.forComponent(node.children, s), props)
	if err != nil {
		return nil, err
	}
	return b.build(out, ctx, key)
}

func parseMarkup(markup string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return nodes, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
