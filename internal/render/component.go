package render

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilComponent is returned when a component node carries no component.
	ErrNilComponent = errors.New("nil component")
	// ErrNoDispatcher is returned by Context.Dispatch outside WithDispatcher.
	ErrNoDispatcher = errors.New("no event dispatcher in context")
)

// Component renders props into a node tree. It is the only capability the
// element bridge relies on.
type Component interface {
	Render(ctx *Context, props Props) (Node, error)
}

// Func adapts a function-style component.
type Func func(ctx *Context, props Props) (Node, error)

// Render calls f.
func (f Func) Render(ctx *Context, props Props) (Node, error) {
	return f(ctx, props)
}

// Instance is a class-style component instance. One instance lives per tree
// position for as long as the same class keeps rendering there.
type Instance interface {
	Render(ctx *Context, props Props) (Node, error)
}

// Mounter is implemented by instances that want to know when their first
// output has been inserted.
type Mounter interface {
	Mounted()
}

// Unmounter is implemented by instances that want to know when they are
// about to be discarded.
type Unmounter interface {
	Unmounting()
}

// Class adapts a class-style component.
type Class struct {
	Name string
	New  func() Instance
}

// Render renders through the instance bound to the current tree position,
// creating it on first use.
func (c *Class) Render(ctx *Context, props Props) (Node, error) {
	if c.New == nil {
		return nil, fmt.Errorf("class %q: %w", c.Name, ErrNilComponent)
	}

	if ctx == nil || ctx.slot == nil {
		return c.New().Render(ctx, props)
	}

	inst, ok := ctx.slot.instance.(Instance)
	if !ok {
		inst = c.New()
		ctx.slot.instance = inst
		ctx.slot.fresh = true
	}
	return inst.Render(ctx, props)
}

// slot carries the per-position state of a component across renders.
type slot struct {
	instance any
	fresh    bool
}

func (s *slot) unmount() {
	if u, ok := s.instance.(Unmounter); ok {
		u.Unmounting()
	}
}

func (s *slot) mount() {
	if !s.fresh {
		return
	}
	s.fresh = false
	if m, ok := s.instance.(Mounter); ok {
		m.Mounted()
	}
}

// componentKey identifies a component value so a position keeps its state
// only while the same component renders there.
func componentKey(c Component) string {
	if class, ok := c.(*Class); ok {
		return fmt.Sprintf("class:%s@%p", class.Name, class)
	}

	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Slice:
		return fmt.Sprintf("%T@%x", c, v.Pointer())
	default:
		return fmt.Sprintf("%T", c)
	}
}
