package render

// Context is handed to every component render.
type Context struct {
	values   *valueScope
	children []Node
	slot     *slot
}

type valueScope struct {
	key    any
	value  any
	parent *valueScope
}

// Dispatcher receives the values components pass to Context.Dispatch.
type Dispatcher func(event any) error

type dispatcherKey struct{}

// Value returns the nearest value provided under key, or nil.
func (c *Context) Value(key any) any {
	if c == nil {
		return nil
	}
	for scope := c.values; scope != nil; scope = scope.parent {
		if scope.key == key {
			return scope.value
		}
	}
	return nil
}

// Children returns the child nodes passed to the component.
func (c *Context) Children() []Node {
	if c == nil {
		return nil
	}
	return c.children
}

// Dispatch hands event to the dispatcher provided by an enclosing
// WithDispatcher.
func (c *Context) Dispatch(event any) error {
	d, ok := c.Value(dispatcherKey{}).(Dispatcher)
	if !ok || d == nil {
		return ErrNoDispatcher
	}
	return d(event)
}

// WithDispatcher makes d the event dispatcher for everything below it.
func WithDispatcher(d Dispatcher, children ...Node) Node {
	return Provide(dispatcherKey{}, d, children...)
}

func (c *Context) withValue(key, value any) *Context {
	return &Context{
		values:   &valueScope{key: key, value: value, parent: c.values},
		children: c.children,
		slot:     c.slot,
	}
}

func (c *Context) forComponent(children []Node, s *slot) *Context {
	return &Context{values: c.values, children: children, slot: s}
}
