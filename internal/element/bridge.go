package element

import (
	"errors"
	"reflect"

	"github.com/alexisbeaulieu97/elementkit/internal/dom"
	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/render"
	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

// ErrNoRootComponent is returned when an element renders before a root
// component was configured.
var ErrNoRootComponent = errors.New("no root component configured")

// MessageEvent is the event type used for dispatched values that are not
// already dom events.
const MessageEvent = "message"

// State is the lifecycle state of a bridged element.
type State int

const (
	StateUnattached State = iota
	StateConnected
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unattached"
	}
}

// Bridge adapts the native lifecycle of one element instance to renders of
// the configured root component.
type Bridge struct {
	cfg     *Config
	tag     string
	host    *dom.Element
	state   State
	overlay Properties
	root    *render.Root
	log     *logger.Logger

	// rendering is set while the root builds a tree. Events dispatched in
	// that window are queued, and render requests mark the pass dirty.
	rendering bool
	dirty     bool
	queued    []*dom.Event
}

var (
	_ dom.CustomElement    = (*Bridge)(nil)
	_ dom.PropertyObserver = (*Bridge)(nil)
)

func newBridge(cfg *Config, tag string, host *dom.Element) *Bridge {
	return &Bridge{
		cfg:     cfg,
		tag:     tag,
		host:    host,
		overlay: cfg.properties.clone(),
		log:     cfg.log.With("tag", tag),
	}
}

// Host returns the element the bridge is attached to.
func (b *Bridge) Host() *dom.Element { return b.host }

// State returns the current lifecycle state.
func (b *Bridge) State() State { return b.state }

// Props merges attribute defaults, current attribute values and the
// explicit property overlay, in increasing precedence. An empty attribute
// value falls back to the default.
func (b *Bridge) Props() render.Props {
	props := make(render.Props, len(b.cfg.attributes)+len(b.overlay))
	for _, attr := range b.cfg.attributes {
		value := b.host.GetAttribute(attr.Name)
		if value == "" {
			value = attr.Default
		}
		props[attr.Prop] = value
	}
	for name, value := range b.overlay {
		props[name] = value
	}
	return props
}

// ConnectedCallback renders unconditionally.
func (b *Bridge) ConnectedCallback() error {
	b.transition(StateConnected)
	return b.render()
}

// AttributeChangedCallback re-renders a connected element when the value
// actually changed.
func (b *Bridge) AttributeChangedCallback(name, oldValue, newValue string) error {
	if oldValue == newValue || b.state != StateConnected {
		return nil
	}
	b.log.WithFields(map[string]any{"attribute": name}).Debug("attribute changed")
	return b.render()
}

// PropertyChangedCallback records the new value in the overlay and
// re-renders a connected element when the value differs from the overlay
// entry. Seeded properties count as overlay entries.
func (b *Bridge) PropertyChangedCallback(name string, _, newValue any) error {
	if current, ok := b.overlay[name]; ok && reflect.DeepEqual(current, newValue) {
		return nil
	}
	b.overlay[name] = newValue
	if b.state != StateConnected {
		return nil
	}
	b.log.WithFields(map[string]any{"property": name}).Debug("property changed")
	return b.render()
}

// DisconnectedCallback unmounts the rendered subtree.
func (b *Bridge) DisconnectedCallback() error {
	b.transition(StateDisconnected)
	if b.root == nil {
		return nil
	}
	if err := b.root.Unmount(); err != nil {
		return elementkiterrors.NewRenderError(b.tag, err)
	}
	return nil
}

func (b *Bridge) transition(next State) {
	b.log.WithFields(map[string]any{"from": b.state.String(), "to": next.String()}).Debug("lifecycle transition")
	b.state = next
}

func (b *Bridge) render() error {
	if b.cfg.root == nil {
		return elementkiterrors.NewRenderError(b.tag, ErrNoRootComponent)
	}
	if b.rendering {
		b.dirty = true
		return nil
	}

	container := b.host.Node()
	if b.cfg.encapsulation.UsesShadow() {
		container = b.host.AttachShadow().Node()
	}
	if b.root == nil || b.root.Container() != container {
		b.root = render.NewRoot(container, render.WithObserver(b.host.Document()))
	}

	// Requests made while the tree is being built mark the pass dirty; it is
	// rebuilt with fresh props before queued events are flushed.
	for {
		b.rendering, b.dirty = true, false
		err := b.root.Render(render.WithDispatcher(b.dispatch, render.C(b.cfg.root, b.Props())))
		b.rendering = false
		if err != nil {
			b.queued = nil
			b.log.Error(err, "render failed")
			return elementkiterrors.NewRenderError(b.tag, err)
		}
		if !b.dirty {
			break
		}
	}
	b.flush()
	return nil
}

// flush delivers events queued during the last render. Listeners may
// mutate the host; those renders see the swapped-in tree.
func (b *Bridge) flush() {
	for len(b.queued) > 0 {
		ev := b.queued[0]
		b.queued = b.queued[1:]
		b.host.DispatchEvent(ev)
	}
}

// dispatch re-fires component events on the host element so listeners in
// the surrounding document observe them in both encapsulation modes. Events
// raised while a tree is being built are delivered once it is in place.
func (b *Bridge) dispatch(event any) error {
	var ev *dom.Event
	switch e := event.(type) {
	case *dom.Event:
		ev = e
	case dom.Event:
		ev = &e
	default:
		ev = &dom.Event{Type: MessageEvent, Detail: event, Bubbles: true}
	}
	if b.rendering {
		b.queued = append(b.queued, ev)
		return nil
	}
	b.host.DispatchEvent(ev)
	return nil
}
