package dom

import "golang.org/x/net/html"

// Event is a native event dispatched on an element.
type Event struct {
	Type    string
	Detail  any
	Bubbles bool

	// Target is the element the event is visible on. Events raised inside a
	// shadow tree are retargeted to the host when they leave it.
	Target        *Element
	CurrentTarget *Element

	stopped bool
}

// NewEvent returns a bubbling event carrying detail.
func NewEvent(eventType string, detail any) *Event {
	return &Event{Type: eventType, Detail: detail, Bubbles: true}
}

// StopPropagation prevents further listeners on other elements.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Listener handles a dispatched event.
type Listener func(*Event)

// AddEventListener registers l for events of the given type.
func (e *Element) AddEventListener(eventType string, l Listener) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], l)
}

// RemoveEventListeners drops every listener registered for eventType.
func (e *Element) RemoveEventListeners(eventType string) {
	delete(e.listeners, eventType)
}

// AddEventListener registers a document-level listener, reached last by
// bubbling events.
func (d *Document) AddEventListener(eventType string, l Listener) {
	if d.listeners == nil {
		d.listeners = make(map[string][]Listener)
	}
	d.listeners[eventType] = append(d.listeners[eventType], l)
}

// DispatchEvent fires ev on e. Bubbling events then travel up the ancestor
// chain, crossing shadow boundaries from the shadow tree to its host.
func (e *Element) DispatchEvent(ev *Event) {
	if ev == nil {
		return
	}
	ev.Target = e
	ev.stopped = false
	e.invoke(ev)

	if !ev.Bubbles {
		return
	}

	d := e.doc
	for cur := e.node.Parent; cur != nil && !ev.stopped; cur = cur.Parent {
		if shadow, ok := d.shadows[cur]; ok {
			ev.Target = shadow.host
			continue
		}
		if cur == d.root {
			ev.CurrentTarget = nil
			for _, l := range d.listeners[ev.Type] {
				l(ev)
			}
			return
		}
		if cur.Type != html.ElementNode {
			continue
		}
		if el, ok := d.elements[cur]; ok {
			el.invoke(ev)
		}
	}
}

func (e *Element) invoke(ev *Event) {
	listeners := e.listeners[ev.Type]
	if len(listeners) == 0 {
		return
	}
	ev.CurrentTarget = e
	for _, l := range listeners {
		l(ev)
	}
}
