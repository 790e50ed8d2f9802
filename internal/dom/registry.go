package dom

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrInvalidName is returned when a tag is not a valid custom element name.
	ErrInvalidName = errors.New("invalid custom element name")
	// ErrAlreadyDefined is returned when a tag is registered twice.
	ErrAlreadyDefined = errors.New("custom element already defined")
	// ErrNoConstructor is returned when a definition carries no constructor.
	ErrNoConstructor = errors.New("custom element definition has no constructor")
)

var customElementName = regexp.MustCompile(`^[a-z][a-z0-9._]*(-[a-z0-9._]*)+$`)

var reservedNames = map[string]struct{}{
	"annotation-xml":   {},
	"color-profile":    {},
	"font-face":        {},
	"font-face-src":    {},
	"font-face-uri":    {},
	"font-face-format": {},
	"font-face-name":   {},
	"missing-glyph":    {},
}

// CustomElement receives the native lifecycle callbacks of an upgraded element.
type CustomElement interface {
	ConnectedCallback() error
	DisconnectedCallback() error
	AttributeChangedCallback(name, oldValue, newValue string) error
}

// PropertyObserver is implemented by custom elements that react to explicit
// property assignments made through Element.SetProperty.
type PropertyObserver interface {
	PropertyChangedCallback(name string, oldValue, newValue any) error
}

// Definition describes a custom element type.
type Definition struct {
	// ObservedAttributes lists the attribute names that trigger
	// AttributeChangedCallback. Names are lower-cased on Define.
	ObservedAttributes []string
	// New constructs the behaviour for a freshly created host element.
	New func(host *Element) CustomElement
}

// Registry maps custom element tags to their definitions.
type Registry struct {
	defs map[string]Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// ValidName reports whether tag may be used as a custom element name.
func ValidName(tag string) bool {
	if _, reserved := reservedNames[tag]; reserved {
		return false
	}
	return customElementName.MatchString(tag)
}

// Define registers def under tag.
func (r *Registry) Define(tag string, def Definition) error {
	if !ValidName(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidName, tag)
	}
	if _, exists := r.defs[tag]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, tag)
	}
	if def.New == nil {
		return fmt.Errorf("%w: %q", ErrNoConstructor, tag)
	}

	observed := make([]string, 0, len(def.ObservedAttributes))
	for _, name := range def.ObservedAttributes {
		observed = append(observed, strings.ToLower(name))
	}
	def.ObservedAttributes = observed

	r.defs[tag] = def
	return nil
}

// Lookup returns the definition registered for tag.
func (r *Registry) Lookup(tag string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[strings.ToLower(tag)]
	return def, ok
}

// Tags lists the defined tags in lexical order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.defs))
	for tag := range r.defs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
