package element

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/elementkit/internal/dom"
	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/render"
)

// Encapsulation selects where an element renders its component.
type Encapsulation int

const (
	// EncapsulationUnset renders into a shadow root, like EncapsulationShadow.
	EncapsulationUnset Encapsulation = iota
	// EncapsulationShadow renders into a shadow root attached to the host.
	EncapsulationShadow
	// EncapsulationLight renders directly into the host element.
	EncapsulationLight
)

func (e Encapsulation) String() string {
	switch e {
	case EncapsulationShadow:
		return "shadow"
	case EncapsulationLight:
		return "light"
	default:
		return "unset"
	}
}

// UsesShadow reports whether rendering goes through a shadow root.
func (e Encapsulation) UsesShadow() bool {
	return e != EncapsulationLight
}

// ParseEncapsulation accepts "", "shadow", "light" and the boolean spellings
// "true" (shadow) and "false" (light).
func ParseEncapsulation(value string) (Encapsulation, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unset":
		return EncapsulationUnset, nil
	case "shadow", "true":
		return EncapsulationShadow, nil
	case "light", "false":
		return EncapsulationLight, nil
	default:
		return EncapsulationUnset, fmt.Errorf("unknown encapsulation %q", value)
	}
}

// Attribute is one observed attribute. Prop keeps the spelling supplied at
// configuration time and names the prop handed to the component; Name is the
// lower-cased native attribute name.
type Attribute struct {
	Prop    string
	Name    string
	Default string
}

// AttributeSpec is the schema of observed attributes, ordered by Name.
type AttributeSpec []Attribute

// NewAttributeSpec builds a schema from prop names and their defaults.
func NewAttributeSpec(defaults map[string]string) AttributeSpec {
	spec := make(AttributeSpec, 0, len(defaults))
	for prop, def := range defaults {
		spec = append(spec, Attribute{Prop: prop, Name: strings.ToLower(prop), Default: def})
	}
	sort.Slice(spec, func(i, j int) bool {
		if spec[i].Name == spec[j].Name {
			return spec[i].Prop < spec[j].Prop
		}
		return spec[i].Name < spec[j].Name
	})
	return spec
}

// Names returns the lower-cased attribute names.
func (s AttributeSpec) Names() []string {
	names := make([]string, 0, len(s))
	for _, attr := range s {
		names = append(names, attr.Name)
	}
	return names
}

// Properties is the explicit property overlay. Values keep their Go types.
type Properties map[string]any

func (p Properties) clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Config describes one custom element type. It is filled in once, before
// Register, and must not change while instances exist.
type Config struct {
	attributes    AttributeSpec
	properties    Properties
	root          render.Component
	encapsulation Encapsulation
	log           *logger.Logger
}

// NewConfig returns an empty configuration.
func NewConfig() *Config {
	return &Config{properties: make(Properties)}
}

// ConfigureAttributes replaces the observed attributes and their defaults.
func (c *Config) ConfigureAttributes(defaults map[string]string) {
	c.attributes = NewAttributeSpec(defaults)
}

// ConfigureProperties seeds the property overlay every instance starts from.
func (c *Config) ConfigureProperties(properties map[string]any) {
	c.properties = Properties(properties).clone()
}

// ConfigureRoot sets the component every instance renders.
func (c *Config) ConfigureRoot(component render.Component) {
	c.root = component
}

// ConfigureEncapsulation sets the rendering target.
func (c *Config) ConfigureEncapsulation(mode Encapsulation) {
	c.encapsulation = mode
}

// SetLogger installs a logger for lifecycle diagnostics.
func (c *Config) SetLogger(log *logger.Logger) {
	c.log = log
}

// Attributes returns the observed attribute schema.
func (c *Config) Attributes() AttributeSpec { return c.attributes }

// Encapsulation returns the configured rendering target.
func (c *Config) Encapsulation() Encapsulation { return c.encapsulation }

// ObservedAttributes lists the lower-cased attribute names to observe.
func (c *Config) ObservedAttributes() []string {
	return c.attributes.Names()
}

// Definition returns the native element definition for tag. The constructor
// closes over c.
func (c *Config) Definition(tag string) dom.Definition {
	return dom.Definition{
		ObservedAttributes: c.ObservedAttributes(),
		New: func(host *dom.Element) dom.CustomElement {
			return newBridge(c, tag, host)
		},
	}
}

// Register defines tag in reg using c.
func (c *Config) Register(reg *dom.Registry, tag string) error {
	if err := reg.Define(tag, c.Definition(tag)); err != nil {
		return fmt.Errorf("register <%s>: %w", tag, err)
	}
	c.log.With("tag", tag).Debug("custom element registered")
	return nil
}
