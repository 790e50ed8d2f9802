package config

// Manifest declares a packaged custom element: its tag, observed attributes,
// seeded properties, encapsulation and the template it renders.
type Manifest struct {
	Tag           string            `yaml:"tag" toml:"tag" validate:"required,element_name"`
	Description   string            `yaml:"description,omitempty" toml:"description"`
	Attributes    map[string]string `yaml:"attributes,omitempty" toml:"attributes" validate:"omitempty,dive,keys,attribute_name,endkeys"`
	Properties    map[string]any    `yaml:"properties,omitempty" toml:"properties"`
	Encapsulation string            `yaml:"encapsulation,omitempty" toml:"encapsulation" validate:"encapsulation"`
	Template      string            `yaml:"template" toml:"template" validate:"required"`
	Styles        string            `yaml:"styles,omitempty" toml:"styles"`

	// dir is the directory the manifest was read from; Styles is relative
	// to it.
	dir string
}

// Dir returns the directory relative paths in the manifest resolve against.
func (m *Manifest) Dir() string {
	if m.dir == "" {
		return "."
	}
	return m.dir
}
