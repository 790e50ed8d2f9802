package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"html/template"

	"github.com/alexisbeaulieu97/elementkit/internal/element"
	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/render"
	"github.com/alexisbeaulieu97/elementkit/internal/style"
	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

// TemplateComponent renders tmpl with the props as data and parses the
// output as markup. Prop values are escaped for the context they land in, so
// only the template's own text becomes elements. A "dispatch" template
// function forwards its argument to the component's dispatcher and renders
// nothing.
func TemplateComponent(tmpl *template.Template) render.Component {
	return render.Func(func(ctx *render.Context, props render.Props) (render.Node, error) {
		t, err := tmpl.Clone()
		if err != nil {
			return nil, err
		}
		t.Funcs(template.FuncMap{
			"dispatch": func(event any) (string, error) {
				return "", ctx.Dispatch(event)
			},
		})

		var buf bytes.Buffer
		if err := t.Execute(&buf, map[string]any(props)); err != nil {
			return nil, fmt.Errorf("execute template %s: %w", tmpl.Name(), err)
		}
		return render.HTML(buf.String()), nil
	})
}

// parseTemplate parses text with placeholders for the functions
// TemplateComponent binds per render.
func parseTemplate(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(template.FuncMap{
		"dispatch": func(any) (string, error) { return "", nil },
	}).Parse(text)
}

// ElementConfig builds the element configuration the manifest describes.
// When Styles is set the stylesheet is read now and injected on every
// render.
func (m *Manifest) ElementConfig(log *logger.Logger) (*element.Config, error) {
	mode, err := element.ParseEncapsulation(m.Encapsulation)
	if err != nil {
		return nil, elementkiterrors.NewValidationError("encapsulation", err.Error(), err)
	}

	tmpl, err := parseTemplate(m.Tag, m.Template)
	if err != nil {
		return nil, elementkiterrors.NewValidationError("template", err.Error(), err)
	}

	root := TemplateComponent(tmpl)
	if m.Styles != "" {
		path := m.Styles
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.Dir(), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, elementkiterrors.NewParseError(path, 0, err)
		}
		root = style.WithStyles(string(data), root, style.WithLogger(log))
	}

	cfg := element.NewConfig()
	cfg.ConfigureAttributes(m.Attributes)
	cfg.ConfigureProperties(m.Properties)
	cfg.ConfigureRoot(root)
	cfg.ConfigureEncapsulation(mode)
	cfg.SetLogger(log)
	return cfg, nil
}
