package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/elementkit/internal/dom"
	"github.com/alexisbeaulieu97/elementkit/internal/element"
	"github.com/alexisbeaulieu97/elementkit/internal/style"
	elementkiterrors "github.com/alexisbeaulieu97/elementkit/pkg/errors"
)

func mount(t *testing.T, m *Manifest, attrs map[string]string) (*dom.Document, *dom.Element) {
	t.Helper()

	cfg, err := m.ElementConfig(nil)
	require.NoError(t, err)

	reg := dom.NewRegistry()
	require.NoError(t, cfg.Register(reg, m.Tag))

	doc := dom.NewDocument(reg)
	el := doc.CreateElement(m.Tag)
	for k, v := range attrs {
		require.NoError(t, el.SetAttribute(k, v))
	}
	require.NoError(t, doc.Body().AppendChild(el))
	return doc, el
}

func TestElementConfigRendersTemplate(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		Tag:        "echo-label",
		Attributes: map[string]string{"label": "x"},
		Properties: map[string]any{"count": 3},
		Template:   `<p>{{ .label }} / {{ .count }}</p>`,
	}

	_, el := mount(t, m, map[string]string{"label": "hello"})
	require.Equal(t, "<p>hello / 3</p>", el.ShadowRoot().InnerHTML())

	require.NoError(t, el.SetAttribute("label", "bye"))
	require.Equal(t, "<p>bye / 3</p>", el.ShadowRoot().InnerHTML())
}

func TestElementConfigEscapesMarkupInProps(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		Tag:        "echo-label",
		Attributes: map[string]string{"label": "x"},
		Template:   `<p title="{{ .label }}">{{ .label }}</p>`,
	}

	_, el := mount(t, m, map[string]string{"label": `<b>x</b></p><script>y</script>`})
	root := el.ShadowRoot()

	for _, sel := range []string{"b", "script"} {
		found, err := root.QuerySelector(sel)
		require.NoError(t, err)
		require.Nil(t, found, sel)
	}
	ps, err := root.QuerySelectorAll("p")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	require.Equal(t, `<b>x</b></p><script>y</script>`, ps[0].TextContent())
	require.Equal(t, `<b>x</b></p><script>y</script>`, ps[0].GetAttribute("title"))
}

func TestElementConfigHonoursEncapsulation(t *testing.T) {
	t.Parallel()

	m := &Manifest{Tag: "light-label", Encapsulation: "light", Template: `<b>{{ .label }}</b>`,
		Attributes: map[string]string{"label": "default"}}

	cfg, err := m.ElementConfig(nil)
	require.NoError(t, err)
	require.Equal(t, element.EncapsulationLight, cfg.Encapsulation())

	_, el := mount(t, m, nil)
	require.Nil(t, el.ShadowRoot())
	require.Equal(t, "<b>default</b>", el.InnerHTML())
}

func TestElementConfigDispatchesFromTemplate(t *testing.T) {
	t.Parallel()

	m := &Manifest{Tag: "ready-signal", Template: `{{ dispatch "ready" }}<i>ok</i>`}
	cfg, err := m.ElementConfig(nil)
	require.NoError(t, err)

	reg := dom.NewRegistry()
	require.NoError(t, cfg.Register(reg, m.Tag))
	doc := dom.NewDocument(reg)

	var got []any
	doc.AddEventListener(element.MessageEvent, func(ev *dom.Event) { got = append(got, ev.Detail) })
	el := doc.CreateElement(m.Tag)
	require.NoError(t, doc.Body().AppendChild(el))

	require.Equal(t, []any{"ready"}, got)
	require.Equal(t, "<i>ok</i>", el.ShadowRoot().InnerHTML())
}

func TestElementConfigInjectsStyles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles.css"),
		[]byte(":root {\n  --accent: red;\n}\np { color: var(--accent); }\n"), 0o600))
	manifestPath := filepath.Join(dir, "element.yaml")
	require.NoError(t, os.WriteFile(manifestPath,
		[]byte("tag: styled-label\ntemplate: \"<p>styled</p>\"\nstyles: styles.css\n"), 0o600))

	m, err := ParseManifest(manifestPath)
	require.NoError(t, err)
	require.Equal(t, dir, m.Dir())

	_, el := mount(t, m, nil)
	wrapper, err := el.ShadowRoot().QuerySelector("[" + style.ScopeAttribute + "]")
	require.NoError(t, err)
	require.NotNil(t, wrapper)

	sheet, err := wrapper.QuerySelector("style")
	require.NoError(t, err)
	require.Contains(t, sheet.TextContent(), "color: red;")
	require.Contains(t, sheet.TextContent(), style.AttributeSelector(wrapper.GetAttribute(style.ScopeAttribute))+" p {")

	p, err := wrapper.QuerySelector("p")
	require.NoError(t, err)
	require.Equal(t, "styled", p.TextContent())
}

func TestElementConfigMissingStyles(t *testing.T) {
	t.Parallel()

	m := &Manifest{Tag: "no-styles", Template: "x", Styles: "absent.css", dir: t.TempDir()}
	_, err := m.ElementConfig(nil)
	var parseErr *elementkiterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
}
