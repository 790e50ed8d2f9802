package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/elementkit/internal/config"
	"github.com/alexisbeaulieu97/elementkit/internal/dom"
)

type renderOptions struct {
	Manifest string
	Page     string
	Out      string
	Attrs    []string
	Props    []string
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an element into a page or a blank document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parsePairs(opts.Attrs)
			if err != nil {
				return err
			}
			props, err := parsePairs(opts.Props)
			if err != nil {
				return err
			}

			m, err := config.ParseManifest(opts.Manifest)
			if err != nil {
				return err
			}
			elCfg, err := m.ElementConfig(root.log)
			if err != nil {
				return err
			}
			reg := dom.NewRegistry()
			if err := elCfg.Register(reg, m.Tag); err != nil {
				return err
			}

			doc, err := renderDocument(reg, m.Tag, opts.Page, attrs, props)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := doc.Render(&buf); err != nil {
				return err
			}
			buf.WriteByte('\n')
			if opts.Out != "" {
				return os.WriteFile(opts.Out, buf.Bytes(), 0o644)
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Manifest, "manifest", "m", "", "Path to the element manifest (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&opts.Page, "page", "", "HTML page whose instances of the element are rendered")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "Write the document to a file instead of stdout")
	cmd.Flags().StringArrayVar(&opts.Attrs, "attr", nil, "Attribute as name=value (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Props, "prop", nil, "Property as name=value, value parsed as YAML (repeatable)")
	cmd.MarkFlagRequired("manifest") //nolint:errcheck

	return cmd
}

// renderDocument builds the document: the page with its instances of tag, or
// a blank document holding a single instance. Attributes and properties are
// applied to every instance.
func renderDocument(reg *dom.Registry, tag, page string, attrs, props map[string]string) (*dom.Document, error) {
	var doc *dom.Document
	var instances []*dom.Element

	if page == "" {
		doc = dom.NewDocument(reg)
		el := doc.CreateElement(tag)
		if err := doc.Body().AppendChild(el); err != nil {
			return nil, err
		}
		instances = []*dom.Element{el}
	} else {
		f, err := os.Open(page)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		doc, err = dom.Parse(f, reg)
		if err != nil {
			return nil, err
		}
		instances, err = doc.QuerySelectorAll(tag)
		if err != nil {
			return nil, err
		}
		if len(instances) == 0 {
			return nil, fmt.Errorf("page %s contains no <%s>", page, tag)
		}
	}

	for _, el := range instances {
		for _, name := range sortedKeys(attrs) {
			if err := el.SetAttribute(name, attrs[name]); err != nil {
				return nil, err
			}
		}
		for _, name := range sortedKeys(props) {
			var value any
			if err := yaml.Unmarshal([]byte(props[name]), &value); err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			if err := el.SetProperty(name, value); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func parsePairs(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("expected name=value, got %q", pair)
		}
		out[strings.TrimSpace(name)] = value
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
