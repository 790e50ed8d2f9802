package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/elementkit/internal/logger"
	"github.com/alexisbeaulieu97/elementkit/internal/render"
)

// ScopeAttribute marks the wrapper element every scoped rule is anchored to.
const ScopeAttribute = "data-elementkit-scope"

// ScopeSelector names the scope wrapper itself inside a style document.
// Blocks without a selector and declarations outside any block are
// attributed to it.
const ScopeSelector = ":scope"

// Selectors that address the document as a whole are re-pointed at the
// scope wrapper so they cannot reach outside it.
var scopeAliases = []string{ScopeSelector, ":host", "html", "body"}

var errUnbalancedBlock = errors.New("unbalanced block")

// Styled injects a style document into the subtree it wraps. The document is
// preprocessed again on every render.
type Styled struct {
	styles string
	id     string
	log    *logger.Logger
}

var _ render.Component = (*Styled)(nil)

// Option configures a Styled component.
type Option func(*Styled)

// WithLogger reports documents that could not be scoped.
func WithLogger(log *logger.Logger) Option {
	return func(s *Styled) {
		s.log = log
	}
}

// NewStyled returns an injector for styles with a fresh scope id.
func NewStyled(styles string, opts ...Option) *Styled {
	s := &Styled{styles: styles, id: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScopeID returns the value of ScopeAttribute on the wrapper.
func (s *Styled) ScopeID() string { return s.id }

// Styles returns the raw style document.
func (s *Styled) Styles() string { return s.styles }

// Stylesheet returns the preprocessed document scoped to the wrapper. A
// document that cannot be scoped yields an empty stylesheet.
func (s *Styled) Stylesheet() string {
	scoped, err := Scope(Preprocess(s.styles), AttributeSelector(s.id))
	if err != nil {
		s.log.WithFields(map[string]any{"scope": s.id}).Error(err, "styles dropped")
		return ""
	}
	return scoped
}

// Render wraps the children in the scope element, preceded by the style
// element.
func (s *Styled) Render(ctx *render.Context, _ render.Props) (render.Node, error) {
	return render.El("div", render.Attrs{ScopeAttribute: s.id},
		render.El("style", nil, render.Text(s.Stylesheet())),
		render.Fragment(ctx.Children()...),
	), nil
}

// WithStyles returns a component rendering component inside a Styled
// wrapper. Props and children are passed through unchanged.
func WithStyles(styles string, component render.Component, opts ...Option) render.Component {
	styled := NewStyled(styles, opts...)
	return render.Func(func(ctx *render.Context, props render.Props) (render.Node, error) {
		return render.C(styled, nil, render.C(component, props, ctx.Children()...)), nil
	})
}

// AttributeSelector returns the selector matching the wrapper with id.
func AttributeSelector(id string) string {
	return fmt.Sprintf("[%s=%q]", ScopeAttribute, id)
}

// Scope prefixes every selector in doc with scope. Rules nested in
// conditional at-rules are scoped as well; keyframe selectors are not.
func Scope(doc, scope string) (string, error) {
	normalized, err := normalizeTopLevel(doc)
	if err != nil {
		return "", fmt.Errorf("scope styles: %w", err)
	}

	sheet, err := parser.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("scope styles: %w", err)
	}
	scopeRules(sheet.Rules, scope)
	return sheet.String(), nil
}

func scopeRules(rules []*css.Rule, scope string) {
	for _, rule := range rules {
		switch {
		case rule.Kind == css.QualifiedRule:
			for i, sel := range rule.Selectors {
				rule.Selectors[i] = scopeSelector(sel, scope)
			}
			rule.Prelude = strings.Join(rule.Selectors, ", ")
		case rule.EmbedsRules() && rule.Name != "@keyframes":
			scopeRules(rule.Rules, scope)
		}
	}
}

func scopeSelector(sel, scope string) string {
	if inner, rest, ok := cutHostFunction(sel); ok {
		return compoundWithScope(inner, scope) + rest
	}
	for _, alias := range scopeAliases {
		rest, ok := strings.CutPrefix(sel, alias)
		if !ok {
			continue
		}
		if rest == "" || strings.ContainsRune(" >+~.#:[", rune(rest[0])) {
			return scope + rest
		}
	}
	return scope + " " + sel
}

// cutHostFunction splits ":host(inner)rest" into inner and rest.
func cutHostFunction(sel string) (inner, rest string, ok bool) {
	args, found := strings.CutPrefix(sel, ":host(")
	if !found {
		return "", "", false
	}
	depth := 1
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return strings.TrimSpace(args[:i]), args[i+1:], true
			}
		}
	}
	return "", "", false
}

// compoundWithScope joins scope into the compound selector inner, after its
// type selector if it has one: "div.active" becomes "div[scope].active".
func compoundWithScope(inner, scope string) string {
	n := 0
	for n < len(inner) && isTypeSelectorByte(inner[n]) {
		n++
	}
	return inner[:n] + scope + inner[n:]
}

func isTypeSelectorByte(c byte) bool {
	return c == '*' || c == '-' || c == '_' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// normalizeTopLevel rewrites what the css parser cannot represent: blocks
// without a selector get ScopeSelector, and declarations outside any block
// are gathered into a single ScopeSelector block placed first. Comments are
// dropped; an unterminated one runs to the end of the document. Quoted
// strings are copied verbatim.
func normalizeTopLevel(doc string) (string, error) {
	var out, loose, pending strings.Builder
	depth := 0

	for i := 0; i < len(doc); i++ {
		c := doc[i]
		if c == '/' && i+1 < len(doc) && doc[i+1] == '*' {
			end := strings.Index(doc[i+2:], "*/")
			if end < 0 {
				break
			}
			i += end + 3
			continue
		}

		dst := &pending
		if depth > 0 {
			dst = &out
		}
		switch c {
		case '"', '\'':
			end := quotedEnd(doc, i)
			dst.WriteString(doc[i:end])
			i = end - 1
			continue
		case '\\':
			end := min(i+2, len(doc))
			dst.WriteString(doc[i:end])
			i = end - 1
			continue
		}

		switch {
		case depth > 0:
			out.WriteByte(c)
			switch c {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					out.WriteByte('\n')
				}
			}
		case c == '{':
			prelude := strings.TrimSpace(pending.String())
			if prelude == "" {
				prelude = ScopeSelector
			}
			pending.Reset()
			out.WriteString(prelude)
			out.WriteString(" {")
			depth = 1
		case c == ';':
			stmt := strings.TrimSpace(pending.String())
			pending.Reset()
			if stmt == "" {
				continue
			}
			if strings.HasPrefix(stmt, "@") {
				out.WriteString(stmt + ";\n")
			} else {
				loose.WriteString(stmt + ";\n")
			}
		case c == '}':
			return "", errUnbalancedBlock
		default:
			pending.WriteByte(c)
		}
	}

	if depth != 0 {
		return "", errUnbalancedBlock
	}
	if tail := strings.TrimSpace(pending.String()); tail != "" {
		loose.WriteString(tail + ";\n")
	}
	if loose.Len() == 0 {
		return out.String(), nil
	}
	return ScopeSelector + " {\n" + loose.String() + "}\n" + out.String(), nil
}

// quotedEnd returns the index just past the string opening at doc[start]. A
// string left open ends before the next newline.
func quotedEnd(doc string, start int) int {
	quote := doc[start]
	for i := start + 1; i < len(doc); i++ {
		switch doc[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		case '\n':
			return i
		}
	}
	return len(doc)
}
