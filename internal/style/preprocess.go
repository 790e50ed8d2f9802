package style

import (
	"regexp"
	"strings"
)

// PlaceholderComment replaces every comment block found in a style document.
const PlaceholderComment = "/*\n * -\n */"

const (
	customPropertySigil = "--"
	referenceToken      = "var("
	rootSelector        = ":root"
	undefinedValue      = "undefined"

	// maxResolveDepth bounds chains such as --a: var(--b); --b: var(--a).
	maxResolveDepth = 8
)

var commentBlock = regexp.MustCompile(`(?s)/\*.*?\*/`)

// VariableTable maps custom-property names to their declared values.
type VariableTable map[string]string

// StripCommentsAndSelectors replaces each well-formed comment block with
// PlaceholderComment. Unterminated comments are left as they are.
func StripCommentsAndSelectors(styles string) string {
	return commentBlock.ReplaceAllLiteralString(styles, PlaceholderComment)
}

// AddVariableFallbacks statically inlines custom-property values for hosts
// without runtime variable support. Every line holding a var() reference is
// kept and followed by a copy in which each reference is replaced by its
// declared value. Root selector tokens are removed first.
func AddVariableFallbacks(styles string) string {
	stripped := strings.ReplaceAll(styles, rootSelector, "")
	lines := strings.Split(stripped, "\n")
	table := BuildVariableTable(lines)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line)
		if !strings.Contains(line, referenceToken) {
			continue
		}
		out = append(out, fallbackLine(line, table))
	}

	return strings.Join(out, "\n")
}

// Preprocess runs the full pipeline applied before styles are injected.
func Preprocess(styles string) string {
	return AddVariableFallbacks(StripCommentsAndSelectors(styles))
}

// BuildVariableTable collects custom-property declarations. A line counts as
// a declaration when its trimmed form starts with the "--" sigil; the name is
// everything before the first colon and the value everything after it, up to
// the statement terminator. Later declarations win.
func BuildVariableTable(lines []string) VariableTable {
	table := make(VariableTable)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, customPropertySigil) {
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		if idx := strings.Index(value, ";"); idx >= 0 {
			value = value[:idx]
		}
		table[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return table
}

// Lookup resolves name, following references held in declared values.
func (t VariableTable) Lookup(name string) (string, bool) {
	value, ok := t[name]
	if !ok {
		return "", false
	}
	return t.resolve(value, 1), true
}

func (t VariableTable) resolve(text string, depth int) string {
	if depth > maxResolveDepth || !strings.Contains(text, referenceToken) {
		return text
	}

	var b strings.Builder
	rest := text
	for {
		start := strings.Index(rest, referenceToken)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := closingParen(rest, start+len(referenceToken))
		if end < 0 {
			b.WriteString(rest)
			break
		}

		b.WriteString(rest[:start])
		name, fallback, hasFallback := splitReference(rest[start+len(referenceToken) : end])
		switch value, ok := t[name]; {
		case ok:
			b.WriteString(t.resolve(value, depth+1))
		case hasFallback:
			b.WriteString(t.resolve(fallback, depth+1))
		default:
			b.WriteString(undefinedValue)
		}
		rest = rest[end+1:]
	}

	return b.String()
}

func fallbackLine(line string, table VariableTable) string {
	inlined := table.resolve(line, 1)

	trimmed := strings.TrimSpace(inlined)
	if trimmed != "" && !strings.HasSuffix(trimmed, ";") && !strings.ContainsAny(trimmed, "{}") {
		inlined += ";"
	}
	return inlined
}

// closingParen returns the index of the parenthesis closing the group opened
// just before from, or -1 when the group is unterminated.
func closingParen(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitReference splits the inside of var(...) at the first top-level comma.
func splitReference(inner string) (name, fallback string, hasFallback bool) {
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return strings.TrimSpace(inner), "", false
}
