package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCommentsReplacesEachBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line comment",
			input: "a { color: red; } /* warning */ b { color: blue; }",
			want:  "a { color: red; } " + PlaceholderComment + " b { color: blue; }",
		},
		{
			name:  "multiline comment",
			input: "/*\n * generated file\n * do not edit\n */\nbody { margin: 0; }",
			want:  PlaceholderComment + "\nbody { margin: 0; }",
		},
		{
			name:  "several comments are replaced independently",
			input: "/* one */ p {} /* two */",
			want:  PlaceholderComment + " p {} " + PlaceholderComment,
		},
		{
			name:  "trailing double star",
			input: "/** doc **/p {}",
			want:  PlaceholderComment + "p {}",
		},
		{
			name:  "no comments",
			input: "p { color: red; }\n",
			want:  "p { color: red; }\n",
		},
		{
			name:  "unterminated comment is left untouched",
			input: "p { color: red; } /* never closed",
			want:  "p { color: red; } /* never closed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, StripCommentsAndSelectors(tt.input))
		})
	}
}

func TestStripCommentsIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"/* a */ p { color: red; } /* b\n c */",
		PlaceholderComment,
		"no comments at all",
		"/* open",
	}
	for _, input := range inputs {
		once := StripCommentsAndSelectors(input)
		require.Equal(t, once, StripCommentsAndSelectors(once), input)
	}
}

func TestAddVariableFallbacksInlinesAfterReference(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		":root {",
		"  --a: 1px;",
		"}",
		".box {",
		"  width: var(--a);",
		"}",
	}, "\n")

	got := strings.Split(AddVariableFallbacks(input), "\n")

	require.Equal(t, []string{
		" {",
		"  --a: 1px;",
		"}",
		".box {",
		"  width: var(--a);",
		"  width: 1px;",
		"}",
	}, got)
}

func TestAddVariableFallbacksLeavesPlainDocumentsAlone(t *testing.T) {
	t.Parallel()

	input := "body {\n  margin: 0;\n  color: #333;\n}\n"
	require.Equal(t, input, AddVariableFallbacks(input))

	withRoot := ":root {\n  color: black;\n}"
	require.Equal(t, " {\n  color: black;\n}", AddVariableFallbacks(withRoot))
}

func TestAddVariableFallbacksNeverShrinks(t *testing.T) {
	t.Parallel()

	input := "--x: 2px;\na { margin: var(--x) var(--x); }\nb { padding: var(--y); }\nc {}"
	got := AddVariableFallbacks(input)

	inLines := strings.Split(input, "\n")
	outLines := strings.Split(got, "\n")
	require.Equal(t, len(inLines)+2, len(outLines))
	require.Equal(t, "a { margin: 2px 2px; }", outLines[2])
}

func TestAddVariableFallbacksUndeclaredReference(t *testing.T) {
	t.Parallel()

	got := AddVariableFallbacks("  color: var(--missing);")
	require.Equal(t, "  color: var(--missing);\n  color: undefined;", got)
}

func TestAddVariableFallbacksUsesInlineFallback(t *testing.T) {
	t.Parallel()

	got := AddVariableFallbacks("  color: var(--missing, red);")
	require.Equal(t, "  color: var(--missing, red);\n  color: red;", got)
}

func TestAddVariableFallbacksResolvesChains(t *testing.T) {
	t.Parallel()

	input := "--base: 4px;\n--gap: var(--base);\nmargin: var(--gap);"
	got := strings.Split(AddVariableFallbacks(input), "\n")

	require.Equal(t, "--gap: var(--base);", got[1])
	require.Equal(t, "--gap: 4px;", got[2])
	require.Equal(t, "margin: var(--gap);", got[3])
	require.Equal(t, "margin: 4px;", got[4])
}

func TestAddVariableFallbacksAddsMissingTerminator(t *testing.T) {
	t.Parallel()

	got := AddVariableFallbacks("--a: 1px;\n  width: var(--a)")
	require.Equal(t, "--a: 1px;\n  width: var(--a)\n  width: 1px;", got)
}

func TestAddVariableFallbacksCyclicDeclarationsTerminate(t *testing.T) {
	t.Parallel()

	input := "--a: var(--b);\n--b: var(--a);\nwidth: var(--a);"
	require.NotPanics(t, func() {
		got := AddVariableFallbacks(input)
		require.Contains(t, got, "width: var(--a);")
	})
}

func TestBuildVariableTable(t *testing.T) {
	t.Parallel()

	table := BuildVariableTable([]string{
		"  --primary: #336699;",
		"--spacing:8px",
		"--broken",
		"color: red;",
		"--primary: #000;",
	})

	require.Equal(t, VariableTable{"--primary": "#000", "--spacing": "8px"}, table)

	value, ok := table.Lookup("--spacing")
	require.True(t, ok)
	require.Equal(t, "8px", value)

	_, ok = table.Lookup("--nope")
	require.False(t, ok)
}

func TestPreprocessEndToEnd(t *testing.T) {
	t.Parallel()

	got := Preprocess("--c: #fff;\nbody { color: var(--c); }")
	lines := strings.Split(got, "\n")

	require.Equal(t, []string{
		"--c: #fff;",
		"body { color: var(--c); }",
		"body { color: #fff; }",
	}, lines)
	require.Contains(t, lines[2], "color: #fff;")
}

func TestPreprocessStripsCommentsBeforeInlining(t *testing.T) {
	t.Parallel()

	got := Preprocess("/* var(--c) */\n:root {\n  --c: blue;\n}\na { color: var(--c); }")

	require.NotContains(t, got, ":root")
	require.True(t, strings.HasPrefix(got, PlaceholderComment))
	require.Contains(t, got, "a { color: var(--c); }\na { color: blue; }")
}
