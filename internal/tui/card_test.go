package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardViewIncludesSections(t *testing.T) {
	t.Parallel()

	view := Card{
		Title:       "Your element <my-card> is ready!",
		Description: "A card",
		Metadata:    map[string]string{"tag": "my-card", "directory": "my-card"},
		Actions:     []string{"cd my-card"},
	}.View()

	require.Contains(t, view, "Your element <my-card> is ready!")
	require.Contains(t, view, "A card")
	require.Contains(t, view, "$ cd my-card")
	require.Less(t, strings.Index(view, "directory:"), strings.Index(view, "tag:"))
	require.Contains(t, view, "╭")
}

func TestCardWrapsDescription(t *testing.T) {
	t.Parallel()

	c := Card{Width: 14}
	// Frame is two border columns plus one column of padding per side.
	require.Equal(t, "one two\nthree four", c.wrapText("one two three four"))
	require.Equal(t, "abcdefghij\nklm", c.wrapText("abcdefghijklm"))
	require.Equal(t, "no wrap at all", Card{}.wrapText("no wrap at all"))
}
