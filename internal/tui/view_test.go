package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestViewShowsAnsweredFields(t *testing.T) {
	w := NewWizard(Answers{Directory: "proj", Name: "my-proj"}, []string{"yaml", "toml"})
	view := w.View()
	require.Contains(t, view, "elementkit")
	require.Contains(t, view, "Choose a directory name")
	require.NotContains(t, view, "Choose a name for your component")

	w, _ = press(t, w, tea.KeyEnter)
	w, _ = press(t, w, tea.KeyEnter)
	w, _ = press(t, w, tea.KeyEnter)
	view = w.View()
	require.Contains(t, view, "proj")
	require.Contains(t, view, "my-proj")
	require.Contains(t, view, "yaml")
	require.Contains(t, view, "toml")
	require.Contains(t, view, "enter to confirm")
}

func TestStatusIcon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{"done shows checkmark", StatusDone, "✓"},
		{"failed shows cross", StatusFailed, "✗"},
		{"skipped shows circle-slash", StatusSkipped, "⊘"},
		{"planned shows star", StatusPlanned, "✱"},
		{"unknown shows ellipsis", "unknown", "…"},
		{"empty shows ellipsis", "", "…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			icon := StatusIcon(tt.status)
			require.Contains(t, icon, tt.expected)
		})
	}
}
