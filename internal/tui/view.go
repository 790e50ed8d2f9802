package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var prompts = []string{
	"Choose a directory name for your project:",
	"Choose a name for your component:",
	"Give your component a description (optional):",
	"Which manifest format do you want to use?",
}

// View renders the answered fields and the active prompt.
func (w Wizard) View() string {
	sections := []string{titleStyle.Render("elementkit • new element")}

	for f := fieldDirectory; f < fieldLanguage && f <= w.current; f++ {
		if f < w.current {
			sections = append(sections, fmt.Sprintf("%s %s", promptStyle.Render(prompts[f]), answerStyle.Render(w.inputs[f].Value())))
			continue
		}
		sections = append(sections, promptStyle.Render(prompts[f]), w.inputs[f].View())
	}

	switch {
	case w.current == fieldLanguage:
		sections = append(sections, promptStyle.Render(prompts[fieldLanguage]), w.languageList())
	case w.current == fieldDone:
		sections = append(sections, fmt.Sprintf("%s %s", promptStyle.Render(prompts[fieldLanguage]), answerStyle.Render(w.languages[w.langIndex])))
	}

	if w.errMsg != "" {
		sections = append(sections, failureStyle.Render(w.errMsg))
	}
	if w.current != fieldDone {
		sections = append(sections, hintStyle.Render("enter to confirm • esc to cancel"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (w Wizard) languageList() string {
	lines := make([]string, 0, len(w.languages))
	for i, lang := range w.languages {
		if i == w.langIndex {
			lines = append(lines, cursorStyle.Render("› "+lang))
			continue
		}
		lines = append(lines, "  "+lang)
	}
	return strings.Join(lines, "\n")
}

// Status values rendered by StatusIcon.
const (
	StatusDone    = "done"
	StatusSkipped = "skipped"
	StatusPlanned = "planned"
	StatusFailed  = "failed"
)

// StatusIcon returns the glyph representing an outcome in CLI reports.
func StatusIcon(status string) string {
	switch status {
	case StatusDone:
		return successStyle.Render("✓")
	case StatusFailed:
		return failureStyle.Render("✗")
	case StatusSkipped:
		return skippedStyle.Render("⊘")
	case StatusPlanned:
		return pendingStyle.Render("✱")
	default:
		return pendingStyle.Render("…")
	}
}
