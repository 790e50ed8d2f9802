package tui

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var cardBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("39")).
	Padding(0, 1)

var cardActionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

// Card is a bordered summary box printed after a command completes.
type Card struct {
	Title       string
	Description string
	// Metadata rows are printed as "key: value", sorted by key.
	Metadata map[string]string
	// Actions are suggested next steps.
	Actions []string
	// Width wraps the description; zero disables wrapping.
	Width int
}

// View renders the card.
func (c Card) View() string {
	var content []string

	if c.Title != "" {
		content = append(content, titleStyle.Render(c.Title))
	}
	if c.Description != "" {
		content = append(content, c.wrapText(c.Description))
	}

	if len(c.Metadata) > 0 {
		content = append(content, "")
		keys := make([]string, 0, len(c.Metadata))
		for k := range c.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			content = append(content, fmt.Sprintf("%s %s", answerStyle.Render(key+":"), c.Metadata[key]))
		}
	}

	if len(c.Actions) > 0 {
		content = append(content, "")
		for _, action := range c.Actions {
			content = append(content, cardActionStyle.Render("$ "+action))
		}
	}

	return cardBorderStyle.Render(strings.Join(content, "\n"))
}

// wrapText breaks text on word boundaries to fit the card width. Words
// longer than a line are split.
func (c Card) wrapText(text string) string {
	maxWidth := c.Width - cardBorderStyle.GetHorizontalFrameSize()
	if c.Width <= 0 || maxWidth <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	current := ""
	for _, word := range words {
		if utf8.RuneCountInString(word) > maxWidth {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			runes := []rune(word)
			for len(runes) > maxWidth {
				lines = append(lines, string(runes[:maxWidth]))
				runes = runes[maxWidth:]
			}
			current = string(runes)
			continue
		}

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if utf8.RuneCountInString(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}
