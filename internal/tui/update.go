package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/elementkit/internal/scaffold"
)

// Update handles Bubbletea messages and updates wizard state.
func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			w.cancelled = true
			return w, tea.Quit
		case tea.KeyEnter:
			return w.submit()
		case tea.KeyUp, tea.KeyDown:
			if w.current == fieldLanguage {
				w.moveLanguage(key.Type == tea.KeyDown)
				return w, nil
			}
		case tea.KeyRunes:
			if w.current == fieldLanguage {
				switch string(key.Runes) {
				case "j":
					w.moveLanguage(true)
				case "k":
					w.moveLanguage(false)
				}
				return w, nil
			}
		}
	}

	if w.current >= fieldLanguage {
		return w, nil
	}
	var cmd tea.Cmd
	w.inputs[w.current], cmd = w.inputs[w.current].Update(msg)
	return w, cmd
}

func (w Wizard) submit() (tea.Model, tea.Cmd) {
	switch w.current {
	case fieldDirectory:
		dir := strings.TrimSpace(w.inputs[fieldDirectory].Value())
		if !scaffold.ValidDirectory(dir) {
			w.errMsg = "Please enter a valid directory name"
			return w, nil
		}
		w.inputs[fieldDirectory].SetValue(dir)
		if strings.TrimSpace(w.inputs[fieldName].Value()) == "" {
			w.inputs[fieldName].SetValue(scaffold.DefaultName(dir))
		}
	case fieldName:
		name := strings.TrimSpace(w.inputs[fieldName].Value())
		if !scaffold.ValidName(name) {
			w.errMsg = "Name must be snake-case and must contain at least two words"
			return w, nil
		}
		w.inputs[fieldName].SetValue(name)
	case fieldLanguage:
		w.current = fieldDone
		return w, tea.Quit
	case fieldDone:
		return w, tea.Quit
	}

	w.errMsg = ""
	w.inputs[w.current].Blur()
	w.current++
	if w.current < fieldLanguage {
		return w, w.inputs[w.current].Focus()
	}
	return w, nil
}

func (w *Wizard) moveLanguage(down bool) {
	if down {
		w.langIndex = (w.langIndex + 1) % len(w.languages)
		return
	}
	w.langIndex = (w.langIndex - 1 + len(w.languages)) % len(w.languages)
}
