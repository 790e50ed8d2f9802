package tui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/elementkit/internal/scaffold"
)

// ErrCancelled is returned by RunWizard when the user aborts the form.
var ErrCancelled = errors.New("wizard cancelled")

// Answers are the values collected by the wizard.
type Answers struct {
	Directory   string
	Name        string
	Description string
	Language    string
}

type field int

const (
	fieldDirectory field = iota
	fieldName
	fieldDescription
	fieldLanguage
	fieldDone
)

// Wizard is the Bubbletea model prompting for a new project.
type Wizard struct {
	inputs    []textinput.Model
	languages []string
	langIndex int
	current   field
	errMsg    string
	cancelled bool
}

// NewWizard prepares a wizard pre-filled with defaults. Fields already set
// in defaults are still asked, with the value in place.
func NewWizard(defaults Answers, languages []string) Wizard {
	if len(languages) == 0 {
		languages = scaffold.Languages()
	}

	w := Wizard{languages: languages}
	values := []string{defaults.Directory, defaults.Name, defaults.Description}
	placeholders := []string{"my-element", "my-element", "optional"}
	for i := range values {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.SetValue(values[i])
		w.inputs = append(w.inputs, in)
	}
	for i, lang := range languages {
		if lang == defaults.Language {
			w.langIndex = i
		}
	}
	w.inputs[fieldDirectory].Focus()
	return w
}

// Init starts the cursor blinking.
func (w Wizard) Init() tea.Cmd {
	return textinput.Blink
}

// Answers returns the values entered so far.
func (w Wizard) Answers() Answers {
	return Answers{
		Directory:   w.inputs[fieldDirectory].Value(),
		Name:        w.inputs[fieldName].Value(),
		Description: w.inputs[fieldDescription].Value(),
		Language:    w.languages[w.langIndex],
	}
}

// Done reports whether every field was answered.
func (w Wizard) Done() bool { return w.current == fieldDone }

// Cancelled reports whether the user aborted.
func (w Wizard) Cancelled() bool { return w.cancelled }

// RunWizard runs the wizard on the given terminal streams.
func RunWizard(ctx context.Context, in io.Reader, out io.Writer, defaults Answers) (Answers, error) {
	program := tea.NewProgram(NewWizard(defaults, nil),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return Answers{}, err
	}

	w, ok := final.(Wizard)
	if !ok || w.Cancelled() || !w.Done() {
		return Answers{}, ErrCancelled
	}
	return w.Answers(), nil
}
