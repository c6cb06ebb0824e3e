package tui

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// NameInput is a single-line prompt for the new app name. The validator
// only drives the inline hint; Enter always submits, so a rejected name
// still ends the run instead of looping.
type NameInput struct {
	question  string
	input     textinput.Model
	validate  func(string) error
	hint      error
	keys      KeyMap
	submitted bool
	cancelled bool
}

// NewNameInput creates a prompt asking question. validate may be nil.
func NewNameInput(question string, validate func(string) error) NameInput {
	ti := textinput.New()
	ti.Placeholder = "mycompany/shopify-app"
	ti.CharLimit = 214
	ti.Width = 40
	ti.Focus()

	return NameInput{
		question: question,
		input:    ti,
		validate: validate,
		keys:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m NameInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m NameInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.hint = nil
	if m.validate != nil && strings.TrimSpace(m.input.Value()) != "" {
		m.hint = m.validate(m.input.Value())
	}
	return m, cmd
}

// View implements tea.Model.
func (m NameInput) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.question))
	b.WriteString("\n")
	b.WriteString(InputStyle.Render(m.input.View()))
	if m.hint != nil {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(SymbolWarning + " " + firstLine(m.hint.Error())))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.keys.HelpText()))
	return b.String()
}

// Value returns the text entered so far.
func (m NameInput) Value() string {
	return m.input.Value()
}

// Submitted reports whether the user pressed Enter.
func (m NameInput) Submitted() bool {
	return m.submitted
}

// Cancelled reports whether the user left the prompt without submitting.
func (m NameInput) Cancelled() bool {
	return m.cancelled
}

// Hint returns the current validation hint, if any.
func (m NameInput) Hint() error {
	return m.hint
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// NamePrompter implements shopkit.Prompter with a NameInput program.
type NamePrompter struct {
	validate func(string) error
}

// NewNamePrompter creates a prompter whose inline hints come from validate.
func NewNamePrompter(validate func(string) error) *NamePrompter {
	return &NamePrompter{validate: validate}
}

// Ask runs the prompt until the user submits or cancels.
func (p *NamePrompter) Ask(ctx context.Context, question string) (string, error) {
	prog := tea.NewProgram(
		NewNameInput(question, p.validate),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stdout),
	)

	model, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", shopkit.ErrPromptCancelled
		}
		return "", err
	}

	result := model.(NameInput)
	if result.Cancelled() {
		return "", shopkit.ErrPromptCancelled
	}
	return result.Value(), nil
}

var _ shopkit.Prompter = (*NamePrompter)(nil)
