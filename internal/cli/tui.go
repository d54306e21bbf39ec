package cli

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roadtower/pkg/errors"
)

var (
	promptCursorStyle = lipgloss.NewStyle().Foreground(colorCyan)
	promptInputStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	promptErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	promptDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PromptModel - user id entry
// =============================================================================

// PromptModel is the bubbletea model of the entry view: a single line input
// for the user id. Submitting an empty id shows the validation message and
// keeps the prompt open.
type PromptModel struct {
	Input     []rune
	Err       string
	Submitted bool
	Cancelled bool
}

// NewPromptModel creates an empty prompt.
func NewPromptModel() PromptModel {
	return PromptModel{}
}

// Value returns the entered user id with surrounding space removed.
func (m PromptModel) Value() string {
	return strings.TrimSpace(string(m.Input))
}

func (m PromptModel) Init() tea.Cmd {
	return nil
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Cancelled = true
		return m, tea.Quit
	case tea.KeyEnter:
		if err := errors.ValidateUserID(m.Value()); err != nil {
			m.Err = errors.UserMessage(err)
			return m, nil
		}
		m.Submitted = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	case tea.KeyCtrlU:
		m.Input = nil
	case tea.KeySpace:
		m.Input = append(m.Input, ' ')
	case tea.KeyRunes:
		m.Input = append(m.Input, key.Runes...)
	}
	m.Err = ""
	return m, nil
}

func (m PromptModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Open Roadmap"))
	b.WriteString("\n")
	b.WriteString(promptDimStyle.Render("⏎ submit  esc quit"))
	b.WriteString("\n\n")

	b.WriteString("User ID: ")
	b.WriteString(promptInputStyle.Render(string(m.Input)))
	if !m.Submitted && !m.Cancelled {
		b.WriteString(promptCursorStyle.Render("█"))
	}
	b.WriteString("\n")

	if m.Err != "" {
		b.WriteString(promptErrorStyle.Render(iconError + " " + m.Err))
		b.WriteString("\n")
	}
	return b.String()
}

// promptUserID runs the prompt on the terminal and returns the entered id.
// Leaving the prompt without submitting fails with ErrCodeMissingInput.
func promptUserID(ctx context.Context) (string, error) {
	p := tea.NewProgram(NewPromptModel(), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(PromptModel)
	if !m.Submitted {
		return "", errors.New(errors.ErrCodeMissingInput, "please enter a user ID")
	}
	return m.Value(), nil
}
