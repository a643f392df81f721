package human

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	questionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	updateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// promptModel is the minimal Bubble Tea model behind the local prompt:
// one question, one text input, enter submits.
type promptModel struct {
	question string
	input    textinput.Model
	done     bool
	aborted  bool
}

func newPromptModel(question string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "type your answer and press enter"
	ti.Focus()
	ti.Width = 64
	return promptModel{question: question, input: ti}
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	body := questionTitleStyle.Render("Question from the crew") + "\n\n" + m.question
	return questionStyle.Render(body) + "\n\n" + m.input.View() + "\n"
}

// terminalPrompt is the default PromptFunc. The program inherits ctx, so
// a timeout or cancellation tears the prompt down instead of leaking it.
func terminalPrompt(ctx context.Context, question string) (string, error) {
	p := tea.NewProgram(newPromptModel(question), tea.WithContext(ctx))
	model, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("prompt: %w", err)
	}
	m, ok := model.(promptModel)
	if !ok || m.aborted {
		return "", context.Canceled
	}
	return m.input.Value(), nil
}
