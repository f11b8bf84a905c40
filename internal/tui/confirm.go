package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ConfirmModel is the bubbletea model for a yes/no stopping point.
type ConfirmModel struct {
	prompt    string
	confirmed bool
	answered  bool
}

// NewConfirm creates a confirmation prompt.
func NewConfirm(prompt string) ConfirmModel {
	return ConfirmModel{prompt: prompt}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.answered = true
			return m, tea.Quit
		case "n", "N", "enter", "esc", "q", "ctrl+c":
			// Anything short of an explicit yes is a no.
			m.confirmed = false
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.answered {
		return ""
	}
	return promptStyle.Render("⚠ "+m.prompt) + "\n" +
		hintStyle.Render("[y] Yes  [n/enter] No") + "\n"
}

// Confirmed reports the user's answer.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// RunConfirm renders an interactive yes/no prompt and returns the answer.
func RunConfirm(prompt string) (bool, error) {
	p := tea.NewProgram(NewConfirm(prompt))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	return finalModel.(ConfirmModel).Confirmed(), nil
}
