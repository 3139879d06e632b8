package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// model is a single-field input form.
type model struct {
	label   string
	value   string
	input   textinput.Model
	empty   bool // Enter was pressed on an empty value
	done    bool
	aborted bool
}

func newModel(label string, secret bool) *model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return &model{
		label: label,
		input: ti,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.empty = true
				return m, nil
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
		m.empty = false
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.empty {
		b.WriteString(errorStyle.Render("a value is required"))
	} else {
		b.WriteString(hintStyle.Render("enter to confirm • esc to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}
