package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a yes/no question with a default answer.
type confirmModel struct {
	question  string
	def       bool
	answer    bool
	done      bool
	cancelled bool
	styles    promptStyles
}

func newConfirmModel(question string, def bool) confirmModel {
	return confirmModel{
		question: question,
		def:      def,
		styles:   defaultStyles(),
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.answer, m.done = true, true
		return m, tea.Quit
	case "n", "N":
		m.answer, m.done = false, true
		return m, tea.Quit
	case "enter":
		m.answer, m.done = m.def, true
		return m, tea.Quit
	case "esc", "ctrl+c", "ctrl+d":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	hint := "(y/N)"
	if m.def {
		hint = "(Y/n)"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("? "+m.question) + " ")
	switch {
	case m.done && m.answer:
		sb.WriteString(m.styles.answer.Render("Yes"))
	case m.done:
		sb.WriteString(m.styles.answer.Render("No"))
	case !m.cancelled:
		sb.WriteString(m.styles.help.Render(hint))
	}
	sb.WriteString("\n")
	return sb.String()
}

// Result returns the answer, or false when the prompt was cancelled.
func (m confirmModel) Result() (answer bool, ok bool) {
	if m.cancelled || !m.done {
		return false, false
	}
	return m.answer, true
}
