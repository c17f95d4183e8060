package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// selectModel is a single-choice list, navigated with arrows or j/k.
type selectModel struct {
	title     string
	options   []string
	cursor    int
	chosen    int
	cancelled bool
	styles    promptStyles
}

func newSelectModel(title string, options []string) selectModel {
	return selectModel{
		title:   title,
		options: options,
		chosen:  -1,
		styles:  defaultStyles(),
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	last := len(m.options) - 1
	switch key.String() {
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = last
		}
	case "down", "j", "tab":
		if m.cursor < last {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = last
	case "enter":
		if len(m.options) > 0 {
			m.chosen = m.cursor
		}
		return m, tea.Quit
	case "esc", "ctrl+c", "ctrl+d":
		m.cancelled = true
		return m, tea.Quit
	default:
		// Digits jump straight to an option (1-based).
		if len(key.Runes) == 1 && key.Runes[0] >= '1' && key.Runes[0] <= '9' {
			if i := int(key.Runes[0] - '1'); i <= last {
				m.cursor = i
			}
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("? "+m.title) + "\n")

	if m.chosen >= 0 {
		// Collapse to the answer once chosen, like a shell transcript.
		sb.WriteString("  " + m.styles.answer.Render(m.options[m.chosen]) + "\n")
		return sb.String()
	}
	if m.cancelled {
		return sb.String()
	}

	for i, opt := range m.options {
		if i == m.cursor {
			sb.WriteString(m.styles.cursor.Render("» ") + m.styles.selected.Render(opt) + "\n")
		} else {
			sb.WriteString("  " + m.styles.option.Render(opt) + "\n")
		}
	}
	sb.WriteString(m.styles.help.Render("  ↑/↓ move • enter select • esc cancel") + "\n")
	return sb.String()
}

// Choice returns the selected option, if any.
func (m selectModel) Choice() (string, bool) {
	if m.cancelled || m.chosen < 0 {
		return "", false
	}
	return m.options[m.chosen], true
}
