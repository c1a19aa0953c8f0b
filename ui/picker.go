package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
)

// pickerItem is one row in the picker.
type pickerItem struct {
	Label  string
	Detail string
}

// pickerModel is a filterable single- or multi-select list.
type pickerModel struct {
	title     string
	items     []pickerItem
	visible   []int // indexes into items that match the filter
	cursor    int   // position within visible
	filter    string
	multi     bool
	selected  map[int]bool // keyed by item index
	done      bool
	cancelled bool
}

func newPickerModel(title string, items []pickerItem, multi bool) pickerModel {
	m := pickerModel{
		title:    title,
		items:    items,
		multi:    multi,
		selected: make(map[int]bool),
	}
	m.refilter()
	return m
}

func (m *pickerModel) refilter() {
	m.visible = m.visible[:0]
	needle := strings.ToLower(m.filter)
	for i, item := range m.items {
		if needle == "" || strings.Contains(strings.ToLower(item.Label), needle) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "ctrl+n":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "tab", " ":
		if m.multi && len(m.visible) > 0 {
			idx := m.visible[m.cursor]
			m.selected[idx] = !m.selected[idx]
			if keyMsg.String() == "tab" && m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}
		if keyMsg.String() == " " {
			m.filter += " "
			m.refilter()
		}

	case "enter":
		if len(m.visible) == 0 {
			m.cancelled = true
			return m, tea.Quit
		}
		if !m.multi {
			m.selected[m.visible[m.cursor]] = true
		}
		m.done = true
		return m, tea.Quit

	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.refilter()
		}

	default:
		if len(keyMsg.Runes) > 0 {
			m.filter += string(keyMsg.Runes)
			m.refilter()
		}
	}

	return m, nil
}

func (m pickerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	if m.filter != "" {
		b.WriteString(filterStyle.Render(fmt.Sprintf("filter: %s", m.filter)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.visible) == 0 {
		b.WriteString(detailStyle.Render("  (no matches)"))
		b.WriteString("\n")
	}

	for pos, idx := range m.visible {
		item := m.items[idx]

		cursor := "  "
		if pos == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		mark := ""
		if m.multi {
			if m.selected[idx] {
				mark = selectedStyle.Render("[x] ")
			} else {
				mark = "[ ] "
			}
		}

		line := item.Label
		if item.Detail != "" {
			line += " " + detailStyle.Render(item.Detail)
		}
		b.WriteString(cursor + mark + line + "\n")
	}

	help := "enter: select • esc: cancel • type to filter"
	if m.multi {
		help = "space/tab: toggle • " + help
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

// runPicker presents the picker and returns the chosen item indexes in
// list order. Returns ErrCancelled when the user backs out.
func runPicker(ctx context.Context, title string, items []pickerItem, multi bool) ([]int, error) {
	model := newPickerModel(title, items, multi)

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(pickerModel)
	if !ok || result.cancelled {
		return nil, ErrCancelled
	}

	var picked []int
	for i := range items {
		if result.selected[i] {
			picked = append(picked, i)
		}
	}
	if len(picked) == 0 {
		return nil, ErrCancelled
	}
	return picked, nil
}
