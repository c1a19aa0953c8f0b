package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testItems() []pickerItem {
	return []pickerItem{
		{Label: "main", Detail: "/repos/app"},
		{Label: "feature/auth", Detail: "/repos/app-auth"},
		{Label: "feature/billing", Detail: "/repos/app-billing"},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m pickerModel, keys ...string) pickerModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		var ok bool
		m, ok = next.(pickerModel)
		if !ok {
			t.Fatalf("Update returned unexpected model type %T", next)
		}
	}
	return m
}

func TestPickerSingleSelect(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "down", "enter")

	if !m.done {
		t.Fatal("enter should finish the picker")
	}
	if !m.selected[1] {
		t.Errorf("expected item 1 selected, got %v", m.selected)
	}
	if len(m.selected) != 1 {
		t.Errorf("single select picked %d items", len(m.selected))
	}
}

func TestPickerCancel(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "esc")

	if !m.cancelled {
		t.Error("esc should cancel")
	}
}

func TestPickerFilter(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "b", "i", "l", "l")

	if len(m.visible) != 1 {
		t.Fatalf("filter 'bill' should leave 1 item, got %d", len(m.visible))
	}
	if m.items[m.visible[0]].Label != "feature/billing" {
		t.Errorf("wrong item visible: %s", m.items[m.visible[0]].Label)
	}

	m = update(t, m, "enter")
	if !m.selected[2] {
		t.Errorf("expected filtered item selected, got %v", m.selected)
	}
}

func TestPickerFilterBackspace(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "z", "z")
	if len(m.visible) != 0 {
		t.Fatalf("filter 'zz' should hide everything, got %d visible", len(m.visible))
	}

	m = update(t, m, "backspace", "backspace")
	if len(m.visible) != 3 {
		t.Errorf("clearing the filter should restore all items, got %d", len(m.visible))
	}
}

func TestPickerEnterWithNoMatches(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "z", "z", "enter")

	if !m.cancelled {
		t.Error("enter with no visible items should cancel")
	}
}

func TestPickerMultiSelect(t *testing.T) {
	m := newPickerModel("pick many", testItems(), true)
	m = update(t, m, " ", "down", "down", " ", "enter")

	if !m.done {
		t.Fatal("enter should finish the picker")
	}
	if !m.selected[0] || !m.selected[2] {
		t.Errorf("expected items 0 and 2 selected, got %v", m.selected)
	}
	if m.selected[1] {
		t.Error("item 1 should not be selected")
	}
}

func TestPickerMultiToggleOff(t *testing.T) {
	m := newPickerModel("pick many", testItems(), true)
	m = update(t, m, " ", " ", "enter")

	if m.selected[0] {
		t.Error("double toggle should deselect")
	}
}

func TestPickerTabAdvancesCursor(t *testing.T) {
	m := newPickerModel("pick many", testItems(), true)
	m = update(t, m, "tab")

	if !m.selected[0] {
		t.Error("tab should toggle the current item")
	}
	if m.cursor != 1 {
		t.Errorf("tab should advance the cursor, got %d", m.cursor)
	}
}

func TestPickerCursorBounds(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor underflow: %d", m.cursor)
	}

	m = update(t, m, "down", "down", "down", "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor overflow: %d", m.cursor)
	}
}

func TestPickerViewShowsFilter(t *testing.T) {
	m := newPickerModel("pick one", testItems(), false)
	m = update(t, m, "a", "u")

	view := m.View()
	if view == "" {
		t.Fatal("view should render while active")
	}
	m = update(t, m, "enter")
	if m.View() != "" {
		t.Error("view should be empty after completion")
	}
}
