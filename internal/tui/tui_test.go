package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func TestConfirmYes(t *testing.T) {
	m := NewConfirm("Create compute pool?")
	updated, cmd := m.Update(key("y"))
	if cmd == nil {
		t.Fatal("expected quit command after answer")
	}
	if !updated.(ConfirmModel).Confirmed() {
		t.Error("expected Confirmed() after pressing y")
	}
}

func TestConfirmDefaultsToNo(t *testing.T) {
	for _, k := range []string{"n", "enter", "esc", "q"} {
		t.Run(k, func(t *testing.T) {
			m := NewConfirm("Push image?")
			updated, cmd := m.Update(key(k))
			if cmd == nil {
				t.Fatal("expected quit command after answer")
			}
			if updated.(ConfirmModel).Confirmed() {
				t.Errorf("expected no after pressing %s", k)
			}
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m := NewConfirm("Deploy?")
	updated, cmd := m.Update(key("x"))
	if cmd != nil {
		t.Error("expected no quit command for unhandled key")
	}
	if updated.(ConfirmModel).Confirmed() {
		t.Error("unanswered prompt must not read as confirmed")
	}
}

func TestConfirmView(t *testing.T) {
	m := NewConfirm("Create service?")
	view := m.View()
	if !strings.Contains(view, "Create service?") {
		t.Error("view missing prompt text")
	}
	if !strings.Contains(view, "[y] Yes") {
		t.Error("view missing key hint")
	}
}

func TestPickerSelectsItem(t *testing.T) {
	items := []Item{
		{Name: "SALES_POOL", Detail: "CPU_X64_XS | ACTIVE"},
		{Name: "DEV_POOL", Detail: "CPU_X64_XS | SUSPENDED"},
	}
	m := NewPicker("Select a compute pool", items)

	updated, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected quit command after selection")
	}
	if got := updated.(PickerModel).Selected(); got != 0 {
		t.Errorf("Selected() = %d, want 0", got)
	}
}

func TestPickerQuitWithoutSelection(t *testing.T) {
	m := NewPicker("Select", []Item{{Name: "only"}})

	updated, _ := m.Update(key("q"))
	if got := updated.(PickerModel).Selected(); got != -1 {
		t.Errorf("Selected() = %d, want -1", got)
	}
}

func TestRunPickerEmptyItems(t *testing.T) {
	idx, err := RunPicker("Select", nil)
	if err != nil {
		t.Fatalf("RunPicker failed: %v", err)
	}
	if idx != -1 {
		t.Errorf("expected -1 for empty items, got %d", idx)
	}
}

func TestPickerItemMethods(t *testing.T) {
	it := pickerItem{item: Item{Name: "ANALYTICS_WH", Detail: "X-Small"}, index: 2}
	if it.Title() != "ANALYTICS_WH" {
		t.Errorf("Title() = %q", it.Title())
	}
	if it.Description() != "X-Small" {
		t.Errorf("Description() = %q", it.Description())
	}
	if it.FilterValue() != "ANALYTICS_WH" {
		t.Errorf("FilterValue() = %q", it.FilterValue())
	}
}
