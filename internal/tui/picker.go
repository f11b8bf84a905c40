package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Item is a selectable entry in the picker.
type Item struct {
	Name   string
	Detail string
}

// pickerItem implements list.Item.
type pickerItem struct {
	item  Item
	index int
}

func (i pickerItem) Title() string       { return i.item.Name }
func (i pickerItem) Description() string { return i.item.Detail }
func (i pickerItem) FilterValue() string { return i.item.Name }

// PickerModel is the bubbletea model for selecting one item from a list.
type PickerModel struct {
	list     list.Model
	selected int
	quitting bool
}

// NewPicker creates a picker over the given items.
func NewPicker(title string, items []Item) PickerModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = pickerItem{item: it, index: i}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(listItems, delegate, 80, 20)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return PickerModel{list: l, selected: -1}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(pickerItem); ok {
				m.selected = item.index
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc", "ctrl+c":
			m.selected = -1
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Select  [/] Filter  [q] Quit")
	return m.list.View() + "\n" + help
}

// Selected returns the chosen index, or -1 if the user quit.
func (m PickerModel) Selected() int {
	return m.selected
}

// RunPicker runs the interactive picker and returns the selected index,
// or -1 when the user quits without choosing.
func RunPicker(title string, items []Item) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}

	m := NewPicker(title, items)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}
	return finalModel.(PickerModel).Selected(), nil
}
