// Package tui provides terminal user interface components for snowkit.
//
// This package uses the Bubble Tea framework for the interactive pieces of
// the deploy pipeline: confirmation prompts at stopping points and a picker
// for choosing Snowflake objects (compute pools, warehouses).
//
// # Confirmation
//
//	ok, err := tui.RunConfirm("Create compute pool SALES_POOL?")
//
// renders a y/n prompt; Enter defaults to no. Commands that accept --yes
// bypass the prompt entirely and never reach this package.
//
// # Picker
//
//	idx, err := tui.RunPicker("Select a compute pool", items)
//
// returns the selected index, or -1 when the user quits without choosing.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
