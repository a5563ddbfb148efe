package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the viewer's built-in key bindings. Navigation keys
// move the caret regardless of Shift, Ctrl or Alt.
func DefaultKeymap() *Keymap {
	var bindings []KeyBinding
	bindings = append(bindings, caretBindings()...)
	bindings = append(bindings,
		KeyBinding{KeyType: tea.KeyCtrlQ, Command: CmdQuit, Description: "Quit", Category: "Application"},
	)

	return &Keymap{
		Name:        "default",
		Description: "Default peek key bindings",
		Bindings:    bindings,
	}
}

func caretBindings() []KeyBinding {
	groups := []struct {
		keys        []tea.KeyType
		command     Command
		description string
	}{
		{[]tea.KeyType{tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp}, CmdCaretUp, "Move up"},
		{[]tea.KeyType{tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown}, CmdCaretDown, "Move down"},
		{[]tea.KeyType{tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft, tea.KeyCtrlShiftLeft}, CmdCaretLeft, "Move left"},
		{[]tea.KeyType{tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight, tea.KeyCtrlShiftRight}, CmdCaretRight, "Move right"},
		{[]tea.KeyType{tea.KeyHome, tea.KeyShiftHome, tea.KeyCtrlHome, tea.KeyCtrlShiftHome}, CmdCaretLineStart, "Start of line"},
		{[]tea.KeyType{tea.KeyEnd, tea.KeyShiftEnd, tea.KeyCtrlEnd, tea.KeyCtrlShiftEnd}, CmdCaretLineEnd, "End of line"},
		{[]tea.KeyType{tea.KeyPgUp, tea.KeyCtrlPgUp}, CmdCaretTop, "Top of screen"},
		{[]tea.KeyType{tea.KeyPgDown, tea.KeyCtrlPgDown}, CmdCaretBottom, "Bottom of screen"},
	}

	var bindings []KeyBinding
	for _, g := range groups {
		for _, key := range g.keys {
			bindings = append(bindings, KeyBinding{
				KeyType:     key,
				Modifiers:   ModAny,
				Command:     g.command,
				Description: g.description,
				Category:    "Navigation",
			})
		}
	}
	return bindings
}
