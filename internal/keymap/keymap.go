// Package keymap maps key presses onto viewer commands. Bindings are
// declarative so the event loop never switches on raw key types directly.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Command represents a named action that can be triggered by a key binding.
type Command string

const (
	// Caret movement
	CmdCaretUp        Command = "caret_up"
	CmdCaretDown      Command = "caret_down"
	CmdCaretLeft      Command = "caret_left"
	CmdCaretRight     Command = "caret_right"
	CmdCaretLineStart Command = "caret_line_start" // Home
	CmdCaretLineEnd   Command = "caret_line_end"   // End
	CmdCaretTop       Command = "caret_top"        // PageUp
	CmdCaretBottom    Command = "caret_bottom"     // PageDown

	// Exit
	CmdQuit Command = "quit"
)

// Modifier represents keyboard modifiers reported separately from the key
// type. Ctrl and Shift are folded into tea.KeyType for navigation keys, so
// only Alt is carried on the message itself.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
	// ModAny matches the key whether or not Alt is held.
	ModAny
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if kb.Modifiers&ModAny == 0 {
		wantAlt := kb.Modifiers&ModAlt != 0
		if msg.Alt != wantAlt {
			return false
		}
	}

	// For special keys (not runes), match the key type directly
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// If Rune is 0, this is a catch-all binding for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// Keymap is an ordered set of bindings. The first matching binding wins.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	// Description provides a human-readable description.
	Description string

	Bindings []KeyBinding
}

// Lookup returns the command bound to msg, or false if the key is unbound.
func (km *Keymap) Lookup(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range km.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// BindingsForCommand returns all bindings that trigger cmd.
func (km *Keymap) BindingsForCommand(cmd Command) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.Bindings {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// Categories returns the binding categories in declaration order.
func (km *Keymap) Categories() []string {
	seen := make(map[string]bool)
	var categories []string

	for _, binding := range km.Bindings {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// BindingsByCategory returns bindings grouped by category.
func (km *Keymap) BindingsByCategory() map[string][]KeyBinding {
	result := make(map[string][]KeyBinding)
	for _, binding := range km.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], binding)
	}
	return result
}
