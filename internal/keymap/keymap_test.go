package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}},
			expected: true,
		},
		{
			name:     "simple rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}},
			expected: false,
		},
		{
			name:     "catch-all rune",
			binding:  KeyBinding{KeyType: tea.KeyRunes},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}},
			expected: true,
		},
		{
			name:     "rune binding against special key",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'j'},
			msg:      tea.KeyMsg{Type: tea.KeyDown},
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyCtrlQ},
			msg:      tea.KeyMsg{Type: tea.KeyCtrlQ},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyCtrlQ},
			msg:      tea.KeyMsg{Type: tea.KeyCtrlW},
			expected: false,
		},
		{
			name:     "alt held but not bound",
			binding:  KeyBinding{KeyType: tea.KeyCtrlQ},
			msg:      tea.KeyMsg{Type: tea.KeyCtrlQ, Alt: true},
			expected: false,
		},
		{
			name:     "alt modifier match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			expected: true,
		},
		{
			name:     "alt modifier required",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}},
			expected: false,
		},
		{
			name:     "any modifier with alt",
			binding:  KeyBinding{KeyType: tea.KeyLeft, Modifiers: ModAny},
			msg:      tea.KeyMsg{Type: tea.KeyLeft, Alt: true},
			expected: true,
		},
		{
			name:     "any modifier without alt",
			binding:  KeyBinding{KeyType: tea.KeyLeft, Modifiers: ModAny},
			msg:      tea.KeyMsg{Type: tea.KeyLeft},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.binding.Matches(tt.msg); result != tt.expected {
				t.Errorf("KeyBinding.Matches() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestDefaultKeymapLookup(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name  string
		msg   tea.KeyMsg
		want  Command
		found bool
	}{
		{"ctrl+q", tea.KeyMsg{Type: tea.KeyCtrlQ}, CmdQuit, true},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, CmdCaretUp, true},
		{"shift+up", tea.KeyMsg{Type: tea.KeyShiftUp}, CmdCaretUp, true},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, CmdCaretDown, true},
		{"ctrl+down", tea.KeyMsg{Type: tea.KeyCtrlDown}, CmdCaretDown, true},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, CmdCaretLeft, true},
		{"alt+left", tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, CmdCaretLeft, true},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, CmdCaretRight, true},
		{"ctrl+shift+right", tea.KeyMsg{Type: tea.KeyCtrlShiftRight}, CmdCaretRight, true},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, CmdCaretLineStart, true},
		{"ctrl+home", tea.KeyMsg{Type: tea.KeyCtrlHome}, CmdCaretLineStart, true},
		{"end", tea.KeyMsg{Type: tea.KeyEnd}, CmdCaretLineEnd, true},
		{"shift+end", tea.KeyMsg{Type: tea.KeyShiftEnd}, CmdCaretLineEnd, true},
		{"pgup", tea.KeyMsg{Type: tea.KeyPgUp}, CmdCaretTop, true},
		{"ctrl+pgup", tea.KeyMsg{Type: tea.KeyCtrlPgUp}, CmdCaretTop, true},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, CmdCaretBottom, true},
		{"ctrl+pgdown", tea.KeyMsg{Type: tea.KeyCtrlPgDown}, CmdCaretBottom, true},

		{"plain q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "", false},
		{"alt+ctrl+q", tea.KeyMsg{Type: tea.KeyCtrlQ, Alt: true}, "", false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, "", false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, "", false},
		{"delete", tea.KeyMsg{Type: tea.KeyDelete}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, found := km.Lookup(tt.msg)
			if found != tt.found {
				t.Fatalf("Lookup() found = %v, want %v", found, tt.found)
			}
			if cmd != tt.want {
				t.Errorf("Lookup() = %q, want %q", cmd, tt.want)
			}
		})
	}
}

func TestModifiersString(t *testing.T) {
	tests := []struct {
		mod      Modifier
		expected string
	}{
		{ModNone, ""},
		{ModAlt, "alt+"},
		{ModAny, ""},
		{ModAlt | ModAny, "alt+"},
	}

	for _, tt := range tests {
		if result := tt.mod.String(); result != tt.expected {
			t.Errorf("Modifier(%d).String() = %q, expected %q", tt.mod, result, tt.expected)
		}
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding  KeyBinding
		expected string
	}{
		{KeyBinding{KeyType: tea.KeyCtrlQ}, "ctrl+q"},
		{KeyBinding{KeyType: tea.KeyPgDown, Modifiers: ModAny}, "pgdown"},
		{KeyBinding{KeyType: tea.KeyCtrlShiftHome}, "ctrl+shift+home"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: ' '}, "space"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := tt.binding.String(); result != tt.expected {
				t.Errorf("KeyBinding.String() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestBindingsForCommand(t *testing.T) {
	km := DefaultKeymap()

	if got := len(km.BindingsForCommand(CmdCaretUp)); got != 4 {
		t.Errorf("BindingsForCommand(CmdCaretUp) returned %d bindings, want 4", got)
	}
	if got := len(km.BindingsForCommand(CmdCaretTop)); got != 2 {
		t.Errorf("BindingsForCommand(CmdCaretTop) returned %d bindings, want 2", got)
	}

	quit := km.BindingsForCommand(CmdQuit)
	if len(quit) != 1 || quit[0].String() != "ctrl+q" {
		t.Errorf("BindingsForCommand(CmdQuit) = %v, want [ctrl+q]", quit)
	}
	if km.BindingsForCommand("nonexistent") != nil {
		t.Error("expected nil for an unknown command")
	}
}

func TestCategories(t *testing.T) {
	km := DefaultKeymap()

	categories := km.Categories()
	want := []string{"Navigation", "Application"}
	if len(categories) != len(want) {
		t.Fatalf("Categories() = %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, categories[i], want[i])
		}
	}

	grouped := km.BindingsByCategory()
	if len(grouped["Application"]) != 1 {
		t.Errorf("Application has %d bindings, want 1", len(grouped["Application"]))
	}
	if len(grouped["Navigation"]) != len(km.Bindings)-1 {
		t.Errorf("Navigation has %d bindings, want %d", len(grouped["Navigation"]), len(km.Bindings)-1)
	}
}

func TestBindingsByCategory_Uncategorised(t *testing.T) {
	km := &Keymap{Bindings: []KeyBinding{{KeyType: tea.KeyEsc, Command: CmdQuit}}}

	if got := len(km.BindingsByCategory()["Other"]); got != 1 {
		t.Errorf("Other has %d bindings, want 1", got)
	}
	if len(km.Categories()) != 0 {
		t.Errorf("Categories() = %v, want none", km.Categories())
	}
}
