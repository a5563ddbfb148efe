package terminal

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	uv "github.com/charmbracelet/ultraviolet"
)

// UnknownSequenceMsg carries input the decoder did not recognise. Consumers
// are expected to ignore it.
type UnknownSequenceMsg string

// Decoder turns raw terminal input into key events. Sequences are parsed by
// ultraviolet's EventDecoder and key presses are translated into tea.KeyMsg
// so a keymap can match them.
type Decoder struct {
	events uv.EventDecoder
}

// Decode returns the events found in buf, in input order. Events that are
// neither key presses nor unrecognised input (focus reports, mouse, device
// attributes) are dropped.
func (d *Decoder) Decode(buf []byte) []tea.Msg {
	var msgs []tea.Msg
	for len(buf) > 0 {
		n, ev := d.events.Decode(buf)
		if n == 0 {
			break
		}
		buf = buf[n:]
		if msg := translate(ev); msg != nil {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

func translate(ev uv.Event) tea.Msg {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return keyMsg(ev)
	case uv.UnknownEvent:
		return UnknownSequenceMsg(ev)
	case uv.UnknownCsiEvent:
		return UnknownSequenceMsg(ev)
	case uv.UnknownSs3Event:
		return UnknownSequenceMsg(ev)
	}
	return nil
}

// navigationKeys are the keys whose shift and ctrl variants have their own
// tea.KeyType.
var navigationKeys = map[rune]tea.KeyType{
	uv.KeyUp:     tea.KeyUp,
	uv.KeyDown:   tea.KeyDown,
	uv.KeyRight:  tea.KeyRight,
	uv.KeyLeft:   tea.KeyLeft,
	uv.KeyHome:   tea.KeyHome,
	uv.KeyEnd:    tea.KeyEnd,
	uv.KeyPgUp:   tea.KeyPgUp,
	uv.KeyPgDown: tea.KeyPgDown,
	uv.KeyInsert: tea.KeyInsert,
	uv.KeyDelete: tea.KeyDelete,
}

var specialKeys = map[rune]tea.KeyType{
	uv.KeyEscape:    tea.KeyEsc,
	uv.KeyEnter:     tea.KeyEnter,
	uv.KeyTab:       tea.KeyTab,
	uv.KeyBackspace: tea.KeyBackspace,
}

// Modifier variants indexed by shift | ctrl<<1.
var modifiedKeys = map[tea.KeyType][4]tea.KeyType{
	tea.KeyUp:     {tea.KeyUp, tea.KeyShiftUp, tea.KeyCtrlUp, tea.KeyCtrlShiftUp},
	tea.KeyDown:   {tea.KeyDown, tea.KeyShiftDown, tea.KeyCtrlDown, tea.KeyCtrlShiftDown},
	tea.KeyRight:  {tea.KeyRight, tea.KeyShiftRight, tea.KeyCtrlRight, tea.KeyCtrlShiftRight},
	tea.KeyLeft:   {tea.KeyLeft, tea.KeyShiftLeft, tea.KeyCtrlLeft, tea.KeyCtrlShiftLeft},
	tea.KeyHome:   {tea.KeyHome, tea.KeyShiftHome, tea.KeyCtrlHome, tea.KeyCtrlShiftHome},
	tea.KeyEnd:    {tea.KeyEnd, tea.KeyShiftEnd, tea.KeyCtrlEnd, tea.KeyCtrlShiftEnd},
	tea.KeyPgUp:   {tea.KeyPgUp, tea.KeyPgUp, tea.KeyCtrlPgUp, tea.KeyCtrlPgUp},
	tea.KeyPgDown: {tea.KeyPgDown, tea.KeyPgDown, tea.KeyCtrlPgDown, tea.KeyCtrlPgDown},
}

func keyMsg(k uv.KeyPressEvent) tea.Msg {
	shift := k.Mod.Contains(uv.ModShift)
	alt := k.Mod.Contains(uv.ModAlt)
	ctrl := k.Mod.Contains(uv.ModCtrl)

	if base, ok := navigationKeys[k.Code]; ok {
		return withModifiers(base, shift, alt, ctrl)
	}

	switch {
	case k.Code == uv.KeyTab && shift:
		return tea.KeyMsg{Type: tea.KeyShiftTab, Alt: alt}
	case k.Code == uv.KeySpace && ctrl:
		return tea.KeyMsg{Type: tea.KeyCtrlAt, Alt: alt}
	case k.Code == uv.KeySpace:
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}
	}

	if ctrl {
		if key, ok := controlKey(k.Code); ok {
			return tea.KeyMsg{Type: key, Alt: alt}
		}
		return UnknownSequenceMsg(k.String())
	}
	if key, ok := specialKeys[k.Code]; ok {
		return tea.KeyMsg{Type: key, Alt: alt}
	}

	if k.Text != "" {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k.Text), Alt: alt}
	}
	// Alt-prefixed keys arrive without text.
	if k.Code < uv.KeyExtended && unicode.IsPrint(k.Code) {
		r := k.Code
		if shift {
			r = unicode.ToUpper(r)
			if k.ShiftedCode != 0 {
				r = k.ShiftedCode
			}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: alt}
	}
	return UnknownSequenceMsg(k.String())
}

// controlKey maps ctrl+<code> onto the C0 control key tea reports for it.
func controlKey(code rune) (tea.KeyType, bool) {
	c := unicode.ToUpper(code)
	if c < '@' || c > '_' {
		return 0, false
	}
	return tea.KeyType(c - '@'), true
}

// withModifiers picks the tea.KeyType variant for shift and ctrl. Alt is
// carried on the message.
func withModifiers(base tea.KeyType, shift, alt, ctrl bool) tea.KeyMsg {
	key := tea.KeyMsg{Type: base, Alt: alt}
	variants, ok := modifiedKeys[base]
	if !ok {
		return key
	}
	idx := 0
	if shift {
		idx |= 1
	}
	if ctrl {
		idx |= 2
	}
	key.Type = variants[idx]
	return key
}
