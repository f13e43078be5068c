package core

import (
	"fmt"
	"strings"
)

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "RET",
	KeyTab:       "TAB",
	KeyBackspace: "<backspace>",
	KeyEscape:    "ESC",
	KeySpace:     "SPC",
	KeyUp:        "<up>",
	KeyDown:      "<down>",
	KeyLeft:      "<left>",
	KeyRight:     "<right>",
	KeyHome:      "<home>",
	KeyEnd:       "<end>",
	KeyPageUp:    "<prior>",
	KeyPageDown:  "<next>",
	KeyDelete:    "<delete>",
	KeyInsert:    "<insert>",
}

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// IsPrintable reports whether the key inserts its rune when typed.
func (k KeyEvent) IsPrintable() bool {
	return k.Rune != 0 && k.Modifiers&(ModCtrl|ModAlt) == 0
}

// String renders the key in Emacs notation: "C-k", "M-w", "C-SPC",
// "C-S-<backspace>", "<up>".
func (k KeyEvent) String() string {
	var sb strings.Builder

	if k.Modifiers&ModCtrl != 0 {
		sb.WriteString("C-")
	}
	if k.Modifiers&ModAlt != 0 {
		sb.WriteString("M-")
	}
	// Shift is implied by the rune itself for printable keys
	if k.Modifiers&ModShift != 0 && k.Rune == 0 {
		sb.WriteString("S-")
	}

	switch {
	case k.Rune == ' ':
		sb.WriteString("SPC")
	case k.Rune != 0:
		sb.WriteRune(k.Rune)
	default:
		name, ok := keyNames[k.Key]
		if !ok {
			name = fmt.Sprintf("<key-%d>", k.Key)
		}
		sb.WriteString(name)
	}

	return sb.String()
}

// ParseKey parses a single key in Emacs notation, the inverse of String.
func ParseKey(s string) (KeyEvent, error) {
	var k KeyEvent
	rest := s

	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C':
			k.Modifiers |= ModCtrl
		case 'M':
			k.Modifiers |= ModAlt
		case 'S':
			k.Modifiers |= ModShift
		default:
			return KeyEvent{}, fmt.Errorf("%w: unknown modifier in %q", ErrInvalidKey, s)
		}
		rest = rest[2:]
	}

	if rest == "SPC" {
		k.Rune = ' '
		return k, nil
	}

	for code, name := range keyNames {
		if name == rest {
			k.Key = code
			return k, nil
		}
	}

	runes := []rune(rest)
	if len(runes) != 1 {
		return KeyEvent{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	k.Rune = runes[0]

	return k, nil
}

// ParseKeySequence parses space separated keys such as "C-x C-o".
func ParseKeySequence(s string) ([]KeyEvent, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty key sequence", ErrInvalidKey)
	}

	keys := make([]KeyEvent, 0, len(fields))
	for _, field := range fields {
		k, err := ParseKey(field)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, nil
}
