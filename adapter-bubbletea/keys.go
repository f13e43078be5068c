package adapter_bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/goemacs/core"
)

// ctrlPunctuation maps the control codes terminals send for C-<punct>.
var ctrlPunctuation = map[tea.KeyType]rune{
	tea.KeyCtrlAt:           ' ', // C-SPC and C-@ send the same NUL byte
	tea.KeyCtrlBackslash:    '\\',
	tea.KeyCtrlCloseBracket: ']',
	tea.KeyCtrlCaret:        '^',
	tea.KeyCtrlUnderscore:   '_', // Also sent for C-/
}

// Convert Bubbletea key to core.KeyEvent
func convertBubbleKey(msg tea.KeyMsg) core.KeyEvent {
	key := core.KeyEvent{}

	if msg.Alt {
		key.Modifiers |= core.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			key.Rune = msg.Runes[0]
		}
	case tea.KeySpace:
		key.Rune = ' '
	case tea.KeyEnter:
		key.Key = core.KeyEnter
	case tea.KeyTab:
		key.Key = core.KeyTab
	case tea.KeyEsc:
		key.Key = core.KeyEscape
	case tea.KeyBackspace:
		key.Key = core.KeyBackspace
	case tea.KeyDelete:
		key.Key = core.KeyDelete
	case tea.KeyInsert:
		key.Key = core.KeyInsert
	case tea.KeyUp:
		key.Key = core.KeyUp
	case tea.KeyDown:
		key.Key = core.KeyDown
	case tea.KeyLeft:
		key.Key = core.KeyLeft
	case tea.KeyRight:
		key.Key = core.KeyRight
	case tea.KeyHome:
		key.Key = core.KeyHome
	case tea.KeyEnd:
		key.Key = core.KeyEnd
	case tea.KeyPgUp:
		key.Key = core.KeyPageUp
	case tea.KeyPgDown:
		key.Key = core.KeyPageDown
	default:
		if r, ok := ctrlPunctuation[msg.Type]; ok {
			key.Rune = r
			key.Modifiers |= core.ModCtrl
		} else if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			// TAB and RET share their codes with C-i and C-m and are matched above
			key.Rune = 'a' + rune(msg.Type-tea.KeyCtrlA)
			key.Modifiers |= core.ModCtrl
		}
	}

	return key
}
