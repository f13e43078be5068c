package adapter_bubbletea

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/goemacs/core"
)

type memClipboard struct {
	content string
}

func (c *memClipboard) Write(text string) error {
	c.content = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.content, nil
}

func newTestModel(t *testing.T, content string) (Model, *memClipboard) {
	t.Helper()

	clipboard := &memClipboard{}
	m := NewWithClipboard(clipboard, 40, 10)
	m.Focus()
	m.SetFileName("test.txt")
	m.SetContent(content)

	return m, clipboard
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()

	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestUpdateKillAndYank(t *testing.T) {
	m, clipboard := newTestModel(t, "hello\nworld")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	assert.Equal(t, "\nworld", m.GetCurrentContent())
	assert.Equal(t, "hello", clipboard.content)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "hello\nworld", m.GetCurrentContent())
}

func TestUpdatePrefixSequence(t *testing.T) {
	m, _ := newTestModel(t, "a\n\n\n\nb")
	m.GetEditor().SetSelection(core.CollapsedAt(core.Position{Row: 2}))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Contains(t, m.View(), "C-x-")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, "a\n\nb", m.GetCurrentContent())
}

func TestUpdateInsertsPastedText(t *testing.T) {
	m, _ := newTestModel(t, "")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pasted text")})

	assert.Equal(t, "pasted text", m.GetCurrentContent())
	assert.True(t, m.HasChanges())
}

func TestUpdateIgnoresKeysWhenBlurred(t *testing.T) {
	m, _ := newTestModel(t, "abc")
	m.Blur()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Equal(t, "abc", m.GetCurrentContent())
}

func TestUpdateReadOnly(t *testing.T) {
	m, _ := newTestModel(t, "abc")
	m.SetReadOnly(true)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})

	assert.Equal(t, "abc", m.GetCurrentContent())
	assert.Contains(t, m.View(), "%%")
}

func TestStatusLine(t *testing.T) {
	m, _ := newTestModel(t, "abc\ndef")

	view := m.View()
	assert.Contains(t, view, "test.txt")
	assert.Contains(t, view, "L1 C0")

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlN},
		tea.KeyMsg{Type: tea.KeyCtrlAt},
		tea.KeyMsg{Type: tea.KeyCtrlE},
	)

	view = m.View()
	assert.Contains(t, view, "L2 C3")
	assert.Contains(t, view, " Mark ")
}

func TestEchoAreaMessages(t *testing.T) {
	m, _ := newTestModel(t, "abc")

	updated, _ := m.Update(messageMsg{Text: "Mark set"})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Mark set")

	updated, _ = m.Update(ErrorMsg{ID: core.ErrReadOnlyId, Error: core.ErrReadOnly})
	m = updated.(Model)
	assert.Contains(t, m.View(), core.ErrReadOnly.Error())

	updated, _ = m.Update(clearMsg{})
	m = updated.(Model)
	assert.NotContains(t, m.View(), core.ErrReadOnly.Error())
}

func TestUndefinedKeyClearsOnNextKey(t *testing.T) {
	m, _ := newTestModel(t, "abc")
	m.DispatchMessage("C-z is undefined", messageDuration)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlF})

	assert.NotContains(t, m.View(), "undefined")
}

func TestTranslateSignal(t *testing.T) {
	tests := []struct {
		name   string
		signal core.Signal
		want   tea.Msg
	}{
		{"kill", core.NewKillSignal("abc", true), KillMsg{Content: "abc", Appended: true}},
		{"copy", core.NewCopySignal("abc"), CopyMsg{Content: "abc"}},
		{"yank", core.NewYankSignal("abc"), YankMsg{Content: "abc"}},
		{"undo", core.UndoSignal{}, UndoMsg{}},
		{"quit", core.QuitSignal{}, QuitMsg{}},
		{"unknown", struct{}{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateSignal(tt.signal))
		})
	}
}

func TestSignalsReachTheHost(t *testing.T) {
	m, _ := newTestModel(t, "hello\nworld")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})

	msg := m.listenForEditorUpdate()()
	signal, ok := msg.(signalMsg)
	require.True(t, ok)
	assert.Equal(t, KillMsg{Content: "hello"}, signal.msg)
}

func TestSaveSignalsContent(t *testing.T) {
	m, _ := newTestModel(t, "abc")

	m = press(t, m,
		tea.KeyMsg{Type: tea.KeyCtrlE},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}},
		tea.KeyMsg{Type: tea.KeyCtrlX},
		tea.KeyMsg{Type: tea.KeyCtrlS},
	)

	msg := m.listenForEditorUpdate()()
	assert.Equal(t, signalMsg{msg: SaveMsg{Content: "abcd"}}, msg)
	assert.False(t, m.HasChanges())
}

func TestUnknownCommandIsReported(t *testing.T) {
	m, _ := newTestModel(t, "abc")
	require.NoError(t, m.GetEmulator().Keymap().Bind("C-t", "no-such-command"))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Contains(t, m.View(), "unknown command")
}

func TestSystemClipboardFallback(t *testing.T) {
	clipboard := &systemClipboard{unsupported: true}

	require.NoError(t, clipboard.Write("kept"))
	text, err := clipboard.Read()

	require.NoError(t, err)
	assert.Equal(t, "kept", text)
}
