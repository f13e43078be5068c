package emacs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionut-t/goemacs/core"
)

func TestExecuteUnknownCommand(t *testing.T) {
	emulator, _ := newTestEmulator(t, &memClipboard{}, "abc", 0, 0)

	err := emulator.Execute("C-z")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.ErrorContains(t, err, "C-z")
}

func TestHandleKeyTypesPrintableKeys(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "", 0, 0)

	for _, r := range "hi there" {
		require.NoError(t, emulator.HandleKey(core.KeyEvent{Rune: r}))
	}

	assert.Equal(t, []string{"hi there"}, lines(editor))
}

func TestHandleKeyRunsPrefixSequence(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "a\n\n\nb", 1, 0)

	require.NoError(t, emulator.HandleKey(ctrl('x')))
	assert.Equal(t, "C-x-", editor.GetState().StatusLine)

	require.NoError(t, emulator.HandleKey(ctrl('o')))
	assert.Equal(t, []string{"a", "", "b"}, lines(editor))
	assert.Empty(t, editor.GetState().StatusLine)
}

func TestHandleKeyReportsUndefinedKeys(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "abc", 0, 0)
	drainSignals(editor)

	require.NoError(t, emulator.HandleKey(ctrl('z')))

	signals := drainSignals(editor)
	require.Len(t, signals, 1)
	msg, ok := signals[0].(core.MessageSignal)
	require.True(t, ok)
	_, text := msg.Value()
	assert.Equal(t, "C-z is undefined", text)
	assert.Equal(t, []string{"abc"}, lines(editor))
}

func TestHandleKeyMarkStatus(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "abc", 0, 0)

	require.NoError(t, emulator.HandleKey(core.KeyEvent{Rune: ' ', Modifiers: core.ModCtrl}))
	assert.Equal(t, MarkStatus, editor.GetState().StatusLine)

	require.NoError(t, emulator.HandleKey(ctrl('f')))
	assert.Equal(t, core.Selection{Anchor: pos(0, 0), Active: pos(0, 1)}, editor.GetSelection())

	require.NoError(t, emulator.HandleKey(ctrl('g')))
	assert.Empty(t, editor.GetState().StatusLine)
	assert.True(t, editor.GetSelection().IsEmpty())
}

func TestDisabledEmulatorOnlyTypes(t *testing.T) {
	clipboard := &memClipboard{}
	emulator, editor := newTestEmulator(t, clipboard, "hello", 0, 0)

	require.NoError(t, emulator.Execute("C-SPC"))
	emulator.Enable(false)
	assert.False(t, emulator.Enabled())
	assert.False(t, emulator.Mark().IsActive())

	require.NoError(t, emulator.HandleKey(ctrl('k')))
	require.NoError(t, emulator.Execute("C-k"))
	assert.Equal(t, []string{"hello"}, lines(editor))
	assert.Empty(t, clipboard.content)

	require.NoError(t, emulator.HandleKey(core.KeyEvent{Rune: '>'}))
	assert.Equal(t, []string{">hello"}, lines(editor))

	emulator.Enable(true)
	require.NoError(t, emulator.HandleKey(ctrl('k')))
	assert.Equal(t, []string{">"}, lines(editor))
	assert.Equal(t, "hello", clipboard.content)
}

func TestSaveCommand(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "abc", 0, 3)
	drainSignals(editor)

	err := emulator.Execute("C-x_C-s")
	assert.ErrorIs(t, err, core.ErrNoChangesToSave)
	drainSignals(editor)

	require.NoError(t, emulator.InsertText("d"))
	require.NoError(t, emulator.Execute("C-x_C-s"))

	signals := drainSignals(editor)
	require.Len(t, signals, 1)
	save, ok := signals[0].(core.SaveSignal)
	require.True(t, ok)
	assert.Equal(t, "abcd", save.Value())
	assert.False(t, editor.GetBuffer().IsModified())
}

func TestQuitCommand(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "abc", 0, 0)
	drainSignals(editor)

	require.NoError(t, emulator.Execute("C-x_C-c"))

	assert.True(t, editor.GetState().Quit)
	assert.Contains(t, drainSignals(editor), core.Signal(core.QuitSignal{}))
}

func TestCloseStopsEventHandling(t *testing.T) {
	emulator, editor := newTestEmulator(t, &memClipboard{}, "hello\nworld", 0, 0)

	require.NoError(t, emulator.Execute("C-k"))
	emulator.Close()

	editor.SetContent([]byte("other"))
	editor.FlushEvents()

	assert.True(t, emulator.Edit().KillState().LastKillPosition.IsPresent())
}

func TestCommandsIncludeMotions(t *testing.T) {
	emulator, _ := newTestEmulator(t, &memClipboard{}, "", 0, 0)

	commands := emulator.Commands()
	for name := range motions {
		assert.Contains(t, commands, "emacs."+name)
	}
	assert.Contains(t, commands, "emacs.enterMarkMode")
	assert.Contains(t, commands, "emacs.exitMarkMode")
}
