package emacs

import (
	"testing"

	"github.com/stretchr/testify/mock"

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

// MockClipboard is a mock implementation of the core.Clipboard interface
type MockClipboard struct {
	mock.Mock
}

func (m *MockClipboard) Write(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

func (m *MockClipboard) Read() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// newTestEmulator loads content with the cursor at (row, col) and delivers
// the setup events before returning.
func newTestEmulator(t *testing.T, clipboard core.Clipboard, content string, row, col int) (*Emulator, core.Editor) {
	t.Helper()

	editor := core.New(clipboard)
	editor.SetContent([]byte(content))

	emulator := New(editor)
	t.Cleanup(emulator.Close)

	editor.SetSelection(core.CollapsedAt(core.Position{Row: row, Col: col}))
	editor.FlushEvents()

	return emulator, editor
}

func lines(editor core.Editor) []string {
	return editor.GetBuffer().GetLines()
}

func cursor(editor core.Editor) core.Position {
	return editor.GetSelection().Active
}

// drainSignals returns every signal queued on the editor's update channel.
func drainSignals(editor core.Editor) []core.Signal {
	var signals []core.Signal
	for {
		select {
		case signal := <-editor.GetUpdateSignalChan():
			signals = append(signals, signal)
		default:
			return signals
		}
	}
}

func pos(row, col int) core.Position {
	return core.Position{Row: row, Col: col}
}
