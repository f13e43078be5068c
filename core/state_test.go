package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	content string
	err     error
}

func (c *memClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.content = text
	return nil
}

func (c *memClipboard) Read() (string, error) {
	return c.content, c.err
}

func newTestEditor(t *testing.T, content string) (Editor, *[]Event) {
	t.Helper()

	e := New(&memClipboard{})
	e.SetContent([]byte(content))

	var events []Event
	e.Subscribe(func(event Event) {
		events = append(events, event)
	})
	e.FlushEvents()
	events = events[:0]

	return e, &events
}

func TestSetContentEmitsActiveEditorChanged(t *testing.T) {
	e := New(&memClipboard{})

	var events []Event
	e.Subscribe(func(event Event) { events = append(events, event) })

	e.SetContent([]byte("abc"))
	assert.Empty(t, events, "events wait for a flush")

	e.FlushEvents()
	assert.Equal(t, []Event{ActiveEditorChangedEvent{}}, events)
}

func TestUnsubscribe(t *testing.T) {
	e := New(nil)

	calls := 0
	unsubscribe := e.Subscribe(func(Event) { calls++ })
	e.SetContent([]byte("a"))
	e.FlushEvents()
	assert.Equal(t, 1, calls)

	unsubscribe()
	e.SetContent([]byte("b"))
	e.FlushEvents()
	assert.Equal(t, 1, calls)
}

func TestEventsEmittedDuringFlushAreDelivered(t *testing.T) {
	e, events := newTestEditor(t, "abc")

	e.Subscribe(func(event Event) {
		if _, ok := event.(DocumentChangedEvent); ok {
			e.SetSelection(CollapsedAt(Position{0, 4}))
		}
	})

	require.NoError(t, e.Edit(Range{Position{0, 3}, Position{0, 3}}, "d"))
	e.FlushEvents()

	require.Len(t, *events, 2)
	assert.IsType(t, DocumentChangedEvent{}, (*events)[0])
	assert.Equal(t, SelectionChangedEvent{Selection: CollapsedAt(Position{0, 4})}, (*events)[1])
}

func TestMoveExtendsOrCollapses(t *testing.T) {
	e, events := newTestEditor(t, "hello\nworld")

	require.NoError(t, e.Move(MotionRight, true))
	require.NoError(t, e.Move(MotionRight, true))
	assert.Equal(t, Selection{Anchor: Position{0, 0}, Active: Position{0, 2}}, e.GetSelection())
	assert.Equal(t, SelectionCharacter, e.GetSelectionStatus(Position{0, 1}))
	assert.Equal(t, SelectionNone, e.GetSelectionStatus(Position{0, 2}))

	require.NoError(t, e.Move(MotionDown, false))
	assert.Equal(t, CollapsedAt(Position{1, 2}), e.GetSelection())

	e.FlushEvents()
	assert.Len(t, *events, 3)
}

func TestMoveAtBoundaryIsSilent(t *testing.T) {
	e, events := newTestEditor(t, "abc")

	require.NoError(t, e.Move(MotionLeft, false))
	require.NoError(t, e.Move(MotionUp, false))
	assert.Equal(t, CollapsedAt(Position{0, 0}), e.GetSelection())

	e.FlushEvents()
	assert.Empty(t, *events, "a motion that does not move emits nothing")
}

func TestCancelSelection(t *testing.T) {
	e, _ := newTestEditor(t, "hello")
	e.SetSelection(Selection{Anchor: Position{0, 1}, Active: Position{0, 4}})

	e.CancelSelection()
	assert.Equal(t, CollapsedAt(Position{0, 4}), e.GetSelection())
}

func TestEditReplacesRange(t *testing.T) {
	e, events := newTestEditor(t, "hello world")
	e.SetSelection(CollapsedAt(Position{0, 11}))
	e.FlushEvents()
	*events = (*events)[:0]

	r := Range{Position{0, 0}, Position{0, 5}}
	require.NoError(t, e.Edit(r, "goodbye"))

	assert.Equal(t, "goodbye world", e.GetBuffer().GetCurrentContent())
	assert.Equal(t, CollapsedAt(Position{0, 13}), e.GetSelection())

	e.FlushEvents()
	require.NotEmpty(t, *events)
	assert.Equal(t, DocumentChangedEvent{Range: r, Text: "goodbye"}, (*events)[0])
}

func TestEditReadOnly(t *testing.T) {
	e, events := newTestEditor(t, "abc")
	e.SetReadOnly(true)

	err := e.Edit(Range{Position{0, 0}, Position{0, 1}}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReadOnly)

	var editorErr *EditorError
	require.True(t, errors.As(err, &editorErr))
	assert.Equal(t, ErrReadOnlyId, editorErr.ID())

	assert.Equal(t, "abc", e.GetBuffer().GetCurrentContent())
	e.FlushEvents()
	assert.Empty(t, *events)
}

func TestEditInvalidRange(t *testing.T) {
	e, _ := newTestEditor(t, "abc")

	err := e.Edit(Range{Position{0, 0}, Position{4, 0}}, "")
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestTransformPosition(t *testing.T) {
	deleteRange := Range{Position{1, 2}, Position{2, 3}}
	deleteEnd := Position{1, 2}

	tests := []struct {
		name string
		p    Position
		r    Range
		end  Position
		want Position
	}{
		{"before", Position{0, 4}, deleteRange, deleteEnd, Position{0, 4}},
		{"at start", Position{1, 2}, deleteRange, deleteEnd, Position{1, 2}},
		{"inside", Position{2, 0}, deleteRange, deleteEnd, Position{1, 2}},
		{"after on end row", Position{2, 5}, deleteRange, deleteEnd, Position{1, 4}},
		{"later row", Position{4, 1}, deleteRange, deleteEnd, Position{3, 1}},
		{"insertion at point", Position{0, 1}, Range{Position{0, 1}, Position{0, 1}}, Position{1, 0}, Position{1, 0}},
		{"after insertion", Position{0, 3}, Range{Position{0, 1}, Position{0, 1}}, Position{1, 0}, Position{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transformPosition(tt.p, tt.r, tt.end))
		})
	}
}

func TestPasteReplacesSelection(t *testing.T) {
	clipboard := &memClipboard{content: "XY"}
	e := New(clipboard)
	e.SetContent([]byte("abcdef"))
	e.SetSelection(Selection{Anchor: Position{0, 1}, Active: Position{0, 3}})

	content, err := e.Paste()
	require.NoError(t, err)

	assert.Equal(t, "XY", content)
	assert.Equal(t, "aXYdef", e.GetBuffer().GetCurrentContent())
}

func TestPasteWithoutClipboard(t *testing.T) {
	e := New(nil)

	_, err := e.Paste()
	assert.ErrorIs(t, err, ErrNoClipboard)

	_, err = e.CopySelection()
	assert.ErrorIs(t, err, ErrNoClipboard)
}

func TestCopySelection(t *testing.T) {
	clipboard := &memClipboard{}
	e := New(clipboard)
	e.SetContent([]byte("hello\nworld"))
	e.SetSelection(Selection{Anchor: Position{1, 3}, Active: Position{0, 3}})

	content, err := e.CopySelection()
	require.NoError(t, err)

	assert.Equal(t, "lo\nwor", content)
	assert.Equal(t, "lo\nwor", clipboard.content)
	assert.Equal(t, "hello\nworld", e.GetBuffer().GetCurrentContent())
}

func TestCopySelectionClipboardFailure(t *testing.T) {
	e := New(&memClipboard{err: errors.New("boom")})
	e.SetContent([]byte("abc"))

	_, err := e.CopySelection()
	assert.ErrorContains(t, err, "boom")
}

func TestUndoRedo(t *testing.T) {
	e, events := newTestEditor(t, "abc")
	e.SetSelection(CollapsedAt(Position{0, 3}))

	require.NoError(t, e.Edit(Range{Position{0, 3}, Position{0, 3}}, "d"))
	require.NoError(t, e.Edit(Range{Position{0, 4}, Position{0, 4}}, "e"))
	assert.Equal(t, "abcde", e.GetBuffer().GetCurrentContent())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abcd", e.GetBuffer().GetCurrentContent())
	assert.Equal(t, CollapsedAt(Position{0, 4}), e.GetSelection())

	require.NoError(t, e.Undo())
	assert.Equal(t, "abc", e.GetBuffer().GetCurrentContent())
	assert.ErrorIs(t, e.Undo(), ErrOldestChange)

	require.NoError(t, e.Redo())
	require.NoError(t, e.Redo())
	assert.Equal(t, "abcde", e.GetBuffer().GetCurrentContent())
	assert.ErrorIs(t, e.Redo(), ErrNewestChange)

	e.FlushEvents()
	documentChanges := 0
	for _, event := range *events {
		if _, ok := event.(DocumentChangedEvent); ok {
			documentChanges++
		}
	}
	assert.Equal(t, 6, documentChanges)
}

func TestEditAfterUndoDropsRedo(t *testing.T) {
	e, _ := newTestEditor(t, "a")

	require.NoError(t, e.Edit(Range{Position{0, 1}, Position{0, 1}}, "b"))
	require.NoError(t, e.Undo())
	require.NoError(t, e.Edit(Range{Position{0, 1}, Position{0, 1}}, "c"))

	assert.Equal(t, "ac", e.GetBuffer().GetCurrentContent())
	assert.ErrorIs(t, e.Redo(), ErrNewestChange)
}

func TestMaxHistory(t *testing.T) {
	e, _ := newTestEditor(t, "")
	e.SetMaxHistory(2)

	for _, s := range []string{"a", "b", "c"} {
		end := e.GetBuffer().EndPosition()
		require.NoError(t, e.Edit(Range{end, end}, s))
	}

	require.NoError(t, e.Undo())
	assert.Equal(t, "ab", e.GetBuffer().GetCurrentContent())
	assert.ErrorIs(t, e.Undo(), ErrOldestChange)
}

func TestScrollViewportFollowsCursor(t *testing.T) {
	e, _ := newTestEditor(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	state := e.GetState()
	state.ViewportHeight = 4
	e.SetState(state)

	e.SetSelection(CollapsedAt(Position{6, 0}))
	assert.Equal(t, 3, e.GetState().TopLine)

	e.SetSelection(CollapsedAt(Position{1, 0}))
	assert.Equal(t, 1, e.GetState().TopLine)
}

func TestReveal(t *testing.T) {
	e, _ := newTestEditor(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	state := e.GetState()
	state.ViewportHeight = 4
	e.SetState(state)
	e.SetSelection(CollapsedAt(Position{6, 0}))

	e.RevealCenter()
	assert.Equal(t, 4, e.GetState().TopLine)

	e.RevealTop()
	assert.Equal(t, 6, e.GetState().TopLine)

	e.ScrollPageUp()
	assert.Equal(t, 3, e.GetState().TopLine)

	e.ScrollPageUp()
	e.ScrollPageUp()
	assert.Equal(t, 0, e.GetState().TopLine)
	assert.Equal(t, Position{6, 0}, e.GetSelection().Active, "scrolling does not move the cursor")
}

func TestSaveSendsSignal(t *testing.T) {
	e, _ := newTestEditor(t, "abc")
	require.NoError(t, e.Edit(Range{Position{0, 0}, Position{0, 0}}, "x"))

	e.Save()

	signal := <-e.GetUpdateSignalChan()
	save, ok := signal.(SaveSignal)
	require.True(t, ok)
	assert.Equal(t, "xabc", save.Value())
	assert.False(t, e.GetBuffer().IsModified())
}

func TestQuitSendsSignal(t *testing.T) {
	e := New(nil)
	e.Quit()

	assert.IsType(t, QuitSignal{}, <-e.GetUpdateSignalChan())
	assert.True(t, e.GetState().Quit)
}

func TestDispatchMessageAndError(t *testing.T) {
	e := New(nil)

	e.DispatchMessage(MarkSetMessage)
	msg, ok := (<-e.GetUpdateSignalChan()).(MessageSignal)
	require.True(t, ok)
	id, value := msg.Value()
	assert.Equal(t, MarkSetMessage, id)
	assert.Equal(t, MarkSetMessage, value)

	e.DispatchError(ErrFailedToKillId, ErrReadOnly)
	errSignal, ok := (<-e.GetUpdateSignalChan()).(ErrorSignal)
	require.True(t, ok)
	errID, err := errSignal.Value()
	assert.Equal(t, ErrFailedToKillId, errID)
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestIsBoundary(t *testing.T) {
	assert.True(t, IsBoundary(ErrEndOfLine))
	assert.True(t, IsBoundary(NewEditorError(ErrEndOfBufferId, ErrEndOfBuffer)))
	assert.False(t, IsBoundary(ErrReadOnly))
}
