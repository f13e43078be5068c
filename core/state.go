package core

import (
	"fmt"
	"log"
)

// State represents the view-related state of the editor
type State struct {
	StatusLine string // Content of the status line (bottom line)
	Quit       bool   // Flag indicating if the editor should exit
	ReadOnly   bool   // Edits are rejected with ErrReadOnly

	// Viewport information
	TopLine        int // First line visible in the viewport (0-indexed)
	ViewportHeight int // Number of lines that can be displayed
	ViewportWidth  int // Number of columns that can be displayed
	AvailableWidth int // Width available for text rendering
}

// InitialState creates a default state
func InitialState() State {
	return State{
		StatusLine:     "",
		TopLine:        0,
		ViewportHeight: 24,
		ViewportWidth:  80,
		AvailableWidth: 80,
	}
}

// snapshot is one undo history entry
type snapshot struct {
	content   string
	selection Selection
}

// Concrete implementation of Editor
type editor struct {
	buffer Buffer
	state  State
	anchor Position // Selection anchor; the active end is the buffer cursor

	// IMPROVEMENT: Use a more efficient history mechanism (diffs, ring buffer)
	history    []snapshot // Snapshots of buffer content and selection
	historyPos int        // Current position in the history (-1 = initial state)
	maxHistory uint32     // Max number of history entries

	clipboard    Clipboard // Clipboard interface for copy/paste
	updateSignal chan Signal

	// Host event stream
	subscribers      []subscriber
	nextSubscriberID int
	pendingEvents    []Event
	flushing         bool
}

// New creates a new editor instance
func New(clipboard Clipboard) Editor {
	e := &editor{
		buffer:       NewBuffer(),
		state:        InitialState(),
		history:      []snapshot{},
		historyPos:   -1,   // Start before the first save
		maxHistory:   1000, // Default history size
		clipboard:    clipboard,
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}

	// Save the initial state as the first history entry
	e.SaveHistory()

	return e
}

// SetMaxHistory allows setting the maximum number of history entries.
// Default is 1000.
func (e *editor) SetMaxHistory(max uint32) {
	e.maxHistory = max
}

func (e *editor) GetBuffer() Buffer {
	return e.buffer
}

// SetBuffer replaces the active document. Subscribers receive an
// ActiveEditorChangedEvent on the next flush.
func (e *editor) SetBuffer(buffer Buffer) {
	e.buffer = buffer
	e.anchor = buffer.GetCursor().Position
	e.state.TopLine = 0

	// Reset history when buffer changes completely
	e.history = []snapshot{}
	e.historyPos = -1
	e.SaveHistory()
	e.ScrollViewport()

	e.emit(ActiveEditorChangedEvent{})
}

func (e *editor) SetContent(content []byte) {
	e.SetBuffer(NewBufferFromBytes(content))
}

func (e *editor) SetReadOnly(readOnly bool) {
	e.state.ReadOnly = readOnly
}

func (e *editor) IsReadOnly() bool {
	return e.state.ReadOnly
}

func (e *editor) Clipboard() Clipboard {
	return e.clipboard
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal // Return the read-only channel
}

func (e *editor) GetState() State {
	return e.state
}

func (e *editor) SetState(state State) {
	e.state = state
}

// UpdateStatus is a helper to update the status line
func (e *editor) UpdateStatus(status string) {
	e.state.StatusLine = status
}

// --- Selection ---

func (e *editor) GetSelection() Selection {
	return Selection{Anchor: e.anchor, Active: e.buffer.GetCursor().Position}
}

func (e *editor) SetSelection(selection Selection) {
	cursor := e.buffer.GetCursor()
	cursor.Position = selection.Active
	cursor.Preferred = selection.Active.Col
	e.applySelection(selection.Anchor, cursor)
}

// CancelSelection collapses the selection onto its active end
func (e *editor) CancelSelection() {
	e.applySelection(e.buffer.GetCursor().Position, e.buffer.GetCursor())
}

// Move applies motion to the active end. With extend the anchor stays put,
// otherwise the selection collapses onto the new position. Motions stopped by
// a line or buffer edge are successful no-ops.
func (e *editor) Move(motion Motion, extend bool) error {
	cursor := e.buffer.GetCursor()
	if err := motion.apply(&cursor, e.buffer, e.state); err != nil && !IsBoundary(err) {
		return err
	}

	anchor := e.anchor
	if !extend {
		anchor = cursor.Position
	}
	e.applySelection(anchor, cursor)
	return nil
}

// applySelection stores anchor and cursor, emitting a SelectionChangedEvent
// when either end actually moved.
func (e *editor) applySelection(anchor Position, cursor Cursor) {
	previous := e.GetSelection()

	e.buffer.SetCursor(cursor)
	e.anchor = e.buffer.ClampPosition(anchor)
	e.ScrollViewport()

	if current := e.GetSelection(); current != previous {
		e.emit(SelectionChangedEvent{Selection: current})
	}
}

func (e *editor) GetSelectionStatus(pos Position) SelectionType {
	selection := e.GetSelection()
	if selection.IsEmpty() {
		return SelectionNone
	}

	if selection.Range().Contains(pos) {
		return SelectionCharacter
	}

	return SelectionNone
}

// --- Edits ---

// Edit replaces r with text. The selection follows the edit: positions before
// r are untouched, positions inside r collapse to its start and positions
// after r shift by the size difference.
func (e *editor) Edit(r Range, text string) error {
	if e.state.ReadOnly {
		return NewEditorError(ErrReadOnlyId, ErrReadOnly)
	}

	r = NewRange(r.Start, r.End)
	previous := e.GetSelection()

	if err := e.buffer.DeleteRange(r); err != nil {
		return NewEditorError(ErrEditFailedId, err)
	}

	end, err := e.buffer.InsertText(r.Start, text)
	if err != nil {
		return NewEditorError(ErrEditFailedId, err)
	}

	anchor := transformPosition(previous.Anchor, r, end)
	active := transformPosition(previous.Active, r, end)

	e.buffer.SetCursor(Cursor{Position: active, Preferred: active.Col})
	e.anchor = e.buffer.ClampPosition(anchor)
	e.ScrollViewport()
	e.SaveHistory()

	e.emit(DocumentChangedEvent{Range: r, Text: text})
	if current := e.GetSelection(); current != previous {
		e.emit(SelectionChangedEvent{Selection: current})
	}

	return nil
}

// transformPosition maps p through an edit that replaced r with text ending at end.
func transformPosition(p Position, r Range, end Position) Position {
	switch {
	case p.Before(r.Start):
		return p
	case r.IsEmpty() && p.Equal(r.Start):
		// Text inserted at the cursor pushes it forward
		return end
	case p.Equal(r.Start):
		return p
	case p.Before(r.End):
		return r.Start
	case p.Row == r.End.Row:
		return Position{Row: end.Row, Col: end.Col + p.Col - r.End.Col}
	default:
		return Position{Row: p.Row + end.Row - r.End.Row, Col: p.Col}
	}
}

// Paste replaces the selection with the clipboard content.
func (e *editor) Paste() (string, error) {
	if e.clipboard == nil {
		return "", ErrNoClipboard
	}

	content, err := e.clipboard.Read()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}

	if err := e.Edit(e.GetSelection().Range(), content); err != nil {
		return "", err
	}

	return content, nil
}

// CopySelection writes the selected text to the clipboard and returns it.
func (e *editor) CopySelection() (string, error) {
	if e.clipboard == nil {
		return "", ErrNoClipboard
	}

	content := e.buffer.TextInRange(e.GetSelection().Range())
	if err := e.clipboard.Write(content); err != nil {
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	return content, nil
}

// --- Viewport ---

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	row := e.buffer.GetCursor().Position.Row

	if row < e.state.TopLine {
		e.state.TopLine = row
	} else if e.state.ViewportHeight > 0 && row >= e.state.TopLine+e.state.ViewportHeight {
		// Scroll down so cursor is on the last line of the viewport
		e.state.TopLine = row - e.state.ViewportHeight + 1
	}

	// Ensure TopLine doesn't go below 0
	if e.state.TopLine < 0 {
		e.state.TopLine = 0
	}
}

func (e *editor) RevealCenter() {
	row := e.buffer.GetCursor().Position.Row
	e.state.TopLine = max(row-e.state.ViewportHeight/2, 0)
}

func (e *editor) RevealTop() {
	e.state.TopLine = e.buffer.GetCursor().Position.Row
}

// ScrollPageUp scrolls one page up, keeping the previous top line visible as
// the last one. The cursor does not move.
func (e *editor) ScrollPageUp() {
	page := max(e.state.ViewportHeight-1, 1)
	e.state.TopLine = max(e.state.TopLine-page, 0)
}

// --- History Management (Simple Snapshot Implementation) ---

func (e *editor) SaveHistory() {
	current := snapshot{
		content:   e.buffer.GetCurrentContent(),
		selection: e.GetSelection(),
	}

	// If we used Undo, truncate the future history
	if e.historyPos < len(e.history)-1 {
		e.history = e.history[:e.historyPos+1]
	}

	// Avoid saving duplicate state if no changes occurred, but keep the latest selection
	if e.historyPos >= 0 && e.history[e.historyPos].content == current.content {
		e.history[e.historyPos] = current
		return
	}

	e.history = append(e.history, current)
	e.historyPos = len(e.history) - 1

	maxHistory := max(int(e.maxHistory), 1)

	// Limit history size
	if len(e.history) > maxHistory {
		// Remove the oldest entries
		e.history = e.history[len(e.history)-maxHistory:]
		e.historyPos = len(e.history) - 1
	}
}

func (e *editor) Undo() error {
	if e.historyPos <= 0 {
		return ErrOldestChange
	}

	e.historyPos--
	e.restore(e.history[e.historyPos])

	return nil
}

func (e *editor) Redo() error {
	if e.historyPos >= len(e.history)-1 {
		return ErrNewestChange
	}

	e.historyPos++
	e.restore(e.history[e.historyPos])

	return nil
}

// restore swaps in a history entry and reports it as a whole-document edit.
func (e *editor) restore(entry snapshot) {
	replaced := Range{End: e.buffer.EndPosition()}
	previous := e.GetSelection()

	e.buffer.SetContent([]byte(entry.content))
	e.buffer.SetCursor(Cursor{Position: entry.selection.Active, Preferred: entry.selection.Active.Col})
	e.anchor = e.buffer.ClampPosition(entry.selection.Anchor)
	e.ScrollViewport()

	e.emit(DocumentChangedEvent{Range: replaced, Text: entry.content})
	if current := e.GetSelection(); current != previous {
		e.emit(SelectionChangedEvent{Selection: current})
	}
}

// --- Lifecycle ---

func (e *editor) Save() {
	e.buffer.SaveContent()
	signal := SaveSignal{content: e.buffer.GetSavedContent()}

	select {
	case e.updateSignal <- signal:
	default:
		log.Println("Editor: Failed to send SaveSignal - channel full or not ready")
	}
}

func (e *editor) Quit() {
	e.state.Quit = true
	select {
	case e.updateSignal <- QuitSignal{}:
	default:
		log.Println("Editor: Failed to send QuitSignal - channel full or not ready")
	}
}
