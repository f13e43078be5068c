package core

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (character position in the line)
}

// Equal reports whether both positions point at the same character.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Before reports whether p comes strictly before other in document order.
func (p Position) Before(other Position) bool {
	return p.Row < other.Row || (p.Row == other.Row && p.Col < other.Col)
}

// Range is a half-open span [Start, End) of the buffer. Start never comes after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange builds a normalized range from two positions in any order.
func NewRange(a, b Position) Range {
	start, end := NormalizeSelection(a, b)
	return Range{Start: start, End: end}
}

func (r Range) IsEmpty() bool {
	return r.Start.Equal(r.End)
}

// Contains reports whether pos lies inside the range (end exclusive).
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.Start) && pos.Before(r.End)
}

// Selection is the anchor/active pair of the host editor.
// The active end is where the cursor is drawn; the anchor stays put while a
// selecting motion extends the selection.
type Selection struct {
	Anchor Position
	Active Position
}

// CollapsedAt returns an empty selection sitting at pos.
func CollapsedAt(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

func (s Selection) Start() Position {
	start, _ := NormalizeSelection(s.Anchor, s.Active)
	return start
}

func (s Selection) End() Position {
	_, end := NormalizeSelection(s.Anchor, s.Active)
	return end
}

func (s Selection) IsEmpty() bool {
	return s.Anchor.Equal(s.Active)
}

func (s Selection) Range() Range {
	return NewRange(s.Anchor, s.Active)
}

// NormalizeSelection ensures start is before end, line by line, then column by column.
func NormalizeSelection(p1, p2 Position) (start, end Position) {
	if p1.Row < p2.Row || (p1.Row == p2.Row && p1.Col <= p2.Col) {
		return p1, p2
	}
	return p2, p1
}

// SelectionType indicates the selection status of a position
type SelectionType int

const (
	SelectionNone      SelectionType = iota // Position is not selected
	SelectionCharacter                      // Position is inside the active selection
)

// Editor represents the host text editor the emulation layer drives
type Editor interface {
	// Buffer manipulation
	GetBuffer() Buffer
	SetBuffer(Buffer)  // Replace the active document
	SetContent([]byte) // Set buffer content from byte slice
	SetReadOnly(bool)
	IsReadOnly() bool

	// Selection
	GetSelection() Selection
	SetSelection(Selection)
	CancelSelection()                              // Collapse the selection onto its active end
	Move(motion Motion, extend bool) error         // Cursor motion; extend keeps the anchor
	GetSelectionStatus(pos Position) SelectionType // Get selection status of a position

	// Edits
	Edit(r Range, text string) error // Replace r with text
	Paste() (string, error)          // Insert clipboard content at the cursor
	CopySelection() (string, error)  // Write the selected text to the clipboard
	Clipboard() Clipboard

	// History management
	SetMaxHistory(max uint32)
	SaveHistory()
	Undo() error
	Redo() error

	// State Management
	GetState() State
	SetState(State)
	UpdateStatus(string)

	// Viewport
	ScrollViewport() // Keep the cursor inside the viewport
	RevealCenter()   // Scroll so the cursor line is vertically centered
	RevealTop()      // Scroll so the cursor line is the first visible line
	ScrollPageUp()   // Scroll one page up without moving the cursor

	// Host event stream
	Subscribe(handler EventHandler) (unsubscribe func())
	FlushEvents()

	GetUpdateSignalChan() <-chan Signal  // For UI updates
	Save()                               // Save the current buffer content
	Quit()                               // Signal to quit the editor
	DispatchError(id ErrorId, err error) // Dispatch errors to consumers
	DispatchMessage(args ...string)      // Dispatch (success) messages to consumers
	DispatchSignal(signal Signal)        // Dispatch signals to consumers
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
