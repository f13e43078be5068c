package core

import (
	"bytes"
	"fmt"
	"strings"
)

// Buffer represents the text content being edited (Using Runes)
type Buffer interface {
	// Content access
	GetLines() []string              // Get lines as strings (for saving/display)
	GetLineRunes(lineNum int) []rune // Get specific line as runes (for editing)
	LineRuneCount(lineNum int) int   // Get rune count for a line
	GetSavedContent() string         // Get saved buffer content as a string
	GetCurrentContent() string       // Get entire buffer content as a string
	LineCount() int                  // Get number of lines
	IsLineBlank(lineNum int) bool    // Whether the line has no characters at all
	LineRange(lineNum int) Range     // Range from line start to line end (terminator excluded)
	EndPosition() Position           // Position after the last character of the buffer
	TextInRange(r Range) string      // Text covered by r, lines joined with '\n'

	// Modification
	InsertText(pos Position, text string) (Position, error) // Insert text (handles newlines), returns the end of the insertion
	DeleteRange(r Range) error                              // Delete text covered by r (handles crossing lines)

	// Cursor
	GetCursor() Cursor
	SetCursor(Cursor)
	ClampPosition(pos Position) Position // Clamp pos into the buffer

	IsModified() bool          // Check if buffer has been modified
	SaveContent()              // Save content
	SetContent(content []byte) // Set content (from file or other source)
	IsEmpty() bool             // Check if buffer is empty
}

// textBuffer implementation using runes for better unicode handling
type textBuffer struct {
	lines        [][]rune // Store lines as slices of runes
	cursor       Cursor
	savedContent string
}

// NewBuffer creates a new empty buffer
func NewBuffer() Buffer {
	return &textBuffer{
		lines:  [][]rune{{}}, // Start with one empty line
		cursor: Cursor{Position: Position{0, 0}, Preferred: 0},
	}
}

func NewBufferFromBytes(content []byte) Buffer {
	b := textBuffer{
		lines:  [][]rune{{}},
		cursor: Cursor{Position: Position{0, 0}, Preferred: 0},
	}

	b.SetContent(content)
	b.SaveContent()
	return &b
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// SetContent replaces the buffer content. Every '\n' terminates a line, so
// content ending in a newline yields a trailing empty line.
func (b *textBuffer) SetContent(content []byte) {
	runes := bytes.Runes(content)
	linesRune := make([][]rune, 0)
	currentLine := []rune{}

	for _, r := range runes {
		if r == '\n' {
			linesRune = append(linesRune, currentLine)
			currentLine = []rune{} // Start a new line
		} else {
			currentLine = append(currentLine, r)
		}
	}
	linesRune = append(linesRune, currentLine)

	b.lines = linesRune
	b.SetCursor(b.cursor)
}

func (b *textBuffer) GetLines() []string {
	linesStr := make([]string, len(b.lines))
	for i, r := range b.lines {
		linesStr[i] = string(r)
	}
	return linesStr
}

func (b *textBuffer) GetLineRunes(lineNum int) []rune {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return nil
	}
	return b.lines[lineNum]
}

func (b *textBuffer) LineRuneCount(lineNum int) int {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return 0
	}
	return len(b.lines[lineNum])
}

func (b *textBuffer) IsLineBlank(lineNum int) bool {
	return b.LineRuneCount(lineNum) == 0
}

func (b *textBuffer) LineRange(lineNum int) Range {
	return Range{
		Start: Position{Row: lineNum, Col: 0},
		End:   Position{Row: lineNum, Col: b.LineRuneCount(lineNum)},
	}
}

func (b *textBuffer) EndPosition() Position {
	last := len(b.lines) - 1
	return Position{Row: last, Col: len(b.lines[last])}
}

func (b *textBuffer) IsModified() bool {
	return b.savedContent != b.GetCurrentContent()
}

func (b *textBuffer) SaveContent() {
	b.savedContent = b.GetCurrentContent()
}

// GetCurrentContent returns the entire buffer content as a string
func (b *textBuffer) GetCurrentContent() string {
	return strings.Join(b.GetLines(), "\n")
}

// GetSavedContent returns the saved content as a string
func (b *textBuffer) GetSavedContent() string {
	return b.savedContent
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) GetCursor() Cursor {
	return b.cursor
}

// SetCursor sets the cursor position, validating and clamping it.
func (b *textBuffer) SetCursor(cursor Cursor) {
	cursor.Position = b.ClampPosition(cursor.Position)
	b.cursor = cursor
}

// ClampPosition moves pos into the buffer. The column may sit one past the
// last character of its line.
func (b *textBuffer) ClampPosition(pos Position) Position {
	if pos.Row < 0 {
		pos.Row = 0
	} else if pos.Row >= len(b.lines) {
		pos.Row = max(len(b.lines)-1, 0)
	}

	lineLen := b.LineRuneCount(pos.Row)
	if pos.Col < 0 {
		pos.Col = 0
	} else if pos.Col > lineLen {
		pos.Col = lineLen
	}

	return pos
}

func (b *textBuffer) validate(pos Position) error {
	if pos.Row < 0 || pos.Row >= len(b.lines) {
		return fmt.Errorf("%w: row %d out of bounds [0, %d)", ErrInvalidPosition, pos.Row, len(b.lines))
	}
	if pos.Col < 0 || pos.Col > len(b.lines[pos.Row]) {
		return fmt.Errorf("%w: col %d out of bounds [0, %d]", ErrInvalidPosition, pos.Col, len(b.lines[pos.Row]))
	}
	return nil
}

// TextInRange returns the text covered by r. Out of range positions are clamped.
func (b *textBuffer) TextInRange(r Range) string {
	start := b.ClampPosition(r.Start)
	end := b.ClampPosition(r.End)
	start, end = NormalizeSelection(start, end)

	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var contentBuilder strings.Builder
	contentBuilder.WriteString(string(b.lines[start.Row][start.Col:]))
	for row := start.Row + 1; row < end.Row; row++ {
		contentBuilder.WriteRune('\n')
		contentBuilder.WriteString(string(b.lines[row]))
	}
	contentBuilder.WriteRune('\n')
	contentBuilder.WriteString(string(b.lines[end.Row][:end.Col]))

	return contentBuilder.String()
}

// InsertText inserts text at pos and returns the position right after it.
func (b *textBuffer) InsertText(pos Position, text string) (Position, error) {
	if err := b.validate(pos); err != nil {
		return pos, fmt.Errorf("InsertText: %w", err)
	}
	if text == "" {
		return pos, nil
	}

	line := b.lines[pos.Row]
	parts := strings.Split(text, "\n")

	// Runes after the insertion point end up behind the last inserted part
	tail := make([]rune, len(line)-pos.Col)
	copy(tail, line[pos.Col:])

	head := make([]rune, pos.Col, pos.Col+len(parts[0]))
	copy(head, line[:pos.Col])

	if len(parts) == 1 {
		inserted := []rune(parts[0])
		newLine := append(head, inserted...)
		newLine = append(newLine, tail...)
		b.lines[pos.Row] = newLine
		return Position{Row: pos.Row, Col: pos.Col + len(inserted)}, nil
	}

	newLines := make([][]rune, 0, len(parts))
	newLines = append(newLines, append(head, []rune(parts[0])...))
	for _, part := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []rune(part))
	}
	last := []rune(parts[len(parts)-1])
	end := Position{Row: pos.Row + len(parts) - 1, Col: len(last)}
	newLines = append(newLines, append(last, tail...))

	finalLines := make([][]rune, 0, len(b.lines)+len(parts)-1)
	finalLines = append(finalLines, b.lines[:pos.Row]...)
	finalLines = append(finalLines, newLines...)
	finalLines = append(finalLines, b.lines[pos.Row+1:]...)
	b.lines = finalLines

	return end, nil
}

// DeleteRange removes the text covered by r, merging the first and last lines.
func (b *textBuffer) DeleteRange(r Range) error {
	start, end := NormalizeSelection(r.Start, r.End)
	if err := b.validate(start); err != nil {
		return fmt.Errorf("DeleteRange: %w", err)
	}
	if err := b.validate(end); err != nil {
		return fmt.Errorf("DeleteRange: %w", err)
	}
	if start.Equal(end) {
		return nil // Nothing to delete
	}

	merged := make([]rune, 0, start.Col+len(b.lines[end.Row])-end.Col)
	merged = append(merged, b.lines[start.Row][:start.Col]...)
	merged = append(merged, b.lines[end.Row][end.Col:]...)

	finalLines := make([][]rune, 0, len(b.lines)-(end.Row-start.Row))
	finalLines = append(finalLines, b.lines[:start.Row]...)
	finalLines = append(finalLines, merged)
	finalLines = append(finalLines, b.lines[end.Row+1:]...)
	b.lines = finalLines

	// Ensure buffer always has at least one (potentially empty) line
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}

	return nil
}
