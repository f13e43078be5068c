package core

import "unicode"

// Cursor represents the current position for editing operations
type Cursor struct {
	Position  Position // Current position (row, column)
	Preferred int      // Preferred column for vertical movement (sticky column)
}

// --- Cursor Movement ---

// clampCol ensures the column stays within the valid range for the given line.
// The column may sit one past the last character.
func (c *Cursor) clampCol(buffer Buffer) {
	lineLen := buffer.LineRuneCount(c.Position.Row)
	if c.Position.Col > lineLen {
		c.Position.Col = lineLen
	}
	if c.Position.Col < 0 {
		c.Position.Col = 0
	}
}

// MoveLeft moves the cursor left by count characters within the current line.
func (c *Cursor) MoveLeft(buffer Buffer, count int) error {
	for range count {
		if c.Position.Col <= 0 {
			return ErrStartOfLine
		}
		c.Position.Col--
	}
	c.clampCol(buffer)
	c.Preferred = c.Position.Col
	return nil
}

// MoveRight moves the cursor right by count characters within the current line.
func (c *Cursor) MoveRight(buffer Buffer, count int) error {
	lineLen := buffer.LineRuneCount(c.Position.Row)
	for range count {
		// Allow moving *to* the position *after* the last logical char
		if c.Position.Col >= lineLen {
			return ErrEndOfLine
		}
		c.Position.Col++
	}
	c.clampCol(buffer)
	c.Preferred = c.Position.Col
	return nil
}

// MoveUp moves the cursor up by count lines, keeping the preferred column.
func (c *Cursor) MoveUp(buffer Buffer, count int) error {
	if c.Position.Row <= 0 {
		return ErrStartOfBuffer
	}
	c.Position.Row = max(c.Position.Row-count, 0)
	c.followPreferred(buffer)
	return nil
}

// MoveDown moves the cursor down by count lines, keeping the preferred column.
func (c *Cursor) MoveDown(buffer Buffer, count int) error {
	lastLine := buffer.LineCount() - 1
	if c.Position.Row >= lastLine {
		return ErrEndOfBuffer
	}
	c.Position.Row = min(c.Position.Row+count, lastLine)
	c.followPreferred(buffer)
	return nil
}

// followPreferred places the column as close to the sticky column as the new line allows.
func (c *Cursor) followPreferred(buffer Buffer) {
	lineLen := buffer.LineRuneCount(c.Position.Row)
	c.Position.Col = min(c.Preferred, lineLen)
	c.clampCol(buffer)
}

// MoveLeftOrUp moves left by count characters, wrapping onto the end of the previous line.
func (c *Cursor) MoveLeftOrUp(buffer Buffer, count int) error {
	for range count {
		if c.Position.Col > 0 {
			c.Position.Col--
			continue
		}
		if c.Position.Row <= 0 {
			c.Preferred = c.Position.Col
			return ErrStartOfBuffer
		}
		c.Position.Row--
		c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveRightOrDown moves right by count characters, wrapping onto the start of the next line.
func (c *Cursor) MoveRightOrDown(buffer Buffer, count int) error {
	for range count {
		if c.Position.Col < buffer.LineRuneCount(c.Position.Row) {
			c.Position.Col++
			continue
		}
		if c.Position.Row >= buffer.LineCount()-1 {
			c.Preferred = c.Position.Col
			return ErrEndOfBuffer
		}
		c.Position.Row++
		c.Position.Col = 0
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveToLineStart moves the cursor to the start of the current line (col 0)
func (c *Cursor) MoveToLineStart() {
	c.Position.Col = 0
	c.Preferred = 0
}

// MoveToAfterLineEnd moves the cursor *after* the last character of the current line
func (c *Cursor) MoveToAfterLineEnd(buffer Buffer) {
	c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	c.Preferred = c.Position.Col
}

// MoveToFirstNonBlank moves the cursor to the first non-whitespace character
func (c *Cursor) MoveToFirstNonBlank(buffer Buffer) {
	line := buffer.GetLineRunes(c.Position.Row)
	firstNonBlank := 0
	for i, r := range line {
		if !unicode.IsSpace(r) {
			firstNonBlank = i
			break
		}
	}

	c.Position.Col = firstNonBlank
	c.Preferred = c.Position.Col
}

// MoveToBufferStart moves the cursor to the start of the buffer
func (c *Cursor) MoveToBufferStart() {
	c.Position.Row = 0
	c.Position.Col = 0
	c.Preferred = 0
}

// MoveToBufferEnd moves the cursor after the last character of the buffer
func (c *Cursor) MoveToBufferEnd(buffer Buffer) {
	c.Position.Row = max(buffer.LineCount()-1, 0)
	c.MoveToAfterLineEnd(buffer)
}

// --- Word Movement (Using Unicode and Runes) ---

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// runeAt returns the rune under pos and false when pos sits on a line end.
func runeAt(buffer Buffer, pos Position) (rune, bool) {
	line := buffer.GetLineRunes(pos.Row)
	if pos.Col < 0 || pos.Col >= len(line) {
		return 0, false
	}
	return line[pos.Col], true
}

// MoveWordForward moves past the end of the next word count times.
// Non-word characters and line breaks before the word are skipped.
func (c *Cursor) MoveWordForward(buffer Buffer, count int) error {
	start := c.Position
	for range count {
		// Skip separators (including line ends) up to the next word
		for {
			r, ok := runeAt(buffer, c.Position)
			if ok && isWordChar(r) {
				break
			}
			if err := c.MoveRightOrDown(buffer, 1); err != nil {
				return c.boundary(start, err)
			}
		}
		// Skip the word itself
		for {
			r, ok := runeAt(buffer, c.Position)
			if !ok || !isWordChar(r) {
				break
			}
			c.Position.Col++
		}
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveWordBackward moves to the start of the previous word count times.
func (c *Cursor) MoveWordBackward(buffer Buffer, count int) error {
	start := c.Position
	for range count {
		// Skip separators before the cursor
		for {
			if c.Position.Col > 0 {
				r, _ := runeAt(buffer, Position{c.Position.Row, c.Position.Col - 1})
				if isWordChar(r) {
					break
				}
			}
			if err := c.MoveLeftOrUp(buffer, 1); err != nil {
				return c.boundary(start, err)
			}
		}
		// Skip back over the word
		for c.Position.Col > 0 {
			r, _ := runeAt(buffer, Position{c.Position.Row, c.Position.Col - 1})
			if !isWordChar(r) {
				break
			}
			c.Position.Col--
		}
	}
	c.Preferred = c.Position.Col
	return nil
}

// boundary reports err only when the motion could not move at all; a motion
// that advanced before reaching the buffer edge stops there silently.
func (c *Cursor) boundary(start Position, err error) error {
	c.Preferred = c.Position.Col
	if c.Position.Equal(start) {
		return err
	}
	return nil
}
