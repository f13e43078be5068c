package emacs

import (
	"fmt"

	"github.com/ionut-t/goemacs/core"
)

// BreakLine inserts a line break after the cursor without moving it, then
// moves to the start of the new line (C-j).
func (c *EditController) BreakLine() error {
	selection := c.editor.GetSelection()
	pos := selection.Active

	if err := c.editor.Edit(core.Range{Start: pos, End: pos}, "\n"); err != nil {
		return fmt.Errorf("break line: %w", err)
	}

	// The break goes after the cursor, so undo the push the insertion gave it
	anchor := c.editor.GetSelection().Anchor
	if selection.Anchor.Equal(pos) {
		anchor = pos
	}
	c.editor.SetSelection(core.Selection{Anchor: anchor, Active: pos})

	if err := c.mark.OnCursorMotion(core.MotionLineStart); err != nil {
		return err
	}
	return c.mark.OnCursorMotion(core.MotionDown)
}

// DeleteLine removes the current line including its line break (C-S-<backspace>).
func (c *EditController) DeleteLine() error {
	c.mark.Exit()

	buffer := c.editor.GetBuffer()
	pos := c.editor.GetSelection().Active
	lastRow := buffer.LineCount() - 1

	var r core.Range
	switch {
	case pos.Row < lastRow:
		r = core.Range{
			Start: core.Position{Row: pos.Row, Col: 0},
			End:   core.Position{Row: pos.Row + 1, Col: 0},
		}
	case pos.Row > 0:
		// Last line: take the preceding line break instead
		r = core.Range{
			Start: buffer.LineRange(pos.Row - 1).End,
			End:   buffer.LineRange(pos.Row).End,
		}
	default:
		r = buffer.LineRange(pos.Row)
	}

	if err := c.editor.Edit(r, ""); err != nil {
		return fmt.Errorf("delete line: %w", err)
	}

	// Stay in the same column on whichever line moved up
	row := min(pos.Row, buffer.LineCount()-1)
	c.editor.SetSelection(core.CollapsedAt(buffer.ClampPosition(core.Position{Row: row, Col: pos.Col})))

	return nil
}

// SelfInsert types text at the cursor, leaving mark mode first.
func (c *EditController) SelfInsert(text string) error {
	c.mark.Exit()

	pos := c.editor.GetSelection().Active
	if err := c.editor.Edit(core.Range{Start: pos, End: pos}, text); err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

// DeleteBackward deletes the selection, or the character before the cursor.
func (c *EditController) DeleteBackward() error {
	return c.deleteChar(core.MotionLeft)
}

// DeleteForward deletes the selection, or the character after the cursor.
func (c *EditController) DeleteForward() error {
	return c.deleteChar(core.MotionRight)
}

func (c *EditController) deleteChar(motion core.Motion) error {
	original := c.editor.GetSelection()
	selection := original

	if selection.IsEmpty() {
		if err := c.editor.Move(motion, true); err != nil {
			return err
		}
		selection = c.editor.GetSelection()
	}

	c.mark.Deactivate()
	if selection.IsEmpty() {
		return nil // Buffer edge
	}

	if err := c.editor.Edit(selection.Range(), ""); err != nil {
		c.editor.SetSelection(original)
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// Cancel leaves mark mode and reports the quit (C-g).
func (c *EditController) Cancel() {
	c.mark.Exit()
	c.editor.DispatchMessage(core.QuitMessage)
}
