package emacs

import (
	"fmt"

	"github.com/ionut-t/goemacs/core"
)

// firstBlankLine returns the first line of the blank run containing row.
// It returns 0 when the run reaches the top of the buffer.
func firstBlankLine(buffer core.Buffer, row int) int {
	if row == 0 {
		return 0
	}

	line := row - 1
	for line > 0 && buffer.IsLineBlank(line) {
		line--
	}

	if buffer.IsLineBlank(line) {
		return line
	}
	return line + 1
}

// DeleteBlankLines collapses blank lines around the cursor (C-x C-o).
//
// On a non-blank line every blank line that follows it is deleted. On a blank
// line the surrounding run shrinks to a single blank line, or disappears
// entirely when it starts at the top of the buffer. The cursor ends up on the
// anchor, shifted by whatever was deleted before it.
func (c *EditController) DeleteBlankLines() error {
	buffer := c.editor.GetBuffer()
	selection := c.editor.GetSelection()
	row := selection.Active.Row

	anchor := selection.Anchor
	from := row + 1

	if buffer.IsLineBlank(row) {
		first := firstBlankLine(buffer, row)
		anchor = core.Position{Row: first, Col: 0}
		from = first + 1
		if first == 0 {
			from = 0 // The run reaches the top, nothing to keep it apart from
		}
	}

	c.mark.Exit()
	// Collapsing onto the anchor lets each edit carry it along
	c.editor.SetSelection(core.CollapsedAt(anchor))

	for from < buffer.LineCount()-1 && buffer.IsLineBlank(from) {
		r := core.Range{
			Start: core.Position{Row: from, Col: 0},
			End:   core.Position{Row: from + 1, Col: 0},
		}
		if err := c.editor.Edit(r, ""); err != nil {
			return fmt.Errorf("delete blank lines: %w", err)
		}
	}

	return nil
}
