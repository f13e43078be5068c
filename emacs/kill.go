package emacs

import (
	"fmt"
	"strings"

	"github.com/ionut-t/goemacs/core"
	"github.com/samber/mo"
)

// KillState decides whether the next kill appends to the clipboard.
type KillState struct {
	// Start of the most recent kill; cleared by any other document edit.
	LastKillPosition mo.Option[core.Position]
	// Set by a kill so its own document change does not clear LastKillPosition.
	JustKilled bool
}

// EditController owns the kill, recenter and blank line commands.
type EditController struct {
	editor   core.Editor
	mark     *MarkController
	kill     KillState
	recenter RecenterPosition
}

func NewEditController(editor core.Editor, mark *MarkController) *EditController {
	return &EditController{
		editor:   editor,
		mark:     mark,
		kill:     KillState{LastKillPosition: mo.None[core.Position]()},
		recenter: RecenterMiddle,
	}
}

func (c *EditController) KillState() KillState {
	return c.kill
}

func (c *EditController) RecenterState() RecenterPosition {
	return c.recenter
}

// Kill removes the rest of the current line. A line with content loses only
// its content; a blank remainder also loses the line break. Consecutive kills
// from the same position accumulate in the clipboard.
func (c *EditController) Kill() error {
	c.mark.Exit()

	buffer := c.editor.GetBuffer()
	start := c.editor.GetSelection().Active
	onLastLine := start.Row >= buffer.LineCount()-1

	end := buffer.LineRange(start.Row).End
	if !onLastLine {
		end = core.Position{Row: start.Row + 1, Col: 0}

		text := buffer.TextInRange(core.Range{Start: start, End: end})
		if strings.TrimSpace(text) != "" {
			// Keep the line break
			end = buffer.LineRange(start.Row).End
		}
	}

	if start.Equal(end) {
		return nil // End of buffer, nothing to kill
	}

	appendKill := false
	if last, ok := c.kill.LastKillPosition.Get(); ok && last.Equal(start) {
		appendKill = true
	}

	c.editor.SetSelection(core.Selection{Anchor: start, Active: end})
	if err := c.Cut(appendKill); err != nil {
		return fmt.Errorf("kill: %w", err)
	}

	c.kill.JustKilled = true
	c.kill.LastKillPosition = mo.Some(start)

	return nil
}

// Cut deletes the selection into the clipboard, appending to the current
// clipboard content when appendClipboard is set.
func (c *EditController) Cut(appendClipboard bool) error {
	selection := c.editor.GetSelection()
	if selection.IsEmpty() {
		c.mark.Exit()
		return nil
	}

	clipboard := c.editor.Clipboard()
	if clipboard == nil {
		return core.ErrNoClipboard
	}

	content := c.editor.GetBuffer().TextInRange(selection.Range())
	if appendClipboard {
		previous, err := clipboard.Read()
		if err != nil {
			return fmt.Errorf("cut: failed to read clipboard: %w", err)
		}
		content = previous + content
	}

	if err := c.editor.Edit(selection.Range(), ""); err != nil {
		return fmt.Errorf("cut: %w", err)
	}

	if err := clipboard.Write(content); err != nil {
		return fmt.Errorf("cut: failed to write clipboard: %w", err)
	}

	c.mark.Exit()
	c.editor.DispatchSignal(core.NewKillSignal(content, appendClipboard))

	return nil
}

// Copy writes the selection to the clipboard and leaves mark mode.
func (c *EditController) Copy() error {
	content, err := c.editor.CopySelection()
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}

	c.mark.Exit()
	c.editor.DispatchSignal(core.NewCopySignal(content))

	return nil
}

// Yank inserts the clipboard content at the cursor and leaves mark mode.
func (c *EditController) Yank() error {
	c.kill.JustKilled = false

	content, err := c.editor.Paste()
	if err != nil {
		return fmt.Errorf("yank: %w", err)
	}

	c.mark.Exit()
	c.editor.DispatchSignal(core.NewYankSignal(content))

	return nil
}

// Undo reverts the last edit. It does not restore the kill state from before
// a kill; the undo edit is itself a document change and clears the append
// position, so the next kill starts a fresh clipboard entry.
func (c *EditController) Undo() error {
	if err := c.editor.Undo(); err != nil {
		return fmt.Errorf("undo: %w", err)
	}

	c.editor.DispatchSignal(core.UndoSignal{})

	return nil
}

// --- host events ---

func (c *EditController) OnDocumentChanged() {
	if !c.kill.JustKilled {
		c.kill.LastKillPosition = mo.None[core.Position]()
	}
	c.kill.JustKilled = false
}

func (c *EditController) OnSelectionChanged() {
	c.recenter = RecenterMiddle
}

func (c *EditController) OnActiveEditorChanged() {
	c.kill = KillState{LastKillPosition: mo.None[core.Position]()}
}
