package emacs

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/ionut-t/goemacs/core"
)

var ErrUnknownCommand = errors.New("unknown command")

// MarkStatus is shown on the status line while mark mode is active.
const MarkStatus = "Mark"

// command is a named action together with the error id used to report its failures.
type command struct {
	run   func() error
	errID core.ErrorId
}

// motions are the tracked cursor motion commands, all of them mark aware.
var motions = map[string]core.Motion{
	"cursorUp":        core.MotionUp,
	"cursorDown":      core.MotionDown,
	"cursorLeft":      core.MotionLeft,
	"cursorRight":     core.MotionRight,
	"cursorHome":      core.MotionWrappedLineStart,
	"cursorEnd":       core.MotionLineEnd,
	"cursorWordLeft":  core.MotionWordLeft,
	"cursorWordRight": core.MotionWordRight,
	"cursorPageDown":  core.MotionPageDown,
	"cursorPageUp":    core.MotionPageUp,
	"cursorTop":       core.MotionTop,
	"cursorBottom":    core.MotionBottom,
}

// Emulator runs Emacs commands against an editor.
type Emulator struct {
	editor      core.Editor
	mark        *MarkController
	edit        *EditController
	keymap      *Keymap
	commands    map[string]command
	enabled     bool
	unsubscribe func()
}

func New(editor core.Editor) *Emulator {
	mark := NewMarkController(editor)
	e := &Emulator{
		editor:  editor,
		mark:    mark,
		edit:    NewEditController(editor, mark),
		keymap:  NewKeymap(),
		enabled: true,
	}

	e.registerCommands()
	e.unsubscribe = editor.Subscribe(e.onEvent)

	return e
}

func (e *Emulator) registerCommands() {
	simple := func(fn func()) func() error {
		return func() error {
			fn()
			return nil
		}
	}

	e.commands = map[string]command{
		"C-g":     {simple(e.edit.Cancel), core.ErrInvalidCommandId},
		"C-k":     {e.edit.Kill, core.ErrFailedToKillId},
		"C-w":     {func() error { return e.edit.Cut(false) }, core.ErrFailedToKillId},
		"M-w":     {e.edit.Copy, core.ErrCopyFailedId},
		"C-y":     {e.edit.Yank, core.ErrFailedToYankId},
		"C-x_C-o": {e.edit.DeleteBlankLines, core.ErrEditFailedId},
		"C-x_u":   {e.edit.Undo, core.ErrUndoFailedId},
		"C-/":     {e.edit.Undo, core.ErrUndoFailedId},
		"C-j":     {e.edit.BreakLine, core.ErrEditFailedId},
		"C-S_bs":  {e.edit.DeleteLine, core.ErrEditFailedId},
		"C-l":     {simple(e.edit.Recenter), core.ErrInvalidCommandId},
		"C-SPC":   {simple(e.mark.EnterOrToggle), core.ErrInvalidCommandId},

		"RET":     {func() error { return e.edit.SelfInsert("\n") }, core.ErrEditFailedId},
		"TAB":     {func() error { return e.edit.SelfInsert("\t") }, core.ErrEditFailedId},
		"DEL":     {e.edit.DeleteBackward, core.ErrEditFailedId},
		"C-d":     {e.edit.DeleteForward, core.ErrEditFailedId},
		"C-x_C-s": {e.save, core.ErrFailedToSaveId},
		"C-x_C-c": {simple(e.editor.Quit), core.ErrInvalidCommandId},

		"emacs.enterMarkMode": {simple(e.mark.EnterOrToggle), core.ErrInvalidCommandId},
		"emacs.exitMarkMode":  {simple(e.mark.Exit), core.ErrInvalidCommandId},
	}

	for name, motion := range motions {
		e.commands["emacs."+name] = command{
			run:   func() error { return e.mark.OnCursorMotion(motion) },
			errID: core.ErrInvalidMotionId,
		}
	}
}

func (e *Emulator) Editor() core.Editor {
	return e.editor
}

func (e *Emulator) Mark() *MarkController {
	return e.mark
}

func (e *Emulator) Edit() *EditController {
	return e.edit
}

func (e *Emulator) Keymap() *Keymap {
	return e.keymap
}

// Commands returns every command name Execute accepts, sorted.
func (e *Emulator) Commands() []string {
	return slices.Sorted(maps.Keys(e.commands))
}

// Enable turns the emulation on or off. A disabled emulator ignores commands.
func (e *Emulator) Enable(enabled bool) {
	e.enabled = enabled
	if !enabled {
		e.keymap.Reset()
		e.mark.Exit()
		e.editor.FlushEvents()
		e.refreshStatus()
	}
}

func (e *Emulator) Enabled() bool {
	return e.enabled
}

// Close detaches the emulator from the editor's event stream.
func (e *Emulator) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// Execute runs the named command, then delivers the host events it caused.
// Failures are returned and also dispatched as error signals.
func (e *Emulator) Execute(name string) error {
	if !e.enabled {
		return nil
	}

	cmd, ok := e.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	return e.run(cmd)
}

func (e *Emulator) run(cmd command) error {
	// Deliver anything queued outside a command (e.g. a new document) first
	e.editor.FlushEvents()

	err := cmd.run()
	e.editor.FlushEvents()
	e.refreshStatus()

	if err != nil {
		id := cmd.errID
		var editorErr *core.EditorError
		if errors.As(err, &editorErr) {
			id = editorErr.ID()
		}
		e.editor.DispatchError(id, err)
	}

	return err
}

// HandleKey resolves key through the keymap and runs the bound command.
// Unbound printable keys are inserted as text.
func (e *Emulator) HandleKey(key core.KeyEvent) error {
	if !e.enabled {
		// Plain host typing
		if key.IsPrintable() {
			return e.InsertText(string(key.Rune))
		}
		return nil
	}

	name, pending, ok := e.keymap.Resolve(key)
	switch {
	case pending:
		e.editor.UpdateStatus(e.keymap.Pending() + "-")
		return nil
	case ok:
		return e.Execute(name)
	case key.IsPrintable() && e.keymap.LastSequence() == key.String():
		return e.InsertText(string(key.Rune))
	}

	e.refreshStatus()
	e.editor.DispatchMessage(fmt.Sprintf("%s is undefined", e.keymap.LastSequence()))
	return nil
}

// InsertText types text as one edit, e.g. a bracketed paste from the terminal.
func (e *Emulator) InsertText(text string) error {
	if text == "" {
		return nil
	}

	if !e.enabled {
		pos := e.editor.GetSelection().Active
		err := e.editor.Edit(core.Range{Start: pos, End: pos}, text)
		e.editor.FlushEvents()
		return err
	}

	return e.run(command{
		run:   func() error { return e.edit.SelfInsert(text) },
		errID: core.ErrEditFailedId,
	})
}

func (e *Emulator) save() error {
	if !e.editor.GetBuffer().IsModified() {
		return core.NewEditorError(core.ErrNoChangesToSaveId, core.ErrNoChangesToSave)
	}

	e.editor.Save()

	return nil
}

func (e *Emulator) refreshStatus() {
	status := ""
	if e.mark.IsActive() {
		status = MarkStatus
	}
	e.editor.UpdateStatus(status)
}

func (e *Emulator) onEvent(event core.Event) {
	switch event.(type) {
	case core.ActiveEditorChangedEvent:
		e.mark.OnActiveEditorChanged()
		e.edit.OnActiveEditorChanged()
		e.keymap.Reset()
	case core.DocumentChangedEvent:
		e.edit.OnDocumentChanged()
	case core.SelectionChangedEvent:
		e.edit.OnSelectionChanged()
	}
}
