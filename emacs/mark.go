package emacs

import "github.com/ionut-t/goemacs/core"

// MarkState tracks transient mark mode. HasMoved is only meaningful while
// Active is set.
type MarkState struct {
	Active   bool
	HasMoved bool
}

// MarkController decides whether cursor motions extend or collapse the selection.
type MarkController struct {
	editor core.Editor
	state  MarkState
}

func NewMarkController(editor core.Editor) *MarkController {
	return &MarkController{editor: editor}
}

func (m *MarkController) State() MarkState {
	return m.state
}

func (m *MarkController) IsActive() bool {
	return m.state.Active
}

func (m *MarkController) HasMoved() bool {
	return m.state.Active && m.state.HasMoved
}

// EnterOrToggle sets the mark at the cursor. Pressed again before any motion
// it deactivates mark mode instead.
func (m *MarkController) EnterOrToggle() {
	if m.state.Active && !m.state.HasMoved {
		m.state.Active = false
		m.editor.DispatchMessage(core.MarkDeactivatedMessage)
		return
	}

	m.editor.SetSelection(core.CollapsedAt(m.editor.GetSelection().Active))
	m.state = MarkState{Active: true}
	m.editor.DispatchMessage(core.MarkSetMessage)
}

// Exit drops the selection and leaves mark mode. Safe to call when inactive.
func (m *MarkController) Exit() {
	m.editor.CancelSelection()
	m.state.Active = false
}

// Deactivate leaves mark mode but keeps the current selection.
func (m *MarkController) Deactivate() {
	m.state.Active = false
}

// OnCursorMotion performs motion, extending the selection while the mark is active.
func (m *MarkController) OnCursorMotion(motion core.Motion) error {
	if m.state.Active {
		m.state.HasMoved = true
	}

	return m.editor.Move(motion, m.state.Active)
}

func (m *MarkController) OnActiveEditorChanged() {
	m.state = MarkState{}
}
