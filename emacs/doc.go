// Package emacs layers Emacs editing behaviour on top of a core.Editor.
//
// The Emulator owns two controllers. The MarkController implements transient
// mark mode: C-SPC anchors the selection, cursor motions extend it, and a
// second C-SPC with no motion in between cancels it. The EditController
// implements kill/yank with kill-append, the C-l recenter cycle and blank
// line collapsing (C-x C-o).
//
// Both controllers react to the host event stream. Commands run to
// completion, then the Emulator flushes the queued host events so that the
// controllers observe the edits and selection changes the command caused.
package emacs
