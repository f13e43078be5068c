package core

import (
	"errors"
	"log"
)

var (
	ErrEndOfBuffer     = errors.New("end of buffer")
	ErrStartOfBuffer   = errors.New("start of buffer")
	ErrEndOfLine       = errors.New("end of line")
	ErrStartOfLine     = errors.New("start of line")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidCommand  = errors.New("invalid command")
	ErrInvalidMotion   = errors.New("invalid motion")
	ErrInvalidKey      = errors.New("invalid key")
	ErrReadOnly        = errors.New("buffer is read-only")
	ErrNoClipboard     = errors.New("clipboard handler not set")
	ErrNoChangesToSave = errors.New("no changes to save")
	ErrOldestChange    = errors.New("already at oldest change")
	ErrNewestChange    = errors.New("already at newest change")
)

type ErrorId int

const (
	ErrEndOfBufferId ErrorId = iota
	ErrStartOfBufferId
	ErrEndOfLineId
	ErrStartOfLineId
	ErrInvalidPositionId
	ErrInvalidCommandId
	ErrInvalidMotionId
	ErrReadOnlyId
	ErrNoChangesToSaveId
	ErrFailedToSaveId
	ErrFailedToKillId
	ErrFailedToYankId
	ErrFailedToPasteId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrCopyFailedId
	ErrEditFailedId
)

// EditorError pairs an error with the id consumers use to classify it.
type EditorError struct {
	id  ErrorId
	err error
}

func NewEditorError(id ErrorId, err error) *EditorError {
	return &EditorError{id: id, err: err}
}

func (e *EditorError) ID() ErrorId {
	return e.id
}

func (e *EditorError) Error() string {
	return e.err.Error()
}

func (e *EditorError) Unwrap() error {
	return e.err
}

// IsBoundary reports whether err only signals that a motion hit the edge of
// the line or buffer. Such motions are treated as successful no-ops.
func IsBoundary(err error) bool {
	return errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfLine) ||
		errors.Is(err, ErrStartOfLine)
}

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
