package core

type Signal any

// KillSignal reports text removed into the clipboard by a kill or cut.
type KillSignal struct {
	content  string
	appended bool
}

func NewKillSignal(content string, appended bool) KillSignal {
	return KillSignal{content: content, appended: appended}
}

// Value returns the clipboard content after the kill and whether it was appended.
func (k KillSignal) Value() (content string, appended bool) {
	return k.content, k.appended
}

type CopySignal struct {
	content string
}

func NewCopySignal(content string) CopySignal {
	return CopySignal{content: content}
}

func (c CopySignal) Value() string {
	return c.content
}

type YankSignal struct {
	content string
}

func NewYankSignal(content string) YankSignal {
	return YankSignal{content: content}
}

func (y YankSignal) Value() string {
	return y.content
}

type UndoSignal struct{}

func (u UndoSignal) Value() {}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type SaveSignal struct {
	content string
}

func (s SaveSignal) Value() string {
	return s.content
}

type QuitSignal struct{}

type ErrorSignal EditorError

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}
