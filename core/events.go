package core

// Event is a notification on the host event stream.
type Event any

// ActiveEditorChangedEvent is emitted when the active document is replaced.
type ActiveEditorChangedEvent struct{}

// DocumentChangedEvent is emitted after every successful edit, undo or redo.
type DocumentChangedEvent struct {
	Range Range  // Range replaced, in pre-edit coordinates
	Text  string // Replacement text
}

// SelectionChangedEvent is emitted whenever the anchor or the active end moves.
type SelectionChangedEvent struct {
	Selection Selection
}

type EventHandler func(Event)

type subscriber struct {
	id      int
	handler EventHandler
}

// Subscribe registers handler on the event stream. Events are queued while an
// operation runs and delivered, oldest first, by FlushEvents.
func (e *editor) Subscribe(handler EventHandler) (unsubscribe func()) {
	e.nextSubscriberID++
	id := e.nextSubscriberID
	e.subscribers = append(e.subscribers, subscriber{id: id, handler: handler})

	return func() {
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// FlushEvents delivers every pending event in FIFO order. Events emitted by
// handlers during the flush are delivered in the same pass.
func (e *editor) FlushEvents() {
	if e.flushing {
		return
	}
	e.flushing = true
	defer func() { e.flushing = false }()

	for len(e.pendingEvents) > 0 {
		event := e.pendingEvents[0]
		e.pendingEvents = e.pendingEvents[1:]

		subscribers := make([]subscriber, len(e.subscribers))
		copy(subscribers, e.subscribers)
		for _, s := range subscribers {
			s.handler(event)
		}
	}
}

func (e *editor) emit(event Event) {
	e.pendingEvents = append(e.pendingEvents, event)
}
