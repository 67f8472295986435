// Package input defines the backend neutral input events the scenes consume.
// The SDL window and the terminal renderer both translate their native
// events into this form.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseEnter
	EventMouseLeave
)

// Key is a keyboard key the application binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyI
	KeyM
	KeyT
	KeyDelete
	KeyTab
	KeyEscape
	KeySpace
	KeyF12
)

var keyNames = map[Key]string{
	KeyA:      "A",
	KeyI:      "I",
	KeyM:      "M",
	KeyT:      "T",
	KeyDelete: "Delete",
	KeyTab:    "Tab",
	KeyEscape: "Escape",
	KeySpace:  "Space",
	KeyF12:    "F12",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Unknown"
}

// KeyFromRune maps a printable character to a Key.
func KeyFromRune(r rune) Key {
	switch r {
	case 'a', 'A':
		return KeyA
	case 'i', 'I':
		return KeyI
	case 'm', 'M':
		return KeyM
	case 't', 'T':
		return KeyT
	case ' ':
		return KeySpace
	}
	return KeyUnknown
}

// Event represents a processed input event. Mouse coordinates are in frame
// pixels.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Reset drops the previous frame's events.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the events collected since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (q *Queue) IsKeyPressed(k Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// QuitRequested reports whether a quit event was queued.
func (q *Queue) QuitRequested() bool {
	for _, e := range q.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}
