package state

import "drawsignature/internal/render"

// PointerID identifies one finger (or the mouse) for the lifetime of a touch.
type PointerID int

type Action int

const (
	ActionDown Action = iota
	ActionPointerDown
	ActionMove
	ActionUp
	ActionPointerUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionPointerDown:
		return "pointer_down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionPointerUp:
		return "pointer_up"
	case ActionCancel:
		return "cancel"
	}
	return "unknown"
}

// Pointer is one contact point carried by an Event.
type Pointer struct {
	ID  PointerID
	Pos render.Point
}

// Event is a pointer event as delivered by the platform. Index selects the
// pointer that went down or up; move events update every listed pointer.
type Event struct {
	Action   Action
	Index    int
	Pointers []Pointer
}

func (e Event) changed() (Pointer, bool) {
	if e.Index < 0 || e.Index >= len(e.Pointers) {
		return Pointer{}, false
	}
	return e.Pointers[e.Index], true
}
