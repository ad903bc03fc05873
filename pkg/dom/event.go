package dom

// StopPropagation prevents the event from reaching ancestors of the current
// target. It is a no-op for events that do not bubble.
func (e Event) StopPropagation() {
	if e.stop != nil {
		e.stop()
	}
}

// NewEvent returns an Event whose StopPropagation calls stop.
// Host implementations use it when dispatching.
func NewEvent(typ string, target Element, stop func()) Event {
	return Event{Type: typ, Target: target, stop: stop}
}

// Bubbles reports whether events of the given type propagate to ancestors.
func Bubbles(typ string) bool {
	switch typ {
	case "blur", "focus", "load", "unload", "scroll", "mouseenter", "mouseleave":
		return false
	default:
		return true
	}
}
