// Package listeners keeps at most one listener per event type attached to a
// UI element, so that it can be replaced or cleared later on.
package listeners

// Event is what a host element hands to a Listener when an event fires.
type Event interface {
	Type() string
	Target() Element

	PreventDefault()
	DefaultPrevented() bool

	Native() interface{} // returns the native event object, if any
}

type eventObject struct {
	typ    string
	target Element

	defaultPrevented bool

	nativeObject interface{}
}

type defaultPreventer interface {
	PreventDefault()
}

func (e *eventObject) Type() string    { return e.typ }
func (e *eventObject) Target() Element { return e.target }
func (e *eventObject) PreventDefault() {
	if v, ok := e.nativeObject.(defaultPreventer); ok {
		v.PreventDefault()
	}
	e.defaultPrevented = true
}
func (e *eventObject) DefaultPrevented() bool { return e.defaultPrevented }
func (e *eventObject) Native() interface{}    { return e.nativeObject }

// NewEvent returns an Event of the given type. If nativeEvent has a
// PreventDefault method, it is called when the event is default-prevented.
func NewEvent(typ string, target Element, nativeEvent interface{}) Event {
	return &eventObject{typ, target, false, nativeEvent}
}
