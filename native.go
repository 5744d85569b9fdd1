package listeners

// Element is the capability a host UI node must provide for its listeners to
// be managed by a Registry.
//
// Implementations are used as map keys to identify elements, so they must be
// comparable, typically a pointer type. Removing a listener that is not
// subscribed must be a no-op.
type Element interface {
	AddEventListener(event string, l *Listener)
	RemoveEventListener(event string, l *Listener)
}

// Listener is a callback subscribed to an event on an Element.
// A Listener is identified by its address: the same *Listener value must be
// passed to RemoveEventListener as was given to AddEventListener.
type Listener struct {
	Fn func(Event)
}

// NewListener wraps fn into a Listener.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn}
}

// Handle invokes the listener callback. A nil callback does nothing.
func (l *Listener) Handle(evt Event) {
	if l == nil || l.Fn == nil {
		return
	}
	l.Fn(evt)
}
