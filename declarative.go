package listeners

// DefaultRegistry is the Registry used by the package-level functions.
var DefaultRegistry = NewRegistry()

// Init initializes e in DefaultRegistry.
func Init(e Element) error { return DefaultRegistry.Init(e) }

// Set sets the listener for event on e in DefaultRegistry.
func Set(e Element, event string, l *Listener) error { return DefaultRegistry.Set(e, event, l) }

// Clear clears the listener for event on e in DefaultRegistry.
func Clear(e Element, event string) error { return DefaultRegistry.Clear(e, event) }

// Release forgets e in DefaultRegistry after removing its listeners.
func Release(e Element) error { return DefaultRegistry.Release(e) }

// Listen returns a modifier setting l as the listener for event in r.
func Listen(r *Registry, event string, l *Listener) func(Element) error {
	return func(e Element) error {
		return r.Set(e, event, l)
	}
}

// Apply runs the modifiers against e in order and stops at the first error.
func Apply(e Element, modifiers ...func(Element) error) error {
	for _, mod := range modifiers {
		if err := mod(e); err != nil {
			return err
		}
	}
	return nil
}
