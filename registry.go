package listeners

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// table maps an event name to the listener currently subscribed for it.
// A nil entry is left behind by Clear and means no listener.
type table map[string]*Listener

// Registry records, for each initialized Element, the single listener
// subscribed per event type. The records live in the Registry, not on the
// element itself, and are only mutated through Init, Set, Clear and Release.
//
// A Registry is not safe for concurrent use. It is meant to be driven from
// the host UI event loop.
type Registry struct {
	tables map[Element]table
	strict bool
	log    zerolog.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tables: make(map[Element]table),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init attaches a fresh, empty listener table to e.
//
// If e was already initialized, every listener still subscribed through the
// old table is removed from e before the table is reset. In strict mode
// (see WithStrictInit) ErrAlreadyInitialized is returned instead and nothing
// changes.
func (r *Registry) Init(e Element) error {
	if e == nil {
		return errors.WithStack(ErrNilElement)
	}
	if t, ok := r.tables[e]; ok {
		if r.strict {
			return errors.WithStack(ErrAlreadyInitialized)
		}
		n := r.unsubscribeAll(e, t)
		r.log.Debug().Str("element", label(e)).Int("removed", n).Msg("listener table reset")
	} else {
		r.log.Debug().Str("element", label(e)).Msg("listener table initialized")
	}
	r.tables[e] = make(table)
	return nil
}

// Initialized reports whether Init was called for e and e has not been
// released since.
func (r *Registry) Initialized(e Element) bool {
	_, ok := r.tables[e]
	return ok
}

// Set makes l the only listener managed by r for event on e.
// A previously set listener for that event is removed from e before l is
// added, so that both are never subscribed at the same time.
func (r *Registry) Set(e Element, event string, l *Listener) error {
	t, err := r.table(e)
	if err != nil {
		return errors.Wrapf(err, "setting %q listener", event)
	}
	if event == "" {
		return errors.WithStack(ErrEmptyEventName)
	}
	if l == nil {
		return errors.Wrapf(ErrNilListener, "setting %q listener", event)
	}

	old := t[event]
	if old != nil {
		e.RemoveEventListener(event, old)
	}
	t[event] = l
	e.AddEventListener(event, l)

	r.log.Debug().Str("element", label(e)).Str("event", event).Bool("replaced", old != nil).Msg("listener set")
	return nil
}

// On is a shorthand for Set with a new Listener wrapping fn.
func (r *Registry) On(e Element, event string, fn func(Event)) (*Listener, error) {
	l := NewListener(fn)
	if err := r.Set(e, event, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Clear removes from e the listener set for event, if any.
// Clearing an event that has no listener is a no-op.
func (r *Registry) Clear(e Element, event string) error {
	t, err := r.table(e)
	if err != nil {
		return errors.Wrapf(err, "clearing %q listener", event)
	}
	old := t[event]
	if old == nil {
		return nil
	}
	e.RemoveEventListener(event, old)
	t[event] = nil

	r.log.Debug().Str("element", label(e)).Str("event", event).Msg("listener cleared")
	return nil
}

// Listener returns the listener currently set for event on e, or nil.
func (r *Registry) Listener(e Element, event string) (*Listener, error) {
	t, err := r.table(e)
	if err != nil {
		return nil, errors.Wrapf(err, "looking up %q listener", event)
	}
	return t[event], nil
}

// Events returns the sorted names of the events that have a listener set on e.
func (r *Registry) Events(e Element) ([]string, error) {
	t, err := r.table(e)
	if err != nil {
		return nil, errors.Wrap(err, "listing events")
	}
	return t.active(), nil
}

// Release removes every listener set on e and forgets e altogether.
// Hosts should call it when the element is destroyed.
func (r *Registry) Release(e Element) error {
	t, err := r.table(e)
	if err != nil {
		return errors.Wrap(err, "releasing element")
	}
	n := r.unsubscribeAll(e, t)
	delete(r.tables, e)

	r.log.Debug().Str("element", label(e)).Int("removed", n).Msg("element released")
	return nil
}

func (r *Registry) table(e Element) (table, error) {
	if e == nil {
		return nil, errors.WithStack(ErrNilElement)
	}
	t, ok := r.tables[e]
	if !ok {
		return nil, errors.WithStack(ErrUninitialized)
	}
	return t, nil
}

func (r *Registry) unsubscribeAll(e Element, t table) int {
	events := t.active()
	for _, event := range events {
		e.RemoveEventListener(event, t[event])
		t[event] = nil
	}
	return len(events)
}

func (t table) active() []string {
	events := slices.DeleteFunc(maps.Keys(t), func(event string) bool {
		return t[event] == nil
	})
	slices.Sort(events)
	return events
}

func label(e Element) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}
