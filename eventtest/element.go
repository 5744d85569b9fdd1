// Package eventtest provides a host Element double for testing code that
// manages listeners through a listeners.Registry.
package eventtest

import (
	"fmt"

	"github.com/atdiar/listeners"
)

// OpKind is the kind of subscription change recorded by an Element.
type OpKind int

const (
	Add OpKind = iota
	Remove
)

func (k OpKind) String() string {
	if k == Add {
		return "add"
	}
	return "remove"
}

// Op is one AddEventListener or RemoveEventListener call.
type Op struct {
	Kind     OpKind
	Event    string
	Listener *listeners.Listener
}

// Element is an in-memory listeners.Element. It records every subscription
// change and dispatches events synchronously.
//
// Unlike a DOM node, adding the same listener twice subscribes it twice,
// so that redundant subscriptions show up in tests.
type Element struct {
	Name string
	Ops  []Op

	subs map[string][]*listeners.Listener
}

// NewElement returns an Element with no subscriptions.
func NewElement(name string) *Element {
	return &Element{Name: name, subs: make(map[string][]*listeners.Listener)}
}

func (e *Element) String() string { return fmt.Sprintf("eventtest.Element(%s)", e.Name) }

func (e *Element) AddEventListener(event string, l *listeners.Listener) {
	e.Ops = append(e.Ops, Op{Add, event, l})
	e.subs[event] = append(e.subs[event], l)
}

// RemoveEventListener removes one subscription of l for event, if any.
func (e *Element) RemoveEventListener(event string, l *listeners.Listener) {
	e.Ops = append(e.Ops, Op{Remove, event, l})
	list := e.subs[event]
	for i, v := range list {
		if v != l {
			continue
		}
		e.subs[event] = append(list[:i], list[i+1:]...)
		return
	}
}

// Subscribed returns the listeners currently subscribed for event.
func (e *Element) Subscribed(event string) []*listeners.Listener {
	return append([]*listeners.Listener(nil), e.subs[event]...)
}

// Has reports whether l is subscribed for any event.
func (e *Element) Has(l *listeners.Listener) bool {
	for _, list := range e.subs {
		for _, v := range list {
			if v == l {
				return true
			}
		}
	}
	return false
}

// Dispatch fires an event of type typ on e and returns how many listeners
// were invoked. Listeners subscribed or removed during dispatch do not
// affect the current one.
func (e *Element) Dispatch(typ string) int {
	list := e.Subscribed(typ)
	evt := listeners.NewEvent(typ, e, nil)
	for _, l := range list {
		l.Handle(evt)
	}
	return len(list)
}

// Reset forgets the recorded operations, keeping subscriptions.
func (e *Element) Reset() { e.Ops = nil }
