//go:build js && wasm

// Package doc hosts listeners on browser DOM nodes through syscall/js.
package doc

import (
	"syscall/js"

	"github.com/rs/zerolog"

	"github.com/atdiar/listeners"
)

// Log receives failures raised by listeners. It discards everything by default.
var Log = zerolog.Nop()

type nativeEvent struct {
	js.Value
}

func (e nativeEvent) PreventDefault() {
	e.Value.Call("preventDefault")
}

// Element is a DOM node able to hold event listeners.
// Each (event, listener) pair is backed by one js.Func, released when the
// listener is removed.
type Element struct {
	v     js.Value
	funcs map[string]map[*listeners.Listener]js.Func
}

// Wrap returns a new Element for the DOM node v. Wrapping the same node
// twice yields two distinct Elements; use GetElementByID or Window for
// stable identities.
func Wrap(v js.Value) *Element {
	return &Element{v, make(map[string]map[*listeners.Listener]js.Func)}
}

type elementStore struct {
	byID   map[string]*Element
	window *Element
}

// Elements caches the Elements handed out by GetElementByID and Window.
var Elements = elementStore{byID: make(map[string]*Element)}

// GetByID returns the cached Element for id if it still refers to the node
// the document holds for that id.
func (s elementStore) GetByID(id string) *Element {
	v := js.Global().Get("document").Call("getElementById", id)
	if !v.Truthy() {
		return nil
	}
	if e, ok := s.byID[id]; ok && e.v.Equal(v) {
		return e
	}
	e := Wrap(v)
	s.byID[id] = e
	return e
}

// GetElementByID returns the Element for the node with the given id, or nil.
func GetElementByID(id string) *Element {
	return Elements.GetByID(id)
}

// Window returns the Element for the global window object.
func Window() *Element {
	if Elements.window == nil {
		Elements.window = Wrap(js.Global())
	}
	return Elements.window
}

// Value returns the underlying DOM node.
func (e *Element) Value() js.Value { return e.v }

func (e *Element) String() string {
	if id := e.v.Get("id"); id.Truthy() {
		return "#" + id.String()
	}
	return e.v.Get("nodeName").String()
}

// AddEventListener subscribes l for event. Adding a listener that is already
// subscribed for that event does nothing.
func (e *Element) AddEventListener(event string, l *listeners.Listener) {
	fns, ok := e.funcs[event]
	if !ok {
		fns = make(map[*listeners.Listener]js.Func)
		e.funcs[event] = fns
	}
	if _, ok := fns[l]; ok {
		return
	}
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer func() {
			if r := recover(); r != nil {
				Log.Error().Str("element", e.String()).Str("event", event).Interface("panic", r).Msg("listener failure")
			}
		}()
		var native interface{}
		if len(args) > 0 {
			native = nativeEvent{args[0]}
		}
		l.Handle(listeners.NewEvent(event, e, native))
		return nil
	})
	fns[l] = cb
	e.v.Call("addEventListener", event, cb)
}

func (e *Element) RemoveEventListener(event string, l *listeners.Listener) {
	cb, ok := e.funcs[event][l]
	if !ok {
		return
	}
	e.v.Call("removeEventListener", event, cb)
	cb.Release()
	delete(e.funcs[event], l)
}

// Dispatch fires a native event of type typ at e and returns false if a
// listener prevented the default action.
func (e *Element) Dispatch(typ string) bool {
	evt := js.Global().Get("Event").New(typ, map[string]interface{}{
		"cancelable": true,
	})
	return e.v.Call("dispatchEvent", evt).Bool()
}
