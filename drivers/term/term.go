// Package term hosts listeners on tview widgets.
//
// Host events are derived from the hooks a *tview.Box exposes:
//
//	keydown                                 input capture (*tcell.EventKey)
//	click, dblclick, mousedown, mouseup     mouse capture, left button (*tcell.EventMouse)
//	wheel                                   mouse capture, scrolling (*tcell.EventMouse)
//	focus, blur                             focus and blur callbacks
//
// Calling PreventDefault on a key or mouse event consumes it, so the widget
// does not handle it any further.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/atdiar/listeners"
)

// Capturer is the part of *tview.Box an Element hooks into. Every tview
// widget embedding a *tview.Box implements it.
type Capturer interface {
	SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) *tview.Box
	SetMouseCapture(capture func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse)) *tview.Box
	SetFocusFunc(callback func()) *tview.Box
	SetBlurFunc(callback func()) *tview.Box
}

type hook int

const (
	keyHook hook = iota
	mouseHook
	focusHook
	blurHook
)

var mouseEvents = map[tview.MouseAction]string{
	tview.MouseLeftClick:       "click",
	tview.MouseLeftDoubleClick: "dblclick",
	tview.MouseLeftDown:        "mousedown",
	tview.MouseLeftUp:          "mouseup",
	tview.MouseScrollUp:        "wheel",
	tview.MouseScrollDown:      "wheel",
	tview.MouseScrollLeft:      "wheel",
	tview.MouseScrollRight:     "wheel",
}

func hookFor(event string) (hook, bool) {
	switch event {
	case "keydown":
		return keyHook, true
	case "click", "dblclick", "mousedown", "mouseup", "wheel":
		return mouseHook, true
	case "focus":
		return focusHook, true
	case "blur":
		return blurHook, true
	}
	return 0, false
}

// Option configures an Element.
type Option func(*Element)

// WithLogger sets the logger used to trace dispatches at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Element) {
		e.log = l.With().Str("component", "term").Logger()
	}
}

// WithName sets the name the Element is logged under.
func WithName(name string) Option {
	return func(e *Element) {
		e.name = name
	}
}

// Element is a tview widget able to hold event listeners.
//
// The widget hooks are installed the first time a listener is added for an
// event that needs them, replacing whatever capture or callback the widget
// had for that hook.
type Element struct {
	p      Capturer
	name   string
	subs   map[string][]*listeners.Listener
	hooked map[hook]bool
	log    zerolog.Logger
}

// NewElement wraps p.
func NewElement(p Capturer, opts ...Option) *Element {
	e := &Element{
		p:      p,
		name:   "widget",
		subs:   make(map[string][]*listeners.Listener),
		hooked: make(map[hook]bool),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Primitive returns the wrapped widget.
func (e *Element) Primitive() Capturer { return e.p }

func (e *Element) String() string { return "term." + e.name }

// AddEventListener subscribes l for event. Adding a listener that is already
// subscribed for that event does nothing.
func (e *Element) AddEventListener(event string, l *listeners.Listener) {
	for _, v := range e.subs[event] {
		if v == l {
			return
		}
	}
	e.subs[event] = append(e.subs[event], l)
	if h, ok := hookFor(event); ok {
		e.install(h)
	}
}

func (e *Element) RemoveEventListener(event string, l *listeners.Listener) {
	list := e.subs[event]
	for i, v := range list {
		if v != l {
			continue
		}
		e.subs[event] = append(list[:i:i], list[i+1:]...)
		return
	}
}

// Listening returns the number of listeners subscribed for typ.
func (e *Element) Listening(typ string) int { return len(e.subs[typ]) }

// Dispatch fires an event of type typ at e and returns false if a listener
// prevented the default action.
func (e *Element) Dispatch(typ string, native interface{}) bool {
	list := e.subs[typ]
	evt := listeners.NewEvent(typ, e, native)
	for _, l := range list {
		l.Handle(evt)
	}
	e.log.Debug().Str("element", e.String()).Str("event", typ).Int("listeners", len(list)).Msg("event dispatched")
	return !evt.DefaultPrevented()
}

func (e *Element) install(h hook) {
	if e.hooked[h] {
		return
	}
	e.hooked[h] = true

	switch h {
	case keyHook:
		e.p.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
			if !e.Dispatch("keydown", ev) {
				return nil
			}
			return ev
		})
	case mouseHook:
		e.p.SetMouseCapture(func(action tview.MouseAction, ev *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
			typ, ok := mouseEvents[action]
			if !ok {
				return action, ev
			}
			if !e.Dispatch(typ, ev) {
				return action, nil
			}
			return action, ev
		})
	case focusHook:
		e.p.SetFocusFunc(func() { e.Dispatch("focus", nil) })
	case blurHook:
		e.p.SetBlurFunc(func() { e.Dispatch("blur", nil) })
	}
}
