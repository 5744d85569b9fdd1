package term

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atdiar/listeners"
)

// fakeBox records the hooks installed on it.
type fakeBox struct {
	input func(*tcell.EventKey) *tcell.EventKey
	mouse func(tview.MouseAction, *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse)
	focus func()
	blur  func()
}

func (f *fakeBox) SetInputCapture(c func(*tcell.EventKey) *tcell.EventKey) *tview.Box {
	f.input = c
	return nil
}

func (f *fakeBox) SetMouseCapture(c func(tview.MouseAction, *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse)) *tview.Box {
	f.mouse = c
	return nil
}

func (f *fakeBox) SetFocusFunc(c func()) *tview.Box {
	f.focus = c
	return nil
}

func (f *fakeBox) SetBlurFunc(c func()) *tview.Box {
	f.blur = c
	return nil
}

func TestKeydownOnBox(t *testing.T) {
	box := tview.NewBox()
	e := NewElement(box, WithName("box"))
	r := listeners.NewRegistry()
	require.NoError(t, r.Init(e))
	assert.Nil(t, box.GetInputCapture())

	var keys []tcell.Key
	_, err := r.On(e, "keydown", func(evt listeners.Event) {
		keys = append(keys, evt.Native().(*tcell.EventKey).Key())
	})
	require.NoError(t, err)
	capture := box.GetInputCapture()
	require.NotNil(t, capture)

	ev := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	assert.Same(t, ev, capture(ev))
	assert.Equal(t, []tcell.Key{tcell.KeyEnter}, keys)

	_, err = r.On(e, "keydown", func(evt listeners.Event) { evt.PreventDefault() })
	require.NoError(t, err)
	assert.Nil(t, capture(ev))
	assert.Len(t, keys, 1)

	require.NoError(t, r.Clear(e, "keydown"))
	assert.Same(t, ev, capture(ev))
}

func TestMouseOnBox(t *testing.T) {
	box := tview.NewBox()
	e := NewElement(box)
	r := listeners.NewRegistry()
	require.NoError(t, r.Init(e))

	var f, g, wheel int
	require.NoError(t, r.Set(e, "click", listeners.NewListener(func(listeners.Event) { f++ })))
	require.NoError(t, r.Set(e, "click", listeners.NewListener(func(listeners.Event) { g++ })))
	require.NoError(t, r.Set(e, "wheel", listeners.NewListener(func(evt listeners.Event) {
		wheel++
		evt.PreventDefault()
	})))

	capture := box.GetMouseCapture()
	require.NotNil(t, capture)
	ev := tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)

	action, out := capture(tview.MouseLeftClick, ev)
	assert.Equal(t, tview.MouseLeftClick, action)
	assert.Same(t, ev, out)
	assert.Equal(t, 0, f)
	assert.Equal(t, 1, g)

	_, out = capture(tview.MouseScrollDown, ev)
	assert.Nil(t, out)
	assert.Equal(t, 1, wheel)

	_, out = capture(tview.MouseMove, ev)
	assert.Same(t, ev, out)
}

func TestFocusBlur(t *testing.T) {
	box := &fakeBox{}
	e := NewElement(box)
	r := listeners.NewRegistry()
	require.NoError(t, r.Init(e))

	var events []string
	record := func(evt listeners.Event) { events = append(events, evt.Type()) }
	_, err := r.On(e, "focus", record)
	require.NoError(t, err)
	_, err = r.On(e, "blur", record)
	require.NoError(t, err)

	assert.Nil(t, box.input)
	assert.Nil(t, box.mouse)
	require.NotNil(t, box.focus)
	require.NotNil(t, box.blur)

	box.focus()
	box.blur()
	require.NoError(t, r.Clear(e, "focus"))
	box.focus()
	assert.Equal(t, []string{"focus", "blur"}, events)
}

func TestHooksInstalledOnce(t *testing.T) {
	box := &fakeBox{}
	e := NewElement(box)
	e.AddEventListener("click", listeners.NewListener(nil))
	first := box.mouse
	box.mouse = nil
	e.AddEventListener("dblclick", listeners.NewListener(nil))
	assert.NotNil(t, first)
	assert.Nil(t, box.mouse)
}

func TestCustomEvent(t *testing.T) {
	var logs bytes.Buffer
	box := &fakeBox{}
	e := NewElement(box, WithName("list"), WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	var n int
	l := listeners.NewListener(func(listeners.Event) { n++ })
	e.AddEventListener("selected", l)
	e.AddEventListener("selected", l)
	assert.Equal(t, 1, e.Listening("selected"))

	assert.True(t, e.Dispatch("selected", nil))
	assert.Equal(t, 1, n)
	assert.Contains(t, logs.String(), `"element":"term.list"`)
	assert.Same(t, box, e.Primitive())

	e.RemoveEventListener("selected", l)
	assert.Equal(t, 0, e.Listening("selected"))
}
