//go:build !ios && !android && (amd64 || arm64)

// Package window creates host windows driven by a Go delegate.
//
// A window has a position and size but no appearance of its own; the
// delegate draws it. Delegates may also implement KeyHandler,
// MouseHandler, ScrollHandler and CursorHandler.
package window

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Rect is a window rectangle in global desktop coordinates. Y grows
// upward, so Top is greater than Bottom.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the width of r.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns the height of r.
func (r Rect) Height() int32 { return r.Top - r.Bottom }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y > r.Bottom && p.Y <= r.Top
}

// Point is a position in global desktop coordinates.
type Point struct {
	X, Y int32
}

// MouseAction is what the mouse did.
type MouseAction int32

const (
	MouseDown MouseAction = 1
	MouseDrag MouseAction = 2
	MouseUp   MouseAction = 3
)

// MouseActionFromCode converts a host mouse status.
func MouseActionFromCode(code int32) (MouseAction, error) {
	switch a := MouseAction(code); a {
	case MouseDown, MouseDrag, MouseUp:
		return a, nil
	}
	return 0, xputil.Unmatched("mouse status", code)
}

// Code returns the host mouse status.
func (a MouseAction) Code() int32 {
	return int32(a)
}

// String returns the string representation of the action.
func (a MouseAction) String() string {
	switch a {
	case MouseDown:
		return "down"
	case MouseDrag:
		return "drag"
	case MouseUp:
		return "up"
	default:
		return fmt.Sprintf("MouseAction(%d)", int32(a))
	}
}

// Cursor is the cursor the host draws over a window.
type Cursor int32

const (
	CursorDefault Cursor = 0 // The host's usual cursor
	CursorHidden  Cursor = 1 // No cursor; the plugin draws its own
	CursorArrow   Cursor = 2 // An arrow, whatever the host would draw
)

// Code returns the host cursor status.
func (c Cursor) Code() int32 {
	return int32(c)
}

// String returns the string representation of the cursor.
func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorHidden:
		return "hidden"
	case CursorArrow:
		return "arrow"
	default:
		return fmt.Sprintf("Cursor(%d)", int32(c))
	}
}

// MouseEvent is a mouse click, drag or release.
type MouseEvent struct {
	Position Point
	status   int32
}

// Action returns what the mouse did.
func (e MouseEvent) Action() (MouseAction, error) {
	return MouseActionFromCode(e.status)
}

// ScrollEvent is a mouse wheel movement.
type ScrollEvent struct {
	Position Point
	DX, DY   int32 // Clicks scrolled along each axis
}

// Delegate draws a window.
type Delegate interface {
	Draw(w *Window)
}

// DrawFunc adapts a function to a Delegate.
type DrawFunc func(w *Window)

// Draw implements Delegate.
func (f DrawFunc) Draw(w *Window) { f(w) }

// KeyHandler receives keyboard events while the window has focus.
type KeyHandler interface {
	KeyEvent(w *Window, e KeyEvent)
}

// MouseHandler receives clicks. Returning true consumes the event; false
// passes it to windows below.
type MouseHandler interface {
	MouseEvent(w *Window, e MouseEvent) bool
}

// ScrollHandler receives mouse wheel events. Returning true consumes the
// event.
type ScrollHandler interface {
	ScrollEvent(w *Window, e ScrollEvent) bool
}

// CursorHandler chooses the cursor drawn over the window.
type CursorHandler interface {
	Cursor(w *Window, p Point) Cursor
}

// Decoration is the frame the host draws around a window.
type Decoration int32

const (
	DecorationNone                   Decoration = 0
	DecorationRoundRectangle         Decoration = 1
	DecorationSelfDecorated          Decoration = 2
	DecorationSelfDecoratedResizable Decoration = 3
)

// Layer is the host window layer.
type Layer int32

const (
	LayerFlightOverlay     Layer = 0
	LayerFloatingWindows   Layer = 1
	LayerModal             Layer = 2
	LayerGrowlNotification Layer = 3
)

// Options configure Create.
type Options struct {
	Visible    bool
	Decoration Decoration
	Layer      Layer
}

// Option sets an Options field.
type Option func(*Options)

// WithVisible shows the window as soon as it is created.
func WithVisible(visible bool) Option {
	return func(o *Options) { o.Visible = visible }
}

// WithDecoration sets the window frame.
func WithDecoration(d Decoration) Option {
	return func(o *Options) { o.Decoration = d }
}

// WithLayer sets the window layer.
func WithLayer(l Layer) Option {
	return func(o *Options) { o.Layer = l }
}

// Window is a host window.
//
// A Window must be used only on the host's main thread.
type Window struct {
	_        handles.NoCopy
	api      bindings.API
	delegate Delegate
	handle   *handles.Handle[*Window, struct{}]
}

// Create creates a window with geometry r. The window starts hidden unless
// WithVisible is given.
func Create(r Rect, delegate Delegate, opts ...Option) (*Window, error) {
	if delegate == nil {
		return nil, errors.New("xpgo: window delegate is nil")
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	o := Options{Layer: LayerFloatingWindows}
	for _, opt := range opts {
		opt(&o)
	}

	w := &Window{api: api, delegate: delegate}
	h, err := handles.New(w, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			id := api.CreateWindowEx(bindings.WindowParams{
				Left:       r.Left,
				Top:        r.Top,
				Right:      r.Right,
				Bottom:     r.Bottom,
				Visible:    o.Visible,
				Draw:       api.Callback(windowDraw),
				Mouse:      api.Callback(windowMouse),
				Key:        api.Callback(windowKey),
				Cursor:     api.Callback(windowCursor),
				Wheel:      api.Callback(windowWheel),
				Refcon:     refcon,
				Decoration: int32(o.Decoration),
				Layer:      int32(o.Layer),
			})
			if id == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, "window.Create", "", nil)
			}
			return id, nil
		},
		Unregister: func(id, _ uintptr) {
			api.DestroyWindow(id)
		},
	})
	if err != nil {
		return nil, err
	}
	w.handle = h
	return w, nil
}

// Delegate returns the window's delegate.
func (w *Window) Delegate() Delegate { return w.delegate }

// id returns the host window id, or zero after Close.
func (w *Window) id() uintptr {
	if b := w.handle.Block(); b != nil {
		return b.HostID
	}
	return 0
}

// Geometry returns the window rectangle.
func (w *Window) Geometry() Rect {
	id := w.id()
	if id == 0 {
		return Rect{}
	}
	var r Rect
	r.Left, r.Top, r.Right, r.Bottom = w.api.GetWindowGeometry(id)
	return r
}

// SetGeometry moves and resizes the window.
func (w *Window) SetGeometry(r Rect) {
	if id := w.id(); id != 0 {
		w.api.SetWindowGeometry(id, r.Left, r.Top, r.Right, r.Bottom)
	}
}

// Visible reports whether the window is shown.
func (w *Window) Visible() bool {
	id := w.id()
	return id != 0 && w.api.GetWindowIsVisible(id)
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	if id := w.id(); id != 0 {
		w.api.SetWindowIsVisible(id, visible)
	}
}

// Close destroys the window.
func (w *Window) Close() error {
	w.handle.Close()
	return nil
}

type windowBlock = handles.Block[*Window, struct{}]

func windowDraw(_, refcon uintptr) {
	handles.Invoke("window draw", refcon, struct{}{}, func(b *windowBlock) struct{} {
		b.Handler.delegate.Draw(b.Handler)
		return struct{}{}
	})
}

func windowKey(_ uintptr, key, flags, vkey int32, refcon uintptr, losingFocus int32) {
	if losingFocus != 0 {
		return
	}
	handles.Invoke("window key", refcon, struct{}{}, func(b *windowBlock) struct{} {
		if h, ok := b.Handler.delegate.(KeyHandler); ok {
			h.KeyEvent(b.Handler, KeyEvent{char: key, flags: flags, vkey: vkey})
		}
		return struct{}{}
	})
}

func windowMouse(_ uintptr, x, y, status int32, refcon uintptr) int32 {
	return handles.Invoke("window mouse", refcon, int32(0), func(b *windowBlock) int32 {
		h, ok := b.Handler.delegate.(MouseHandler)
		if !ok {
			return 0
		}
		if h.MouseEvent(b.Handler, MouseEvent{Position: Point{x, y}, status: status}) {
			return 1
		}
		return 0
	})
}

func windowWheel(_ uintptr, x, y, wheel, clicks int32, refcon uintptr) int32 {
	return handles.Invoke("window wheel", refcon, int32(0), func(b *windowBlock) int32 {
		h, ok := b.Handler.delegate.(ScrollHandler)
		if !ok {
			return 0
		}
		e := ScrollEvent{Position: Point{x, y}}
		// Wheel 1 is horizontal.
		if wheel == 1 {
			e.DX = clicks
		} else {
			e.DY = clicks
		}
		if h.ScrollEvent(b.Handler, e) {
			return 1
		}
		return 0
	})
}

func windowCursor(_ uintptr, x, y int32, refcon uintptr) int32 {
	return handles.Invoke("window cursor", refcon, CursorDefault.Code(), func(b *windowBlock) int32 {
		if h, ok := b.Handler.delegate.(CursorHandler); ok {
			return h.Cursor(b.Handler, Point{x, y}).Code()
		}
		return CursorDefault.Code()
	})
}
