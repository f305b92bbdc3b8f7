//go:build !ios && !android && (amd64 || arm64)

// Package flightloop runs Go code periodically from the host flight loop.
//
// A FlightLoop is created inactive. Schedule it to start:
//
//	fl, err := flightloop.New(flightloop.AfterFlightModel,
//		flightloop.HandlerFunc[int](func(s *flightloop.LoopState[int]) flightloop.Result {
//			*s.State()++
//			return flightloop.Seconds(time.Second)
//		}), 0)
//	if err != nil {
//		return err
//	}
//	defer fl.Close()
//	fl.ScheduleImmediate()
package flightloop

import (
	"errors"
	"time"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// ErrClosed is returned when scheduling a closed flight loop.
var ErrClosed = errors.New("xpgo: flight loop closed")

// LoopState is passed to a Handler on every invocation.
type LoopState[S any] struct {
	sinceLastCall time.Duration
	sinceLastLoop time.Duration
	counter       int32
	state         *S
}

// SinceLastCall returns the time since the host last called this loop.
func (s *LoopState[S]) SinceLastCall() time.Duration { return s.sinceLastCall }

// SinceLastLoop returns the time since the last host flight loop.
func (s *LoopState[S]) SinceLastLoop() time.Duration { return s.sinceLastLoop }

// Counter returns the host flight loop counter.
func (s *LoopState[S]) Counter() int32 { return s.counter }

// State returns the loop's state. The pointer is stable for the loop's life.
func (s *LoopState[S]) State() *S { return s.state }

// Handler is called by the host on every scheduled flight loop.
type Handler[S any] interface {
	FlightLoop(state *LoopState[S]) Result
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc[S any] func(state *LoopState[S]) Result

// FlightLoop implements Handler.
func (f HandlerFunc[S]) FlightLoop(state *LoopState[S]) Result {
	return f(state)
}

// runner binds a typed handler to its state for the callback trampoline.
type runner interface {
	run(sinceLastCall, sinceLastLoop float32, counter int32) Result
}

type adapter[S any] struct {
	handler Handler[S]
	state   *S
}

func (a *adapter[S]) run(sinceLastCall, sinceLastLoop float32, counter int32) Result {
	return a.handler.FlightLoop(&LoopState[S]{
		sinceLastCall: seconds(sinceLastCall),
		sinceLastLoop: seconds(sinceLastLoop),
		counter:       counter,
		state:         a.state,
	})
}

// schedule is the mutable bookkeeping kept in the context block.
type schedule struct {
	last    Result
	hasLast bool
}

// FlightLoop is a registered flight loop.
//
// A FlightLoop must be used only on the host's main thread.
type FlightLoop[S any] struct {
	_      handles.NoCopy
	api    bindings.API
	handle *handles.Handle[runner, schedule]
	state  *S
}

// New creates an inactive flight loop that calls handler with state.
func New[S any](phase Phase, handler Handler[S], state S) (*FlightLoop[S], error) {
	if handler == nil {
		return nil, errors.New("xpgo: flight loop handler is nil")
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}

	a := &adapter[S]{handler: handler, state: &state}
	cb := api.Callback(flightLoopCallback)
	h, err := handles.New[runner](a, schedule{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			id := api.CreateFlightLoop(phase.Code(), cb, refcon)
			if id == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, "flightloop.New", "", nil)
			}
			return id, nil
		},
		Unregister: func(hostID, _ uintptr) {
			api.DestroyFlightLoop(hostID)
		},
	})
	if err != nil {
		return nil, err
	}
	return &FlightLoop[S]{api: api, handle: h, state: a.state}, nil
}

// State returns the loop's state.
func (fl *FlightLoop[S]) State() *S {
	return fl.state
}

// Schedule reschedules the loop relative to now.
func (fl *FlightLoop[S]) Schedule(r Result) error {
	b := fl.handle.Block()
	if b == nil {
		return ErrClosed
	}
	fl.api.ScheduleFlightLoop(b.HostID, r.Encode(), true)
	b.State.last, b.State.hasLast = r, true
	return nil
}

// ScheduleImmediate runs the loop on the next flight loop.
func (fl *FlightLoop[S]) ScheduleImmediate() error {
	return fl.Schedule(NextLoop)
}

// ScheduleAfterLoops runs the loop after n flight loops.
func (fl *FlightLoop[S]) ScheduleAfterLoops(n uint32) error {
	return fl.Schedule(Loops(n))
}

// ScheduleAfter runs the loop after d.
func (fl *FlightLoop[S]) ScheduleAfter(d time.Duration) error {
	return fl.Schedule(Seconds(d))
}

// Deactivate stops the loop until it is rescheduled.
func (fl *FlightLoop[S]) Deactivate() error {
	return fl.Schedule(Deactivate)
}

// LastResult returns the most recent schedule, whether set from Go or
// returned by the handler.
func (fl *FlightLoop[S]) LastResult() (Result, bool) {
	b := fl.handle.Block()
	if b == nil {
		return Result{}, false
	}
	return b.State.last, b.State.hasLast
}

// Close destroys the host flight loop and releases the handler.
func (fl *FlightLoop[S]) Close() error {
	fl.handle.Close()
	return nil
}

func flightLoopCallback(sinceLastCall, sinceLastLoop float32, counter int32, refcon uintptr) float32 {
	return handles.Invoke("flight loop", refcon, float32(0), func(b *handles.Block[runner, schedule]) float32 {
		r := b.Handler.run(sinceLastCall, sinceLastLoop, counter)
		b.State.last, b.State.hasLast = r, true
		return r.Encode()
	})
}

func seconds(s float32) time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}
