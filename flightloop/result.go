//go:build !ios && !android && (amd64 || arm64)

package flightloop

import (
	"fmt"
	"time"

	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Phase selects when the host runs a flight loop relative to the flight model.
type Phase int32

const (
	// BeforeFlightModel runs the loop before the flight model is integrated.
	BeforeFlightModel Phase = 0
	// AfterFlightModel runs the loop after the flight model is integrated.
	AfterFlightModel Phase = 1
)

// PhaseFromCode converts a host phase code.
func PhaseFromCode(code int32) (Phase, error) {
	switch Phase(code) {
	case BeforeFlightModel, AfterFlightModel:
		return Phase(code), nil
	}
	return 0, xputil.Unmatched("flight loop phase", code)
}

// Code returns the host phase code.
func (p Phase) Code() int32 {
	return int32(p)
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case BeforeFlightModel:
		return "before flight model"
	case AfterFlightModel:
		return "after flight model"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

type resultKind uint8

const (
	kindDeactivate resultKind = iota
	kindSeconds
	kindLoops
	kindNextLoop
)

// Result tells the host when to run a flight loop next.
// The zero Result is Deactivate.
type Result struct {
	kind    resultKind
	seconds float32
	loops   uint32
}

var (
	// Deactivate stops the loop until it is rescheduled.
	Deactivate = Result{kind: kindDeactivate}
	// NextLoop runs the loop again on the next flight loop.
	NextLoop = Result{kind: kindNextLoop}
)

// Seconds runs the loop again after d.
func Seconds(d time.Duration) Result {
	return Result{kind: kindSeconds, seconds: float32(d.Seconds())}
}

// Loops runs the loop again after n flight loops. Loops(0) deactivates.
func Loops(n uint32) Result {
	if n == 0 {
		return Deactivate
	}
	return Result{kind: kindLoops, loops: n}
}

// Encode returns the interval the host expects: +T for seconds, -N for
// loops, -1 for the next loop and 0 to deactivate.
func (r Result) Encode() float32 {
	switch r.kind {
	case kindSeconds:
		return r.seconds
	case kindLoops:
		return -float32(r.loops)
	case kindNextLoop:
		return -1
	default:
		return 0
	}
}

// Active reports whether the result keeps the loop scheduled.
func (r Result) Active() bool {
	return r.Encode() != 0
}

// String returns the string representation of the result.
func (r Result) String() string {
	switch r.kind {
	case kindSeconds:
		return fmt.Sprintf("after %gs", r.seconds)
	case kindLoops:
		return fmt.Sprintf("after %d loops", r.loops)
	case kindNextLoop:
		return "next loop"
	default:
		return "deactivate"
	}
}
