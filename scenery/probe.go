//go:build !ios && !android && (amd64 || arm64)

package scenery

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// ProbeType selects how a probe searches for terrain.
type ProbeType int32

// ProbeY searches straight down, then straight up, from the probed point.
const ProbeY ProbeType = 0

// Result is the outcome of one terrain query.
type Result int32

const (
	HitTerrain Result = 0
	ProbeError Result = 1
	Missed     Result = 2
)

// ResultFromCode converts a host probe result.
func ResultFromCode(code int32) (Result, error) {
	switch r := Result(code); r {
	case HitTerrain, ProbeError, Missed:
		return r, nil
	}
	return 0, xputil.Unmatched("probe result", code)
}

// String returns the string representation of the result.
func (r Result) String() string {
	switch r {
	case HitTerrain:
		return "hit-terrain"
	case ProbeError:
		return "error"
	case Missed:
		return "missed"
	default:
		return fmt.Sprintf("Result(%d)", int32(r))
	}
}

// Hit describes the terrain found by a query. Only Result is meaningful
// when it is Missed.
type Hit struct {
	Result   Result
	Location Vec3
	Normal   Vec3
	Velocity Vec3 // Meters per second, for moving terrain such as a carrier deck
	Wet      bool
}

// Probe queries terrain height under points in local coordinates.
//
// A Probe must be used only on the host's main thread.
type Probe struct {
	_      handles.NoCopy
	handle *handles.Handle[ProbeType, struct{}]
}

// NewProbe creates a terrain probe.
func NewProbe(typ ProbeType) (*Probe, error) {
	if typ != ProbeY {
		return nil, xputil.Unmatched("probe type", int32(typ))
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	h, err := handles.New[ProbeType](typ, struct{}{}, handles.Hooks{
		Register: func(uintptr) (uintptr, error) {
			id := api.CreateProbe(int32(typ))
			if id == 0 {
				return 0, xputil.NewError(xputil.KindHostRejected, "scenery.NewProbe", "", nil)
			}
			return id, nil
		},
		Unregister: func(id, _ uintptr) {
			api.DestroyProbe(id)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Probe{handle: h}, nil
}

// Type returns the probe type.
func (p *Probe) Type() ProbeType {
	if b := p.handle.Block(); b != nil {
		return b.Handler
	}
	return ProbeY
}

// Terrain finds the terrain nearest the point x, y, z. A host failure or
// a result code this package does not know is an error; a miss is not.
func (p *Probe) Terrain(x, y, z float32) (Hit, error) {
	b := p.handle.Block()
	if b == nil {
		return Hit{}, ErrClosed
	}
	api, err := bindings.Current()
	if err != nil {
		return Hit{}, err
	}
	var info bindings.ProbeInfo
	r, err := ResultFromCode(api.ProbeTerrainXYZ(b.HostID, x, y, z, &info))
	if err != nil {
		return Hit{}, err
	}
	switch r {
	case ProbeError:
		return Hit{Result: r}, xputil.NewError(xputil.KindHostRejected, "scenery.Probe.Terrain", "", nil)
	case Missed:
		return Hit{Result: r}, nil
	}
	return Hit{
		Result:   r,
		Location: Vec3{info.LocationX, info.LocationY, info.LocationZ},
		Normal:   Vec3{info.NormalX, info.NormalY, info.NormalZ},
		Velocity: Vec3{info.VelocityX, info.VelocityY, info.VelocityZ},
		Wet:      info.IsWet != 0,
	}, nil
}

// Close destroys the probe.
func (p *Probe) Close() error {
	p.handle.Close()
	return nil
}
