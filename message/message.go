//go:build !ios && !android && (amd64 || arm64)

// Package message names inter-plugin message ids.
package message

import "fmt"

// ID is an inter-plugin message id. Ids below 0x00FFFFFF are reserved for
// the host; plugins define their own above it.
type ID int32

// Messages sent by the host.
const (
	PlaneCrashed         ID = 101
	PlaneLoaded          ID = 102
	AirportLoaded        ID = 103
	SceneryLoaded        ID = 104
	AirplaneCountChanged ID = 105
	PlaneUnloaded        ID = 106
	WillWritePrefs       ID = 107
	LiveryLoaded         ID = 108
	EnteredVR            ID = 109 // SDK 3.0.1+
	ExitingVR            ID = 110 // SDK 3.0.1+
	ReleasePlanes        ID = 111 // SDK 3.0.3+
	FmodBankLoaded       ID = 112 // SDK 4.0+
	FmodBankUnloading    ID = 113 // SDK 4.0+
	DataRefsAdded        ID = 114 // SDK 4.0+
)

// FirstUserID is the lowest id outside the host's reserved range.
const FirstUserID ID = 0x00FFFFFF

var names = map[ID]string{
	PlaneCrashed:         "plane-crashed",
	PlaneLoaded:          "plane-loaded",
	AirportLoaded:        "airport-loaded",
	SceneryLoaded:        "scenery-loaded",
	AirplaneCountChanged: "airplane-count-changed",
	PlaneUnloaded:        "plane-unloaded",
	WillWritePrefs:       "will-write-prefs",
	LiveryLoaded:         "livery-loaded",
	EnteredVR:            "entered-vr",
	ExitingVR:            "exiting-vr",
	ReleasePlanes:        "release-planes",
	FmodBankLoaded:       "fmod-bank-loaded",
	FmodBankUnloading:    "fmod-bank-unloading",
	DataRefsAdded:        "datarefs-added",
}

// Name returns the name of a host message, or "" for any other id.
func (id ID) Name() string {
	return names[id]
}

// Known reports whether id is a host message this package names.
func (id ID) Known() bool {
	_, ok := names[id]
	return ok
}

// IsReserved reports whether id lies in the host's reserved range.
func (id ID) IsReserved() bool {
	return id < FirstUserID
}

// String returns the string representation of the id.
func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("message(%#x)", int32(id))
}
