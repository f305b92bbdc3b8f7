//go:build !ios && !android && (amd64 || arm64)

package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	tests := []struct {
		id   ID
		name string
	}{
		{PlaneCrashed, "plane-crashed"},
		{PlaneLoaded, "plane-loaded"},
		{WillWritePrefs, "will-write-prefs"},
		{ReleasePlanes, "release-planes"},
		{DataRefsAdded, "datarefs-added"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.id.Name())
		assert.Equal(t, tt.name, tt.id.String())
		assert.True(t, tt.id.Known())
		assert.True(t, tt.id.IsReserved())
	}
}

func TestUnknownIDs(t *testing.T) {
	// Unknown ids are carried, not rejected.
	id := ID(0x12345678)
	assert.Empty(t, id.Name())
	assert.False(t, id.Known())
	assert.False(t, id.IsReserved())
	assert.Equal(t, "message(0x12345678)", id.String())

	host := ID(500)
	assert.False(t, host.Known())
	assert.True(t, host.IsReserved())
	assert.False(t, FirstUserID.IsReserved())
}
