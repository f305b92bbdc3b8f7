//go:build !ios && !android && (amd64 || arm64)

package plugin

import (
	"fmt"
	"unsafe"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/message"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// ID is a host plugin id.
type ID int32

const (
	// NoID is returned by the host when no plugin matches. As a message
	// destination it means every plugin.
	NoID ID = -1
	// XPlane is the id of the host itself, the sender of host messages.
	XPlane ID = 0
)

// String returns the string representation of the id.
func (id ID) String() string {
	switch id {
	case NoID:
		return "no-plugin"
	case XPlane:
		return "x-plane"
	default:
		return fmt.Sprintf("plugin(%d)", int32(id))
	}
}

// Self returns this plugin's id.
func Self() (ID, error) {
	api, err := bindings.Current()
	if err != nil {
		return NoID, err
	}
	id := ID(api.GetMyID())
	if id == NoID {
		return NoID, xputil.NewError(xputil.KindNotFound, "plugin.Self", "", nil)
	}
	return id, nil
}

// FindBySignature returns the id of the plugin with signature.
func FindBySignature(signature string) (ID, error) {
	if err := xputil.ValidateName("plugin.FindBySignature", signature); err != nil {
		return NoID, err
	}
	api, err := bindings.Current()
	if err != nil {
		return NoID, err
	}
	id := ID(api.FindPluginBySignature(signature))
	if id == NoID {
		return NoID, xputil.NewError(xputil.KindNotFound, "plugin.FindBySignature", signature, nil)
	}
	return id, nil
}

// Count returns the number of plugins loaded, the host included.
func Count() (int, error) {
	api, err := bindings.Current()
	if err != nil {
		return 0, err
	}
	return int(api.CountPlugins()), nil
}

// Enabled reports whether the plugin is enabled. It is false if the host
// does not know id.
func (id ID) Enabled() bool {
	api, err := bindings.Current()
	if err != nil {
		return false
	}
	return api.IsPluginEnabled(int32(id))
}

// Details describes a loaded plugin.
type Details struct {
	Info
	Path string // Absolute path of the plugin binary
}

// Details returns what the host knows about the plugin.
func (id ID) Details() (Details, error) {
	api, err := bindings.Current()
	if err != nil {
		return Details{}, err
	}
	info := api.GetPluginInfo(int32(id))
	return Details{
		Info: Info{
			Name:        info.Name,
			Signature:   info.Signature,
			Description: info.Description,
		},
		Path: info.Path,
	}, nil
}

// SendMessage sends msg to the plugin to, or to every plugin if to is
// NoID. The host delivers it synchronously; param must stay valid until
// SendMessage returns.
func SendMessage(to ID, msg message.ID, param unsafe.Pointer) error {
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	api.SendMessageToPlugin(int32(to), int32(msg), param)
	return nil
}
