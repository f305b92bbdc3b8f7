//go:build !ios && !android && (amd64 || arm64)

// Package plugin implements the plugin lifecycle the host drives through
// the XPlugin* entry points.
//
// Register a StartFunc from an init function and link plugin/export into
// the c-shared build. The entry points never let a panic reach the host: a
// plugin that panics in any of them is disabled for the rest of the
// session.
package plugin

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/obinnaokechukwu/xpgo"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
	"github.com/obinnaokechukwu/xpgo/message"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Info describes the plugin to the host.
type Info struct {
	Name        string
	Signature   string // Reverse DNS, e.g. "com.example.myplugin"
	Description string
}

// Plugin is implemented by the plugin author.
type Plugin interface {
	// Info is read once, right after start.
	Info() Info
	// Enable is called when the host enables the plugin. An error leaves
	// it disabled.
	Enable() error
	// Disable is called when the host disables the plugin.
	Disable()
	// Stop is called once when the host unloads the plugin. Close every
	// handle here.
	Stop()
	// ReceiveMessage is called for messages from the host or other
	// plugins.
	ReceiveMessage(from ID, msg message.ID, param unsafe.Pointer)
}

// StartFunc creates the plugin. An error makes the host unload it.
type StartFunc func() (Plugin, error)

// ErrNoStartFunc is reported when the host starts a library that never
// called Register.
var ErrNoStartFunc = errors.New("xpgo: no plugin registered; call plugin.Register from init")

var (
	startFunc StartFunc
	current   Plugin
	panicked  bool
)

// Register sets the function that creates the plugin. Call it from an init
// function; the last registration wins.
func Register(start StartFunc) {
	startFunc = start
}

// Start implements XPluginStart. name, signature and description point at
// host buffers of xputil.HostStringCapacity bytes.
func Start(name, signature, description *byte) int32 {
	if panicked {
		return 0
	}
	if err := xpgo.Init(); err != nil {
		logging.Logger().Error("plugin start failed", "err", err)
		return 0
	}
	if startFunc == nil {
		logging.Logger().Error("plugin start failed", "err", ErrNoStartFunc)
		return 0
	}

	var started bool
	ok := guard("start", func() {
		p, err := startFunc()
		if err != nil {
			logging.Logger().Error("plugin start failed", "err", err)
			return
		}
		if p == nil {
			logging.Logger().Error("plugin start failed", "err", "start function returned a nil plugin")
			return
		}
		info := p.Info()
		writeInfo(name, info.Name)
		writeInfo(signature, info.Signature)
		writeInfo(description, info.Description)
		current, started = p, true
	})
	if !ok || !started {
		current = nil
		return 0
	}
	return 1
}

func writeInfo(dst *byte, s string) {
	if err := xputil.CopyTruncated(xputil.HostBuffer(dst, xputil.HostStringCapacity), s); err != nil {
		logging.Logger().Warn("plugin info not written", "value", s, "err", err)
	}
}

// Stop implements XPluginStop.
func Stop() {
	if panicked {
		logging.Logger().Warn("plugin panicked earlier and cannot be stopped; it may leak host registrations")
		return
	}
	if current == nil {
		return
	}
	p := current
	current = nil
	guard("stop", p.Stop)
}

// Enable implements XPluginEnable.
func Enable() int32 {
	if panicked || current == nil {
		return 0
	}
	var err error
	if !guard("enable", func() { err = current.Enable() }) {
		return 0
	}
	if err != nil {
		logging.Logger().Error("plugin enable failed", "err", err)
		return 0
	}
	return 1
}

// Disable implements XPluginDisable.
func Disable() {
	if panicked || current == nil {
		return
	}
	guard("disable", current.Disable)
}

// ReceiveMessage implements XPluginReceiveMessage.
func ReceiveMessage(from, msg int32, param unsafe.Pointer) {
	if panicked || current == nil {
		return
	}
	guard("receive message", func() {
		current.ReceiveMessage(ID(from), message.ID(msg), param)
	})
}

// Panicked reports whether the plugin panicked in an entry point.
func Panicked() bool {
	return panicked
}

// guard runs fn, disabling the plugin for good if it panics.
func guard(entry string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			logging.Logger().Error("plugin panicked; disabled until the host restarts",
				"entry", entry,
				"panic", fmt.Sprint(r))
			ok = false
		}
	}()
	fn()
	return true
}
