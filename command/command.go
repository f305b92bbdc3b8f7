//go:build !ios && !android && (amd64 || arm64)

// Package command finds, triggers and creates host commands.
package command

import (
	"fmt"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// Phase is the stage of a command invocation.
type Phase int32

const (
	Begin    Phase = 0 // Command key or button pressed
	Continue Phase = 1 // Held down, sent once per frame
	End      Phase = 2 // Released
)

// PhaseFromCode converts a host command phase.
func PhaseFromCode(code int32) (Phase, error) {
	switch Phase(code) {
	case Begin, Continue, End:
		return Phase(code), nil
	}
	return 0, xputil.Unmatched("command phase", code)
}

// Code returns the host phase code.
func (p Phase) Code() int32 {
	return int32(p)
}

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Begin:
		return "begin"
	case Continue:
		return "continue"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", int32(p))
	}
}

// Outcome tells the host whether other handlers see the command.
type Outcome int32

const (
	// Halt stops the host from passing the command to later handlers,
	// including the host's own.
	Halt Outcome = 0
	// PassThrough lets later handlers see the command.
	PassThrough Outcome = 1
)

// Command is a host command found by name.
//
// A Command must be used only on the host's main thread.
type Command struct {
	_    handles.NoCopy
	api  bindings.API
	ref  uintptr
	name string
}

// Find looks up a command by name.
func Find(name string) (*Command, error) {
	if err := xputil.ValidateName("command.Find", name); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	ref := api.FindCommand(name)
	if ref == 0 {
		return nil, xputil.NewError(xputil.KindNotFound, "command.Find", name, nil)
	}
	return &Command{api: api, ref: ref, name: name}, nil
}

// Name returns the command name.
func (c *Command) Name() string {
	return c.name
}

// Trigger runs the command once: begin immediately followed by end.
func (c *Command) Trigger() {
	c.api.CommandOnce(c.ref)
}

// Hold starts the command. It stays held until the returned Hold is released.
func (c *Command) Hold() *Hold {
	c.api.CommandBegin(c.ref)
	return &Hold{cmd: c}
}

// Hold is a command being held down.
type Hold struct {
	_        handles.NoCopy
	cmd      *Command
	released bool
}

// Release ends the command. Calling Release more than once is a no-op.
func (h *Hold) Release() {
	if h.released {
		return
	}
	h.released = true
	h.cmd.api.CommandEnd(h.cmd.ref)
}

// Handler receives the phases of a command.
type Handler[S any] interface {
	CommandBegin(state *S) Outcome
	CommandContinue(state *S) Outcome
	CommandEnd(state *S) Outcome
}

// UnknownPhaseHandler is implemented by handlers that want to see phases
// reported with a code this package does not know. err is an
// *xputil.UnmatchedCodeError carrying the code. Handlers without it pass
// such commands through.
type UnknownPhaseHandler[S any] interface {
	CommandUnknown(err error, state *S) Outcome
}

// HandlerFunc adapts a function to a Handler. It also receives unknown
// phases as Phase(code); PhaseFromCode rejects them.
type HandlerFunc[S any] func(phase Phase, state *S) Outcome

// CommandBegin implements Handler.
func (f HandlerFunc[S]) CommandBegin(state *S) Outcome { return f(Begin, state) }

// CommandContinue implements Handler.
func (f HandlerFunc[S]) CommandContinue(state *S) Outcome { return f(Continue, state) }

// CommandEnd implements Handler.
func (f HandlerFunc[S]) CommandEnd(state *S) Outcome { return f(End, state) }

// CommandUnknown implements UnknownPhaseHandler.
func (f HandlerFunc[S]) CommandUnknown(err error, state *S) Outcome {
	code, _ := xputil.UnmatchedCode(err)
	return f(Phase(code), state)
}

type runner interface {
	run(code int32) Outcome
}

type adapter[S any] struct {
	handler Handler[S]
	state   *S
}

func (a *adapter[S]) run(code int32) Outcome {
	phase, err := PhaseFromCode(code)
	if err != nil {
		if u, ok := a.handler.(UnknownPhaseHandler[S]); ok {
			return u.CommandUnknown(err, a.state)
		}
		logging.Logger().Warn("unknown command phase", "code", code)
		return PassThrough
	}
	switch phase {
	case Begin:
		return a.handler.CommandBegin(a.state)
	case Continue:
		return a.handler.CommandContinue(a.state)
	default:
		return a.handler.CommandEnd(a.state)
	}
}

// Registration is a handler attached to a command.
//
// A Registration must be used only on the host's main thread.
type Registration[S any] struct {
	_      handles.NoCopy
	cmd    *Command
	handle *handles.Handle[runner, struct{}]
	state  *S
}

// Handle attaches handler to the command. Handlers registered with before
// set run ahead of the host's own handling.
func Handle[S any](c *Command, before bool, handler Handler[S], state S) (*Registration[S], error) {
	if handler == nil {
		return nil, fmt.Errorf("xpgo: command handler for %q is nil", c.name)
	}
	a := &adapter[S]{handler: handler, state: &state}
	cb := c.api.Callback(commandCallback)
	h, err := handles.New[runner](a, struct{}{}, handles.Hooks{
		Register: func(refcon uintptr) (uintptr, error) {
			c.api.RegisterCommandHandler(c.ref, cb, before, refcon)
			return c.ref, nil
		},
		Unregister: func(cmd, refcon uintptr) {
			c.api.UnregisterCommandHandler(cmd, cb, before, refcon)
		},
	})
	if err != nil {
		return nil, err
	}
	return &Registration[S]{cmd: c, handle: h, state: a.state}, nil
}

// Command returns the command the handler is attached to.
func (r *Registration[S]) Command() *Command {
	return r.cmd
}

// State returns the handler state.
func (r *Registration[S]) State() *S {
	return r.state
}

// Close detaches the handler.
func (r *Registration[S]) Close() error {
	r.handle.Close()
	return nil
}

// Owned is a command created by this plugin together with its handler.
type Owned[S any] struct {
	*Registration[S]
	description string
}

// NewOwned creates a command and attaches handler to it. It fails with a
// NameConflict error if the host already has a command with that name.
func NewOwned[S any](name, description string, handler Handler[S], state S) (*Owned[S], error) {
	if err := xputil.ValidateName("command.NewOwned", name); err != nil {
		return nil, err
	}
	if err := xputil.ValidateName("command.NewOwned", description); err != nil {
		return nil, err
	}
	api, err := bindings.Current()
	if err != nil {
		return nil, err
	}
	if api.FindCommand(name) != 0 {
		return nil, xputil.NewError(xputil.KindNameConflict, "command.NewOwned", name, nil)
	}
	ref := api.CreateCommand(name, description)
	if ref == 0 {
		return nil, xputil.NewError(xputil.KindHostRejected, "command.NewOwned", name, nil)
	}
	cmd := &Command{api: api, ref: ref, name: name}
	reg, err := Handle(cmd, true, handler, state)
	if err != nil {
		return nil, err
	}
	return &Owned[S]{Registration: reg, description: description}, nil
}

// Description returns the description the command was created with.
func (o *Owned[S]) Description() string {
	return o.description
}

func commandCallback(_ uintptr, phase int32, refcon uintptr) int32 {
	return handles.Invoke("command", refcon, int32(PassThrough), func(b *handles.Block[runner, struct{}]) int32 {
		return int32(b.Handler.run(phase))
	})
}
