package core

import "github.com/fieldtag/peerlink/protocol"

// FrameHandler processes one incoming frame once the handshake has
// completed. Each frame type has exactly one direction a peripheral
// receives it in, so dispatch keys purely on type rather than on a
// (direction, type) pair.
type FrameHandler func(f protocol.Frame)

// Dispatcher routes post-handshake frames by type code: one handler per
// frame type, disambiguated by type alone since each role only ever
// receives a given type from one direction.
type Dispatcher struct {
	handlers map[byte]FrameHandler
}

// NewDispatcher constructs an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[byte]FrameHandler)}
}

// Register installs the handler for a frame type, overwriting any
// previous registration.
func (d *Dispatcher) Register(frameType byte, h FrameHandler) {
	d.handlers[frameType] = h
}

// Dispatch routes f to its registered handler. It reports whether a
// handler was found; an unregistered type is silently dropped by the
// caller, so an unknown frame type never desyncs the link.
func (d *Dispatcher) Dispatch(f protocol.Frame) bool {
	h, ok := d.handlers[f.Type]
	if !ok {
		return false
	}
	h(f)
	return true
}
