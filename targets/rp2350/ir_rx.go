//go:build rp2350

package main

import (
	"machine"

	"github.com/fieldtag/peerlink/core"
)

// GPIOIRReceiver wraps a core.LatchedNEC driven by a falling-edge interrupt
// on the demodulating IR receiver's output pin. The receiver idles high and
// pulls low for the duration of a mark; the gap between successive falling
// edges is the space duration NECDecoder expects.
type GPIOIRReceiver struct {
	latch      *core.LatchedNEC
	lastEdgeUs uint32
	haveLastUs bool
}

// NewGPIOIRReceiver configures pin as a pulled-up input through
// core.MustGPIO and attaches the falling-edge interrupt that feeds the
// NEC decoder. Interrupt attachment stays on the raw machine.Pin since
// the GPIODriver port has no equivalent of SetInterrupt.
func NewGPIOIRReceiver(pin machine.Pin) *GPIOIRReceiver {
	r := &GPIOIRReceiver{latch: core.NewLatchedNEC()}

	core.MustGPIO().ConfigureInputPullUp(core.GPIOPin(pin))
	pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		now := GetHardwareTimeUs()
		if r.haveLastUs {
			r.latch.HandleSpace(now - r.lastEdgeUs)
		}
		r.lastEdgeUs = now
		r.haveLastUs = true
	})

	return r
}

// Decode implements core.IRReceiver.
func (r *GPIOIRReceiver) Decode() (uint32, bool) {
	return r.latch.Decode()
}
