//go:build rp2040

package main

import (
	"machine"

	"github.com/fieldtag/peerlink/core"
	"github.com/fieldtag/peerlink/targets/pio"
)

// smTickUs is the duration of one state-machine cycle under the NEC PIO
// program's clock divider (see targets/pio/ir_pio.go): one carrier
// half-period, ~13.16us at 38kHz.
const smTickUs = 13.16

// PIOIRTransmitter implements core.IRTransmitter by handing NEC mark/space
// pulses off to a PIO-driven carrier generator.
type PIOIRTransmitter struct {
	tx *pio.NECTransmitter
}

// NewPIOIRTransmitter claims a PIO state machine and configures pin as the
// IR LED driver output. The PIO block takes over the pin's function select
// directly; it never passes through core.GPIODriver, which only models
// plain digital in/out.
func NewPIOIRTransmitter(pin machine.Pin) (*PIOIRTransmitter, error) {
	tx := pio.NewNECTransmitter(0, 0)
	if err := tx.Init(pin); err != nil {
		return nil, err
	}
	return &PIOIRTransmitter{tx: tx}, nil
}

// SendNEC encodes code into mark/space pulses and plays them out through
// the PIO carrier generator.
func (d *PIOIRTransmitter) SendNEC(code uint32, bits uint8) {
	for _, pulse := range core.MarshalNEC(code) {
		markCycles := uint16(float32(pulse.MarkUs) / (2 * smTickUs))
		spaceCycles := uint16(float32(pulse.SpaceUs) / smTickUs)
		d.tx.PlayPulse(markCycles, spaceCycles)
	}
}
