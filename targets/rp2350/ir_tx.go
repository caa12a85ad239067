//go:build rp2350

package main

import (
	"machine"
	"time"

	"github.com/fieldtag/peerlink/core"
)

// necCarrierHalfPeriod approximates one half-period of NEC's 38kHz carrier.
const necCarrierHalfPeriod = 13 * time.Microsecond

// GPIOIRTransmitter implements core.IRTransmitter by bit-banging the NEC
// carrier directly on a GPIO pin, simpler than PIO generation at the cost
// of CPU time spent busy-waiting during transmit.
type GPIOIRTransmitter struct {
	pin machine.Pin
}

// NewGPIOIRTransmitter configures pin as the IR LED driver output through
// core.MustGPIO. SendNEC itself toggles the raw machine.Pin directly,
// since the 38kHz carrier's ~13us half-period has no room for the
// GPIODriver port's map lookup and interface dispatch.
func NewGPIOIRTransmitter(pin machine.Pin) *GPIOIRTransmitter {
	gpioPin := core.GPIOPin(pin)
	core.MustGPIO().ConfigureOutput(gpioPin)
	core.MustGPIO().SetPin(gpioPin, false)
	return &GPIOIRTransmitter{pin: pin}
}

// SendNEC encodes code into mark/space pulses and plays them out by toggling
// the pin at the carrier rate during each mark and holding it low during
// each space.
func (d *GPIOIRTransmitter) SendNEC(code uint32, bits uint8) {
	for _, pulse := range core.MarshalNEC(code) {
		d.playMark(time.Duration(pulse.MarkUs) * time.Microsecond)
		d.pin.Low()
		time.Sleep(time.Duration(pulse.SpaceUs) * time.Microsecond)
	}
}

func (d *GPIOIRTransmitter) playMark(duration time.Duration) {
	deadline := time.Now().Add(duration)
	for time.Now().Before(deadline) {
		d.pin.High()
		time.Sleep(necCarrierHalfPeriod)
		d.pin.Low()
		time.Sleep(necCarrierHalfPeriod)
	}
}
