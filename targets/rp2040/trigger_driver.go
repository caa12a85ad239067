//go:build rp2040

package main

import (
	"machine"

	"github.com/fieldtag/peerlink/core"
)

// GPIOTriggerDriver implements core.TriggerDriver over the shared
// core.GPIODriver port rather than machine.Pin directly.
type GPIOTriggerDriver struct {
	pin core.GPIOPin
}

// NewGPIOTriggerDriver configures pin as a pulled-down digital input
// through core.MustGPIO and returns a driver that reports it as the
// trigger switch.
func NewGPIOTriggerDriver(pin machine.Pin) *GPIOTriggerDriver {
	gpioPin := core.GPIOPin(pin)
	core.MustGPIO().ConfigureInputPullDown(gpioPin)
	return &GPIOTriggerDriver{pin: gpioPin}
}

// Pressed reports the raw (undebounced) pin state.
func (d *GPIOTriggerDriver) Pressed() bool {
	return core.MustGPIO().ReadPin(d.pin)
}
