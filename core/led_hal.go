package core

// LEDStrip is an indexed strip of addressable pixels (gun's magazine
// indicator, vest's HP bar).
type LEDStrip interface {
	// SetPixel stages a colour for pixel i as red, green, blue values;
	// the strip driver reorders them for the wire format (GRB on
	// NeoPixel-style strips).
	SetPixel(i int, r, g, b uint8)

	// Show flushes staged pixel values to the physical strip.
	Show() error
}

// Global singleton used by core code.
var ledStrip LEDStrip

// SetLEDStrip is called by target-specific code to register its driver.
func SetLEDStrip(d LEDStrip) {
	ledStrip = d
}

// MustLEDStrip returns the configured driver or panics if missing.
func MustLEDStrip() LEDStrip {
	if ledStrip == nil {
		panic("LED strip driver not configured")
	}
	return ledStrip
}
