//go:build rp2350

package main

import (
	"image/color"
	"machine"

	"github.com/fieldtag/peerlink/core"
	"tinygo.org/x/drivers/ws2812"
)

// WS2812Strip implements core.LEDStrip over a single-wire addressable LED
// chain (the gun's magazine indicator or the vest's HP bar).
type WS2812Strip struct {
	dev    ws2812.Device
	pixels []color.RGBA
}

// NewWS2812Strip configures pin as the data line for a strip of n pixels
// through core.MustGPIO, then hands the raw pin to the ws2812 driver,
// which bit-bangs its own single-wire timing and needs direct access.
func NewWS2812Strip(pin machine.Pin, n int) *WS2812Strip {
	core.MustGPIO().ConfigureOutput(core.GPIOPin(pin))
	return &WS2812Strip{
		dev:    ws2812.New(pin),
		pixels: make([]color.RGBA, n),
	}
}

// SetPixel stages pixel i's colour.
func (s *WS2812Strip) SetPixel(i int, r, g, b uint8) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = color.RGBA{R: r, G: g, B: b}
}

// Show flushes the staged pixel buffer to the strip.
func (s *WS2812Strip) Show() error {
	return s.dev.WriteColors(s.pixels)
}
