//go:build rp2040

package main

import "machine"

// InitUSB initializes USB serial communication. TinyGo sets up USB CDC-ACM
// automatically; machine.Serial is the USB CDC endpoint on RP2040.
func InitUSB() {
	machine.Serial.Configure(machine.UARTConfig{})
}

// USBAvailable returns the number of bytes available to read from USB.
func USBAvailable() int {
	return machine.Serial.Buffered()
}

// USBRead reads a single byte from USB.
func USBRead() (byte, error) {
	return machine.Serial.ReadByte()
}

// USBWriteBytes writes multiple bytes to USB.
func USBWriteBytes(data []byte) (int, error) {
	return machine.Serial.Write(data)
}
