//go:build rp2350

package main

import (
	"errors"
	"machine"
	"sync"

	"github.com/fieldtag/peerlink/core"
)

// RPI2CDriver implements core.I2CDriver using TinyGo's machine.I2C for RP2350.
type RPI2CDriver struct {
	mu sync.Mutex

	buses      map[core.I2CBusID]*machine.I2C
	configured map[core.I2CBusID]bool
}

// NewRPI2CDriver constructs the driver.
func NewRPI2CDriver() *RPI2CDriver {
	return &RPI2CDriver{
		buses:      make(map[core.I2CBusID]*machine.I2C),
		configured: make(map[core.I2CBusID]bool),
	}
}

// ConfigureBus initializes a specific I2C bus with the given frequency.
func (d *RPI2CDriver) ConfigureBus(bus core.I2CBusID, frequencyHz uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.configured[bus] {
		i2c, exists := d.buses[bus]
		if !exists {
			return errors.New("I2C bus internal state error")
		}
		return i2c.SetBaudRate(frequencyHz)
	}

	var i2c *machine.I2C
	switch bus {
	case 0:
		i2c = machine.I2C0
	case 1:
		i2c = machine.I2C1
	default:
		return errors.New("unsupported I2C bus ID")
	}

	if err := i2c.Configure(machine.I2CConfig{Frequency: frequencyHz}); err != nil {
		return err
	}

	d.buses[bus] = i2c
	d.configured[bus] = true
	return nil
}

// Write transmits data to a device at the given address on the specified bus.
func (d *RPI2CDriver) Write(bus core.I2CBusID, addr core.I2CAddress, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return errors.New("I2C bus not configured")
	}
	return i2c.Tx(uint16(addr), data, nil)
}

// Read reads data from a device, optionally writing a register address first.
func (d *RPI2CDriver) Read(bus core.I2CBusID, addr core.I2CAddress, regData []byte, readLen uint8) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return nil, errors.New("I2C bus not configured")
	}

	readBuf := make([]byte, readLen)
	if len(regData) > 0 {
		if err := i2c.Tx(uint16(addr), regData, readBuf); err != nil {
			return nil, err
		}
	} else {
		if err := i2c.Tx(uint16(addr), nil, readBuf); err != nil {
			return nil, err
		}
	}
	return readBuf, nil
}

// GetMachineBus returns the underlying machine.I2C instance for a bus.
func (d *RPI2CDriver) GetMachineBus(bus core.I2CBusID) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i2c, exists := d.buses[bus]
	if !exists {
		return nil, errors.New("I2C bus not configured")
	}
	return i2c, nil
}
