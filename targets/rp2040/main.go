//go:build rp2040

package main

import (
	"machine"
	"time"

	"github.com/fieldtag/peerlink/core"
	"github.com/fieldtag/peerlink/protocol"
)

// Wiring: trigger on GPIO2 (gun), IR LED driver on GPIO3 (gun), IR receiver
// demod output on GPIO4 (vest), strip data on GPIO5 (gun magazine / vest HP
// bar), IMU on I2C0 default pins (gun, hand).
const (
	pinTrigger = machine.GPIO2
	pinIRTx    = machine.GPIO3
	pinIRRx    = machine.GPIO4
	pinLEDData = machine.GPIO5
)

var (
	inputBuffer *protocol.FifoBuffer

	msgErrors           uint32
	lastUSBActivityMs   uint32
	usbWasDisconnected  bool
	consecutiveFailures uint32

	gunRole  *core.GunRole
	vestRole *core.VestRole
	handRole *core.HandRole
)

func main() {
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitUSB()
	InitDebugUART()
	InitClock()
	core.TimerInit()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetI2CDriver(NewRPI2CDriver())

	emit := func(data []byte) { writeUSB(data) }

	switch SelectedRole() {
	case RoleGun:
		core.SetTriggerDriver(NewGPIOTriggerDriver(pinTrigger))
		irTx, err := NewPIOIRTransmitter(pinIRTx)
		if err != nil {
			core.TryShutdown("IR transmitter init failed: " + err.Error())
			return
		}
		core.SetIRTransmitter(irTx)
		core.SetLEDStrip(NewWS2812Strip(pinLEDData, core.MagSize))
		configureIMU()
		gunRole = core.NewGunRole(emit, core.IMUCalibration{})

	case RoleVest:
		core.SetIRReceiver(NewGPIOIRReceiver(pinIRRx))
		core.SetLEDStrip(NewWS2812Strip(pinLEDData, core.HPBarSize))
		vestRole = core.NewVestRole(emit)

	case RoleHand:
		configureIMU()
		handRole = core.NewHandRole(emit, core.IMUCalibration{})
	}

	core.SetResetHandler(func() {
		if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1}); err != nil {
			return
		}
		if err := machine.Watchdog.Start(); err != nil {
			return
		}
		for {
			time.Sleep(time.Millisecond)
		}
	})

	inputBuffer = protocol.NewFifoBuffer(256)

	go usbReaderLoop()

	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					msgErrors++
					inputBuffer.Reset()
				}
			}()

			UpdateSystemTime()
			nowMs := core.GetTime()

			var incoming []byte
			if inputBuffer.Available() > 0 {
				incoming = inputBuffer.Data()
			}

			consumed := 0
			switch SelectedRole() {
			case RoleGun:
				consumed = gunRole.Step(incoming, nowMs)
				gunRole.DrawMagazine()
			case RoleVest:
				consumed = vestRole.Step(incoming, nowMs)
				vestRole.DrawHPBar()
			case RoleHand:
				consumed = handRole.Step(incoming, nowMs)
			}

			if consumed > 0 {
				inputBuffer.Pop(consumed)
			}

			core.CheckPendingReset()
		}()

		time.Sleep(time.Millisecond)
	}
}

// configureIMU wires the MPU6050 or halts the firmware: a gun or hand
// build with no working IMU can never reach the handshake's steady state.
func configureIMU() {
	imu, err := NewMPU6050IMU()
	if err != nil {
		core.TryShutdown("IMU init failed: " + err.Error())
		for {
			time.Sleep(time.Second)
		}
	}
	core.SetIMUDriver(imu)
}

// usbReaderLoop continuously drains USB CDC bytes into inputBuffer. It
// touches only the FIFO, never the role/sequence state the main loop owns.
func usbReaderLoop() {
	defer func() {
		if r := recover(); r != nil {
			msgErrors++
			time.Sleep(100 * time.Millisecond)
			go usbReaderLoop()
		}
	}()

	for {
		if USBAvailable() > 0 {
			data, err := USBRead()
			if err != nil {
				msgErrors++
				time.Sleep(time.Millisecond)
				continue
			}

			if usbWasDisconnected {
				usbWasDisconnected = false
				inputBuffer.Reset()
				core.ResetFirmwareState()
				consecutiveFailures = 0
			}

			lastUSBActivityMs = core.GetUptime()

			if written := inputBuffer.Write([]byte{data}); written == 0 {
				msgErrors++
				time.Sleep(10 * time.Millisecond)
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// writeUSB flushes an outbound frame to the USB CDC endpoint, tracking
// consecutive failures so a prolonged disconnect resets buffered state
// rather than retrying forever against a dead link.
func writeUSB(data []byte) {
	written := 0
	for written < len(data) {
		n, err := USBWriteBytes(data[written:])
		if err != nil || n == 0 {
			consecutiveFailures++
			if consecutiveFailures > 10 {
				usbWasDisconnected = true
				consecutiveFailures = 0
				inputBuffer.Reset()
			}
			return
		}
		written += n
	}
	consecutiveFailures = 0
}
