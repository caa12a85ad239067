//go:build rp2040

package pio

// PIO-generated 38kHz NEC carrier, hardware-timed so the gun's trigger
// pull doesn't jitter the CPU loop waiting on microsecond sleeps.

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// smClockDivider slows the state machine's effective clock so that a
// single "set pins" instruction takes one NEC carrier half-period (38kHz
// carrier => 13.16us half-period). At the RP2040's 125MHz system clock,
// 125,000,000 / (2 * 38,000) ~= 1645 cycles per half-period.
const smClockDividerInt = 1645

// buildNECProgram assembles the PIO program that plays one mark/space pulse
// pair per FIFO word: toggle the pin once per state-machine cycle for the
// mark phase (the slowed clock makes each toggle one carrier half-period),
// then hold it low for the space phase.
//
// Command word format:
//
//	Bits 0-15:  mark duration, in mark_loop passes (set high, set low)
//	Bits 16-31: space duration, in state-machine cycles
func buildNECProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		// .wrap_target
		asm.Pull(false, true).Encode(),        // 0: pull block
		asm.Out(rp2pio.OutDestX, 16).Encode(), // 1: out x, 16 (mark_loop passes)
		asm.Out(rp2pio.OutDestY, 16).Encode(), // 2: out y, 16 (space cycles)
		// mark_loop:
		asm.Set(rp2pio.SetDestPins, 1).Encode(), // 3: set pins, 1
		asm.Set(rp2pio.SetDestPins, 0).Encode(), // 4: set pins, 0
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(), // 5: jmp x--, 3
		// space_loop:
		asm.Jmp(6, rp2pio.JmpYNZeroDec).Encode(), // 6: jmp y--, 6
		// .wrap
	}
}

const necPIOOrigin = 0

// NECTransmitter drives an IR LED through a PIO state machine, converting
// mark/space microsecond durations (as produced by core.MarshalNEC) into
// carrier toggle counts.
type NECTransmitter struct {
	pio    *rp2pio.PIO
	sm     rp2pio.StateMachine
	irPin  machine.Pin
	offset uint8
}

// NewNECTransmitter claims state machine smNum on the given PIO block.
func NewNECTransmitter(pioNum, smNum uint8) *NECTransmitter {
	var pioHW *rp2pio.PIO
	if pioNum == 0 {
		pioHW = rp2pio.PIO0
	} else {
		pioHW = rp2pio.PIO1
	}
	return &NECTransmitter{
		pio: pioHW,
		sm:  pioHW.StateMachine(smNum),
	}
}

// Init loads the NEC carrier program and configures irPin as its sole
// output.
func (t *NECTransmitter) Init(irPin machine.Pin) error {
	t.irPin = irPin
	t.sm.TryClaim()

	program := buildNECProgram()
	offset, err := t.pio.AddProgram(program, necPIOOrigin)
	if err != nil {
		return err
	}
	t.offset = offset

	t.irPin.Configure(machine.PinConfig{Mode: t.pio.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(t.irPin, 1)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	cfg.SetClkDivIntFrac(smClockDividerInt, 0)

	t.sm.Init(offset, cfg)
	t.sm.SetPindirsConsecutive(t.irPin, 1, true)
	t.sm.SetPinsConsecutive(t.irPin, 1, false)
	t.sm.SetEnabled(true)

	return nil
}

// PlayPulse queues one mark/space pair. markPasses and spaceDelayUnits
// are already converted from microseconds by the caller.
func (t *NECTransmitter) PlayPulse(markPasses, spaceDelayUnits uint16) {
	cmd := uint32(markPasses) | (uint32(spaceDelayUnits) << 16)
	for t.sm.IsTxFIFOFull() {
	}
	t.sm.TxPut(cmd)
}
