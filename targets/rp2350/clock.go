//go:build rp2350

package main

import (
	"github.com/fieldtag/peerlink/core"
	"runtime/volatile"
	"unsafe"
)

// RP2350 Timer peripheral memory map
// NOTE: RP2350 timer is at a DIFFERENT address than RP2040!
// - RP2040 TIMER: 0x40054000
// - RP2350 TIMER0: 0x400B0000
//
// Timer register offsets (from timerType struct in TinyGo):
// timeHW   @ 0x00 - Write to upper 32b
// timeLW   @ 0x04 - Write to lower 32b
// timeHR   @ 0x08 - Latched read from upper 32b
// timeLR   @ 0x0C - Latched read from lower 32b (latches timeHR)
// alarm[4] @ 0x10-0x1C
// armed    @ 0x20
// timeRawH @ 0x24 - Raw read from upper 32b
// timeRawL @ 0x28 - Raw read from lower 32b (what TinyGo uses)
const (
	timerBase     = 0x400B0000       // RP2350 TIMER0 base address
	timerTimeRawL = timerBase + 0x28 // Raw timer low (no latching)
)

var timerRawL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTimeRawL)))

// InitClock initializes the RP2350 hardware timer.
// Note: TinyGo's runtime already initializes the tick generators via
// clks.initTicks(); this just waits for a few stable readings.
func InitClock() {
	_ = timerRawL.Get()
	_ = timerRawL.Get()
	_ = timerRawL.Get()
}

// GetHardwareTimeUs reads the RP2350 hardware timer's raw microsecond
// count, for callers needing finer resolution than the millisecond link
// clock.
func GetHardwareTimeUs() uint32 {
	return timerRawL.Get()
}

// GetHardwareTime reads the RP2350 hardware timer and scales it down to
// milliseconds.
func GetHardwareTime() uint32 {
	return GetHardwareTimeUs() / 1000
}

// UpdateSystemTime updates the core timer with hardware time. Called once
// per main loop iteration.
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
