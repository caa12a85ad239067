//go:build rp2040

package main

import (
	"github.com/fieldtag/peerlink/core"
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map. The hardware counter runs at 1MHz;
// link-layer timing works in milliseconds, so GetHardwareTime divides it
// down, while GetHardwareTimeUs returns the raw microsecond count.
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// InitClock initializes the RP2040 hardware timer. The timer peripheral is
// free-running from power-on; there is nothing to configure beyond taking
// the first reading in TimerInit.
func InitClock() {}

// GetHardwareTimeUs reads the RP2040 hardware timer's raw microsecond
// count, for callers that need finer resolution than the millisecond link
// clock (the IR edge interrupt's mark/space timing).
func GetHardwareTimeUs() uint32 {
	return timerRAWL.Get()
}

// GetHardwareTime reads the RP2040 hardware timer and scales it down to
// milliseconds, wrapping at the same cadence as the underlying uint32.
func GetHardwareTime() uint32 {
	return GetHardwareTimeUs() / 1000
}

// UpdateSystemTime updates the core timer with hardware time. Called once
// per main loop iteration.
func UpdateSystemTime() {
	core.SetTime(GetHardwareTime())
}
