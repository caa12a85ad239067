package core

var (
	systemTicks uint32
	bootTimeMs  uint32 // Time at boot, for uptime calculation
)

// GetTime returns the current system time in milliseconds. All link-layer
// timing (handshake, ACK timeout, debounce, IMU cadence) is expressed on
// this clock.
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// GetUptime returns milliseconds elapsed since TimerInit was called.
func GetUptime() uint32 {
	return GetTime() - bootTimeMs
}

// TimerInit records the boot timestamp.
func TimerInit() {
	bootTimeMs = GetTime()
}
