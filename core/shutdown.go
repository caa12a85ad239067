package core

import "sync/atomic"

var (
	isShutdown   uint32 // atomic bool
	resetPending uint32 // atomic bool
)

// globalResetHandler performs the platform's hard reset (e.g. a
// watchdog timeout), set by target-specific code.
var globalResetHandler func()

// TryShutdown records a fatal error with a reason and logs it; it does
// not stop the loop itself, the caller does. Used when a sensor init
// failure is detected before the peripheral ever reaches the handshake;
// this is fatal and requires a physical reset.
func TryShutdown(reason string) {
	atomic.StoreUint32(&isShutdown, 1)
	DebugPrintln("[SHUTDOWN] " + reason)
}

// IsShutdown reports whether the firmware has halted on a fatal error.
func IsShutdown() bool {
	return atomic.LoadUint32(&isShutdown) != 0
}

// ResetFirmwareState clears the shutdown and pending-reset flags. Called
// after a hard reset completes or a fresh connection is established.
func ResetFirmwareState() {
	atomic.StoreUint32(&isShutdown, 0)
	atomic.StoreUint32(&resetPending, 0)
}

// SetResetHandler registers the platform-specific hard reset (normally
// watchdog-based on the TinyGo targets).
func SetResetHandler(handler func()) {
	globalResetHandler = handler
}

// RequestReset marks a reset as pending. The reset itself is deferred
// until CheckPendingReset runs, so any frame already queued for
// transmission (e.g. the last ACK before a KILL) gets flushed first.
func RequestReset() {
	atomic.StoreUint32(&resetPending, 1)
}

// CheckPendingReset executes a deferred reset request. Call this from
// the main loop after all pending output for the iteration has been
// sent.
func CheckPendingReset() {
	if atomic.LoadUint32(&resetPending) != 0 && globalResetHandler != nil {
		globalResetHandler()
		// Should never return: the reset handler resets the MCU.
	}
}
