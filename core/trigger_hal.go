package core

// TriggerDriver samples the gun's trigger switch: an active-high digital
// input. Debouncing lives in the role logic (trigger.go); the driver
// only reports the raw pin state.
type TriggerDriver interface {
	// Pressed returns true while the switch reads active (high).
	Pressed() bool
}

// Global singleton used by core code.
var triggerDriver TriggerDriver

// SetTriggerDriver is called by target-specific code to register its driver.
func SetTriggerDriver(d TriggerDriver) {
	triggerDriver = d
}

// MustTrigger returns the configured driver or panics if missing.
func MustTrigger() TriggerDriver {
	if triggerDriver == nil {
		panic("trigger driver not configured")
	}
	return triggerDriver
}
