package core

// TriggerDebounceMs is the minimum stable duration required before a
// trigger transition is reported.
const TriggerDebounceMs = 50

// TriggerMonitor debounces the gun's trigger switch and reports a
// rising edge exactly once per qualifying press: a small stateful
// object polled once per main-loop tick, without the PWM/timer
// machinery a digital-output pin driver needs; a trigger is read-only
// and has no load/toggle events.
type TriggerMonitor struct {
	stable    bool   // last debounced value
	candidate bool   // raw value currently being watched for stability
	since     uint32 // when candidate started being observed
}

// NewTriggerMonitor constructs a monitor assuming the trigger starts
// unpressed.
func NewTriggerMonitor() *TriggerMonitor {
	return &TriggerMonitor{}
}

// Poll samples the trigger driver and returns true exactly once per
// debounced rising edge: the raw reading must hold steady for at least
// TriggerDebounceMs before the edge is reported.
func (m *TriggerMonitor) Poll(nowMs uint32) bool {
	raw := MustTrigger().Pressed()

	if raw != m.candidate {
		m.candidate = raw
		m.since = nowMs
		return false
	}

	if m.candidate == m.stable {
		return false
	}

	if int32(nowMs-m.since) < TriggerDebounceMs {
		return false
	}

	rising := !m.stable && m.candidate
	m.stable = m.candidate
	return rising
}
