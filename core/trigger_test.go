package core

import "testing"

type fakeTrigger struct {
	pressed bool
}

func (f *fakeTrigger) Pressed() bool { return f.pressed }

func TestTriggerMonitorIgnoresShortBounce(t *testing.T) {
	fake := &fakeTrigger{}
	SetTriggerDriver(fake)
	m := NewTriggerMonitor()

	fake.pressed = true
	if m.Poll(0) {
		t.Fatal("edge reported before debounce window elapsed")
	}
	if m.Poll(10) {
		t.Fatal("edge reported before debounce window elapsed")
	}

	// Bounce back low before stabilizing.
	fake.pressed = false
	if m.Poll(20) {
		t.Fatal("edge reported during a bounce")
	}
}

func TestTriggerMonitorFiresOnceOnStablePress(t *testing.T) {
	fake := &fakeTrigger{}
	SetTriggerDriver(fake)
	m := NewTriggerMonitor()

	fake.pressed = true
	m.Poll(0)

	if !m.Poll(TriggerDebounceMs) {
		t.Fatal("expected rising edge once debounce window elapsed")
	}
	// Holding the press should not refire the edge.
	if m.Poll(TriggerDebounceMs + 10) {
		t.Fatal("edge refired while trigger still held")
	}
}

func TestTriggerMonitorRequiresNewDebounceOnRelease(t *testing.T) {
	fake := &fakeTrigger{}
	SetTriggerDriver(fake)
	m := NewTriggerMonitor()

	fake.pressed = true
	m.Poll(0)
	m.Poll(TriggerDebounceMs)

	fake.pressed = false
	m.Poll(TriggerDebounceMs + 1)
	if m.Poll(2*TriggerDebounceMs + 1) {
		t.Fatal("release should not itself report a rising edge")
	}

	fake.pressed = true
	m.Poll(2*TriggerDebounceMs + 10)
	if m.Poll(2*TriggerDebounceMs + 10 + TriggerDebounceMs) != true {
		t.Fatal("expected a fresh rising edge on the second press")
	}
}
