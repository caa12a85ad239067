package core

// LatchedNEC adapts an NECDecoder for interrupt-driven receivers: HandleSpace
// is fed from a GPIO edge interrupt while Decode is polled from the main
// loop, so the latched command is exchanged under a critical section rather
// than a runtime mutex (consistent with this package's other interrupt-context
// state).
type LatchedNEC struct {
	decoder *NECDecoder
	cmd     uint32
	fresh   bool
}

// NewLatchedNEC constructs a ready-to-use latch.
func NewLatchedNEC() *LatchedNEC {
	l := &LatchedNEC{}
	l.decoder = NewNECDecoder(func(code uint32) {
		state := disableInterrupts()
		l.cmd = code
		l.fresh = true
		restoreInterrupts(state)
	})
	return l
}

// HandleSpace feeds one measured space duration into the decoder. Call this
// from the GPIO edge interrupt handler.
func (l *LatchedNEC) HandleSpace(spaceUs uint32) {
	l.decoder.HandleSpace(spaceUs)
}

// Decode implements IRReceiver: returns the latched command and clears it.
func (l *LatchedNEC) Decode() (uint32, bool) {
	state := disableInterrupts()
	cmd, ok := l.cmd, l.fresh
	l.fresh = false
	restoreInterrupts(state)
	return cmd, ok
}
