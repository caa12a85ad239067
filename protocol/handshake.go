package protocol

// handshakeState is the per-role handshake state.
type handshakeState int

const (
	HandshakeIdle handshakeState = iota
	HandshakeRunning
)

// IsHandshakeFrame reports whether t is one of the two frame types
// accepted while has_handshake is false. Every other type must be
// silently dropped by the caller.
func IsHandshakeFrame(t byte) bool {
	return t == TypeSYN || t == TypeACK
}

// Handshake drives the SYN -> ACK -> ACK exchange that gates all
// application traffic and resynchronises sequence counters after a
// host-side restart.
type Handshake struct {
	state        handshakeState
	hasHandshake bool

	// LatchPending loads the shadow state from a SYN's payload so the
	// peripheral's closing ACK (and any traffic after promotion) reports
	// the host-chosen state.
	LatchPending func(payload [PayloadSize]byte)

	// PromotePending commits the shadow state to canonical. Called when
	// the closing ACK arrives in IDLE.
	PromotePending func()

	// ResetSequence clears tx_seq, rx_expected, and the retransmit ring.
	ResetSequence func()
}

// NewHandshake constructs a Handshake in the initial IDLE state. The
// three callback fields must be set before Handle is called.
func NewHandshake() *Handshake {
	return &Handshake{state: HandshakeIdle}
}

// HasHandshake reports whether the handshake has completed and
// application traffic may flow.
func (h *Handshake) HasHandshake() bool {
	return h.hasHandshake
}

// Handle processes a SYN or ACK frame. It returns the reply frame to
// send, if any. Handshake frames never consume tx_seq and are never
// stored in tx_ring; the sequence engine never sees them.
func (h *Handshake) Handle(f Frame) (reply Frame, send bool) {
	switch f.Type {
	case TypeSYN:
		// A SYN always (re)starts the handshake, whether currently IDLE
		// or RUNNING. A SYN while RUNNING means the host restarted and
		// we resynchronise exactly as we would from power-up.
		h.state = HandshakeIdle
		h.hasHandshake = false
		h.ResetSequence()
		h.LatchPending(f.Payload)
		return Frame{Type: TypeACK, Payload: f.Payload}, true

	case TypeACK:
		if h.state == HandshakeIdle {
			h.PromotePending()
			h.hasHandshake = true
			h.state = HandshakeRunning
		}
		return Frame{}, false
	}
	return Frame{}, false
}
