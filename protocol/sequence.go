package protocol

// Sequence engine timing and retry constants.
const (
	AckTimeoutMs = 1000
	MaxResend    = 3
	ringDepth    = 4
)

type ringSlot struct {
	valid bool
	seq   uint8
	frame Frame
}

// Engine implements the per-direction sequence counters, the 4-slot
// retransmit ring, and NAK-driven selective repeat. It owns all frame
// transmission for data traffic; the handshake controller handles
// SYN/ACK separately and touches this state only through Reset when a
// SYN (re)starts the session.
type Engine struct {
	TxSeq      uint8
	RxExpected uint8

	txRing   [ringDepth]ringSlot // self-originated frames, replayed on NAK
	ackCache [ringDepth]ringSlot // replies to host-originated frames, replayed on duplicate

	Waiting     bool
	ResendCount int
	lastSendMs  uint32

	writer *FrameWriter
}

// NewEngine constructs a sequence engine that transmits through writer.
func NewEngine(writer *FrameWriter) *Engine {
	return &Engine{writer: writer}
}

// Reset clears tx_seq, rx_expected, and both rings. Called by the
// handshake controller whenever a SYN (re)starts the session.
func (e *Engine) Reset() {
	e.TxSeq = 0
	e.RxExpected = 0
	e.txRing = [ringDepth]ringSlot{}
	e.ackCache = [ringDepth]ringSlot{}
	e.Waiting = false
	e.ResendCount = 0
	e.lastSendMs = 0
}

// SendSelfOriginated stamps f with tx_seq, caches it for retransmission,
// and transmits it. Used for GUNSHOT and VESTSHOT. nowMs starts the ACK
// timeout.
func (e *Engine) SendSelfOriginated(f Frame, nowMs uint32) {
	f.Seq = e.TxSeq
	e.txRing[e.TxSeq%ringDepth] = ringSlot{valid: true, seq: e.TxSeq, frame: f}
	e.Waiting = true
	e.ResendCount = 0
	e.lastSendMs = nowMs
	e.writer.Send(f)
}

// ConfirmSelfOriginated is called when the host echoes seq back. If seq
// matches the frame currently awaiting acknowledgement, promote is
// invoked to commit the pending state, the wait flag clears, and tx_seq
// advances (mod 256). Returns whether the echo matched.
func (e *Engine) ConfirmSelfOriginated(seq uint8, promote func()) bool {
	if !e.Waiting || seq != e.TxSeq {
		return false
	}
	promote()
	e.Waiting = false
	e.ResendCount = 0
	e.TxSeq++
	return true
}

// CheckAckTimeout retransmits the cached self-originated frame once the
// ACK timeout has elapsed, up to MaxResend attempts. abandoned is true
// when the retry budget is exhausted on this call; the caller must not
// promote pending state; the next handshake SYN resynchronises instead.
func (e *Engine) CheckAckTimeout(nowMs uint32) (retransmitted, abandoned bool) {
	if !e.Waiting {
		return false, false
	}
	if int32(nowMs-e.lastSendMs) < AckTimeoutMs {
		return false, false
	}
	if e.ResendCount >= MaxResend {
		e.Waiting = false
		return false, true
	}

	slot := e.txRing[e.TxSeq%ringDepth]
	if slot.valid && slot.seq == e.TxSeq {
		e.writer.Send(slot.frame)
	}
	e.ResendCount++
	e.lastSendMs = nowMs
	return true, false
}

// HandleHostOriginated processes an incoming host-originated data frame
// (UPDATE_STATE, RELOAD, ...). apply is called only when frame.seq ==
// rx_expected; it must mutate state and return the ack frame to send
// (seq is filled in by the engine). Duplicates replay the cached ack
// without calling apply. Any other seq, including one more than ringDepth
// behind, emits NAK(rx_expected).
func (e *Engine) HandleHostOriginated(f Frame, apply func(Frame) Frame) {
	switch {
	case f.Seq == e.RxExpected:
		ack := apply(f)
		ack.Seq = e.RxExpected
		e.ackCache[e.RxExpected%ringDepth] = ringSlot{valid: true, seq: e.RxExpected, frame: ack}
		e.writer.Send(ack)
		e.RxExpected++

	case seqBehind(f.Seq, e.RxExpected):
		if slot := e.ackCache[f.Seq%ringDepth]; slot.valid && slot.seq == f.Seq {
			e.writer.Send(slot.frame)
		}
		// No ack cached for this seq since the last Reset: nothing safe
		// to replay. Drop it; the sender's own ACK timeout will
		// eventually resolve this.

	default:
		e.SendNAK()
	}
}

// HandleNAK processes an incoming NAK carrying the sequence the peer
// expects. If that frame is still in the retransmit ring it is resent
// verbatim. killNeeded is true when the frame has already fallen outside
// the 4-frame window; the caller must emit KILL and self-reset.
func (e *Engine) HandleNAK(seq uint8) (killNeeded bool) {
	slot := e.txRing[seq%ringDepth]
	if slot.valid && slot.seq == seq {
		e.writer.Send(slot.frame)
		return false
	}
	return true
}

// SendNAK emits NAK(rx_expected), used both for sequence gaps and for
// CRC-rejected frames.
func (e *Engine) SendNAK() {
	e.writer.Send(NewNAK(e.RxExpected))
}

// seqBehind reports whether seq is one of the last ringDepth sequence
// numbers already processed before expected, accounting for uint8 wrap.
func seqBehind(seq, expected uint8) bool {
	diff := expected - seq
	return diff > 0 && diff <= ringDepth
}
