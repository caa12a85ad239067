package core

import "github.com/fieldtag/peerlink/protocol"

// HandRole is the minimal glove peripheral: it carries no role
// state of its own, responds only to SYN/ACK/KILL, and emits IMU
// telemetry on the same 50ms cadence as the gun once handshaken.
type HandRole struct {
	Reader *protocol.FrameReader
	Writer *protocol.FrameWriter

	handshake *protocol.Handshake
	seq       *protocol.Engine

	calib     IMUCalibration
	lastIMUMs uint32
}

// NewHandRole constructs a hand role. emit transmits outbound frames.
func NewHandRole(emit func([]byte), calib IMUCalibration) *HandRole {
	h := &HandRole{
		Reader: protocol.NewFrameReader(),
		calib:  calib,
	}
	h.Writer = protocol.NewFrameWriter(emit)
	h.seq = protocol.NewEngine(h.Writer)

	h.handshake = protocol.NewHandshake()
	// The hand has no role state; latch/promote are no-ops.
	h.handshake.LatchPending = func([protocol.PayloadSize]byte) {}
	h.handshake.PromotePending = func() {}
	h.handshake.ResetSequence = h.seq.Reset

	return h
}

// HasHandshake reports whether application traffic may flow.
func (h *HandRole) HasHandshake() bool {
	return h.handshake.HasHandshake()
}

// Step runs one scheduler-tick iteration: drain at most one frame, then
// emit IMU on cadence. The hand has no trigger, no sequence-tracked
// outbound frames, and therefore no ACK timeout to check. It returns
// the number of leading bytes of incoming actually consumed into the
// frame reader, so the caller can leave the remainder buffered for a
// later tick instead of discarding it.
func (h *HandRole) Step(incoming []byte, nowMs uint32) int {
	consumed := 0
	if len(incoming) > 0 {
		consumed = h.Reader.Write(incoming)
	}

	if f, result := h.Reader.Next(); result != protocol.ResultNone {
		if result == protocol.ResultCRCReject {
			RecordTiming(EvtFrameRejected, 0, nowMs, 0, 0)
			h.seq.SendNAK()
		} else {
			RecordTiming(EvtFrameAccepted, f.Seq, nowMs, uint32(f.Type), 0)
			h.handleFrame(f, nowMs)
		}
	}

	if h.HasHandshake() && int32(nowMs-h.lastIMUMs) >= IMUSendIntervalMs {
		h.lastIMUMs = nowMs
		if frame, ok := SampleIMUFrame(h.calib); ok {
			h.Writer.Send(frame)
		}
	}

	return consumed
}

func (h *HandRole) handleFrame(f protocol.Frame, nowMs uint32) {
	switch f.Type {
	case protocol.TypeSYN, protocol.TypeACK:
		wasRunning := h.HasHandshake()
		reply, send := h.handshake.Handle(f)
		if send {
			h.Writer.Send(reply)
		}
		if wasRunning != h.HasHandshake() {
			RecordTiming(EvtHandshakeChange, 0, nowMs, 0, 0)
		}

	case protocol.TypeKill:
		if h.HasHandshake() {
			RequestReset()
		}
	}
}
