package core

import "github.com/fieldtag/peerlink/protocol"

// VestHitDamage is the fixed damage applied per detected IR hit.
const VestHitDamage = 5

// VestHitCode is the decoded NEC command that identifies a valid hit.
// Only the low byte of the 32-bit code is checked against it; see
// NECDecoder.
const VestHitCode = 0x16

// HPBarSize is the number of pixels in the vest's health bar.
const HPBarSize = 10

// VestRole wires the shared link-protocol components to the vest's role
// logic: IR hit detection, shield/health damage arithmetic, and
// the ten-pixel HP bar.
type VestRole struct {
	Reader *protocol.FrameReader
	Writer *protocol.FrameWriter

	handshake *protocol.Handshake
	seq       *protocol.Engine
	pending   protocol.VestPending
	dispatch  *Dispatcher
}

// NewVestRole constructs a vest role. emit transmits outbound frames.
func NewVestRole(emit func([]byte)) *VestRole {
	v := &VestRole{
		Reader: protocol.NewFrameReader(),
	}
	v.Writer = protocol.NewFrameWriter(emit)
	v.seq = protocol.NewEngine(v.Writer)
	v.pending.Canonical = protocol.VestState{Shield: 0, Health: 100}

	v.handshake = protocol.NewHandshake()
	v.handshake.LatchPending = func(payload [protocol.PayloadSize]byte) {
		shield, health := protocol.DecodeRoleState(payload)
		v.pending.Stage(protocol.VestState{Shield: shield, Health: health})
	}
	v.handshake.PromotePending = v.pending.Promote
	v.handshake.ResetSequence = v.seq.Reset

	v.dispatch = NewDispatcher()
	v.dispatch.Register(protocol.TypeVestshot, func(f protocol.Frame) {
		v.seq.ConfirmSelfOriginated(f.Seq, v.pending.Promote)
	})
	v.dispatch.Register(protocol.TypeUpdateState, func(f protocol.Frame) {
		v.seq.HandleHostOriginated(f, func(protocol.Frame) protocol.Frame {
			shield, health := protocol.DecodeRoleState(f.Payload)
			v.pending.Stage(protocol.VestState{Shield: shield, Health: health})
			v.pending.Promote()
			eff := v.pending.Effective()
			return protocol.Frame{
				Type:    protocol.TypeVeststateAck,
				Payload: protocol.EncodeRoleState(eff.Shield, eff.Health),
			}
		})
	})

	return v
}

// HasHandshake reports whether application traffic may flow.
func (v *VestRole) HasHandshake() bool {
	return v.handshake.HasHandshake()
}

// Step runs one scheduler-tick iteration of the vest's loop: drain at
// most one frame, poll the IR receiver, then check for an ACK timeout.
// The vest has no IMU cadence of its own. It returns the number of
// leading bytes of incoming actually consumed into the frame reader, so
// the caller can leave the remainder buffered for a later tick instead
// of discarding it.
func (v *VestRole) Step(incoming []byte, nowMs uint32) int {
	consumed := 0
	if len(incoming) > 0 {
		consumed = v.Reader.Write(incoming)
	}

	if f, result := v.Reader.Next(); result != protocol.ResultNone {
		if result == protocol.ResultCRCReject {
			RecordTiming(EvtFrameRejected, 0, nowMs, 0, 0)
			v.seq.SendNAK()
		} else {
			RecordTiming(EvtFrameAccepted, f.Seq, nowMs, uint32(f.Type), 0)
			v.handleFrame(f, nowMs)
		}
	}

	if v.HasHandshake() {
		if cmd, ok := MustIRReceiver().Decode(); ok && (cmd&0xFF) == VestHitCode {
			v.registerHit(nowMs)
		}
	}

	if retransmitted, abandoned := v.seq.CheckAckTimeout(nowMs); retransmitted {
		RecordTiming(EvtRetransmit, v.seq.TxSeq, nowMs, 0, 0)
	} else if abandoned {
		RecordTiming(EvtAbandon, v.seq.TxSeq, nowMs, 0, 0)
		v.pending.Clear()
	}

	return consumed
}

// registerHit implements the IR-hit operation: damage the
// pending shield/health copy, shield first, and emit VESTSHOT.
func (v *VestRole) registerHit(nowMs uint32) {
	current := v.pending.Effective()
	next := protocol.ApplyDamage(current, VestHitDamage)
	v.pending.Stage(next)

	v.seq.SendSelfOriginated(protocol.Frame{
		Type:    protocol.TypeVestshot,
		Payload: protocol.EncodeRoleState(next.Shield, next.Health),
	}, nowMs)
}

func (v *VestRole) handleFrame(f protocol.Frame, nowMs uint32) {
	if !v.HasHandshake() {
		if protocol.IsHandshakeFrame(f.Type) {
			v.handshakeReply(f, nowMs)
		}
		return
	}

	switch f.Type {
	case protocol.TypeSYN, protocol.TypeACK:
		v.handshakeReply(f, nowMs)

	case protocol.TypeKill:
		RequestReset()

	case protocol.TypeNAK:
		if killNeeded := v.seq.HandleNAK(f.Seq); killNeeded {
			RecordTiming(EvtKill, f.Seq, nowMs, 0, 0)
			v.Writer.Send(protocol.NewKill())
			RequestReset()
		}

	default:
		v.dispatch.Dispatch(f)
	}
}

func (v *VestRole) handshakeReply(f protocol.Frame, nowMs uint32) {
	wasRunning := v.HasHandshake()
	reply, send := v.handshake.Handle(f)
	if send {
		v.Writer.Send(reply)
	}
	if wasRunning != v.HasHandshake() {
		RecordTiming(EvtHandshakeChange, 0, nowMs, 0, 0)
	}
}

// CurrentState returns the shield/health pair outbound frames and the
// HP bar should currently report.
func (v *VestRole) CurrentState() protocol.VestState {
	return v.pending.Effective()
}

// HPBarColor is the fully-lit green used below the partial pixel; the
// partial pixel itself is drawn at reduced brightness.
var HPBarColor = [3]uint8{0, 20, 0}
var hpBarDimColor = [3]uint8{0, 6, 0}

// DrawHPBar pushes the ten-pixel health display: full = health/10
// pixels fully lit, one more dim iff the remainder is non-zero, the rest
// dark.
func (v *VestRole) DrawHPBar() error {
	strip := MustLEDStrip()
	health := v.CurrentState().Health
	full := int(health / 10)
	remainder := health % 10

	for i := 0; i < HPBarSize; i++ {
		switch {
		case i < full:
			strip.SetPixel(i, HPBarColor[0], HPBarColor[1], HPBarColor[2])
		case i == full && remainder > 0:
			strip.SetPixel(i, hpBarDimColor[0], hpBarDimColor[1], hpBarDimColor[2])
		default:
			strip.SetPixel(i, 0, 0, 0)
		}
	}
	return strip.Show()
}
