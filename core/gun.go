package core

import "github.com/fieldtag/peerlink/protocol"

// MagSize is the gun's magazine capacity.
const MagSize = 6

// GunshotIRCode is the 32-bit NEC code emitted on every trigger pull.
const GunshotIRCode = 0xFF6897

// GunRole wires the shared link-protocol components to the gun's role
// logic: trigger-triggered shots, ammo bookkeeping, and the
// six-pixel magazine LED strip.
type GunRole struct {
	Reader *protocol.FrameReader
	Writer *protocol.FrameWriter

	handshake *protocol.Handshake
	seq       *protocol.Engine
	pending   protocol.GunPending
	dispatch  *Dispatcher

	trigger   *TriggerMonitor
	calib     IMUCalibration
	lastIMUMs uint32
}

// NewGunRole constructs a gun role ready to drive the shared link
// components through emit.
func NewGunRole(emit func([]byte), calib IMUCalibration) *GunRole {
	g := &GunRole{
		Reader:  protocol.NewFrameReader(),
		trigger: NewTriggerMonitor(),
		calib:   calib,
	}
	g.Writer = protocol.NewFrameWriter(emit)
	g.seq = protocol.NewEngine(g.Writer)
	g.pending.Canonical = protocol.GunState{RemainingBullets: MagSize}

	g.handshake = protocol.NewHandshake()
	g.handshake.LatchPending = func(payload [protocol.PayloadSize]byte) {
		bullets, _ := protocol.DecodeRoleState(payload)
		g.pending.Stage(protocol.GunState{RemainingBullets: bullets})
	}
	g.handshake.PromotePending = g.pending.Promote
	g.handshake.ResetSequence = g.seq.Reset

	g.dispatch = NewDispatcher()
	g.dispatch.Register(protocol.TypeGunshot, func(f protocol.Frame) {
		g.seq.ConfirmSelfOriginated(f.Seq, g.pending.Promote)
	})
	g.dispatch.Register(protocol.TypeReload, func(f protocol.Frame) {
		// RELOAD always refills to MagSize; the host's payload carries no
		// state for this frame type.
		g.seq.HandleHostOriginated(f, func(protocol.Frame) protocol.Frame {
			g.pending.Stage(protocol.GunState{RemainingBullets: MagSize})
			g.pending.Promote()
			return protocol.Frame{
				Type:    protocol.TypeReload,
				Payload: protocol.EncodeRoleState(g.pending.Effective().RemainingBullets, 0),
			}
		})
	})
	g.dispatch.Register(protocol.TypeUpdateState, func(f protocol.Frame) {
		g.seq.HandleHostOriginated(f, func(protocol.Frame) protocol.Frame {
			bullets, _ := protocol.DecodeRoleState(f.Payload)
			g.pending.Stage(protocol.GunState{RemainingBullets: bullets})
			g.pending.Promote()
			return protocol.Frame{
				Type:    protocol.TypeGunstateAck,
				Payload: protocol.EncodeRoleState(g.pending.Effective().RemainingBullets, 0),
			}
		})
	})

	return g
}

// HasHandshake reports whether application traffic may flow.
func (g *GunRole) HasHandshake() bool {
	return g.handshake.HasHandshake()
}

// Step runs one scheduler-tick iteration of the gun's loop, in strict
// order: drain at most one frame, poll the trigger, emit IMU on
// cadence, then check for an ACK timeout. It returns the number of
// leading bytes of incoming actually consumed into the frame reader, so
// the caller can leave the remainder buffered for a later tick instead
// of discarding it.
func (g *GunRole) Step(incoming []byte, nowMs uint32) int {
	consumed := 0
	if len(incoming) > 0 {
		consumed = g.Reader.Write(incoming)
	}

	if f, result := g.Reader.Next(); result != protocol.ResultNone {
		if result == protocol.ResultCRCReject {
			RecordTiming(EvtFrameRejected, 0, nowMs, 0, 0)
			g.seq.SendNAK()
		} else {
			RecordTiming(EvtFrameAccepted, f.Seq, nowMs, uint32(f.Type), 0)
			g.handleFrame(f, nowMs)
		}
	}

	if g.HasHandshake() {
		if g.trigger.Poll(nowMs) {
			g.fireTrigger(nowMs)
		}

		if int32(nowMs-g.lastIMUMs) >= IMUSendIntervalMs {
			g.lastIMUMs = nowMs
			if frame, ok := SampleIMUFrame(g.calib); ok {
				g.Writer.Send(frame)
			}
		}
	}

	if retransmitted, abandoned := g.seq.CheckAckTimeout(nowMs); retransmitted {
		RecordTiming(EvtRetransmit, g.seq.TxSeq, nowMs, 0, 0)
	} else if abandoned {
		RecordTiming(EvtAbandon, g.seq.TxSeq, nowMs, 0, 0)
		g.pending.Clear()
	}

	return consumed
}

func (g *GunRole) handleFrame(f protocol.Frame, nowMs uint32) {
	if !g.HasHandshake() {
		if protocol.IsHandshakeFrame(f.Type) {
			g.handshakeReply(f, nowMs)
		}
		return
	}

	switch f.Type {
	case protocol.TypeSYN, protocol.TypeACK:
		g.handshakeReply(f, nowMs)

	case protocol.TypeKill:
		RequestReset()

	case protocol.TypeNAK:
		if killNeeded := g.seq.HandleNAK(f.Seq); killNeeded {
			RecordTiming(EvtKill, f.Seq, nowMs, 0, 0)
			g.Writer.Send(protocol.NewKill())
			RequestReset()
		}

	default:
		g.dispatch.Dispatch(f)
	}
}

// handshakeReply runs a SYN/ACK through the handshake controller and
// emits whatever reply it produces.
func (g *GunRole) handshakeReply(f protocol.Frame, nowMs uint32) {
	wasRunning := g.HasHandshake()
	reply, send := g.handshake.Handle(f)
	if send {
		g.Writer.Send(reply)
	}
	if wasRunning != g.HasHandshake() {
		RecordTiming(EvtHandshakeChange, 0, nowMs, 0, 0)
	}
}

// fireTrigger implements the trigger-press operation: emit the
// NEC shot code, optimistically decrement ammo, and send GUNSHOT.
func (g *GunRole) fireTrigger(nowMs uint32) {
	current := g.pending.Effective()
	if current.RemainingBullets == 0 {
		return
	}

	MustIRTransmitter().SendNEC(GunshotIRCode, 32)

	next := protocol.GunState{RemainingBullets: current.RemainingBullets - 1}
	g.pending.Stage(next)

	g.seq.SendSelfOriginated(protocol.Frame{
		Type:    protocol.TypeGunshot,
		Payload: protocol.EncodeRoleState(next.RemainingBullets, 0),
	}, nowMs)
}

// RemainingBullets returns the ammo count outbound frames and the LED
// strip should currently report.
func (g *GunRole) RemainingBullets() uint8 {
	return g.pending.Effective().RemainingBullets
}

// MagazineColor is the low-intensity green used for a lit bullet pixel,
// as the red, green, blue arguments of SetPixel.
var MagazineColor = [3]uint8{0, 10, 0}

// DrawMagazine pushes the six-pixel magazine display: pixel i is
// lit when i < remaining bullets, dark otherwise.
func (g *GunRole) DrawMagazine() error {
	strip := MustLEDStrip()
	remaining := g.RemainingBullets()
	for i := 0; i < MagSize; i++ {
		if uint8(i) < remaining {
			strip.SetPixel(i, MagazineColor[0], MagazineColor[1], MagazineColor[2])
		} else {
			strip.SetPixel(i, 0, 0, 0)
		}
	}
	return strip.Show()
}
