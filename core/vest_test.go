package core

import (
	"testing"

	"github.com/fieldtag/peerlink/protocol"
)

func newTestVest(t *testing.T) (*VestRole, *[]protocol.Frame) {
	t.Helper()
	SetIRReceiver(&fakeIRReceiver{})
	SetLEDStrip(newFakeLEDStrip(HPBarSize))

	sent := &[]protocol.Frame{}
	emit := func(buf []byte) {
		f, ok := protocol.DecodeFrame(buf)
		if !ok {
			t.Fatal("vest emitted an unencodable frame")
		}
		*sent = append(*sent, f)
	}
	return NewVestRole(emit), sent
}

func TestVestHandshakeLatchesHostState(t *testing.T) {
	v, sent := newTestVest(t)

	completeHandshake(v.Step, 10, 50)

	if !v.HasHandshake() {
		t.Fatal("expected handshake complete after SYN/ACK")
	}
	state := v.CurrentState()
	if state.Shield != 10 || state.Health != 50 {
		t.Errorf("CurrentState() = %+v, want {Shield:10 Health:50}", state)
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeACK {
		t.Fatalf("expected exactly one ACK reply, got %v", *sent)
	}
}

func TestVestIRHitAbsorbsShieldFirstAndEmitsVestshot(t *testing.T) {
	v, sent := newTestVest(t)
	completeHandshake(v.Step, 3, 50)
	*sent = nil

	SetIRReceiver(&fakeIRReceiver{pending: []uint32{0xFF0016}})
	v.Step(nil, 0)

	state := v.CurrentState()
	if state.Shield != 0 || state.Health != 48 {
		t.Errorf("CurrentState() = %+v, want {Shield:0 Health:48}", state)
	}

	var shot *protocol.Frame
	for i := range *sent {
		if (*sent)[i].Type == protocol.TypeVestshot {
			shot = &(*sent)[i]
		}
	}
	if shot == nil {
		t.Fatal("expected a VESTSHOT frame")
	}
	shield, health := protocol.DecodeRoleState(shot.Payload)
	if shield != 0 || health != 48 {
		t.Errorf("VESTSHOT payload = (%d,%d), want (0,48)", shield, health)
	}
}

func TestVestIRHitSnapsOnLethalDamage(t *testing.T) {
	v, _ := newTestVest(t)
	completeHandshake(v.Step, 0, 3)

	SetIRReceiver(&fakeIRReceiver{pending: []uint32{0x16}})
	v.Step(nil, 0)

	state := v.CurrentState()
	if state.Shield != 0 || state.Health != 100 {
		t.Errorf("CurrentState() = %+v, want {Shield:0 Health:100} (lethal snap)", state)
	}
}

func TestVestIgnoresNonHitIRCodes(t *testing.T) {
	v, sent := newTestVest(t)
	completeHandshake(v.Step, 30, 100)
	*sent = nil

	SetIRReceiver(&fakeIRReceiver{pending: []uint32{0x42}})
	v.Step(nil, 0)

	for _, f := range *sent {
		if f.Type == protocol.TypeVestshot {
			t.Error("unexpected VESTSHOT from a non-hit IR code")
		}
	}
}

func TestVestUpdateStateSetsShieldAndHealthAndAcks(t *testing.T) {
	v, sent := newTestVest(t)
	completeHandshake(v.Step, 0, 100)
	*sent = nil

	update := protocol.Frame{Type: protocol.TypeUpdateState, Seq: 0, Payload: protocol.EncodeRoleState(20, 75)}
	buf := update.Encode()
	v.Step(buf[:], 100)

	state := v.CurrentState()
	if state.Shield != 20 || state.Health != 75 {
		t.Errorf("CurrentState() = %+v, want {Shield:20 Health:75}", state)
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeVeststateAck {
		t.Fatalf("expected one VESTSTATE_ACK, got %v", *sent)
	}
}

func TestVestDrawHPBarPartialPixelIsDim(t *testing.T) {
	v, _ := newTestVest(t)
	completeHandshake(v.Step, 0, 25) // full=2, remainder=5

	led := newFakeLEDStrip(HPBarSize)
	SetLEDStrip(led)

	if err := v.DrawHPBar(); err != nil {
		t.Fatalf("DrawHPBar: %v", err)
	}
	for i := 0; i < 2; i++ {
		if led.pixels[i] != HPBarColor {
			t.Errorf("pixel %d = %v, want fully lit %v", i, led.pixels[i], HPBarColor)
		}
	}
	if led.pixels[2] != hpBarDimColor {
		t.Errorf("pixel 2 = %v, want dim %v", led.pixels[2], hpBarDimColor)
	}
	for i := 3; i < HPBarSize; i++ {
		if led.pixels[i] != [3]uint8{0, 0, 0} {
			t.Errorf("pixel %d = %v, want dark", i, led.pixels[i])
		}
	}
}

func TestVestNAKBeyondWindowEmitsKill(t *testing.T) {
	v, sent := newTestVest(t)
	completeHandshake(v.Step, 0, 100)
	*sent = nil

	nak := protocol.Frame{Type: protocol.TypeNAK, Seq: 0}
	buf := nak.Encode()
	v.Step(buf[:], 0)

	var gotKill bool
	for _, f := range *sent {
		if f.Type == protocol.TypeKill {
			gotKill = true
		}
	}
	if !gotKill {
		t.Error("expected a KILL frame for a NAK outside the retransmit window")
	}
}
