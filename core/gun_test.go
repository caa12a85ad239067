package core

import (
	"testing"

	"github.com/fieldtag/peerlink/protocol"
)

func newTestGun(t *testing.T) (*GunRole, *[]protocol.Frame) {
	t.Helper()
	SetTriggerDriver(&fakeTrigger{})
	SetIRTransmitter(&fakeIRTransmitter{})
	SetLEDStrip(newFakeLEDStrip(MagSize))
	SetIMUDriver(&fakeIMU{})

	sent := &[]protocol.Frame{}
	emit := func(buf []byte) {
		f, ok := protocol.DecodeFrame(buf)
		if !ok {
			t.Fatal("gun emitted an unencodable frame")
		}
		*sent = append(*sent, f)
	}
	return NewGunRole(emit, IMUCalibration{}), sent
}

func TestGunHandshakeLatchesHostState(t *testing.T) {
	g, sent := newTestGun(t)

	completeHandshake(g.Step, 3, 0)

	if !g.HasHandshake() {
		t.Fatal("expected handshake complete after SYN/ACK")
	}
	if g.RemainingBullets() != 3 {
		t.Errorf("RemainingBullets() = %d, want 3 (latched from SYN payload)", g.RemainingBullets())
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeACK {
		t.Fatalf("expected exactly one ACK reply, got %v", *sent)
	}
}

func TestGunTriggerFireEmitsShotAndDecrementsAmmo(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, MagSize, 0)
	*sent = nil

	trigger := &fakeTrigger{}
	SetTriggerDriver(trigger)

	now := uint32(1000)
	trigger.pressed = true
	g.Step(nil, now)
	now += TriggerDebounceMs
	g.Step(nil, now)

	if g.RemainingBullets() != MagSize-1 {
		t.Errorf("RemainingBullets() = %d, want %d", g.RemainingBullets(), MagSize-1)
	}

	var gunshot *protocol.Frame
	for i := range *sent {
		if (*sent)[i].Type == protocol.TypeGunshot {
			gunshot = &(*sent)[i]
		}
	}
	if gunshot == nil {
		t.Fatal("expected a GUNSHOT frame to have been sent")
	}
	bullets, _ := protocol.DecodeRoleState(gunshot.Payload)
	if bullets != MagSize-1 {
		t.Errorf("GUNSHOT payload bullets = %d, want %d", bullets, MagSize-1)
	}
}

func TestGunTriggerFireDoesNothingAtZeroAmmo(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, 0, 0)
	*sent = nil

	trigger := &fakeTrigger{}
	SetTriggerDriver(trigger)
	irTx := SetAndReturnFakeIR()

	trigger.pressed = true
	g.Step(nil, 0)
	g.Step(nil, TriggerDebounceMs)

	if len(irTx.calls) != 0 {
		t.Error("expected no IR emission with an empty magazine")
	}
	for _, f := range *sent {
		if f.Type == protocol.TypeGunshot {
			t.Error("expected no GUNSHOT with an empty magazine")
		}
	}
}

func SetAndReturnFakeIR() *fakeIRTransmitter {
	tx := &fakeIRTransmitter{}
	SetIRTransmitter(tx)
	return tx
}

func TestGunGunshotConfirmPromotesAndAdvancesSeq(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, MagSize, 0)

	trigger := &fakeTrigger{}
	SetTriggerDriver(trigger)
	trigger.pressed = true
	g.Step(nil, 0)
	g.Step(nil, TriggerDebounceMs)

	// Shadow state already reflects the decrement pre-confirmation.
	if g.RemainingBullets() != MagSize-1 {
		t.Fatalf("RemainingBullets() = %d before confirm", g.RemainingBullets())
	}

	var echoSeq uint8
	found := false
	for _, f := range *sent {
		if f.Type == protocol.TypeGunshot {
			echoSeq = f.Seq
			found = true
		}
	}
	if !found {
		t.Fatal("no GUNSHOT sent")
	}

	echo := protocol.Frame{Type: protocol.TypeGunshot, Seq: echoSeq}
	buf := echo.Encode()
	g.Step(buf[:], 2*TriggerDebounceMs)

	if g.RemainingBullets() != MagSize-1 {
		t.Errorf("RemainingBullets() = %d after confirm, want %d", g.RemainingBullets(), MagSize-1)
	}
	if g.pending.IsPending() {
		t.Error("pending state not promoted after confirm")
	}
	if g.seq.TxSeq != echoSeq+1 {
		t.Errorf("TxSeq = %d after confirm, want %d", g.seq.TxSeq, echoSeq+1)
	}
}

func TestGunReloadRefillsMagazine(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, 1, 0)
	*sent = nil

	reload := protocol.Frame{Type: protocol.TypeReload, Seq: 0}
	buf := reload.Encode()
	g.Step(buf[:], 10)

	if g.RemainingBullets() != MagSize {
		t.Errorf("RemainingBullets() = %d, want %d after RELOAD", g.RemainingBullets(), MagSize)
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeReload {
		t.Fatalf("expected one RELOAD echo ack, got %v", *sent)
	}
}

func TestGunUpdateStateSetsAmmoAndAcks(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, MagSize, 0)
	*sent = nil

	update := protocol.Frame{Type: protocol.TypeUpdateState, Seq: 0, Payload: protocol.EncodeRoleState(2, 0)}
	buf := update.Encode()
	g.Step(buf[:], 10)

	if g.RemainingBullets() != 2 {
		t.Errorf("RemainingBullets() = %d, want 2", g.RemainingBullets())
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeGunstateAck {
		t.Fatalf("expected one GUNSTATE_ACK, got %v", *sent)
	}
}

func TestGunIMUCadenceEmitsOnSchedule(t *testing.T) {
	g, sent := newTestGun(t)
	completeHandshake(g.Step, MagSize, 0)
	*sent = nil

	SetIMUDriver(&fakeIMU{sample: IMUSample{AccX: 1, AccY: 2, AccZ: 3}})

	g.Step(nil, IMUSendIntervalMs-1)
	for _, f := range *sent {
		if f.Type == protocol.TypeIMU {
			t.Fatal("IMU emitted before the cadence interval elapsed")
		}
	}

	g.Step(nil, IMUSendIntervalMs)
	var imuCount int
	for _, f := range *sent {
		if f.Type == protocol.TypeIMU {
			imuCount++
		}
	}
	if imuCount != 1 {
		t.Errorf("imuCount = %d, want 1", imuCount)
	}
}

func TestGunDrawMagazineLightsExpectedPixels(t *testing.T) {
	g, _ := newTestGun(t)
	completeHandshake(g.Step, 3, 0)

	led := newFakeLEDStrip(MagSize)
	SetLEDStrip(led)

	if err := g.DrawMagazine(); err != nil {
		t.Fatalf("DrawMagazine: %v", err)
	}
	for i := 0; i < MagSize; i++ {
		lit := led.pixels[i] != [3]uint8{0, 0, 0}
		wantLit := i < 3
		if lit != wantLit {
			t.Errorf("pixel %d lit=%v, want %v", i, lit, wantLit)
		}
	}
}
