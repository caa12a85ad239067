package core

import (
	"testing"

	"github.com/fieldtag/peerlink/protocol"
)

func newTestHand(t *testing.T) (*HandRole, *[]protocol.Frame) {
	t.Helper()
	SetIMUDriver(&fakeIMU{})

	sent := &[]protocol.Frame{}
	emit := func(buf []byte) {
		f, ok := protocol.DecodeFrame(buf)
		if !ok {
			t.Fatal("hand emitted an unencodable frame")
		}
		*sent = append(*sent, f)
	}
	return NewHandRole(emit, IMUCalibration{}), sent
}

func TestHandHandshakeIgnoresPayload(t *testing.T) {
	h, sent := newTestHand(t)

	completeHandshake(h.Step, 0xAA, 0xBB)

	if !h.HasHandshake() {
		t.Fatal("expected handshake complete after SYN/ACK")
	}
	if len(*sent) != 1 || (*sent)[0].Type != protocol.TypeACK {
		t.Fatalf("expected exactly one ACK reply, got %v", *sent)
	}
}

func TestHandEmitsIMUOnCadenceOnlyAfterHandshake(t *testing.T) {
	h, sent := newTestHand(t)

	h.Step(nil, IMUSendIntervalMs)
	for _, f := range *sent {
		if f.Type == protocol.TypeIMU {
			t.Fatal("IMU emitted before handshake completed")
		}
	}

	completeHandshake(h.Step, 0, 0)
	*sent = nil

	h.Step(nil, IMUSendIntervalMs-1)
	for _, f := range *sent {
		if f.Type == protocol.TypeIMU {
			t.Fatal("IMU emitted before the cadence interval elapsed")
		}
	}

	h.Step(nil, 2*IMUSendIntervalMs)
	var count int
	for _, f := range *sent {
		if f.Type == protocol.TypeIMU {
			count++
		}
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestHandDropsNonHandshakeNonKillFrames(t *testing.T) {
	h, sent := newTestHand(t)
	completeHandshake(h.Step, 0, 0)
	*sent = nil

	reload := protocol.Frame{Type: protocol.TypeReload, Seq: 0}
	buf := reload.Encode()
	h.Step(buf[:], 10)

	if len(*sent) != 0 {
		t.Errorf("expected hand to drop RELOAD silently, got %v", *sent)
	}
}

func TestHandKillRequestsReset(t *testing.T) {
	h, _ := newTestHand(t)
	completeHandshake(h.Step, 0, 0)

	ResetFirmwareState()
	kill := protocol.Frame{Type: protocol.TypeKill}
	buf := kill.Encode()
	h.Step(buf[:], 100)

	resetCalled := false
	SetResetHandler(func() { resetCalled = true })
	CheckPendingReset()
	if !resetCalled {
		t.Error("expected KILL to request a reset")
	}
}
