package core

import "github.com/fieldtag/peerlink/protocol"

// Shared capability-port fakes for gun/vest/hand role tests.

// completeHandshake drives a role's SYN->ACK->ACK exchange so tests can
// reach the post-handshake state without hand-rolling the frame bytes
// each time. step is the role's Step method; a and b are the two bytes
// of the host-chosen role state carried in the SYN payload.
func completeHandshake(step func(incoming []byte, nowMs uint32) int, a, b uint8) {
	syn := protocol.Frame{Type: protocol.TypeSYN, Payload: protocol.EncodeRoleState(a, b)}
	synBuf := syn.Encode()
	step(synBuf[:], 0)

	ack := protocol.Frame{Type: protocol.TypeACK}
	ackBuf := ack.Encode()
	step(ackBuf[:], 1)
}

type fakeIMU struct {
	sample IMUSample
}

func (f *fakeIMU) Sample() (IMUSample, error) { return f.sample, nil }

type irTxCall struct {
	code uint32
	bits uint8
}

type fakeIRTransmitter struct {
	calls []irTxCall
}

func (f *fakeIRTransmitter) SendNEC(code uint32, bits uint8) {
	f.calls = append(f.calls, irTxCall{code: code, bits: bits})
}

type fakeIRReceiver struct {
	pending []uint32 // codes to return, one per Decode call
}

func (f *fakeIRReceiver) Decode() (uint32, bool) {
	if len(f.pending) == 0 {
		return 0, false
	}
	cmd := f.pending[0]
	f.pending = f.pending[1:]
	return cmd, true
}

type fakeLEDStrip struct {
	pixels [][3]uint8
	shown  int
}

func newFakeLEDStrip(n int) *fakeLEDStrip {
	return &fakeLEDStrip{pixels: make([][3]uint8, n)}
}

func (f *fakeLEDStrip) SetPixel(i int, r, g, b uint8) {
	f.pixels[i] = [3]uint8{r, g, b}
}

func (f *fakeLEDStrip) Show() error {
	f.shown++
	return nil
}
