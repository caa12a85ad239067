// Package linktest plays the host side of the link protocol against a real
// device over a serial port, or against an in-memory pipe in tests. It is a
// bring-up and fault-injection tool, not the game engine the real host would
// run.
package linktest

import (
	"errors"
	"io"
	"sync"

	"github.com/fieldtag/peerlink/protocol"
)

// Harness drives one device connection: it completes the handshake, echoes
// self-originated frames back to confirm them, and answers host-originated
// commands it sends itself. Fault injection toggles let tests exercise CRC
// rejection, dropped acknowledgements, and spurious NAKs without a second
// physical device.
type Harness struct {
	mu sync.Mutex

	rw    io.ReadWriter
	rd    *protocol.FrameReader
	seq   uint8 // host's own tx_seq, for RELOAD/UPDATE_STATE
	rxSeq uint8 // expected seq on the next device-originated data frame

	// OnFrame, if set, is called for every frame accepted after the
	// handshake completes, before the harness's own reply logic runs.
	OnFrame func(protocol.Frame)

	handshakeDone bool

	dropNextEcho   bool
	corruptNextOut bool
}

// New wraps rw (a serial.Port or a net.Pipe half) as a link-test harness.
func New(rw io.ReadWriter) *Harness {
	return &Harness{rw: rw, rd: protocol.NewFrameReader()}
}

// Handshake sends SYN carrying initialState, waits for the device's ACK
// reply, and sends the closing ACK to complete the exchange.
func (h *Harness) Handshake(initialState [protocol.PayloadSize]byte) error {
	if err := h.send(protocol.Frame{Type: protocol.TypeSYN, Payload: initialState}); err != nil {
		return err
	}

	f, err := h.readOne()
	if err != nil {
		return err
	}
	if f.Type != protocol.TypeACK {
		return errors.New("linktest: expected ACK reply to SYN, got " + string(f.Type))
	}

	if err := h.send(protocol.Frame{Type: protocol.TypeACK, Payload: f.Payload}); err != nil {
		return err
	}
	h.handshakeDone = true
	return nil
}

// SendCommand transmits a host-originated data frame (RELOAD or
// UPDATE_STATE) stamped with the host's next sequence number, and returns
// the device's echoed acknowledgement.
func (h *Harness) SendCommand(frameType byte, payload [protocol.PayloadSize]byte) (protocol.Frame, error) {
	h.mu.Lock()
	f := protocol.Frame{Type: frameType, Seq: h.seq, Payload: payload}
	h.mu.Unlock()

	if err := h.send(f); err != nil {
		return protocol.Frame{}, err
	}

	// IMU frames stream on their own cadence; skip them to reach the ack.
	var reply protocol.Frame
	for {
		var err error
		reply, err = h.readOne()
		if err != nil {
			return protocol.Frame{}, err
		}
		if reply.Type != protocol.TypeIMU {
			break
		}
	}

	h.mu.Lock()
	h.seq++
	h.mu.Unlock()
	return reply, nil
}

// PumpOnce reads and handles at most one inbound frame: invoking OnFrame
// for it, then echoing self-originated GUNSHOT/VESTSHOT frames to confirm
// them. Intended to be called in the harness's own read loop, mirroring a
// device's Step.
func (h *Harness) PumpOnce() error {
	f, err := h.readOne()
	if err != nil {
		return err
	}

	if h.OnFrame != nil {
		h.OnFrame(f)
	}

	switch f.Type {
	case protocol.TypeGunshot, protocol.TypeVestshot:
		if h.dropNextEcho {
			h.dropNextEcho = false
			return nil
		}
		return h.send(f)
	}
	return nil
}

// DropNextEcho causes the next self-originated frame's confirmation echo
// to be silently discarded, exercising the device's ACK-timeout retransmit
// path.
func (h *Harness) DropNextEcho() {
	h.dropNextEcho = true
}

// CorruptNextFrame flips the CRC-8 trailer's low bit on the next frame this
// harness sends, exercising the device's CRC-reject/NAK path.
func (h *Harness) CorruptNextFrame() {
	h.corruptNextOut = true
}

// SendNAK emits a bare NAK carrying seq, exercising the device's NAK
// handler directly rather than waiting for a natural sequence gap.
func (h *Harness) SendNAK(seq uint8) error {
	return h.send(protocol.NewNAK(seq))
}

func (h *Harness) send(f protocol.Frame) error {
	buf := f.Encode()
	if h.corruptNextOut {
		h.corruptNextOut = false
		buf[len(buf)-1] ^= 0x01
	}
	_, err := h.rw.Write(buf[:])
	return err
}

// readOne blocks until one well-formed frame is available, transparently
// skipping CRC-rejected byte windows the same way a device's FrameReader
// resynchronises.
func (h *Harness) readOne() (protocol.Frame, error) {
	buf := make([]byte, protocol.FrameSize)
	for {
		if f, result := h.rd.Next(); result != protocol.ResultNone {
			if result == protocol.ResultCRCReject {
				continue
			}
			return f, nil
		}

		n, err := h.rw.Read(buf)
		if err != nil {
			return protocol.Frame{}, err
		}
		h.rd.Write(buf[:n])
	}
}
