package core

import "testing"

func feedFrame(d *NECDecoder, code uint32) {
	d.HandleSpace(necStartSpaceUs + 1)
	for i := 0; i < necBits; i++ {
		if code&(1<<uint(i)) != 0 {
			d.HandleSpace(necOneSpaceUs)
		} else {
			d.HandleSpace(necZeroSpaceUs)
		}
	}
}

func TestNECDecoderAssemblesFrame(t *testing.T) {
	var got uint32
	var gotOK bool
	d := NewNECDecoder(func(code uint32) {
		got = code
		gotOK = true
	})

	feedFrame(d, 0xFF6897)

	if !gotOK {
		t.Fatal("decoder never reported a command")
	}
	if got != 0xFF6897 {
		t.Errorf("decoded 0x%X, want 0xFF6897", got)
	}
}

func TestNECDecoderVestHitCode(t *testing.T) {
	var got uint32
	d := NewNECDecoder(func(code uint32) { got = code })

	feedFrame(d, 0x16)

	if got != 0x16 {
		t.Errorf("decoded 0x%X, want 0x16", got)
	}
}

func TestNECDecoderResetsOnNewStart(t *testing.T) {
	calls := 0
	d := NewNECDecoder(func(code uint32) { calls++ })

	// Partial frame followed by a fresh start must not spuriously fire.
	d.HandleSpace(necStartSpaceUs + 1)
	d.HandleSpace(necOneSpaceUs + 1)
	d.HandleSpace(necStartSpaceUs + 1) // new start before completing 32 bits

	if calls != 0 {
		t.Fatalf("decoder fired %d times on an incomplete+restarted frame", calls)
	}

	feedFrame(d, 0x16)
	if calls != 1 {
		t.Errorf("decoder fired %d times, want 1", calls)
	}
}

func TestMarshalNECRoundTrips(t *testing.T) {
	const code = uint32(0xFF6897)
	pulses := MarshalNEC(code)

	if len(pulses) != necBits+1 {
		t.Fatalf("got %d pulses, want %d", len(pulses), necBits+1)
	}
	if pulses[0].MarkUs != necStartMarkUs || pulses[0].SpaceUs != necStartGapUs {
		t.Fatalf("unexpected start pulse: %+v", pulses[0])
	}

	var got uint32
	d := NewNECDecoder(func(c uint32) { got = c })
	d.HandleSpace(pulses[0].SpaceUs + 1)
	for _, p := range pulses[1:] {
		d.HandleSpace(p.SpaceUs)
	}
	if got != code {
		t.Errorf("round trip via decoder got 0x%X, want 0x%X", got, code)
	}
}
