package protocol

import "testing"

func TestRoleStateRoundTrip(t *testing.T) {
	p := EncodeRoleState(4, 30)
	a, b := DecodeRoleState(p)
	if a != 4 || b != 30 {
		t.Errorf("got (%d,%d), want (4,30)", a, b)
	}
	for i := 2; i < PayloadSize; i++ {
		if p[i] != 0 {
			t.Errorf("byte %d = %d, want 0 padding", i, p[i])
		}
	}
}

func TestIMURoundTrip(t *testing.T) {
	p := EncodeIMU(-100, 200, -32768, 32767, 0, 42)
	ax, ay, az, gx, gy, gz := DecodeIMU(p)
	if ax != -100 || ay != 200 || az != -32768 || gx != 32767 || gy != 0 || gz != 42 {
		t.Errorf("got (%d,%d,%d,%d,%d,%d)", ax, ay, az, gx, gy, gz)
	}
}
