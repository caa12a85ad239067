package protocol

import "testing"

func TestGunPendingStageAndPromote(t *testing.T) {
	var p GunPending
	p.Canonical = GunState{RemainingBullets: 6}

	p.Stage(GunState{RemainingBullets: 5})
	if !p.IsPending() {
		t.Fatal("expected pending after Stage")
	}
	if p.Effective().RemainingBullets != 5 {
		t.Errorf("Effective() = %+v, want staged value", p.Effective())
	}
	if p.Canonical.RemainingBullets != 6 {
		t.Errorf("canonical mutated before promote: %+v", p.Canonical)
	}

	p.Promote()
	if p.IsPending() {
		t.Error("still pending after Promote")
	}
	if p.Canonical.RemainingBullets != 5 {
		t.Errorf("canonical = %+v, want 5 after promote", p.Canonical)
	}
}

func TestGunPendingClearLeavesCanonicalUntouched(t *testing.T) {
	var p GunPending
	p.Canonical = GunState{RemainingBullets: 6}
	p.Stage(GunState{RemainingBullets: 5})

	p.Clear()

	if p.IsPending() {
		t.Error("still pending after Clear")
	}
	if p.Canonical.RemainingBullets != 6 {
		t.Errorf("Clear changed canonical: %+v", p.Canonical)
	}
	if p.Effective().RemainingBullets != 6 {
		t.Errorf("Effective() after Clear = %+v, want canonical", p.Effective())
	}
}

func TestApplyDamageAbsorbsShieldFirst(t *testing.T) {
	got := ApplyDamage(VestState{Shield: 10, Health: 100}, 5)
	want := VestState{Shield: 5, Health: 100}
	if got != want {
		t.Errorf("ApplyDamage = %+v, want %+v", got, want)
	}
}

func TestApplyDamageSpillsIntoHealth(t *testing.T) {
	got := ApplyDamage(VestState{Shield: 3, Health: 50}, 10)
	want := VestState{Shield: 0, Health: 43}
	if got != want {
		t.Errorf("ApplyDamage = %+v, want %+v", got, want)
	}
}

func TestApplyDamageSnapsOnLethal(t *testing.T) {
	got := ApplyDamage(VestState{Shield: 0, Health: 5}, 5)
	want := VestState{Shield: 0, Health: 100}
	if got != want {
		t.Errorf("lethal hit should snap to full health: got %+v", got)
	}

	got = ApplyDamage(VestState{Shield: 0, Health: 5}, 12)
	if got != want {
		t.Errorf("overkill hit should still snap to full health: got %+v", got)
	}
}

func TestApplyDamageSequenceDeterministic(t *testing.T) {
	damages := []uint8{5, 5, 5, 5, 5, 5}
	s := VestState{Shield: 10, Health: 30}
	for _, d := range damages {
		s = ApplyDamage(s, d)
	}
	// 10 shield absorbs the first two hits; the remaining four hits (20)
	// come off 30 health -> 10.
	want := VestState{Shield: 0, Health: 10}
	if s != want {
		t.Errorf("deterministic reduction mismatch: got %+v, want %+v", s, want)
	}
}
