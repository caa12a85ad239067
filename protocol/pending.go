package protocol

// The pending-state arbiter models a transactional view of local
// role state: every optimistic local mutation writes only to a shadow
// copy; canonical state is updated exclusively by Promote, called on
// positive acknowledgement. Outbound frames report the shadow value
// while a mutation is pending, canonical otherwise, so the host always
// sees the peripheral's current intent.
//
// Two concrete pairs exist, one per role that carries mutable state
// over the link (gun, vest); hand carries no role state and needs none.

// GunState is the gun's canonical role state.
type GunState struct {
	RemainingBullets uint8
}

// GunPending pairs a gun's canonical state with its optimistic shadow.
type GunPending struct {
	Canonical GunState
	shadow    GunState
	isPending bool
}

// Stage records an optimistic local mutation without touching canonical
// state.
func (p *GunPending) Stage(s GunState) {
	p.shadow = s
	p.isPending = true
}

// Promote commits the staged mutation to canonical state.
func (p *GunPending) Promote() {
	p.Canonical = p.shadow
	p.isPending = false
}

// Clear drops a staged mutation without promoting it, leaving canonical
// state untouched. Used when a retransmit budget is exhausted.
func (p *GunPending) Clear() {
	p.isPending = false
}

// Effective returns the state outbound frames should report: the shadow
// value while a mutation is pending, canonical otherwise.
func (p *GunPending) Effective() GunState {
	if p.isPending {
		return p.shadow
	}
	return p.Canonical
}

// IsPending reports whether a mutation is staged but not yet promoted.
func (p *GunPending) IsPending() bool {
	return p.isPending
}

// VestState is the vest's canonical role state.
type VestState struct {
	Shield uint8
	Health uint8
}

// VestPending pairs a vest's canonical state with its optimistic shadow.
type VestPending struct {
	Canonical VestState
	shadow    VestState
	isPending bool
}

// Stage records an optimistic local mutation without touching canonical
// state.
func (p *VestPending) Stage(s VestState) {
	p.shadow = s
	p.isPending = true
}

// Promote commits the staged mutation to canonical state.
func (p *VestPending) Promote() {
	p.Canonical = p.shadow
	p.isPending = false
}

// Clear drops a staged mutation without promoting it, leaving canonical
// state untouched.
func (p *VestPending) Clear() {
	p.isPending = false
}

// Effective returns the state outbound frames should report.
func (p *VestPending) Effective() VestState {
	if p.isPending {
		return p.shadow
	}
	return p.Canonical
}

// IsPending reports whether a mutation is staged but not yet promoted.
func (p *VestPending) IsPending() bool {
	return p.isPending
}

// ApplyDamage implements the shield-then-health damage reduction with
// the zero-health snap rule: shield absorbs damage
// first; health hitting zero or below is immediately snapped to 100
// with shield reset to 0 (respawn is a host concern; the peripheral
// only avoids ever displaying a dead state).
func ApplyDamage(s VestState, damage uint8) VestState {
	if s.Shield >= damage {
		s.Shield -= damage
		return s
	}
	remainder := damage - s.Shield
	s.Shield = 0
	if s.Health <= remainder {
		return VestState{Shield: 0, Health: 100}
	}
	s.Health -= remainder
	return s
}
