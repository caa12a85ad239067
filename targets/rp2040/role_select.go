//go:build rp2040

package main

// DeviceRole selects which link-layer role this firmware build drives.
type DeviceRole int

const (
	RoleGun DeviceRole = iota
	RoleVest
	RoleHand
)

// SelectedRole returns the role this build targets. Each build drives the
// one role returned here; retarget it by changing the returned value
// before building.
func SelectedRole() DeviceRole {
	return RoleGun
}
