package protocol

// Payload helpers for the type-specific overlays each frame type carries.
// Every overlay lives in the first few bytes of the 16-byte payload
// slot; the remainder is always zero.

// EncodeRoleState packs a two-byte role state pair (gun: remainingBullets,0;
// vest: shield,health) into a frame payload. Used by GUNSHOT, RELOAD,
// UPDATE_STATE, VESTSHOT, and the two handshake types.
func EncodeRoleState(a, b uint8) [PayloadSize]byte {
	var p [PayloadSize]byte
	p[0] = a
	p[1] = b
	return p
}

// DecodeRoleState unpacks the two-byte role state pair from a payload.
func DecodeRoleState(p [PayloadSize]byte) (a, b uint8) {
	return p[0], p[1]
}

// EncodeIMU packs six already-scaled, clamped int16 readings (accX, accY,
// accZ, gyrX, gyrY, gyrZ) little-endian into a frame payload.
func EncodeIMU(accX, accY, accZ, gyrX, gyrY, gyrZ int16) [PayloadSize]byte {
	var p [PayloadSize]byte
	vals := [6]int16{accX, accY, accZ, gyrX, gyrY, gyrZ}
	for i, v := range vals {
		p[i*2] = byte(uint16(v))
		p[i*2+1] = byte(uint16(v) >> 8)
	}
	return p
}

// DecodeIMU unpacks the six int16 readings from an IMU payload.
func DecodeIMU(p [PayloadSize]byte) (accX, accY, accZ, gyrX, gyrY, gyrZ int16) {
	read := func(i int) int16 {
		return int16(uint16(p[i*2]) | uint16(p[i*2+1])<<8)
	}
	return read(0), read(1), read(2), read(3), read(4), read(5)
}
