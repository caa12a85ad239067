package core

import "github.com/fieldtag/peerlink/protocol"

// IMUSendIntervalMs is the fixed cadence for inertial telemetry, shared
// by the gun and hand roles.
const IMUSendIntervalMs = 50

// IMUCalibration holds the per-unit zero offsets subtracted from raw
// sensor readings before they are scaled onto the wire. Accelerometer
// offsets are in m/s^2, gyroscope offsets in rad/s.
type IMUCalibration struct {
	AccOffsetX, AccOffsetY, AccOffsetZ float32
	GyrOffsetX, GyrOffsetY, GyrOffsetZ float32
}

// clampI16 scales a float32 reading by 100 and saturates the result to
// the int16 range rather than wrapping, so a sensor spike reports as a
// pinned extreme instead of flipping sign.
func clampI16(v float32) int16 {
	const (
		maxI16 = 32767
		minI16 = -32768
	)
	scaled := v * 100
	if scaled > maxI16 {
		return maxI16
	}
	if scaled < minI16 {
		return minI16
	}
	return int16(scaled)
}

// SampleIMUFrame reads the configured IMU port, applies calibration
// offsets, scales by 100 and clamps to int16, and returns the resulting
// unacknowledged IMU frame. Returns ok=false if the sensor
// read failed; the caller should simply skip emission for this tick.
func SampleIMUFrame(calib IMUCalibration) (protocol.Frame, bool) {
	sample, err := MustIMU().Sample()
	if err != nil {
		return protocol.Frame{}, false
	}

	payload := protocol.EncodeIMU(
		clampI16(sample.AccX-calib.AccOffsetX),
		clampI16(sample.AccY-calib.AccOffsetY),
		clampI16(sample.AccZ-calib.AccOffsetZ),
		clampI16(sample.GyrX-calib.GyrOffsetX),
		clampI16(sample.GyrY-calib.GyrOffsetY),
		clampI16(sample.GyrZ-calib.GyrOffsetZ),
	)
	return protocol.Frame{Type: protocol.TypeIMU, Payload: payload}, true
}
