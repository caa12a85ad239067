//go:build rp2350

package main

import (
	"tinygo.org/x/drivers/mpu6050"

	"github.com/fieldtag/peerlink/core"
)

const (
	imuI2CBus = 0    // SDA=GP4, SCL=GP5
	imuAddr   = 0x68 // AD0 tied low

	imuAccelScale = 1.0 / 16384.0 // LSB/g at the device's default +/-2g range
	imuGyroScale  = 1.0 / 131.0   // LSB/(deg/s) at the device's default +/-250deg/s range
)

// MPU6050IMU adapts tinygo.org/x/drivers' MPU6050 device to core.IMUDriver.
type MPU6050IMU struct {
	dev mpu6050.Device
}

// NewMPU6050IMU configures the I2C bus and returns a ready-to-use driver.
func NewMPU6050IMU() (*MPU6050IMU, error) {
	if err := core.MustI2C().ConfigureBus(imuI2CBus, 400000); err != nil {
		return nil, err
	}
	i2c, err := core.GetMachineI2C(imuI2CBus)
	if err != nil {
		return nil, err
	}

	dev := mpu6050.New(i2c)
	dev.Configure()

	return &MPU6050IMU{dev: dev}, nil
}

// Sample reads one accelerometer+gyro frame, scaled to g's and deg/s.
func (m *MPU6050IMU) Sample() (core.IMUSample, error) {
	ax, ay, az := m.dev.ReadAcceleration()
	gx, gy, gz := m.dev.ReadRotation()

	return core.IMUSample{
		AccX: float32(ax) * imuAccelScale,
		AccY: float32(ay) * imuAccelScale,
		AccZ: float32(az) * imuAccelScale,
		GyrX: float32(gx) * imuGyroScale,
		GyrY: float32(gy) * imuGyroScale,
		GyrZ: float32(gz) * imuGyroScale,
	}, nil
}
