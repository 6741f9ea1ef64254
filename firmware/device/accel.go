//go:build tinygo

package device

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/lsm6ds3tr"
)

// countsPerG puts LSM6DS3TR readings on the same scale as a 10-bit analog accelerometer so the
// impact sensitivity doesn't depend on the sensor
const countsPerG = 164

type accelerometer interface {
	ReadAxes() (int32, int32, int32)
}

func newAccelerometer(cfg AccelerometerConfig) (accelerometer, error) {
	if cfg.I2C == nil {
		a := analogAccelerometer{
			x: machine.ADC{Pin: cfg.X},
			y: machine.ADC{Pin: cfg.Y},
			z: machine.ADC{Pin: cfg.Z},
		}
		a.x.Configure(machine.ADCConfig{})
		a.y.Configure(machine.ADCConfig{})
		a.z.Configure(machine.ADCConfig{})
		return a, nil
	}

	err := cfg.I2C.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       cfg.SDA,
		SCL:       cfg.SCL,
	})
	if err != nil {
		return nil, errors.New("error configuring I2C: " + err.Error())
	}

	lsm := lsm6ds3tr.New(cfg.I2C)
	err = lsm.Configure(lsm6ds3tr.Configuration{
		AccelRange:      lsm6ds3tr.ACCEL_8G,
		AccelSampleRate: lsm6ds3tr.ACCEL_SR_104,
		GyroRange:       lsm6ds3tr.GYRO_1000DPS,
		GyroSampleRate:  lsm6ds3tr.GYRO_SR_104,
	})
	if err != nil {
		return nil, errors.New("error configuring LSM6DS3TR: " + err.Error())
	}

	return &lsmAccelerometer{lsm: lsm}, nil
}

type analogAccelerometer struct {
	x, y, z machine.ADC
}

func (a analogAccelerometer) ReadAxes() (int32, int32, int32) {
	return int32(a.x.Get() >> 6), int32(a.y.Get() >> 6), int32(a.z.Get() >> 6)
}

type lsmAccelerometer struct {
	lsm     *lsm6ds3tr.Device
	x, y, z int32
}

// ReadAxes returns the previous reading if the sensor can't be read so a bus error doesn't look
// like an impact
func (a *lsmAccelerometer) ReadAxes() (int32, int32, int32) {
	x, y, z, err := a.lsm.ReadAcceleration()
	if err != nil {
		return a.x, a.y, a.z
	}

	a.x = microGToCounts(x)
	a.y = microGToCounts(y)
	a.z = microGToCounts(z)
	return a.x, a.y, a.z
}

func microGToCounts(v int32) int32 {
	return int32(int64(v) * countsPerG / 1_000_000)
}
