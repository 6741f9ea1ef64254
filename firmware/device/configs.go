//go:build tinygo

package device

import (
	"machine"

	"github.com/trexbot/trex"
	"tinygo.org/x/drivers/servo"
)

// Config has the board-level values that the motion-control core doesn't need to know about
type Config struct {
	// MotorPWM drives both motor speed pins so they run at the same frequency
	MotorPWM       servo.PWM
	MotorFrequency uint64

	// ServoPWM is the peripheral for each servo channel's pin. A servo can only attach if its pin
	// is on the matching peripheral
	ServoPWM [trex.ServoChannels]servo.PWM

	Accelerometer AccelerometerConfig
}

// AccelerometerConfig selects where impact readings come from. When I2C is set, an LSM6DS3TR on
// that bus is used. Otherwise X, Y, and Z are read as analog inputs
type AccelerometerConfig struct {
	I2C      *machine.I2C
	SDA, SCL machine.Pin

	X, Y, Z machine.Pin
}
