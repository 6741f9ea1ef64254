package controller

import (
	"time"

	"github.com/trexbot/trex"
)

// MotorPins are the three H-bridge control lines for one motor
type MotorPins struct {
	Brake     Pin
	Direction Pin
	PWM       Pin
}

// RCConfig has values for decoding the receiver's speed and steering pulses
type RCConfig struct {
	SpeedPin Pin
	SteerPin Pin

	// Deadband is the distance from Center, in microseconds, that is treated as Center
	Deadband int32
	Center   int32
	Timeout  time.Duration
}

// ImpactConfig tunes the accelerometer impact detection
type ImpactConfig struct {
	// Sensitivity is the delta magnitude that must be exceeded to report an impact
	Sensitivity float64
	// Devibrate is the number of samples ignored after an impact while the robot stops shaking
	Devibrate int
}

// DiagnosticConfig controls the self-test ramp and LED chase
type DiagnosticConfig struct {
	Step       int16
	Limit      int16
	LEDDivider int
	Delay      time.Duration
}

// BatteryConfig enables shutdown on a flat battery. LowBattery of 0 disables the check
type BatteryConfig struct {
	Pin        Pin
	LowBattery uint16
	Samples    int
}

// Config is supplied once when creating the Controller
type Config struct {
	Left  MotorPins
	Right MotorPins

	LeftEncoder  Pin
	RightEncoder Pin

	ServoPins [trex.ServoChannels]Pin

	RC         RCConfig
	Impact     ImpactConfig
	Diagnostic DiagnosticConfig
	Battery    BatteryConfig
}

// DefaultConfig returns the T'REX board's pin layout and tuning
func DefaultConfig() Config {
	return Config{
		Left:         MotorPins{Brake: 4, Direction: 2, PWM: 3},
		Right:        MotorPins{Brake: 9, Direction: 10, PWM: 11},
		LeftEncoder:  14,
		RightEncoder: 15,
		ServoPins:    [trex.ServoChannels]Pin{7, 8, 12, 13, 5, 6},
		RC: RCConfig{
			SpeedPin: 16,
			SteerPin: 17,
			Deadband: 35,
			Center:   1500,
			Timeout:  25 * time.Millisecond,
		},
		Impact: ImpactConfig{
			Sensitivity: 50,
			Devibrate:   50,
		},
		Diagnostic: DiagnosticConfig{
			Step:       5,
			Limit:      250,
			LEDDivider: 20,
			Delay:      10 * time.Millisecond,
		},
		Battery: BatteryConfig{
			Pin:        26,
			LowBattery: 550,
			Samples:    10,
		},
	}
}
