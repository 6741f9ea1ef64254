package controller

import "time"

// Pin identifies a physical pin. On the device it is the machine.Pin number
type Pin uint8

// PinIO reads and writes binary pins
type PinIO interface {
	ConfigureOutput(Pin)
	ConfigureInput(Pin)
	Set(Pin, bool)
	Get(Pin) bool
}

// PWM writes a duty cycle from 0 (off) to 255 (fully on)
type PWM interface {
	SetPWM(Pin, uint8)
}

// PulseReader measures the width of a HIGH pulse in microseconds. It returns 0 if no pulse
// completes before timeout
type PulseReader interface {
	PulseWidth(pin Pin, timeout time.Duration) uint32
}

// Analog reads a 10-bit analog value
type Analog interface {
	ReadAnalog(Pin) uint16
}

// Accelerometer returns raw readings for the three axes
type Accelerometer interface {
	ReadAxes() (x, y, z int32)
}

// ServoDriver generates servo pulses on a channel
type ServoDriver interface {
	Attach(channel int, pin Pin) error
	Detach(channel int)
	SetMicroseconds(channel int, us int16)
}

// Logger emits a single human-readable line
type Logger interface {
	Log(string)
}

// Sleeper blocks for the provided duration
type Sleeper interface {
	Sleep(time.Duration)
}

// Hardware is everything the Controller needs from the board
type Hardware interface {
	PinIO
	PWM
	PulseReader
	Analog
	Accelerometer
	ServoDriver
	Logger
	Sleeper
}
