package controller

import "time"

// MaxSpeed is the largest PWM magnitude a MotorCommand can carry
const MaxSpeed = 255

// Side selects the left or right motor
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "Right"
	}
	return "Left"
}

// MotorCommand is the requested state of one motor. The sign of Speed is the direction and the
// magnitude is the PWM duty
type MotorCommand struct {
	Speed int16
	Brake bool
}

// MotorDriver converts MotorCommands into brake, direction, and PWM outputs
type MotorDriver struct {
	pins     [2]MotorPins
	io       PinIO
	pwm      PWM
	sleeper  Sleeper
	encoders *EncoderTracker
}

// NewMotorDriver configures the brake and direction pins as outputs
func NewMotorDriver(left, right MotorPins, io PinIO, pwm PWM, sleeper Sleeper, encoders *EncoderTracker) *MotorDriver {
	m := &MotorDriver{
		pins:     [2]MotorPins{left, right},
		io:       io,
		pwm:      pwm,
		sleeper:  sleeper,
		encoders: encoders,
	}
	for _, p := range m.pins {
		io.ConfigureOutput(p.Brake)
		io.ConfigureOutput(p.Direction)
	}
	return m
}

// Apply commits the command to one motor. Braking at rest re-zeroes that side's encoder so distance
// can be measured from the next move
func (m *MotorDriver) Apply(side Side, cmd MotorCommand) {
	p := m.pins[side]
	speed := constrain(cmd.Speed, -MaxSpeed, MaxSpeed)

	m.io.Set(p.Brake, cmd.Brake)
	m.io.Set(p.Direction, speed > 0)
	m.pwm.SetPWM(p.PWM, uint8(abs(speed)))

	if cmd.Brake && speed == 0 {
		m.encoders.Reset(side)
	}
}

// Beep uses both motors as a speaker. Each beep is a ~2kHz tone for 200ms made of short pulses too
// brief to turn the wheels. The caller is responsible for re-applying the motor commands afterward
func (m *MotorDriver) Beep(beeps uint8) {
	for _, p := range m.pins {
		m.io.Set(p.Brake, false)
	}

	for range beeps {
		for range 400 {
			m.pulse(true)
			m.pulse(false)
		}
		m.sleeper.Sleep(200 * time.Millisecond)
	}
}

func (m *MotorDriver) pulse(forward bool) {
	for _, p := range m.pins {
		m.io.Set(p.Direction, forward)
		m.pwm.SetPWM(p.PWM, MaxSpeed)
	}
	m.sleeper.Sleep(50 * time.Microsecond)

	for _, p := range m.pins {
		m.pwm.SetPWM(p.PWM, 0)
	}
	m.sleeper.Sleep(200 * time.Microsecond)
}
