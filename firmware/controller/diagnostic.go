package controller

import "github.com/trexbot/trex"

type diagnosticPhase int

const (
	phaseIdle diagnosticPhase = iota
	phaseRamping
)

// DiagnosticSequencer exercises the H-bridges by ramping both motors forward and backward, braking
// at each end of the ramp. LEDs connected to the servo outputs chase in sequence
type DiagnosticSequencer struct {
	cfg     DiagnosticConfig
	pins    [trex.ServoChannels]Pin
	io      PinIO
	motors  *MotorDriver
	sleeper Sleeper

	phase   diagnosticPhase
	step    int16
	level   int16
	brake   bool
	led     int
	divider int
}

func NewDiagnosticSequencer(cfg DiagnosticConfig, pins [trex.ServoChannels]Pin, io PinIO, motors *MotorDriver, sleeper Sleeper) *DiagnosticSequencer {
	return &DiagnosticSequencer{
		cfg:     cfg,
		pins:    pins,
		io:      io,
		motors:  motors,
		sleeper: sleeper,
	}
}

// Running reports whether the sequence has started
func (d *DiagnosticSequencer) Running() bool {
	return d.phase == phaseRamping
}

// Step advances the sequence by one tick and returns the command applied to both motors
func (d *DiagnosticSequencer) Step() MotorCommand {
	if d.phase == phaseIdle {
		d.enter()
	}

	// the ramp also turns around at full speed in case Limit+Step is more than MaxSpeed
	d.level = constrain(d.level+d.step, -MaxSpeed, MaxSpeed)
	if d.level < -d.cfg.Limit || d.level > d.cfg.Limit || abs(d.level) == MaxSpeed {
		d.step = -d.step
		d.brake = true
	}
	if d.level == 0 {
		d.brake = false
	}

	cmd := MotorCommand{Speed: d.level, Brake: d.brake}
	d.motors.Apply(Left, cmd)
	d.motors.Apply(Right, cmd)

	d.divider++
	if d.divider > d.cfg.LEDDivider {
		d.divider = 0
		d.led++
	}
	if d.led >= len(d.pins) {
		d.led = 0
	}
	for i, p := range d.pins {
		d.io.Set(p, i == d.led)
	}

	d.sleeper.Sleep(d.cfg.Delay)

	return cmd
}

// Exit turns off the LEDs, releases the pins, and discards the sequence state. The next Step
// starts over from the beginning
func (d *DiagnosticSequencer) Exit() {
	if d.phase != phaseRamping {
		return
	}
	for _, p := range d.pins {
		d.io.Set(p, false)
		d.io.ConfigureInput(p)
	}

	d.phase = phaseIdle
	d.step = 0
	d.level = 0
	d.brake = false
	d.led = 0
	d.divider = 0
}

func (d *DiagnosticSequencer) enter() {
	for _, p := range d.pins {
		d.io.ConfigureOutput(p)
	}
	// the ramp can't start with a step of 0 or the motors never move
	d.step = d.cfg.Step
	if d.step == 0 {
		d.step = 1
	}
	d.phase = phaseRamping
}

// Level is the current PWM level applied to both motors
func (d *DiagnosticSequencer) Level() int16 {
	return d.level
}

// LED is the index of the lit LED in the chase
func (d *DiagnosticSequencer) LED() int {
	return d.led
}
