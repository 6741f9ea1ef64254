package controller

import (
	"errors"
	"strconv"

	"github.com/trexbot/trex"
)

const (
	shutdownStartMessage = "(T'REX Controller) Shutting down motors and servos..."
	shutdownDoneMessage  = "(T'REX Controller) Shutdown!"
	lowBatteryMessage    = "(T'REX Controller) Low battery!"
)

var ErrShutdown = errors.New("controller is shut down")

// Controller owns all of the drive components and the motor commands they share. Tick is called
// once per control cycle by the main loop
type Controller struct {
	hw Hardware

	encoders   *EncoderTracker
	motors     *MotorDriver
	impact     *ImpactDetector
	rc         *RCDecoder
	servos     *ServoManager
	diagnostic *DiagnosticSequencer
	battery    *BatteryMonitor

	mode     trex.Mode
	commands [2]MotorCommand
	impacts  int

	verbose bool
}

// New creates the Controller and stops both motors
func New(cfg Config, hw Hardware) *Controller {
	encoders := NewEncoderTracker(cfg.LeftEncoder, cfg.RightEncoder, hw)
	motors := NewMotorDriver(cfg.Left, cfg.Right, hw, hw, hw, encoders)

	c := &Controller{
		hw:         hw,
		encoders:   encoders,
		motors:     motors,
		impact:     NewImpactDetector(cfg.Impact, hw, hw),
		rc:         NewRCDecoder(cfg.RC, hw, hw, motors),
		servos:     NewServoManager(cfg.ServoPins, hw, hw, hw),
		diagnostic: NewDiagnosticSequencer(cfg.Diagnostic, cfg.ServoPins, hw, motors, hw),
		battery:    NewBatteryMonitor(cfg.Battery, hw),
		mode:       trex.ModeIdle,
	}
	c.commit(MotorCommand{Brake: true}, MotorCommand{Brake: true})

	return c
}

// Tick runs one control cycle: sample the accelerometer, run the current mode, then commit servos
// and count encoder ticks
func (c *Controller) Tick() {
	if _, ok := c.impact.Sample(); ok {
		c.impacts++
	}

	if c.mode != trex.ModeShutdown && c.battery.Check() {
		c.hw.Log(lowBatteryMessage)
		c.SetMode(trex.ModeShutdown)
	}

	switch c.mode {
	case trex.ModeRC:
		c.setCommands(c.rc.Read())
	case trex.ModeDiagnostic:
		cmd := c.diagnostic.Step()
		c.setCommands(cmd, cmd)
	}

	// servo pins are driving LEDs during diagnostics
	if c.mode != trex.ModeDiagnostic {
		c.servos.Update()
	}

	c.encoders.Tick(Left, c.commands[Left].Speed)
	c.encoders.Tick(Right, c.commands[Right].Speed)
}

// SetMode switches what Tick does. Shutdown is run immediately when entering ModeShutdown, even if
// it is already the current mode
func (c *Controller) SetMode(m trex.Mode) {
	if m == c.mode && m != trex.ModeShutdown {
		return
	}

	if c.mode == trex.ModeDiagnostic {
		c.diagnostic.Exit()
		c.commit(MotorCommand{}, MotorCommand{})
	}

	if c.verbose {
		c.hw.Log("mode=" + m.String())
	}
	c.mode = m

	switch m {
	case trex.ModeIdle:
		c.commit(MotorCommand{Brake: true}, MotorCommand{Brake: true})
	case trex.ModeRC:
		c.commit(MotorCommand{}, MotorCommand{})
	case trex.ModeDiagnostic:
		c.servos.ZeroTargets()
		c.servos.Update()
	case trex.ModeShutdown:
		c.shutdown()
	}
}

// Shutdown stops the motors and detaches all servos. The Controller stays in ModeShutdown until
// another mode is set
func (c *Controller) Shutdown() {
	c.SetMode(trex.ModeShutdown)
}

func (c *Controller) shutdown() {
	c.hw.Log(shutdownStartMessage)

	c.commit(
		MotorCommand{Brake: c.commands[Left].Brake},
		MotorCommand{Brake: c.commands[Right].Brake},
	)

	c.servos.ZeroTargets()
	c.servos.Update()

	c.hw.Log(shutdownDoneMessage)
}

// SetServo sets a servo target. It is applied on the next Tick
func (c *Controller) SetServo(channel int, target int16) error {
	if c.mode == trex.ModeShutdown && target != 0 {
		return ErrShutdown
	}
	return c.servos.SetTarget(channel, target)
}

// Beep plays beeps through the motors and then restores the current motor commands
func (c *Controller) Beep(beeps uint8) {
	c.motors.Beep(beeps)
	c.commit(c.commands[Left], c.commands[Right])
}

// SetVerbose enables logging of mode and motor command changes
func (c *Controller) SetVerbose(v bool) {
	c.verbose = v
}

// Mode returns the current mode
func (c *Controller) Mode() trex.Mode {
	return c.mode
}

func (c *Controller) commit(left, right MotorCommand) {
	c.setCommands(left, right)
	c.motors.Apply(Left, left)
	c.motors.Apply(Right, right)
}

func (c *Controller) setCommands(left, right MotorCommand) {
	if c.verbose && (left != c.commands[Left] || right != c.commands[Right]) {
		c.hw.Log("L=" + commandStr(left) + " R=" + commandStr(right))
	}
	c.commands[Left] = left
	c.commands[Right] = right
}

// Status is a snapshot of the Controller's state
type Status struct {
	Mode      trex.Mode
	Motors    [2]MotorCommand
	Encoders  [2]int32
	Servos    [trex.ServoChannels]ServoChannel
	Impacts   int
	Magnitude float64
	Battery   uint16
}

// Status returns the current state
func (c *Controller) Status() Status {
	return Status{
		Mode:      c.mode,
		Motors:    c.commands,
		Encoders:  [2]int32{c.encoders.Count(Left), c.encoders.Count(Right)},
		Servos:    c.servos.Channels(),
		Impacts:   c.impacts,
		Magnitude: c.impact.Magnitude(),
		Battery:   c.battery.Last(),
	}
}

// String formats the Status on one line like "mode=RC L=+120 R=-40 enc=12/-3 servos=1500,0,0,0,0,0 impacts=0 bat=0"
func (s Status) String() string {
	out := "mode=" + s.Mode.String()
	out += " L=" + commandStr(s.Motors[Left])
	out += " R=" + commandStr(s.Motors[Right])
	out += " enc=" + strconv.Itoa(int(s.Encoders[Left])) + "/" + strconv.Itoa(int(s.Encoders[Right]))

	out += " servos="
	for i, ch := range s.Servos {
		if i > 0 {
			out += ","
		}
		out += strconv.Itoa(int(ch.Target))
	}

	out += " impacts=" + strconv.Itoa(s.Impacts)
	out += " bat=" + strconv.Itoa(int(s.Battery))
	return out
}

// commandStr formats a MotorCommand like +120 or 0B when braking
func commandStr(cmd MotorCommand) string {
	out := strconv.Itoa(int(cmd.Speed))
	if cmd.Speed > 0 {
		out = "+" + out
	}
	if cmd.Brake {
		out += "B"
	}
	return out
}
