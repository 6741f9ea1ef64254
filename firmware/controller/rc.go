package controller

// RCDecoder reads the receiver's speed and steering channels and mixes them into left and right
// motor speeds
type RCDecoder struct {
	cfg    RCConfig
	pulses PulseReader
	motors *MotorDriver
}

func NewRCDecoder(cfg RCConfig, io PinIO, pulses PulseReader, motors *MotorDriver) *RCDecoder {
	io.ConfigureInput(cfg.SpeedPin)
	io.ConfigureInput(cfg.SteerPin)
	return &RCDecoder{
		cfg:    cfg,
		pulses: pulses,
		motors: motors,
	}
}

// Read measures both channels, decodes them, and commits the result to the motors. Each pulse read
// can take up to the configured timeout
func (r *RCDecoder) Read() (MotorCommand, MotorCommand) {
	speed := r.pulses.PulseWidth(r.cfg.SpeedPin, r.cfg.Timeout)
	steer := r.pulses.PulseWidth(r.cfg.SteerPin, r.cfg.Timeout)

	leftSpeed, rightSpeed := r.Decode(int32(speed), int32(steer))
	left := MotorCommand{Speed: leftSpeed}
	right := MotorCommand{Speed: rightSpeed}

	r.motors.Apply(Left, left)
	r.motors.Apply(Right, right)

	return left, right
}

// Decode converts pulse widths in microseconds into left and right motor speeds. A width of 0 means
// the pulse read timed out and is treated as centered
func (r *RCDecoder) Decode(speed, steer int32) (int16, int16) {
	speed = r.normalize(speed)
	steer = r.normalize(steer)

	steer -= r.cfg.Center
	left := (speed - steer - r.cfg.Center) * 8 / 10
	right := (speed + steer - r.cfg.Center) * 8 / 10

	return int16(constrain(left, -MaxSpeed, MaxSpeed)), int16(constrain(right, -MaxSpeed, MaxSpeed))
}

func (r *RCDecoder) normalize(v int32) int32 {
	if v == 0 {
		return r.cfg.Center
	}
	if abs(v-r.cfg.Center) < r.cfg.Deadband {
		return r.cfg.Center
	}
	return v
}
