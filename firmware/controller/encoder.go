package controller

type encoderState struct {
	pin      Pin
	count    int32
	previous bool
	current  bool
}

// EncoderTracker counts encoder transitions, signed by the commanded direction since the encoders
// are single channel and can't sense direction themselves
type EncoderTracker struct {
	io    PinIO
	sides [2]encoderState
}

// NewEncoderTracker configures both encoder pins as inputs
func NewEncoderTracker(left, right Pin, io PinIO) *EncoderTracker {
	io.ConfigureInput(left)
	io.ConfigureInput(right)
	return &EncoderTracker{
		io: io,
		sides: [2]encoderState{
			{pin: left},
			{pin: right},
		},
	}
}

// Tick reads the encoder for one side. A transition moves the count one step in the direction of
// speed. Transitions while speed is 0 are dropped because the direction is unknown
func (e *EncoderTracker) Tick(side Side, speed int16) {
	s := &e.sides[side]
	s.current = e.io.Get(s.pin)
	if s.current != s.previous {
		s.count += int32(sign(speed))
	}
	s.previous = s.current
}

// Reset zeroes the count for one side
func (e *EncoderTracker) Reset(side Side) {
	e.sides[side].count = 0
}

// Count returns the accumulated ticks for one side
func (e *EncoderTracker) Count(side Side) int32 {
	return e.sides[side].count
}
