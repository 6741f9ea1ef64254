package controller

import (
	"strconv"

	"github.com/trexbot/trex"
)

// ServoChannel is one of the servo outputs. Target is in microseconds: 0 detaches the servo, a
// positive value is the pulse width, and a negative value is reversed as 3000+Target
type ServoChannel struct {
	Pin      Pin
	Target   int16
	Attached bool
}

// Position returns the pulse width that Target commands
func (c ServoChannel) Position() int16 {
	if c.Target < 0 {
		return 3000 + c.Target
	}
	return c.Target
}

// ServoManager attaches, detaches, and positions the servo outputs based on their targets
type ServoManager struct {
	channels [trex.ServoChannels]ServoChannel
	io       PinIO
	driver   ServoDriver
	logger   Logger
}

func NewServoManager(pins [trex.ServoChannels]Pin, io PinIO, driver ServoDriver, logger Logger) *ServoManager {
	s := &ServoManager{
		io:     io,
		driver: driver,
		logger: logger,
	}
	for i, p := range pins {
		s.channels[i].Pin = p
	}
	return s
}

// SetTarget sets the target for one channel. It takes effect on the next Update
func (s *ServoManager) SetTarget(channel int, target int16) error {
	if channel < 0 || channel >= len(s.channels) {
		return trex.ErrInvalidChannel
	}
	if target < trex.MinServoTarget || target > trex.MaxServoTarget {
		return trex.ErrInvalidTarget
	}
	s.channels[channel].Target = target
	return nil
}

// ZeroTargets sets every target to 0 so the next Update detaches all servos
func (s *ServoManager) ZeroTargets() {
	for i := range s.channels {
		s.channels[i].Target = 0
	}
}

// Update commits the targets. Unused pins are left as inputs so they don't drive anything
func (s *ServoManager) Update() {
	for i := range s.channels {
		c := &s.channels[i]

		if c.Target != 0 && !c.Attached {
			err := s.driver.Attach(i, c.Pin)
			if err != nil {
				s.logger.Log("error attaching servo " + strconv.Itoa(i) + ": " + err.Error())
				continue
			}
			c.Attached = true
		}

		if c.Target == 0 {
			if c.Attached {
				s.driver.Detach(i)
				s.io.ConfigureInput(c.Pin)
				c.Attached = false
			}
			continue
		}

		s.driver.SetMicroseconds(i, c.Position())
	}
}

// Channels returns a copy of the channel states
func (s *ServoManager) Channels() [trex.ServoChannels]ServoChannel {
	return s.channels
}

// Pins returns the pin for each channel in order
func (s *ServoManager) Pins() [trex.ServoChannels]Pin {
	var pins [trex.ServoChannels]Pin
	for i, c := range s.channels {
		pins[i] = c.Pin
	}
	return pins
}
