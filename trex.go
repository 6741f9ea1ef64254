package trex

import (
	"errors"
	"strconv"
)

const TerminationChar = 0x04 // ascii EOT (End of Transmission)

// Command flags understood by the firmware. Each flag is followed by a fixed number of input bytes
const (
	FlagMode    byte = 'M'
	FlagServo   byte = 'S'
	FlagBeep    byte = 'B'
	FlagDebug   byte = 'D'
	FlagVerbose byte = 'V'
	FlagHelp    byte = 'H'
)

const (
	// ServoChannels is the number of servo outputs on the controller
	ServoChannels = 6

	MinServoTarget = -2000
	MaxServoTarget = 2500

	MaxBeeps = 9
)

var (
	ErrInvalidChannel = errors.New("invalid servo channel")
	ErrInvalidTarget  = errors.New("servo target out of range")
	ErrInvalidBeeps   = errors.New("beeps must be 1-9")
)

// Mode selects what the control loop does on each tick
type Mode int

const (
	ModeIdle Mode = iota
	ModeRC
	ModeDiagnostic
	ModeShutdown
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeRC:
		return "RC"
	case ModeDiagnostic:
		return "Diagnostic"
	case ModeShutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

// Byte is the input byte used for this Mode by the FlagMode command
func (m Mode) Byte() byte {
	switch m {
	case ModeRC:
		return 'R'
	case ModeDiagnostic:
		return 'D'
	case ModeShutdown:
		return 'X'
	default:
		return 'I'
	}
}

// ParseMode is the inverse of Mode.Byte
func ParseMode(b byte) (Mode, bool) {
	switch b {
	case 'I':
		return ModeIdle, true
	case 'R':
		return ModeRC, true
	case 'D':
		return ModeDiagnostic, true
	case 'X':
		return ModeShutdown, true
	default:
		return ModeIdle, false
	}
}

// ModeCommand encodes a mode change like "MR"
func ModeCommand(m Mode) []byte {
	return []byte{FlagMode, m.Byte()}
}

// ServoCommand encodes a servo target like "S2+1500" or "S0-1200". A target of 0 detaches the servo
func ServoCommand(channel int, target int) ([]byte, error) {
	if channel < 0 || channel >= ServoChannels {
		return nil, ErrInvalidChannel
	}
	if target < MinServoTarget || target > MaxServoTarget {
		return nil, ErrInvalidTarget
	}

	sign := byte('+')
	if target < 0 {
		sign = '-'
		target = -target
	}

	out := []byte{FlagServo, byte(channel) + '0', sign}
	digits := strconv.Itoa(target)
	for range 4 - len(digits) {
		out = append(out, '0')
	}
	return append(out, digits...), nil
}

// ParseServoInput decodes the 6 input bytes that follow FlagServo
func ParseServoInput(in []byte) (int, int16, error) {
	if len(in) != 6 {
		return 0, 0, errors.New("invalid servo input: " + string(in))
	}

	channel := int(in[0]) - '0'
	if channel < 0 || channel >= ServoChannels {
		return 0, 0, ErrInvalidChannel
	}

	var value int
	for _, b := range in[2:] {
		if b < '0' || b > '9' {
			return 0, 0, errors.New("invalid servo input: " + string(in))
		}
		value = value*10 + int(b-'0')
	}

	switch in[1] {
	case '+':
	case '-':
		value = -value
	default:
		return 0, 0, errors.New("invalid servo input: " + string(in))
	}

	if value < MinServoTarget || value > MaxServoTarget {
		return 0, 0, ErrInvalidTarget
	}

	return channel, int16(value), nil
}

// BeepCommand encodes a beep request like "B3"
func BeepCommand(beeps int) ([]byte, error) {
	if beeps < 1 || beeps > MaxBeeps {
		return nil, ErrInvalidBeeps
	}
	return []byte{FlagBeep, byte(beeps) + '0'}, nil
}
