package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/trexbot/trex"
)

var ErrUnknownCommand = errors.New("unknown command")

// Usage lists the commands accepted by ParseLine
const Usage = `Commands:
  idle                  stop and hold the brakes
  rc                    drive from the RC receiver
  diag                  run the motor and LED self-test
  stop                  shut down motors and servos
  servo <ch> <us>       set servo 0-5 to a pulse width, negative to reverse, 0 to detach
  beep [n]              beep n times (1-9)
  status                print the controller state
  verbose               log mode and motor changes
  help                  list the firmware's commands
  raw <bytes>           send bytes unchanged`

// ParseLine converts a line like "servo 2 1500" into the bytes sent to the firmware. An empty line
// returns nil
func ParseLine(line string) ([]byte, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "idle":
		return trex.ModeCommand(trex.ModeIdle), nil
	case "rc":
		return trex.ModeCommand(trex.ModeRC), nil
	case "diag", "diagnostic":
		return trex.ModeCommand(trex.ModeDiagnostic), nil
	case "stop", "shutdown":
		return trex.ModeCommand(trex.ModeShutdown), nil
	case "servo":
		if len(args) != 2 {
			return nil, errors.New("usage: servo <channel> <microseconds>")
		}
		channel, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid channel: %w", err)
		}
		target, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid target: %w", err)
		}
		return trex.ServoCommand(channel, target)
	case "beep":
		beeps := 1
		if len(args) > 0 {
			var err error
			beeps, err = strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid beeps: %w", err)
			}
		}
		return trex.BeepCommand(beeps)
	case "status":
		return []byte{trex.FlagDebug}, nil
	case "verbose":
		return []byte{trex.FlagVerbose}, nil
	case "help":
		return []byte{trex.FlagHelp}, nil
	case "raw":
		return []byte(strings.Join(args, "")), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}
