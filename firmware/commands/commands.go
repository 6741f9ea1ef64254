package commands

import (
	"errors"

	"github.com/trexbot/trex"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a device
type Controller interface {
	SetMode(trex.Mode)
	SetServo(int, int16) error
	Beep(uint8)
	Debug()
	Verbose()
	Log(string)

	// I/O
	ReadByte() (byte, error)
}

var (
	SetModeCommand = &Command{
		Flag:      trex.FlagMode,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			mode, ok := trex.ParseMode(input[0])
			if !ok {
				return errors.New("invalid mode: " + string(input))
			}
			c.SetMode(mode)
			return nil
		},
		Description: "Switch mode. Input: 'I' (Idle), 'R' (RC), 'D' (Diagnostic), 'X' (Shutdown).",
	}
	SetServoCommand = &Command{
		Flag:      trex.FlagServo,
		InputSize: 6,
		Run: func(c Controller, input []byte) error {
			channel, target, err := trex.ParseServoInput(input)
			if err != nil {
				return err
			}
			return c.SetServo(channel, target)
		},
		Description: "Set a servo target in microseconds. Input: channel (0-5), '+' or '-', 4 digits. 0 detaches.",
	}
	BeepCommand = &Command{
		Flag:      trex.FlagBeep,
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			n := b2i(input[0])
			if n == 0 {
				return trex.ErrInvalidBeeps
			}
			c.Beep(uint8(n))
			return nil
		},
		Description: "Beep using the motors. Input: 1-9.",
	}
	DebugCommand = &Command{
		Flag:      trex.FlagDebug,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      trex.FlagVerbose,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        trex.FlagHelp,
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			c.Log("Available Commands:")
			for _, cmd := range commands {
				c.Log(flagStr(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

func b2i(b byte) uint {
	v := uint(b - '0')
	if v < 1 || v > 9 {
		return 0
	}
	return v
}

func flagStr(flag byte) string {
	if flag >= 32 && flag <= 126 {
		return string(flag)
	}
	return "0x" + string("0123456789ABCDEF"[(flag>>4)&0xF]) + string("0123456789ABCDEF"[flag&0xF])
}

var commands = []*Command{
	SetModeCommand,
	SetServoCommand,
	BeepCommand,
	DebugCommand,
	VerboseCommand,
}

// Parser reads commands from the Controller without blocking so it can share a loop with the
// control cycle. A command whose input hasn't fully arrived is finished on a later Poll
type Parser struct {
	c      Controller
	cmdMap map[byte]*Command

	pending *Command
	input   []byte
}

func NewParser(c Controller) *Parser {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	return &Parser{
		c:      c,
		cmdMap: cmdMap,
		input:  make([]byte, 0, 8),
	}
}

// Poll handles every byte that is already buffered and returns when ReadByte has nothing left
func (p *Parser) Poll() {
	for {
		b, err := p.c.ReadByte()
		if err != nil {
			return
		}
		p.handle(b)
	}
}

func (p *Parser) handle(b byte) {
	if p.pending == nil {
		// line endings from a terminal are ignored between commands
		if b == '\r' || b == '\n' || b == ' ' || b == trex.TerminationChar {
			return
		}

		cmd, ok := p.cmdMap[b]
		if !ok {
			p.fail(errors.New("unknown command: " + flagStr(b)))
			return
		}
		p.pending = cmd
		p.input = p.input[:0]
	} else {
		p.input = append(p.input, b)
	}

	if len(p.input) < int(p.pending.InputSize) {
		return
	}

	cmd := p.pending
	p.pending = nil

	err := cmd.Run(p.c, p.input)
	if err != nil {
		p.fail(err)
	}
}

// fail reports the error and discards whatever else is buffered since it belongs to the bad input
func (p *Parser) fail(err error) {
	p.c.Log("error: " + err.Error())
	p.pending = nil
	p.input = p.input[:0]

	for {
		_, err := p.c.ReadByte()
		if err != nil {
			return
		}
	}
}
