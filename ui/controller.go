package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/trexbot/trex"
)

// controllerWrapper writes the UI's actions as command lines for controller.Run
type controllerWrapper struct {
	writer    io.Writer
	modeTimer *timer
}

func (c *controllerWrapper) SetMode(m trex.Mode) {
	if c.modeTimer != nil {
		c.modeTimer.Set(time.Now())
	}
	fmt.Fprintf(c.writer, "%s\n", modeCommand(m))
}

func (c *controllerWrapper) SetServo(channel int, target float64, reversed bool) {
	if reversed {
		target = -target
	}
	fmt.Fprintf(c.writer, "servo %d %.0f\n", channel, target)
}

func (c *controllerWrapper) DetachServo(channel int) {
	fmt.Fprintf(c.writer, "servo %d 0\n", channel)
}

func (c *controllerWrapper) Beep(n int) {
	fmt.Fprintf(c.writer, "beep %d\n", n)
}

func (c *controllerWrapper) Status() {
	fmt.Fprintln(c.writer, "status")
}

func (c *controllerWrapper) Verbose() {
	fmt.Fprintln(c.writer, "verbose")
}
