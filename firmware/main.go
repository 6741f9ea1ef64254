//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/trexbot/trex/firmware/commands"
	"github.com/trexbot/trex/firmware/controller"
	"github.com/trexbot/trex/firmware/device"

	"tinygo.org/x/drivers/servo"
)

const (
	tickInterval = 20 * time.Millisecond
	startupBeeps = 1
)

func main() {
	// Raspberry Pi Pico wiring. Motor PWM pins share one slice so the two
	// motors run at the same frequency, and each pair of servos gets its own
	coreCfg := controller.DefaultConfig()
	coreCfg.Left = controller.MotorPins{Brake: pin(machine.GP2), Direction: pin(machine.GP3), PWM: pin(machine.GP4)}
	coreCfg.Right = controller.MotorPins{Brake: pin(machine.GP6), Direction: pin(machine.GP7), PWM: pin(machine.GP5)}
	coreCfg.LeftEncoder = pin(machine.GP16)
	coreCfg.RightEncoder = pin(machine.GP17)
	coreCfg.ServoPins = [6]controller.Pin{
		pin(machine.GP10), pin(machine.GP11),
		pin(machine.GP12), pin(machine.GP13),
		pin(machine.GP14), pin(machine.GP15),
	}
	coreCfg.RC.SpeedPin = pin(machine.GP20)
	coreCfg.RC.SteerPin = pin(machine.GP21)
	coreCfg.Battery.Pin = pin(machine.ADC2)

	deviceCfg := device.Config{
		MotorPWM:       machine.PWM2,
		MotorFrequency: 1000,
		ServoPWM: [6]servo.PWM{
			machine.PWM5, machine.PWM5,
			machine.PWM6, machine.PWM6,
			machine.PWM7, machine.PWM7,
		},
		Accelerometer: device.AccelerometerConfig{
			I2C: machine.I2C1,
			SDA: machine.GP18,
			SCL: machine.GP19,
		},
	}

	d, err := device.New(coreCfg, deviceCfg)
	if err != nil {
		panic(err)
	}

	d.Beep(startupBeeps)

	parser := commands.NewParser(d)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for range ticker.C {
		parser.Poll()
		d.Tick()
	}
}

func pin(p machine.Pin) controller.Pin {
	return controller.Pin(p)
}
