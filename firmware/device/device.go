//go:build tinygo

package device

import (
	"errors"
	"machine"
	"time"

	"github.com/trexbot/trex"
	"github.com/trexbot/trex/firmware/controller"

	"tinygo.org/x/drivers/servo"
)

// Device connects the motion-control core to the board. It implements controller.Hardware with the
// machine package and adds the serial I/O used by commands
type Device struct {
	*controller.Controller

	cfg           Config
	motorChannels map[machine.Pin]uint8
	servos        [trex.ServoChannels]servo.Servo
	accel         accelerometer
	adcs          map[machine.Pin]machine.ADC

	startTime time.Time
}

var _ controller.Hardware = &Device{}

// New configures the peripherals and creates the Controller, which stops both motors
func New(coreCfg controller.Config, cfg Config) (*Device, error) {
	d := &Device{
		cfg:           cfg,
		motorChannels: map[machine.Pin]uint8{},
		adcs:          map[machine.Pin]machine.ADC{},
		startTime:     time.Now(),
	}

	machine.InitADC()

	err := cfg.MotorPWM.Configure(machine.PWMConfig{Period: machine.GHz * 1 / cfg.MotorFrequency})
	if err != nil {
		return nil, errors.New("error configuring motor PWM: " + err.Error())
	}
	for _, p := range []controller.Pin{coreCfg.Left.PWM, coreCfg.Right.PWM} {
		ch, err := cfg.MotorPWM.Channel(machine.Pin(p))
		if err != nil {
			return nil, errors.New("error getting motor PWM channel: " + err.Error())
		}
		d.motorChannels[machine.Pin(p)] = ch
	}

	d.accel, err = newAccelerometer(cfg.Accelerometer)
	if err != nil {
		return nil, errors.New("error creating accelerometer: " + err.Error())
	}

	d.Controller = controller.New(coreCfg, d)

	return d, nil
}

func (d *Device) ConfigureOutput(p controller.Pin) {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinOutput})
}

func (d *Device) ConfigureInput(p controller.Pin) {
	machine.Pin(p).Configure(machine.PinConfig{Mode: machine.PinInput})
}

func (d *Device) Set(p controller.Pin, v bool) {
	machine.Pin(p).Set(v)
}

func (d *Device) Get(p controller.Pin) bool {
	return machine.Pin(p).Get()
}

// SetPWM scales duty from 0-255 to the peripheral's range. Pins that weren't configured as motor
// PWM pins are ignored
func (d *Device) SetPWM(p controller.Pin, duty uint8) {
	ch, ok := d.motorChannels[machine.Pin(p)]
	if !ok {
		return
	}
	d.cfg.MotorPWM.Set(ch, d.cfg.MotorPWM.Top()*uint32(duty)/255)
}

// PulseWidth measures the next high pulse on the pin in microseconds. It returns 0 if the pulse
// doesn't start and finish within timeout
func (d *Device) PulseWidth(p controller.Pin, timeout time.Duration) uint32 {
	pin := machine.Pin(p)
	deadline := time.Now().Add(timeout)

	// finish any pulse that is already in progress so only a full pulse is measured
	for pin.Get() {
		if time.Now().After(deadline) {
			return 0
		}
	}
	for !pin.Get() {
		if time.Now().After(deadline) {
			return 0
		}
	}

	start := time.Now()
	for pin.Get() {
		if time.Now().After(deadline) {
			return 0
		}
	}

	return uint32(time.Since(start).Microseconds())
}

// ReadAnalog returns a 10-bit reading
func (d *Device) ReadAnalog(p controller.Pin) uint16 {
	adc, ok := d.adcs[machine.Pin(p)]
	if !ok {
		adc = machine.ADC{Pin: machine.Pin(p)}
		adc.Configure(machine.ADCConfig{})
		d.adcs[machine.Pin(p)] = adc
	}
	return adc.Get() >> 6
}

func (d *Device) ReadAxes() (int32, int32, int32) {
	return d.accel.ReadAxes()
}

func (d *Device) Attach(channel int, p controller.Pin) error {
	s, err := servo.New(d.cfg.ServoPWM[channel], machine.Pin(p))
	if err != nil {
		return errors.New("error creating servo: " + err.Error())
	}
	d.servos[channel] = s
	return nil
}

// Detach stops the pulses. The Controller returns the pin to an input afterwards
func (d *Device) Detach(channel int) {
	d.servos[channel].SetMicroseconds(0)
	d.servos[channel] = servo.Servo{}
}

func (d *Device) SetMicroseconds(channel int, us int16) {
	d.servos[channel].SetMicroseconds(us)
}

func (d *Device) Log(msg string) {
	println(d.ts(), msg)
}

func (d *Device) Sleep(dur time.Duration) {
	time.Sleep(dur)
}

// Debug prints out details of the Controller's state
func (d *Device) Debug() {
	println(d.ts(), d.Status().String())
}

// Verbose sets the Device to Verbose mode and increases logging
func (d *Device) Verbose() {
	d.SetVerbose(true)
	println(d.ts(), "Set Verbose Mode")
}

// ts returns the uptime timestamp for logging
func (d *Device) ts() string {
	return "[" + time.Since(d.startTime).String() + "]"
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (d *Device) WriteByte(b byte) error {
	return machine.Serial.WriteByte(b)
}
