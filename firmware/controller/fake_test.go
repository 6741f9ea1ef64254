package controller

import (
	"errors"
	"time"
)

type servoCall struct {
	op      string
	channel int
	pin     Pin
	us      int16
}

// fakeHardware records everything the Controller does to the board
type fakeHardware struct {
	outputs map[Pin]bool
	inputs  map[Pin]bool
	levels  map[Pin]bool
	pwm     map[Pin]uint8

	pulses map[Pin]uint32
	analog map[Pin]uint16
	axes   []Vector

	attachErr  error
	attached   map[int]bool
	servoUs    map[int]int16
	servoCalls []servoCall

	logs   []string
	sleeps []time.Duration
}

var _ Hardware = &fakeHardware{}

func newFakeHardware() *fakeHardware {
	return &fakeHardware{
		outputs:  map[Pin]bool{},
		inputs:   map[Pin]bool{},
		levels:   map[Pin]bool{},
		pwm:      map[Pin]uint8{},
		pulses:   map[Pin]uint32{},
		analog:   map[Pin]uint16{},
		attached: map[int]bool{},
		servoUs:  map[int]int16{},
	}
}

func (f *fakeHardware) ConfigureOutput(p Pin) {
	f.outputs[p] = true
	delete(f.inputs, p)
}

func (f *fakeHardware) ConfigureInput(p Pin) {
	f.inputs[p] = true
	delete(f.outputs, p)
}

func (f *fakeHardware) Set(p Pin, v bool) {
	f.levels[p] = v
}

func (f *fakeHardware) Get(p Pin) bool {
	return f.levels[p]
}

func (f *fakeHardware) SetPWM(p Pin, duty uint8) {
	f.pwm[p] = duty
}

func (f *fakeHardware) PulseWidth(p Pin, _ time.Duration) uint32 {
	return f.pulses[p]
}

func (f *fakeHardware) ReadAnalog(p Pin) uint16 {
	return f.analog[p]
}

// ReadAxes returns the queued readings in order and repeats the last one when the queue runs out
func (f *fakeHardware) ReadAxes() (int32, int32, int32) {
	if len(f.axes) == 0 {
		return 0, 0, 0
	}
	v := f.axes[0]
	if len(f.axes) > 1 {
		f.axes = f.axes[1:]
	}
	return v.X, v.Y, v.Z
}

func (f *fakeHardware) Attach(channel int, pin Pin) error {
	f.servoCalls = append(f.servoCalls, servoCall{op: "attach", channel: channel, pin: pin})
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached[channel] = true
	return nil
}

func (f *fakeHardware) Detach(channel int) {
	f.servoCalls = append(f.servoCalls, servoCall{op: "detach", channel: channel})
	delete(f.attached, channel)
	delete(f.servoUs, channel)
}

func (f *fakeHardware) SetMicroseconds(channel int, us int16) {
	f.servoCalls = append(f.servoCalls, servoCall{op: "us", channel: channel, us: us})
	f.servoUs[channel] = us
}

func (f *fakeHardware) Log(msg string) {
	f.logs = append(f.logs, msg)
}

func (f *fakeHardware) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
}

var errAttach = errors.New("no PWM channel")
