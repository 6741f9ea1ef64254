package controller

import (
	"errors"
	"strings"
	"testing"

	"github.com/trexbot/trex"
)

func newTestServos(hw *fakeHardware) *ServoManager {
	return NewServoManager(DefaultConfig().ServoPins, hw, hw, hw)
}

func TestServoPosition(t *testing.T) {
	tests := []struct {
		target   int16
		expected int16
	}{
		{1500, 1500},
		{1000, 1000},
		{2500, 2500},
		{-1000, 2000},
		{-1500, 1500},
		{-2000, 1000},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			pos := ServoChannel{Target: tt.target}.Position()
			if pos != tt.expected {
				t.Errorf("target=%d: expected=%d, got=%d", tt.target, tt.expected, pos)
			}
		})
	}
}

func TestServoSetTarget(t *testing.T) {
	tests := []struct {
		name    string
		channel int
		target  int16
		err     error
	}{
		{"Valid", 2, 1500, nil},
		{"Reversed", 0, -1200, nil},
		{"Detach", 5, 0, nil},
		{"MaxTarget", 1, trex.MaxServoTarget, nil},
		{"MinTarget", 1, trex.MinServoTarget, nil},
		{"NegativeChannel", -1, 1500, trex.ErrInvalidChannel},
		{"ChannelTooHigh", 6, 1500, trex.ErrInvalidChannel},
		{"TargetTooHigh", 1, trex.MaxServoTarget + 1, trex.ErrInvalidTarget},
		{"TargetTooLow", 1, trex.MinServoTarget - 1, trex.ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServos(newFakeHardware())
			err := s.SetTarget(tt.channel, tt.target)
			if !errors.Is(err, tt.err) {
				t.Errorf("expected err=%v, got=%v", tt.err, err)
			}
			if err == nil && s.Channels()[tt.channel].Target != tt.target {
				t.Errorf("expected target=%d, got=%d", tt.target, s.Channels()[tt.channel].Target)
			}
		})
	}
}

func TestServoUpdate(t *testing.T) {
	hw := newFakeHardware()
	s := newTestServos(hw)
	pins := DefaultConfig().ServoPins

	s.Update()
	if len(hw.servoCalls) != 0 {
		t.Fatalf("expected no calls without targets, got %v", hw.servoCalls)
	}

	if err := s.SetTarget(1, 1500); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTarget(3, -1000); err != nil {
		t.Fatal(err)
	}
	s.Update()

	if !hw.attached[1] || !hw.attached[3] || len(hw.attached) != 2 {
		t.Errorf("expected channels 1 and 3 attached, got %v", hw.attached)
	}
	if hw.servoUs[1] != 1500 || hw.servoUs[3] != 2000 {
		t.Errorf("unexpected positions: %v", hw.servoUs)
	}
	if hw.servoCalls[0] != (servoCall{op: "attach", channel: 1, pin: pins[1]}) {
		t.Errorf("unexpected first call: %v", hw.servoCalls[0])
	}

	// already attached servos are only repositioned
	hw.servoCalls = nil
	s.Update()
	for _, call := range hw.servoCalls {
		if call.op != "us" {
			t.Errorf("unexpected call on steady update: %v", call)
		}
	}

	if err := s.SetTarget(1, 0); err != nil {
		t.Fatal(err)
	}
	s.Update()

	if hw.attached[1] {
		t.Errorf("expected channel 1 to be detached")
	}
	if !hw.inputs[pins[1]] {
		t.Errorf("expected pin %d to be an input after detaching", pins[1])
	}
	if s.Channels()[1].Attached || !s.Channels()[3].Attached {
		t.Errorf("unexpected attached state: %v", s.Channels())
	}
}

func TestServoZeroTargets(t *testing.T) {
	hw := newFakeHardware()
	s := newTestServos(hw)

	for ch := range trex.ServoChannels {
		if err := s.SetTarget(ch, 1200); err != nil {
			t.Fatal(err)
		}
	}
	s.Update()
	if len(hw.attached) != trex.ServoChannels {
		t.Fatalf("expected all servos attached, got %v", hw.attached)
	}

	s.ZeroTargets()
	s.Update()

	if len(hw.attached) != 0 {
		t.Errorf("expected all servos detached, got %v", hw.attached)
	}
	for _, p := range s.Pins() {
		if !hw.inputs[p] {
			t.Errorf("expected pin %d to be an input", p)
		}
	}
}

func TestServoAttachError(t *testing.T) {
	hw := newFakeHardware()
	hw.attachErr = errAttach
	s := newTestServos(hw)

	if err := s.SetTarget(4, 1500); err != nil {
		t.Fatal(err)
	}
	s.Update()

	if s.Channels()[4].Attached {
		t.Errorf("expected channel to stay detached")
	}
	if _, ok := hw.servoUs[4]; ok {
		t.Errorf("expected no position after failed attach")
	}
	if len(hw.logs) != 1 || !strings.Contains(hw.logs[0], "servo 4") || !strings.Contains(hw.logs[0], errAttach.Error()) {
		t.Errorf("unexpected logs: %v", hw.logs)
	}

	// retried on the next update
	hw.attachErr = nil
	s.Update()
	if !s.Channels()[4].Attached || hw.servoUs[4] != 1500 {
		t.Errorf("expected attach on retry")
	}
}
