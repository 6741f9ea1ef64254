package controller

import (
	"testing"

	"github.com/trexbot/trex"
)

func newTestDiagnostic(hw *fakeHardware, cfg DiagnosticConfig) *DiagnosticSequencer {
	motors, _ := newTestMotors(hw)
	return NewDiagnosticSequencer(cfg, DefaultConfig().ServoPins, hw, motors, hw)
}

func TestDiagnosticRamp(t *testing.T) {
	hw := newFakeHardware()
	cfg := DefaultConfig().Diagnostic
	d := newTestDiagnostic(hw, cfg)

	var maxLevel, minLevel int16
	sawBrake := false
	for range 1000 {
		cmd := d.Step()

		if cmd.Speed > maxLevel {
			maxLevel = cmd.Speed
		}
		if cmd.Speed < minLevel {
			minLevel = cmd.Speed
		}
		if abs(cmd.Speed) > MaxSpeed {
			t.Fatalf("level out of range: %d", cmd.Speed)
		}
		if cmd.Speed == 0 && cmd.Brake {
			t.Fatalf("expected brake released at level 0")
		}
		if cmd.Brake {
			sawBrake = true
		}
	}

	if maxLevel != cfg.Limit+cfg.Step || minLevel != -(cfg.Limit+cfg.Step) {
		t.Errorf("unexpected ramp range: %d to %d", minLevel, maxLevel)
	}
	if !sawBrake {
		t.Errorf("expected brake at the ends of the ramp")
	}
}

func TestDiagnosticBrakeWindow(t *testing.T) {
	hw := newFakeHardware()
	d := newTestDiagnostic(hw, DiagnosticConfig{Step: 5, Limit: 10, LEDDivider: 20})

	expected := []MotorCommand{
		{Speed: 5},
		{Speed: 10},
		{Speed: 15, Brake: true},
		{Speed: 10, Brake: true},
		{Speed: 5, Brake: true},
		{Speed: 0},
		{Speed: -5},
		{Speed: -10},
		{Speed: -15, Brake: true},
		{Speed: -10, Brake: true},
		{Speed: -5, Brake: true},
		{Speed: 0},
		{Speed: 5},
	}

	for i, e := range expected {
		cmd := d.Step()
		if cmd != e {
			t.Errorf("step %d: expected=%v, got=%v", i, e, cmd)
		}
	}
}

func TestDiagnosticLEDChase(t *testing.T) {
	hw := newFakeHardware()
	cfg := DefaultConfig().Diagnostic
	d := newTestDiagnostic(hw, cfg)
	pins := DefaultConfig().ServoPins

	d.Step()
	for _, p := range pins {
		if !hw.outputs[p] {
			t.Errorf("expected pin %d to be an output", p)
		}
	}

	period := cfg.LEDDivider + 1
	for i := 1; i < period*trex.ServoChannels*2; i++ {
		d.Step()
		expected := ((i + 1) / period) % trex.ServoChannels
		if d.LED() != expected {
			t.Fatalf("step %d: expected led=%d, got=%d", i, expected, d.LED())
		}

		lit := 0
		for j, p := range pins {
			if hw.levels[p] {
				lit++
				if j != d.LED() {
					t.Fatalf("step %d: wrong LED lit: %d", i, j)
				}
			}
		}
		if lit != 1 {
			t.Fatalf("step %d: expected exactly one LED lit, got=%d", i, lit)
		}
	}
}

func TestDiagnosticSleeps(t *testing.T) {
	hw := newFakeHardware()
	cfg := DefaultConfig().Diagnostic
	d := newTestDiagnostic(hw, cfg)

	d.Step()
	d.Step()
	if len(hw.sleeps) != 2 || hw.sleeps[0] != cfg.Delay {
		t.Errorf("unexpected sleeps: %v", hw.sleeps)
	}
}

func TestDiagnosticExit(t *testing.T) {
	hw := newFakeHardware()
	d := newTestDiagnostic(hw, DefaultConfig().Diagnostic)

	d.Exit()
	if len(hw.inputs) != 2 {
		t.Errorf("expected Exit before Step to leave the servo pins alone, got inputs=%v", hw.inputs)
	}

	for range 30 {
		d.Step()
	}
	if !d.Running() {
		t.Fatalf("expected sequence to be running")
	}

	d.Exit()
	if d.Running() || d.Level() != 0 || d.LED() != 0 {
		t.Errorf("expected state to reset")
	}
	for _, p := range DefaultConfig().ServoPins {
		if hw.levels[p] || !hw.inputs[p] {
			t.Errorf("expected pin %d to be a low input", p)
		}
	}

	cmd := d.Step()
	if cmd.Speed != DefaultConfig().Diagnostic.Step {
		t.Errorf("expected restart from the beginning, got=%v", cmd)
	}
}

func TestDiagnosticZeroStep(t *testing.T) {
	hw := newFakeHardware()
	d := newTestDiagnostic(hw, DiagnosticConfig{Limit: 250})

	d.Step()
	if d.Level() == 0 {
		t.Errorf("expected the ramp to move with a step of 0")
	}
}

func TestDiagnosticLevelStaysInRange(t *testing.T) {
	tests := []struct {
		name string
		cfg  DiagnosticConfig
	}{
		{"StepPastMaxSpeed", DiagnosticConfig{Step: 10, Limit: 250}},
		{"LimitAboveMaxSpeed", DiagnosticConfig{Step: 10, Limit: 300}},
		{"LimitAtMaxSpeed", DiagnosticConfig{Step: 7, Limit: MaxSpeed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hw := newFakeHardware()
			d := newTestDiagnostic(hw, tt.cfg)

			var maxLevel, minLevel int16
			for range 500 {
				cmd := d.Step()
				if abs(cmd.Speed) > MaxSpeed || abs(d.Level()) > MaxSpeed {
					t.Fatalf("level out of range: %d", cmd.Speed)
				}
				maxLevel = max(maxLevel, cmd.Speed)
				minLevel = min(minLevel, cmd.Speed)
			}

			if maxLevel != MaxSpeed || minLevel != -MaxSpeed {
				t.Errorf("expected the ramp to reach both ends, got %d to %d", minLevel, maxLevel)
			}
		})
	}
}
