package trex

import (
	"errors"
	"testing"
)

func TestModeByteRoundTrip(t *testing.T) {
	for _, m := range []Mode{ModeIdle, ModeRC, ModeDiagnostic, ModeShutdown} {
		t.Run(m.String(), func(t *testing.T) {
			got, ok := ParseMode(m.Byte())
			if !ok {
				t.Fatalf("ParseMode(%q) not ok", m.Byte())
			}
			if got != m {
				t.Errorf("expected=%v, got=%v", m, got)
			}
		})
	}

	if _, ok := ParseMode('Q'); ok {
		t.Errorf("expected unknown mode byte to fail")
	}
	if Mode(42).String() != "Unknown" {
		t.Errorf("unexpected String for invalid mode: %q", Mode(42).String())
	}
}

func TestServoCommand(t *testing.T) {
	tests := []struct {
		name     string
		channel  int
		target   int
		expected string
		err      error
	}{
		{"Direct", 2, 1500, "S2+1500", nil},
		{"Reversed", 0, -1200, "S0-1200", nil},
		{"Detach", 5, 0, "S5+0000", nil},
		{"ShortValue", 1, 800, "S1+0800", nil},
		{"BadChannel", 6, 1500, "", ErrInvalidChannel},
		{"NegativeChannel", -1, 1500, "", ErrInvalidChannel},
		{"TooHigh", 3, 2501, "", ErrInvalidTarget},
		{"TooLow", 3, -2001, "", ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ServoCommand(tt.channel, tt.target)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected err=%v, got=%v", tt.err, err)
			}
			if string(out) != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, out)
			}
			if tt.err != nil {
				return
			}

			channel, target, err := ParseServoInput(out[1:])
			if err != nil {
				t.Fatalf("unexpected error parsing %q: %v", out, err)
			}
			if channel != tt.channel || int(target) != tt.target {
				t.Errorf("parsed channel=%d target=%d", channel, target)
			}
		})
	}
}

func TestParseServoInputErrors(t *testing.T) {
	for _, in := range []string{"", "0+150", "9+1500", "0*1500", "0+15a0", "0+2600"} {
		t.Run(in, func(t *testing.T) {
			if _, _, err := ParseServoInput([]byte(in)); err == nil {
				t.Errorf("expected error for %q", in)
			}
		})
	}
}

func TestBeepCommand(t *testing.T) {
	out, err := BeepCommand(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "B3" {
		t.Errorf("expected=%q, got=%q", "B3", out)
	}

	for _, n := range []int{0, 10, -1} {
		if _, err := BeepCommand(n); !errors.Is(err, ErrInvalidBeeps) {
			t.Errorf("BeepCommand(%d): expected ErrInvalidBeeps, got %v", n, err)
		}
	}
}
