package ui

import "github.com/trexbot/trex"

// modes are shown as buttons in this order
var modes = []trex.Mode{
	trex.ModeIdle,
	trex.ModeRC,
	trex.ModeDiagnostic,
	trex.ModeShutdown,
}

func modeLabel(m trex.Mode) string {
	if m == trex.ModeShutdown {
		return "Stop"
	}
	return m.String()
}

// modeCommand is the line understood by controller.ParseLine for each mode
func modeCommand(m trex.Mode) string {
	switch m {
	case trex.ModeIdle:
		return "idle"
	case trex.ModeRC:
		return "rc"
	case trex.ModeDiagnostic:
		return "diag"
	case trex.ModeShutdown:
		return "stop"
	default:
		return ""
	}
}
