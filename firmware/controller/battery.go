package controller

// BatteryMonitor detects a flat battery. The reading must stay low for several consecutive samples
// so a brief sag under motor load doesn't shut the robot down
type BatteryMonitor struct {
	cfg    BatteryConfig
	analog Analog

	lowCount int
	last     uint16
}

func NewBatteryMonitor(cfg BatteryConfig, analog Analog) *BatteryMonitor {
	if cfg.Samples < 1 {
		cfg.Samples = 1
	}
	return &BatteryMonitor{cfg: cfg, analog: analog}
}

// Check samples the battery and reports whether it is flat
func (b *BatteryMonitor) Check() bool {
	if b.cfg.LowBattery == 0 {
		return false
	}

	b.last = b.analog.ReadAnalog(b.cfg.Pin)
	if b.last >= b.cfg.LowBattery {
		b.lowCount = 0
		return false
	}

	if b.lowCount < b.cfg.Samples {
		b.lowCount++
	}
	return b.lowCount >= b.cfg.Samples
}

// Last is the most recent reading
func (b *BatteryMonitor) Last() uint16 {
	return b.last
}
