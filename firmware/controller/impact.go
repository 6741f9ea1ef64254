package controller

import "math"

const impactMessage = "(T'REX Controller) Impact Detected!"

// Vector holds one value per accelerometer axis
type Vector struct {
	X, Y, Z int32
}

// ImpactEvent describes the sample that exceeded the sensitivity
type ImpactEvent struct {
	Delta     Vector
	Magnitude float64
}

// ImpactDetector watches for sudden changes in acceleration between consecutive samples
type ImpactDetector struct {
	cfg    ImpactConfig
	accel  Accelerometer
	logger Logger

	primed    bool
	previous  Vector
	countdown int

	delta     Vector
	magnitude float64
	active    bool
}

func NewImpactDetector(cfg ImpactConfig, accel Accelerometer, logger Logger) *ImpactDetector {
	return &ImpactDetector{
		cfg:    cfg,
		accel:  accel,
		logger: logger,
	}
}

// Sample reads the accelerometer once and reports an impact if the change since the previous sample
// exceeds the sensitivity. After an impact, the next Devibrate samples are only used to track the
// latest reading so the robot's own ringing doesn't trigger again
func (d *ImpactDetector) Sample() (ImpactEvent, bool) {
	x, y, z := d.accel.ReadAxes()
	current := Vector{x, y, z}

	previous := d.previous
	d.previous = current

	if !d.primed {
		d.primed = true
		d.clear()
		return ImpactEvent{}, false
	}

	if d.countdown > 0 {
		d.countdown--
		d.clear()
		return ImpactEvent{}, false
	}

	d.delta = Vector{
		X: current.X - previous.X,
		Y: current.Y - previous.Y,
		Z: current.Z - previous.Z,
	}
	dx, dy, dz := float64(d.delta.X), float64(d.delta.Y), float64(d.delta.Z)
	d.magnitude = math.Sqrt(dx*dx + dy*dy + dz*dz)

	if d.magnitude > d.cfg.Sensitivity {
		d.logger.Log(impactMessage)
		d.countdown = d.cfg.Devibrate
		d.active = true
		return ImpactEvent{Delta: d.delta, Magnitude: d.magnitude}, true
	}

	d.clear()
	return ImpactEvent{}, false
}

func (d *ImpactDetector) clear() {
	d.delta = Vector{}
	d.magnitude = 0
	d.active = false
}

// Magnitude is the delta magnitude of the latest sample. It is only non-zero after an impact
func (d *ImpactDetector) Magnitude() float64 {
	return d.magnitude
}

// Delta is the per-axis change of the latest sample. It is only non-zero after an impact
func (d *ImpactDetector) Delta() Vector {
	return d.delta
}

// Active reports whether the latest sample was an impact
func (d *ImpactDetector) Active() bool {
	return d.active
}

// Suppressed reports whether samples are currently being ignored after an impact
func (d *ImpactDetector) Suppressed() bool {
	return d.countdown > 0
}
