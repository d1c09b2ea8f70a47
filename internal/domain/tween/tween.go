// Package tween drives numeric attributes of scene objects over time.
package tween

import "math"

// completionEpsilon absorbs accumulated float error in elapsed time
const completionEpsilon = 1e-9

// Target is anything with named numeric attributes
type Target interface {
	Get(attr string) (float64, bool)
	Set(attr string, v float64) bool
}

// Curve selects how values move from start to end
type Curve int

const (
	Linear Curve = iota
	Linear2D
	Jump
)

// String returns the string representation of the curve
func (c Curve) String() string {
	switch c {
	case Linear:
		return "Linear"
	case Linear2D:
		return "Linear2D"
	case Jump:
		return "Jump"
	default:
		return "Unknown"
	}
}

// Status is the lifecycle state of an interpolator
type Status int

const (
	Active Status = iota
	Complete
	Cancelled
)

// ID identifies a registered interpolator
type ID uint64

// Interpolator animates one or two attributes of a target
type Interpolator struct {
	id     ID
	target Target
	attrs  []string
	start  []float64
	end    []float64
	curve  Curve

	duration float64
	elapsed  float64
	status   Status

	onComplete func()
}

// NewLinear moves one attribute from start to end over duration seconds
func NewLinear(target Target, attr string, start, end, duration float64, onComplete func()) *Interpolator {
	return &Interpolator{
		target:     target,
		attrs:      []string{attr},
		start:      []float64{start},
		end:        []float64{end},
		curve:      Linear,
		duration:   duration,
		onComplete: onComplete,
	}
}

// NewLinear2D moves x and y together at a constant speed.
// Duration is distance / speed; a non-positive speed completes on the first tick.
func NewLinear2D(target Target, fromX, fromY, toX, toY, speed float64, onComplete func()) *Interpolator {
	duration := 0.0
	if speed > 0 {
		duration = math.Hypot(toX-fromX, toY-fromY) / speed
	}
	return &Interpolator{
		target:     target,
		attrs:      []string{"x", "y"},
		start:      []float64{fromX, fromY},
		end:        []float64{toX, toY},
		curve:      Linear2D,
		duration:   duration,
		onComplete: onComplete,
	}
}

// NewJump raises attr in a parabolic arc peaking at start+height and lands back on start
func NewJump(target Target, attr string, start, height, duration float64, onComplete func()) *Interpolator {
	return &Interpolator{
		target:     target,
		attrs:      []string{attr},
		start:      []float64{start},
		end:        []float64{height},
		curve:      Jump,
		duration:   duration,
		onComplete: onComplete,
	}
}

// ID returns the controller-assigned id
func (ip *Interpolator) ID() ID {
	return ip.id
}

// Status returns the lifecycle state
func (ip *Interpolator) Status() Status {
	return ip.status
}

// Duration returns the total run time in seconds
func (ip *Interpolator) Duration() float64 {
	return ip.duration
}

// valueAt returns the curve value for attribute i at progress t in [0, 1]
func (ip *Interpolator) valueAt(i int, t float64) float64 {
	switch ip.curve {
	case Jump:
		return ip.start[i] + ip.end[i]*4*t*(1-t)
	default:
		return ip.start[i] + (ip.end[i]-ip.start[i])*t
	}
}

// final returns the exact value written on completion
func (ip *Interpolator) final(i int) float64 {
	if ip.curve == Jump {
		return ip.start[i]
	}
	return ip.end[i]
}

// step advances by dt and reports whether the interpolator finished
func (ip *Interpolator) step(dt float64) bool {
	ip.elapsed += dt
	if ip.elapsed >= ip.duration-completionEpsilon {
		for i, attr := range ip.attrs {
			ip.target.Set(attr, ip.final(i))
		}
		return true
	}
	t := ip.elapsed / ip.duration
	for i, attr := range ip.attrs {
		ip.target.Set(attr, ip.valueAt(i, t))
	}
	return false
}
