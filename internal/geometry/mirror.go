package geometry

import (
	"github.com/chewxy/math32"

	"autorig/internal/domain"
)

// Axis names the mirror plane chosen for a joint.
type Axis int

const (
	// AxisNone means the point sits at exactly 45° between the X and Z
	// axes, where neither plane dominates; such joints are not mirrored.
	AxisNone Axis = iota
	// AxisYZ mirrors across the YZ plane (X is negated). Chosen when the
	// joint is further from the YZ plane than from the XY plane.
	AxisYZ
	// AxisXY mirrors across the XY plane (Z is negated).
	AxisXY
)

// String returns the plane name for messages.
func (a Axis) String() string {
	switch a {
	case AxisYZ:
		return "YZ"
	case AxisXY:
		return "XY"
	default:
		return "none"
	}
}

// MirrorAxis picks the mirror plane for a point using the dominant-axis
// rule: whichever of |X| and |Z| is larger decides the plane. Equal
// magnitudes (the 45° case) report ok=false and the point is left alone.
// The character is assumed to stand at the world origin.
func MirrorAxis(p domain.Vector3) (Axis, bool) {
	ax, az := math32.Abs(p.X), math32.Abs(p.Z)
	switch {
	case ax > az:
		return AxisYZ, true
	case az > ax:
		return AxisXY, true
	default:
		return AxisNone, false
	}
}

// Mirror reflects p across the plane chosen by MirrorAxis. ok is false when
// no plane dominates; the returned point is then p unchanged.
func Mirror(p domain.Vector3) (domain.Vector3, Axis, bool) {
	axis, ok := MirrorAxis(p)
	if !ok {
		return p, AxisNone, false
	}
	m := p
	switch axis {
	case AxisYZ:
		m.X = -p.X
	case AxisXY:
		m.Z = -p.Z
	}
	return m, axis, true
}
