package panel

import "math"

// Quaternion is a unit rotation in scalar-last (x, y, z, w) form, matching
// the render tree's convention.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Identity is the zero rotation.
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// AboutForward returns the rotation of angle radians about the forward axis.
// The compass icon spins in the panel's own plane, so forward is the only
// axis it ever rotates about.
func AboutForward(angleRad float64) Quaternion {
	half := angleRad / 2
	return Quaternion{Z: math.Sin(half), W: math.Cos(half)}
}

// Angle returns the rotation angle in radians about the forward axis.
func (q Quaternion) Angle() float64 {
	return 2 * math.Atan2(q.Z, q.W)
}
