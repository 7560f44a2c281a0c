package blend

import (
	"math"

	"github.com/aretw0/handik/pkg/domain"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Ease maps x in [0, 1] onto [0, 1] with the cubic 2x²(1.5 − x), i.e. 3x² − 2x³.
// Ease(0) = 0 and Ease(1) = 1. Its shape between the ends is pinned by
// TestEase_MonotonicAndFlatAtEnds. Inputs outside [0, 1] are clamped.
func Ease(x float64) float64 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	}
	return 2 * x * x * (1.5 - x)
}

// Lerp interpolates linearly between a and b. t = 0 returns a and t = 1 returns b exactly.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	s := 1 - t
	return r3.Vec{
		X: s*a.X + t*b.X,
		Y: s*a.Y + t*b.Y,
		Z: s*a.Z + t*b.Z,
	}
}

// slerpThreshold is the cosine above which slerp falls back to a normalized lerp.
const slerpThreshold = 0.9995

// Slerp interpolates spherically between unit quaternions a and b along the
// shortest arc. t = 0 returns a and t = 1 returns b (up to sign).
func Slerp(a, b quat.Number, t float64) quat.Number {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}

	cos := dot(a, b)
	if cos < 0 {
		b = quat.Scale(-1, b)
		cos = -cos
	}

	if cos > slerpThreshold {
		return normalize(quat.Number{
			Real: a.Real + t*(b.Real-a.Real),
			Imag: a.Imag + t*(b.Imag-a.Imag),
			Jmag: a.Jmag + t*(b.Jmag-a.Jmag),
			Kmag: a.Kmag + t*(b.Kmag-a.Kmag),
		})
	}

	theta := math.Acos(cos)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin
	return quat.Number{
		Real: wa*a.Real + wb*b.Real,
		Imag: wa*a.Imag + wb*b.Imag,
		Jmag: wa*a.Jmag + wb*b.Jmag,
		Kmag: wa*a.Kmag + wb*b.Kmag,
	}
}

// Mix blends two poses with an already-eased weight t.
func Mix(from, to domain.Pose, t float64) domain.Pose {
	return domain.Pose{
		Position: Lerp(from.Position, to.Position, t),
		Rotation: Slerp(from.Rotation, to.Rotation, t),
	}
}

func dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return domain.IdentityRotation
	}
	return quat.Scale(1/n, q)
}
