package systems

import "github.com/go-gl/mathgl/mgl32"

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp interpolates componentwise. With t in [0,1] the result stays inside
// the box spanned by a and b, which is what keeps smoothing overshoot-free.
func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// normalizeOrZero maps degenerate vectors to zero instead of NaN.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.LenSqr() < 1e-12 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
