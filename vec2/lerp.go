// Package vec2 collects the handful of small vector helpers the core needs
// beyond what mathgl provides directly, factored out the way the reference
// implementation's lerp module does rather than inlined at each call site.
package vec2

import "github.com/go-gl/mathgl/mgl32"

// Lerp linearly interpolates between a and b by t, where t = 0 returns a and
// t = 1 returns b. t is not clamped; callers pass the overstep fraction,
// which spec.md already guarantees lies in [0, 1).
func Lerp(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}
