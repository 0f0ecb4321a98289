// Package transform supplies the change-tracked 2D pose the core reads and
// writes. A real host embeds this core behind its own scene graph and
// should implement Transform against that graph's native transform type and
// its own change-tick idiom; Default is this module's standalone
// implementation, used when there is no host scene graph to borrow one
// from, and in tests.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Tick is a monotonically increasing version stamp. Any mechanism that
// strictly increases on every write and can be compared for equality
// satisfies the contract spec.md's interpolation FSM relies on: a dirty
// flag toggled on external write, a version counter, or (as here) a plain
// incrementing tick.
type Tick uint64

// Transform is the 2D pose the core both reads and writes. Implementations
// must bump their change tick on every SetXY call, including calls made by
// the core itself, so the FSM can distinguish a self-write from a write the
// host made in between: if the tick it stamped is still current, nothing
// else touched the transform since.
type Transform interface {
	XY() mgl32.Vec2
	SetXY(mgl32.Vec2)
	Tick() Tick
}

// Default is a minimal Transform usable standalone, without a host scene
// graph. It is not safe for concurrent use: spec.md's phases only ever
// touch one agent's transform from one goroutine at a time.
type Default struct {
	xy   mgl32.Vec2
	tick Tick
}

// XY returns the current pose.
func (t *Default) XY() mgl32.Vec2 { return t.xy }

// SetXY sets the pose and bumps the change tick.
func (t *Default) SetXY(xy mgl32.Vec2) {
	t.xy = xy
	t.tick++
}

// Tick returns the tick stamped by the most recent SetXY call.
func (t *Default) Tick() Tick { return t.tick }
