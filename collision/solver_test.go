package collision

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approxVec(a, b mgl32.Vec2, eps float32) bool {
	return float32(math.Abs(float64(a.X()-b.X()))) < eps && float32(math.Abs(float64(a.Y()-b.Y()))) < eps
}

func TestDiscDiscHeadOn(t *testing.T) {
	// Scenario 3: two r=0.2 agents at (0,0) and (1,0), closing at 0.5 each.
	hit, ok := DiscDisc(
		mgl32.Vec2{0, 0}, mgl32.Vec2{0.5, 0}, 0.2,
		mgl32.Vec2{1, 0}, mgl32.Vec2{-0.5, 0}, 0.2,
		1.0,
	)
	if !ok {
		t.Fatal("expected a contact")
	}
	// Combined radius 0.4, closing speed 1.0, gap 1.0 - 0.4 = 0.6 -> t = 0.6.
	if math.Abs(float64(hit.T)-0.6) > 1e-4 {
		t.Fatalf("t = %v, want 0.6", hit.T)
	}
	if hit.Normal.X() >= 0 {
		t.Fatalf("normal %v should point back toward self (negative x)", hit.Normal)
	}
}

func TestDiscDiscNoRelativeVelocityNeverCollides(t *testing.T) {
	_, ok := DiscDisc(
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, 0.2,
		mgl32.Vec2{2, 0}, mgl32.Vec2{1, 0}, 0.2,
		1.0,
	)
	if ok {
		t.Fatal("discs sharing velocity should never be reported as colliding")
	}
}

func TestDiscDiscOverlappingAndSeparatingRejected(t *testing.T) {
	// Already overlapping (distance 0.3 < combined radius 0.4) but moving apart.
	_, ok := DiscDisc(
		mgl32.Vec2{0, 0}, mgl32.Vec2{-1, 0}, 0.2,
		mgl32.Vec2{0.3, 0}, mgl32.Vec2{1, 0}, 0.2,
		1.0,
	)
	if ok {
		t.Fatal("overlapping-but-separating pair must not be accepted")
	}
}

func TestDiscDiscOverlappingAndClosingAcceptedAtZero(t *testing.T) {
	hit, ok := DiscDisc(
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, 0.2,
		mgl32.Vec2{0.3, 0}, mgl32.Vec2{-1, 0}, 0.2,
		1.0,
	)
	if !ok {
		t.Fatal("overlapping-and-closing pair should be accepted")
	}
	if hit.T > 0 {
		t.Fatalf("expected a non-positive root, got %v", hit.T)
	}
}

func TestDiscWallUnreachableWhenMovingAway(t *testing.T) {
	_, ok := DiscWall(mgl32.Vec2{0.5, 0}, mgl32.Vec2{-1, 0}, 0.2, 0, 1, 1.0, 1.0)
	if ok {
		t.Fatal("wall moving away from should never be reported as colliding")
	}
}

func TestDiscWallContact(t *testing.T) {
	// Wall at x=1 on the +x side of the agent (outward = +1), agent r=0.2
	// moving right at 1 unit/s from x=0: contact when agent edge reaches the
	// wall, x = 1 - 0.2 = 0.8. The reported normal points away from the wall,
	// back toward the agent.
	hit, ok := DiscWall(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, 0.2, 0, 1, 1.0, 1.0)
	if !ok {
		t.Fatal("expected contact")
	}
	if math.Abs(float64(hit.T)-0.8) > 1e-4 {
		t.Fatalf("t = %v, want 0.8", hit.T)
	}
	if hit.Normal != (mgl32.Vec2{-1, 0}) {
		t.Fatalf("normal = %v, want (-1, 0)", hit.Normal)
	}
}

func TestSlideProjectsOutInwardComponentOnly(t *testing.T) {
	vel := mgl32.Vec2{-1, 0}
	normal := mgl32.Vec2{1, 0}
	got := Slide(vel, normal)
	if !approxVec(got, mgl32.Vec2{0, 0}, 1e-6) {
		t.Fatalf("Slide(%v, %v) = %v, want (0,0)", vel, normal, got)
	}
}

func TestSlideObliqueKeepsTangentComponent(t *testing.T) {
	// Scenario 4: A vel (0.3, 0.3), wall/contact normal (-1, 0) -> x projected out.
	vel := mgl32.Vec2{0.3, 0.3}
	normal := mgl32.Vec2{-1, 0}
	got := Slide(vel, normal)
	if !approxVec(got, mgl32.Vec2{0, 0.3}, 1e-6) {
		t.Fatalf("Slide(%v, %v) = %v, want (0, 0.3)", vel, normal, got)
	}
}

func TestSlideLeavesSeparatingVelocityUnchanged(t *testing.T) {
	vel := mgl32.Vec2{1, 0}
	normal := mgl32.Vec2{1, 0}
	got := Slide(vel, normal)
	if got != vel {
		t.Fatalf("Slide(%v, %v) = %v, want unchanged", vel, normal, got)
	}
}

func TestSlideDegenerateNormalIsNoop(t *testing.T) {
	vel := mgl32.Vec2{1, 2}
	if got := Slide(vel, mgl32.Vec2{0, 0}); got != vel {
		t.Fatalf("Slide with zero normal = %v, want unchanged %v", got, vel)
	}
}
