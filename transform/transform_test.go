package transform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultBumpsTickOnEverySetXY(t *testing.T) {
	var tr Default
	if tr.Tick() != 0 {
		t.Fatalf("zero value tick = %d, want 0", tr.Tick())
	}
	tr.SetXY(mgl32.Vec2{1, 2})
	first := tr.Tick()
	if first == 0 {
		t.Fatalf("tick did not advance after SetXY")
	}
	if tr.XY() != (mgl32.Vec2{1, 2}) {
		t.Fatalf("XY() = %v, want (1, 2)", tr.XY())
	}
	tr.SetXY(mgl32.Vec2{1, 2})
	if tr.Tick() == first {
		t.Fatalf("tick did not advance on a second SetXY call with the same value")
	}
}
