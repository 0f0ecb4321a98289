package jostle

import (
	"github.com/andrewhickman/jostle/tile"
	"github.com/andrewhickman/jostle/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// AgentID identifies a disc body. The zero value never refers to a live
// agent.
type AgentID = tile.AgentID

// LayerID identifies an arena. The zero value never refers to a live layer.
type LayerID = tile.LayerID

// interpKind enumerates InterpolationState's three cases (spec.md section
// 3): None, Fixed, and Interpolated.
type interpKind uint8

const (
	interpNone interpKind = iota
	interpFixed
	interpInterpolated
)

// interpState is the per-agent interpolation FSM state.
type interpState struct {
	kind       interpKind
	start, end mgl32.Vec2
	changeTick transform.Tick
}

// AgentState is the per-agent cache the collision stage reads. It is
// recomputed each fixed step from the agent's current transform and its
// parent layer; Tile is nil iff the agent currently has no layer.
type AgentState struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Tile     *tile.Tile
}

// agentSlot is the dense, pooled storage backing one AgentID. A slot is
// reused (with its generation bumped) once the agent it held is destroyed,
// the same handle-recycling idiom as the teacher's entity registry.
type agentSlot struct {
	generation uint32
	alive      bool

	radius    float32
	layer     LayerID
	velocity  mgl32.Vec2
	transform transform.Transform
	state     AgentState
	interp    interpState
}

// Radius returns the agent's fixed collision radius.
func (w *World) Radius(agent AgentID) float32 {
	s, ok := w.agentSlot(agent)
	if !ok {
		return 0
	}
	return s.radius
}

// Layer returns the layer the agent currently belongs to and whether it
// belongs to one at all.
func (w *World) Layer(agent AgentID) (LayerID, bool) {
	s, ok := w.agentSlot(agent)
	if !ok || s.layer == tile.NilLayer {
		return tile.NilLayer, false
	}
	return s.layer, true
}

// Velocity returns the agent's current velocity, as last set by SetVelocity
// or clamped/projected by the most recent resolve_contacts phase.
func (w *World) Velocity(agent AgentID) mgl32.Vec2 {
	s, ok := w.agentSlot(agent)
	if !ok {
		return mgl32.Vec2{}
	}
	return s.velocity
}

// SetVelocity sets the agent's velocity, read by the next Step call. It may
// be clamped to the owning layer's max speed, or projected by sliding
// contact resolution, before the following Step.
func (w *World) SetVelocity(agent AgentID, v mgl32.Vec2) {
	if s, ok := w.agentSlot(agent); ok {
		s.velocity = v
	}
}

// State returns the agent's cached AgentState as of the most recent Step.
func (w *World) State(agent AgentID) (AgentState, bool) {
	s, ok := w.agentSlot(agent)
	if !ok {
		return AgentState{}, false
	}
	return s.state, true
}

// Transform returns the Transform backing the agent, for a host to read or
// write directly (e.g. to teleport the agent, or to parent-move it as part
// of its own scene graph).
func (w *World) Transform(agent AgentID) (transform.Transform, bool) {
	s, ok := w.agentSlot(agent)
	if !ok {
		return nil, false
	}
	return s.transform, true
}

// Position returns the agent's current transform position: interpolated
// during Render, physical at the start of a fixed step.
func (w *World) Position(agent AgentID) (mgl32.Vec2, bool) {
	s, ok := w.agentSlot(agent)
	if !ok {
		return mgl32.Vec2{}, false
	}
	return s.transform.XY(), true
}
