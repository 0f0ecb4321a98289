// Package collision implements the swept disc-disc and disc-wall
// time-of-first-contact tests and the sliding resolution used by
// resolve_contacts. Every function here is a pure computation over plain
// vectors and scalars: the package has no notion of agents, layers, or the
// tile index, so it can be exercised directly in tests without any of the
// surrounding simulation state.
package collision

import "github.com/go-gl/mathgl/mgl32"

// Hit is the outcome of a successful sweep test: the time of contact (in
// the same units as dt) and the outward contact normal, pointing from the
// obstacle towards the sweeping agent.
type Hit struct {
	T      float32
	Normal mgl32.Vec2
}

// DiscDisc solves for the earliest time t < dt at which two moving discs
// first touch, given the sweeping agent's own position/velocity/radius
// (selfPos, selfVel, selfRadius) and the target's own
// position/velocity/radius. ok is false if the discs never touch within the
// step. For an already-overlapping pair that is still closing, the returned
// Hit.T is the non-positive root as computed; the contact normal is taken
// at t = 0 and callers clamp T to 0 when resolving.
//
// relPos = targetPos - selfPos, relVel = targetVel - selfVel; combined
// radius r = selfRadius + targetRadius. Solves ||relPos + relVel*t||^2 = r^2
// for t, taking the earlier root, and accepts an already-overlapping pair
// only if it is still closing (b < 0): an overlapping-but-separating pair
// must not be fought back into contact by the solver.
func DiscDisc(selfPos, selfVel mgl32.Vec2, selfRadius float32, targetPos, targetVel mgl32.Vec2, targetRadius float32, dt float32) (Hit, bool) {
	relPos := targetPos.Sub(selfPos)
	relVel := targetVel.Sub(selfVel)
	r := selfRadius + targetRadius

	a := relVel.Dot(relVel)
	if a == 0 {
		return Hit{}, false
	}
	b := 2 * relPos.Dot(relVel)
	c := relPos.Dot(relPos) - r*r

	disc := b*b - 4*a*c
	if disc < 0 {
		return Hit{}, false
	}
	sq := mgl32.Sqrt(disc)
	t := (-b - sq) / (2 * a)

	accept := t > 0 || (t <= 0 && b < 0)
	if !accept || t >= dt {
		return Hit{}, false
	}

	tClamped := t
	if tClamped < 0 {
		tClamped = 0
	}
	selfContact := selfPos.Add(selfVel.Mul(tClamped))
	targetContact := targetPos.Add(targetVel.Mul(tClamped))
	normal := selfContact.Sub(targetContact)
	if n := normal.Len(); n > 1e-9 {
		normal = normal.Mul(1 / n)
	} else {
		normal = mgl32.Vec2{}
	}
	return Hit{T: t, Normal: normal}, true
}

// DiscWall solves for the earliest time t in [0, dt) at which a moving disc
// first touches an axis-aligned wall plane. axis selects which component of
// pos/vel is projected (0 for an X-facing wall, 1 for a Y-facing wall);
// outward is the sign (+1 or -1) of the direction along that axis from the
// agent's tile toward the solid tile, i.e. the direction the agent must move
// to reach the wall. The reported Hit.Normal is the negation of that
// direction. wallCoord is the world-space coordinate of the wall plane
// itself (the tile edge), not yet offset by the agent's radius.
func DiscWall(pos, vel mgl32.Vec2, radius float32, axis int, outward float32, wallCoord float32, dt float32) (Hit, bool) {
	var p, v float32
	if axis == 0 {
		p, v = pos.X(), vel.X()
	} else {
		p, v = pos.Y(), vel.Y()
	}

	// Projected onto the outward normal: moving away from the wall (or
	// parallel to it) can never produce contact.
	pv := v * outward
	if pv <= 0 {
		return Hit{}, false
	}
	pp := p * outward
	wc := wallCoord * outward

	t := (wc - pp - radius) / pv
	if t < 0 || t >= dt {
		return Hit{}, false
	}

	// outward is the sign used for the reachability/contact-time projection
	// above; the normal reported to the caller must point away from the
	// wall (the same "away from the obstacle" convention DiscDisc uses), so
	// it is the negation of outward.
	var normal mgl32.Vec2
	if axis == 0 {
		normal = mgl32.Vec2{-outward, 0}
	} else {
		normal = mgl32.Vec2{0, -outward}
	}
	return Hit{T: t, Normal: normal}, true
}

// Slide projects the inward component of vel out along normal, leaving only
// the component tangent to (or already moving away from) the contact. If
// vel has no component into the contact (vel.Dot(normal) >= 0) it is
// returned unchanged. A zero normal (a degenerate, coincident contact) is a
// no-op, matching spec.md section 7's handling of that numerical edge case.
func Slide(vel, normal mgl32.Vec2) mgl32.Vec2 {
	if normal.Len() == 0 {
		return vel
	}
	into := vel.Dot(normal)
	if into >= 0 {
		return vel
	}
	return vel.Sub(normal.Mul(into))
}
