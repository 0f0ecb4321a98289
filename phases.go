package jostle

import (
	"runtime"

	"github.com/andrewhickman/jostle/collision"
	"github.com/andrewhickman/jostle/tile"
	"github.com/andrewhickman/jostle/vec2"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// Step advances the fixed-rate physics clock by one tick of length dt,
// running the four fixed-tick phases of spec.md section 5 in order:
// update_physical, update_tile, update_index, resolve_contacts.
func (w *World) Step(dt float32) {
	w.diag.Measure("update_physical", w.updatePhysical)
	w.diag.Measure("update_tile", w.updateTile)
	w.diag.Measure("update_index", w.updateIndexPhase)
	w.diag.Measure("resolve_contacts", func() { w.resolveContacts(dt) })
}

// Render writes every agent's interpolated, visually smooth position for
// the given overstep fraction alpha (the fraction of a physics step
// elapsed since the last fixed tick). It is meant to be called once per
// render frame, independent of Step's rate.
func (w *World) Render(alpha float32) {
	w.diag.Measure("update_render", func() { w.updateRender(alpha) })
}

// forEachAgentShard splits the agent slot range into contiguous shards and
// runs work over each shard on its own goroutine, joining before it
// returns. Shards are disjoint index ranges, so each goroutine only ever
// touches its own agents' records.
func (w *World) forEachAgentShard(work func(lo, hi int)) {
	n := len(w.agents)
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			work(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// updatePhysical is phase 1: promote each agent's render-time transform
// back to its authoritative physical position.
func (w *World) updatePhysical() {
	w.forEachAgentShard(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a := &w.agents[i]
			if !a.alive {
				continue
			}
			if a.interp.kind == interpInterpolated && a.transform.Tick() == a.interp.changeTick {
				a.transform.SetXY(a.interp.end)
			}
			a.interp = interpState{kind: interpFixed, start: a.transform.XY()}
		}
	})
}

// updateTile is phase 2: recompute each agent's tile from its transform,
// caching position/velocity into AgentState and emitting a TileChanged
// event on every shard's own buffer when the tile differs from the cache.
// Parallel across agents; the only synchronized write is the per-shard
// event buffer, one per worker, concatenated in worker order by phase 3.
func (w *World) updateTile() {
	n := len(w.agents)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	if cap(w.eventShards) < workers {
		grown := make([][]TileChanged, workers)
		copy(grown, w.eventShards)
		w.eventShards = grown
	} else {
		w.eventShards = w.eventShards[:workers]
	}
	for i := range w.eventShards {
		w.eventShards[i] = w.eventShards[i][:0]
	}

	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	shard := 0
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi, s := lo, hi, shard
		shard++
		g.Go(func() error {
			w.updateTileRange(lo, hi, &w.eventShards[s])
			return nil
		})
	}
	_ = g.Wait()
}

func (w *World) updateTileRange(lo, hi int, out *[]TileChanged) {
	for i := lo; i < hi; i++ {
		a := &w.agents[i]
		if !a.alive {
			continue
		}
		pos := a.transform.XY()
		a.state.Position = pos
		a.state.Velocity = a.velocity

		var newTile *tile.Tile
		if a.layer != tile.NilLayer {
			if ls, ok := w.layerSlot(a.layer); ok {
				t := tile.Floor(a.layer, pos, ls.tileSize)
				newTile = &t
			}
		}
		if !tileEqual(a.state.Tile, newTile) {
			agent := tile.NewAgentID(uint32(i), a.generation)
			*out = append(*out, TileChanged{Agent: agent, Old: a.state.Tile, New: newTile})
			a.state.Tile = newTile
		}
	}
}

// updateIndexPhase is phase 3: apply the TileChanged stream from phase 2,
// in the deterministic order produced by concatenating each worker's
// buffer in worker order. Strictly serial: the TileIndex is a single
// shared mutable structure.
func (w *World) updateIndexPhase() {
	for _, shard := range w.eventShards {
		for _, e := range shard {
			w.index.Apply(e.Agent, e.Old, e.New)
		}
	}
}

// resolveContacts is phase 4: for every agent with a tile and a non-zero
// velocity, clamp its speed, find the earliest contact among same-tile
// candidates and configured walls, and either slide along that contact or
// advance linearly. Parallel across agents; each goroutine reads every
// candidate's AgentState (frozen by phase 2) but writes only its own
// agent's velocity and transform.
func (w *World) resolveContacts(dt float32) {
	w.forEachAgentShard(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a := &w.agents[i]
			if !a.alive {
				continue
			}
			w.resolveAgent(i, a, dt)
		}
	})
}

func (w *World) resolveAgent(index int, a *agentSlot, dt float32) {
	if a.state.Tile == nil {
		return
	}
	if a.velocity == (mgl32.Vec2{}) {
		return
	}
	ls, ok := w.layerSlot(a.layer)
	if !ok {
		return
	}

	maxSpeed := 0.5 * ls.tileSize / dt
	if speed := a.velocity.Len(); speed > maxSpeed {
		a.velocity = a.velocity.Mul(maxSpeed / speed)
		a.state.Velocity = a.velocity
	}

	selfTile := *a.state.Tile
	self := tile.NewAgentID(uint32(index), a.generation)

	var best collision.Hit
	haveBest := false
	consider := func(h collision.Hit, ok bool) {
		if ok && (!haveBest || h.T < best.T) {
			best, haveBest = h, true
		}
	}

	for _, cid := range w.index.Agents(selfTile) {
		if cid == self {
			continue
		}
		other, ok := w.agentSlot(cid)
		if !ok {
			continue
		}
		consider(collision.DiscDisc(a.state.Position, a.state.Velocity, a.radius, other.state.Position, other.state.Velocity, other.radius, dt))
	}

	if ls.walls != nil {
		for _, h := range wallCandidates(ls, selfTile) {
			consider(collision.DiscWall(a.state.Position, a.state.Velocity, a.radius, h.axis, h.sign, h.wallCoord, dt))
		}
	}

	if haveBest {
		tStar := best.T
		if tStar < 0 {
			tStar = 0
		}
		contact := a.state.Position.Add(a.state.Velocity.Mul(tStar))
		a.velocity = collision.Slide(a.velocity, best.Normal)
		a.transform.SetXY(contact)
		return
	}
	a.transform.SetXY(a.state.Position.Add(a.state.Velocity.Mul(dt)))
}

type wallCandidate struct {
	axis      int
	sign      float32
	wallCoord float32
}

// wallCandidates enumerates the 4 cardinal neighbours of self that the
// layer's TileMap reports as solid, with the coordinate of the adjoining
// edge.
func wallCandidates(ls *layerSlot, self tile.Tile) []wallCandidate {
	size := ls.tileSize
	checks := [4]struct {
		nx, ny int32
		c      wallCandidate
	}{
		{self.X + 1, self.Y, wallCandidate{axis: 0, sign: 1, wallCoord: float32(self.X+1) * size}},
		{self.X - 1, self.Y, wallCandidate{axis: 0, sign: -1, wallCoord: float32(self.X) * size}},
		{self.X, self.Y + 1, wallCandidate{axis: 1, sign: 1, wallCoord: float32(self.Y+1) * size}},
		{self.X, self.Y - 1, wallCandidate{axis: 1, sign: -1, wallCoord: float32(self.Y) * size}},
	}
	var out []wallCandidate
	for _, chk := range checks {
		if ls.walls.IsSolid(self.Layer, tile.IVec2{X: chk.nx, Y: chk.ny}) {
			out = append(out, chk.c)
		}
	}
	return out
}

// updateRender is phase 5: write each agent's interpolated position for
// alpha, advancing or collapsing the interpolation FSM per spec.md section
// 4.1. Runs every render frame, independent of Step's rate.
func (w *World) updateRender(alpha float32) {
	w.forEachAgentShard(func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a := &w.agents[i]
			if !a.alive {
				continue
			}
			switch a.interp.kind {
			case interpFixed:
				if a.transform.XY() != a.interp.start {
					end := a.transform.XY()
					a.transform.SetXY(vec2.Lerp(a.interp.start, end, alpha))
					a.interp = interpState{kind: interpInterpolated, start: a.interp.start, end: end, changeTick: a.transform.Tick()}
				} else {
					a.interp = interpState{kind: interpNone}
				}
			case interpInterpolated:
				if a.transform.Tick() == a.interp.changeTick {
					a.transform.SetXY(vec2.Lerp(a.interp.start, a.interp.end, alpha))
					a.interp.changeTick = a.transform.Tick()
				} else {
					a.interp = interpState{kind: interpNone}
				}
			default:
				// None: nothing to interpolate.
			}
		}
	})
}
