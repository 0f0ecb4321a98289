package jostle

import (
	"fmt"

	"github.com/andrewhickman/jostle/diagnostic"
	"github.com/andrewhickman/jostle/tile"
	"github.com/andrewhickman/jostle/transform"
)

// World is the top-level owner of every process-wide mutable resource
// spec.md describes: the agent and layer registries, the shared TileIndex,
// and the diagnostics store. It is the module's stand-in for a host's
// resource system; a real host would instead keep these behind its own
// resource/component mechanism and call the same methods from its
// scheduler hooks.
//
// World is not safe for concurrent use from multiple goroutines calling
// its exported methods simultaneously; the parallelism spec.md describes is
// internal to Step and Render, over disjoint per-agent records.
type World struct {
	conf  Config
	index *tile.Index
	diag  *diagnostic.Store

	agents     []agentSlot
	freeAgents []uint32

	layers     []layerSlot
	freeLayers []uint32

	// eventShards holds the per-worker TileChanged buffers produced by the
	// most recent update_tile pass, concatenated in worker order by
	// update_index. Reused across steps to avoid per-tick allocation.
	eventShards [][]TileChanged
}

// NewWorld constructs an empty World.
func NewWorld(conf Config) *World {
	return &World{
		conf:  conf.withDefaults(),
		index: tile.NewIndex(),
		diag:  diagnostic.NewStore(),
		// Slot 0 is reserved so the zero AgentID/LayerID is never valid.
		agents: make([]agentSlot, 1),
		layers: make([]layerSlot, 1),
	}
}

// Diagnostics returns the Store recording each phase's wall-clock cost.
func (w *World) Diagnostics() *diagnostic.Store { return w.diag }

// NewLayer creates a new arena. tileSize must be > 0; walls may be nil for
// a layer with no static wall geometry.
func (w *World) NewLayer(tileSize float32, walls TileMap) LayerID {
	if tileSize <= 0 {
		panic(fmt.Sprintf("jostle: NewLayer: tileSize must be > 0, got %v", tileSize))
	}
	index, generation := w.allocLayerSlot()
	w.layers[index] = layerSlot{generation: generation, alive: true, tileSize: tileSize, walls: walls}
	return tile.NewLayerID(index, generation)
}

func (w *World) allocLayerSlot() (index, generation uint32) {
	if n := len(w.freeLayers); n > 0 {
		index = w.freeLayers[n-1]
		w.freeLayers = w.freeLayers[:n-1]
		return index, w.layers[index].generation + 1
	}
	index = uint32(len(w.layers))
	w.layers = append(w.layers, layerSlot{})
	return index, 1
}

func (w *World) layerSlot(id LayerID) (*layerSlot, bool) {
	i := id.Index()
	if id == tile.NilLayer || int(i) >= len(w.layers) {
		return nil, false
	}
	s := &w.layers[i]
	if !s.alive || s.generation != id.Generation() {
		return nil, false
	}
	return s, true
}

// DestroyLayer removes a layer. Every agent still attached to it is
// detached first, emitting TileChanged{_, None} for each, per spec.md
// section 3's "destruction implicitly removes all contained agents' index
// entries."
func (w *World) DestroyLayer(layer LayerID) {
	s, ok := w.layerSlot(layer)
	if !ok {
		return
	}
	for i := range w.agents {
		a := &w.agents[i]
		if a.alive && a.layer == layer {
			w.clearAgentTile(tile.NewAgentID(uint32(i), a.generation), a)
			a.layer = tile.NilLayer
		}
	}
	s.alive = false
	w.index.RemoveLayer(layer)
	i := layer.Index()
	w.freeLayers = append(w.freeLayers, i)
}

// NewAgent creates a new disc with the given radius, using the module's
// default Transform. radius must be > 0.
func (w *World) NewAgent(radius float32) AgentID {
	return w.newAgent(radius, &transform.Default{})
}

// NewAgentWithTransform creates a new disc backed by a host-supplied
// Transform, for hosts whose scene graph has its own change-tracked
// transform type rather than using the module's Default.
func (w *World) NewAgentWithTransform(radius float32, tr transform.Transform) AgentID {
	return w.newAgent(radius, tr)
}

func (w *World) newAgent(radius float32, tr transform.Transform) AgentID {
	if radius <= 0 {
		panic(fmt.Sprintf("jostle: NewAgent: radius must be > 0, got %v", radius))
	}
	index, generation := w.allocAgentSlot()
	w.agents[index] = agentSlot{
		generation: generation,
		alive:      true,
		radius:     radius,
		layer:      tile.NilLayer,
		transform:  tr,
	}
	return tile.NewAgentID(index, generation)
}

func (w *World) allocAgentSlot() (index, generation uint32) {
	if n := len(w.freeAgents); n > 0 {
		index = w.freeAgents[n-1]
		w.freeAgents = w.freeAgents[:n-1]
		return index, w.agents[index].generation + 1
	}
	index = uint32(len(w.agents))
	w.agents = append(w.agents, agentSlot{})
	return index, 1
}

func (w *World) agentSlot(id AgentID) (*agentSlot, bool) {
	i := id.Index()
	if int(i) >= len(w.agents) {
		return nil, false
	}
	s := &w.agents[i]
	if !s.alive || s.generation != id.Generation() {
		return nil, false
	}
	return s, true
}

// Attach moves an agent into a layer's arena. The index is not updated
// immediately: the agent's new tile is detected and its TileIndex entries
// inserted by the next Step call's update_tile/update_index phases.
func (w *World) Attach(agent AgentID, layer LayerID) {
	a, ok := w.agentSlot(agent)
	if !ok {
		return
	}
	layerState, ok := w.layerSlot(layer)
	if !ok {
		return
	}
	if 2*a.radius > layerState.tileSize {
		w.conf.Log.Warn("agent radius exceeds half the layer's tile size; broad-phase may miss contacts",
			"radius", a.radius, "tile_size", layerState.tileSize)
	}
	a.layer = layer
}

// Detach removes an agent from its layer, emitting TileChanged{old, nil}
// immediately (this is a host-initiated call outside a Step, not part of
// the parallel update_tile phase, so there is no serialization concern in
// applying it straight away).
func (w *World) Detach(agent AgentID) {
	a, ok := w.agentSlot(agent)
	if !ok || a.layer == tile.NilLayer {
		return
	}
	w.clearAgentTile(agent, a)
	a.layer = tile.NilLayer
}

// DestroyAgent removes an agent entirely, emitting TileChanged{old, nil}
// for its prior tile if it had one.
func (w *World) DestroyAgent(agent AgentID) {
	a, ok := w.agentSlot(agent)
	if !ok {
		return
	}
	w.clearAgentTile(agent, a)
	a.alive = false
	w.freeAgents = append(w.freeAgents, agent.Index())
}

// clearAgentTile removes agent from the TileIndex if it currently has a
// tile, and clears the cached state.
func (w *World) clearAgentTile(agent AgentID, a *agentSlot) {
	if a.state.Tile != nil {
		old := a.state.Tile
		w.index.Apply(agent, old, nil)
		a.state.Tile = nil
	}
}
