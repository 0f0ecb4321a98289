package jostle

import "github.com/andrewhickman/jostle/tile"

// TileMap is a user-supplied predicate classifying tiles of a layer as
// solid walls. It must be a pure function of its arguments: resolve_contacts
// calls it concurrently from parallel workers.
type TileMap = tile.Map

// layerSlot is the dense, pooled storage backing one LayerID.
type layerSlot struct {
	generation uint32
	alive      bool

	tileSize float32
	walls    TileMap
}

// TileSize returns the layer's grid cell size.
func (w *World) TileSize(layer LayerID) (float32, bool) {
	s, ok := w.layerSlot(layer)
	if !ok {
		return 0, false
	}
	return s.tileSize, true
}

// MaxSpeed returns the speed an agent in this layer is clamped to each
// step: half a tile per dt, so a moving agent can never cross more than
// half a tile in one step, preserving the 3x3 broad-phase assumption.
func (w *World) MaxSpeed(layer LayerID, dt float32) (float32, bool) {
	s, ok := w.layerSlot(layer)
	if !ok {
		return 0, false
	}
	return 0.5 * s.tileSize / dt, true
}

// SetWalls replaces the layer's TileMap at runtime. spec.md is silent on
// whether wall geometry is mutable after a layer is created; the reference
// implementation's layer.rs allows it (hot-reloadable wall geometry), so
// this module does too.
func (w *World) SetWalls(layer LayerID, walls TileMap) {
	if s, ok := w.layerSlot(layer); ok {
		s.walls = walls
	}
}
