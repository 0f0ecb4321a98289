// Package tile implements the spatial tile index: the reverse map from an
// integer grid cell to the set of agents whose collision neighbourhood
// covers that cell, updated incrementally as agents move.
package tile

import "github.com/go-gl/mathgl/mgl32"

// IVec2 is an integer 2D coordinate, used for tile indices and by TileMap
// to classify cells as solid.
type IVec2 struct {
	X, Y int32
}

// Tile is a single cell of a layer's grid. Equality and hashing include the
// layer, so tiles from different layers never alias even at the same (X, Y).
type Tile struct {
	Layer LayerID
	X, Y  int32
}

// Floor computes the tile containing pos in a layer whose grid cells are
// size world units across.
func Floor(layer LayerID, pos mgl32.Vec2, size float32) Tile {
	return Tile{
		Layer: layer,
		X:     int32(floorDiv(pos.X(), size)),
		Y:     int32(floorDiv(pos.Y(), size)),
	}
}

func floorDiv(v, size float32) float32 {
	q := v / size
	f := float32(int32(q))
	if q < 0 && f != q {
		f--
	}
	return f
}

// Ball returns the 9 tiles of the Chebyshev neighbourhood of c: every tile
// (layer, cx+dx, cy+dy) with max(|dx|, |dy|) <= 1.
func (c Tile) Ball() [9]Tile {
	var out [9]Tile
	i := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			out[i] = Tile{Layer: c.Layer, X: c.X + dx, Y: c.Y + dy}
			i++
		}
	}
	return out
}

// chebyshev returns max(|dx|, |dy|) between two tiles in the same layer.
func chebyshev(a, b Tile) int32 {
	dx := abs32(a.X - b.X)
	dy := abs32(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// Map is a user-supplied predicate classifying tiles as solid walls. It must
// be a pure function of its arguments, safe to call concurrently from
// parallel workers.
type Map interface {
	IsSolid(layer LayerID, pos IVec2) bool
}
