package jostle

import "github.com/andrewhickman/jostle/tile"

// TileChanged is produced by update_tile (and by the immediate-emitting
// lifecycle hooks Detach, DestroyAgent, and DestroyLayer) and consumed once
// by update_index. Old and New are nil when the agent has no tile on that
// side of the transition.
type TileChanged struct {
	Agent    AgentID
	Old, New *tile.Tile
}

func tileEqual(a, b *tile.Tile) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
