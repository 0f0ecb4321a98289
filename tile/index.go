package tile

import (
	"sync"

	"github.com/brentp/intintmap"
)

// bucketSlotSize is the initial capacity given to intintmap.New per layer.
// Layers start small and the map grows on demand like any Go map.
const bucketSlotSize = 64

// bucket is a small-vector of agents occupying one tile. Removal is
// swap-remove by identity; an emptied bucket is returned to the free list so
// invariant I2 (no empty buckets) holds without ever deleting the backing
// array.
type bucket struct {
	agents []AgentID
}

func (b *bucket) insert(agent AgentID) {
	b.agents = append(b.agents, agent)
}

// remove swap-removes agent from the bucket by identity. Reports whether the
// bucket is now empty.
func (b *bucket) remove(agent AgentID) bool {
	for i, a := range b.agents {
		if a == agent {
			last := len(b.agents) - 1
			b.agents[i] = b.agents[last]
			b.agents = b.agents[:last]
			break
		}
	}
	return len(b.agents) == 0
}

var bucketPool = sync.Pool{
	New: func() any { return &bucket{agents: make([]AgentID, 0, 4)} },
}

func acquireBucket() *bucket {
	return bucketPool.Get().(*bucket)
}

func releaseBucket(b *bucket) {
	b.agents = b.agents[:0]
	bucketPool.Put(b)
}

// layerIndex is the per-layer partition of the TileIndex: a dense int64 key
// (packed x, y) mapped to a slot in a pooled bucket arena.
type layerIndex struct {
	coords *intintmap.Map
	slots  []*bucket
	free   []int32
}

func newLayerIndex() *layerIndex {
	return &layerIndex{coords: intintmap.New(bucketSlotSize, 0.75)}
}

func packXY(x, y int32) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

func (li *layerIndex) bucketAt(x, y int32, create bool) *bucket {
	key := packXY(x, y)
	if slot, ok := li.coords.Get(key); ok {
		return li.slots[slot]
	}
	if !create {
		return nil
	}
	b := acquireBucket()
	var slot int64
	if n := len(li.free); n > 0 {
		slot = int64(li.free[n-1])
		li.free = li.free[:n-1]
		li.slots[slot] = b
	} else {
		slot = int64(len(li.slots))
		li.slots = append(li.slots, b)
	}
	li.coords.Put(key, slot)
	return b
}

func (li *layerIndex) insert(x, y int32, agent AgentID) {
	li.bucketAt(x, y, true).insert(agent)
}

func (li *layerIndex) remove(x, y int32, agent AgentID) {
	key := packXY(x, y)
	slot, ok := li.coords.Get(key)
	if !ok {
		return
	}
	b := li.slots[slot]
	if b.remove(agent) {
		li.coords.Del(key)
		li.slots[slot] = nil
		li.free = append(li.free, int32(slot))
		releaseBucket(b)
	}
}

func (li *layerIndex) agentsAt(x, y int32) []AgentID {
	if b := li.bucketAt(x, y, false); b != nil {
		return b.agents
	}
	return nil
}

// Index is the process-wide reverse map from Tile to the set of agents
// whose 3x3 neighbourhood covers it. It is shared across layers; callers
// update it by diffing an agent's previous and current tile via Apply.
//
// Index is not safe for concurrent use: spec.md's phase 3 (update_index) is
// strictly serial by design, consuming the TileChanged stream in emission
// order on a single goroutine.
type Index struct {
	layers map[LayerID]*layerIndex
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{layers: make(map[LayerID]*layerIndex)}
}

func (idx *Index) layer(id LayerID, create bool) *layerIndex {
	li, ok := idx.layers[id]
	if !ok {
		if !create {
			return nil
		}
		li = newLayerIndex()
		idx.layers[id] = li
	}
	return li
}

func (idx *Index) insertBall(t Tile, agent AgentID) {
	li := idx.layer(t.Layer, true)
	for _, n := range t.Ball() {
		li.insert(n.X, n.Y, agent)
	}
}

func (idx *Index) removeBall(t Tile, agent AgentID) {
	li := idx.layer(t.Layer, false)
	if li == nil {
		return
	}
	for _, n := range t.Ball() {
		li.remove(n.X, n.Y, agent)
	}
}

// Apply applies one TileChanged transition to the index, implementing the
// old/new action table of spec.md section 4.3: a no-op when nothing moved,
// a full ball insert/remove when an agent gains or loses a tile or switches
// layers, the 3-tile or 5-tile edge diff for a single cardinal or diagonal
// step, and a full remove+insert for any larger jump.
func (idx *Index) Apply(agent AgentID, old, new *Tile) {
	switch {
	case old == nil && new == nil:
		return
	case old == nil:
		idx.insertBall(*new, agent)
		return
	case new == nil:
		idx.removeBall(*old, agent)
		return
	case old.Layer != new.Layer:
		idx.removeBall(*old, agent)
		idx.insertBall(*new, agent)
		return
	case *old == *new:
		return
	}

	if chebyshev(*old, *new) > 1 {
		idx.removeBall(*old, agent)
		idx.insertBall(*new, agent)
		return
	}
	idx.applyStep(agent, *old, *new)
}

// applyStep handles a one-tile Chebyshev step (cardinal or diagonal) by
// removing only the trailing edge of the old neighbourhood and inserting
// only the leading edge of the new one.
func (idx *Index) applyStep(agent AgentID, old, new Tile) {
	li := idx.layer(old.Layer, true)
	oldBall := old.Ball()
	newBall := new.Ball()

	inNew := func(t Tile) bool {
		for _, n := range newBall {
			if n == t {
				return true
			}
		}
		return false
	}
	inOld := func(t Tile) bool {
		for _, n := range oldBall {
			if n == t {
				return true
			}
		}
		return false
	}

	for _, t := range oldBall {
		if !inNew(t) {
			li.remove(t.X, t.Y, agent)
		}
	}
	for _, t := range newBall {
		if !inOld(t) {
			li.insert(t.X, t.Y, agent)
		}
	}
}

// Agents returns the agents currently occupying t's bucket (the broad-phase
// candidate set for collision resolution). The returned slice is owned by
// the Index and must not be retained past the next call that mutates t's
// bucket.
func (idx *Index) Agents(t Tile) []AgentID {
	li := idx.layer(t.Layer, false)
	if li == nil {
		return nil
	}
	return li.agentsAt(t.X, t.Y)
}

// RemoveLayer drops every bucket belonging to layer, used when a layer is
// destroyed; its agents' TileChanged{_, None} events will already have
// cleared their individual entries, so this is a bulk cleanup for an empty
// or near-empty partition.
func (idx *Index) RemoveLayer(layer LayerID) {
	delete(idx.layers, layer)
}
