package tile

import (
	"sort"
	"testing"
)

const testLayer LayerID = 1

func agentsAtSorted(idx *Index, t Tile) []AgentID {
	got := append([]AgentID(nil), idx.Agents(t)...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	return got
}

func TestIndexInsertRemoveRoundTrip(t *testing.T) {
	idx := NewIndex()
	center := Tile{Layer: testLayer, X: 5, Y: 5}
	agent := NewAgentID(1, 0)

	idx.Apply(agent, nil, &center)
	for _, n := range center.Ball() {
		if got := idx.Agents(n); len(got) != 1 || got[0] != agent {
			t.Fatalf("tile %+v: want [%v], got %v", n, agent, got)
		}
	}

	idx.Apply(agent, &center, nil)
	for _, n := range center.Ball() {
		if got := idx.Agents(n); len(got) != 0 {
			t.Fatalf("tile %+v: want empty after removal, got %v", n, got)
		}
	}
	if len(idx.layers[testLayer].slots)-len(idx.layers[testLayer].free) != 0 {
		t.Fatalf("expected all buckets freed, free=%d slots=%d", len(idx.layers[testLayer].free), len(idx.layers[testLayer].slots))
	}
}

func TestIndexCardinalStepMatchesFullReplace(t *testing.T) {
	agent := NewAgentID(1, 0)
	old := Tile{Layer: testLayer, X: 0, Y: 0}
	next := Tile{Layer: testLayer, X: 1, Y: 0}

	incremental := NewIndex()
	incremental.Apply(agent, nil, &old)
	incremental.Apply(agent, &old, &next)

	full := NewIndex()
	full.Apply(agent, nil, &old)
	full.Apply(agent, &old, nil)
	full.Apply(agent, nil, &next)

	for dy := int32(-2); dy <= 2; dy++ {
		for dx := int32(-2); dx <= 2; dx++ {
			tl := Tile{Layer: testLayer, X: dx, Y: dy}
			a := agentsAtSorted(incremental, tl)
			b := agentsAtSorted(full, tl)
			if len(a) != len(b) || (len(a) == 1 && a[0] != b[0]) {
				t.Fatalf("tile %+v diverged: incremental=%v full=%v", tl, a, b)
			}
		}
	}
}

func TestIndexDiagonalStepMatchesFullReplace(t *testing.T) {
	agent := NewAgentID(1, 0)
	old := Tile{Layer: testLayer, X: 0, Y: 0}
	next := Tile{Layer: testLayer, X: 1, Y: 1}

	incremental := NewIndex()
	incremental.Apply(agent, nil, &old)
	incremental.Apply(agent, &old, &next)

	full := NewIndex()
	full.Apply(agent, nil, &old)
	full.Apply(agent, &old, nil)
	full.Apply(agent, nil, &next)

	for dy := int32(-2); dy <= 3; dy++ {
		for dx := int32(-2); dx <= 3; dx++ {
			tl := Tile{Layer: testLayer, X: dx, Y: dy}
			a := agentsAtSorted(incremental, tl)
			b := agentsAtSorted(full, tl)
			if len(a) != len(b) || (len(a) == 1 && a[0] != b[0]) {
				t.Fatalf("tile %+v diverged: incremental=%v full=%v", tl, a, b)
			}
		}
	}
}

func TestIndexFarJumpFullReplace(t *testing.T) {
	idx := NewIndex()
	agent := NewAgentID(1, 0)
	old := Tile{Layer: testLayer, X: 0, Y: 0}
	far := Tile{Layer: testLayer, X: 10, Y: 10}

	idx.Apply(agent, nil, &old)
	idx.Apply(agent, &old, &far)

	for _, n := range old.Ball() {
		if got := idx.Agents(n); len(got) != 0 {
			t.Fatalf("old tile %+v should be empty, got %v", n, got)
		}
	}
	for _, n := range far.Ball() {
		if got := idx.Agents(n); len(got) != 1 || got[0] != agent {
			t.Fatalf("new tile %+v: want [%v], got %v", n, agent, got)
		}
	}
}

func TestIndexSameTileNoop(t *testing.T) {
	idx := NewIndex()
	agent := NewAgentID(1, 0)
	c := Tile{Layer: testLayer, X: 2, Y: 2}
	idx.Apply(agent, nil, &c)
	idx.Apply(agent, &c, &c)
	for _, n := range c.Ball() {
		if got := idx.Agents(n); len(got) != 1 {
			t.Fatalf("tile %+v: want exactly one entry, got %v", n, got)
		}
	}
}

func TestIndexLayerSwitchTreatedAsFullReplace(t *testing.T) {
	idx := NewIndex()
	agent := NewAgentID(1, 0)
	a := Tile{Layer: 1, X: 0, Y: 0}
	b := Tile{Layer: 2, X: 0, Y: 0}

	idx.Apply(agent, nil, &a)
	idx.Apply(agent, &a, &b)

	for _, n := range a.Ball() {
		if got := idx.Agents(n); len(got) != 0 {
			t.Fatalf("layer 1 tile %+v should be empty, got %v", n, got)
		}
	}
	for _, n := range b.Ball() {
		if got := idx.Agents(n); len(got) != 1 || got[0] != agent {
			t.Fatalf("layer 2 tile %+v: want [%v], got %v", n, agent, got)
		}
	}
}
