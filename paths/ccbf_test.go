package paths

import (
	"bytes"
	"testing"

	"encoding/gob"
	"github.com/havfrost/rogrid"
)

type npath struct {
	nb Neighbors
}

func (nb npath) Neighbors(p rogrid.Point) []rogrid.Point {
	return nb.nb.All(p, func(q rogrid.Point) bool {
		// strange Neighborer that allows only horizontal moves
		return q.Y == p.Y
	})
}

func (nb npath) Cost(p, q rogrid.Point) int {
	return 2
}

func (nb npath) Estimation(p, q rogrid.Point) int {
	r := p.Sub(q)
	return abs(r.X) + abs(r.Y)
}

func TestAstar(t *testing.T) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 10, 5))
	nb := npath{}
	path := pr.AstarPath(nb, rogrid.Point{0, 0}, rogrid.Point{4, 0})
	if len(path) != 5 {
		t.Errorf("bad length: %d", len(path))
	}
	path = pr.AstarPath(nb, rogrid.Point{0, 0}, rogrid.Point{0, 1})
	if len(path) != 0 {
		t.Errorf("not empty path: %d", len(path))
	}
}

func TestGob(t *testing.T) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 10, 5))
	nb := npath{}
	path := pr.AstarPath(nb, rogrid.Point{0, 0}, rogrid.Point{4, 0})
	if len(path) != 5 {
		t.Errorf("bad length: %d", len(path))
	}
	buf := bytes.Buffer{}
	ge := gob.NewEncoder(&buf)
	err := ge.Encode(pr)
	if err != nil {
		t.Error(err)
	}
	pr = &PathRange{}
	gd := gob.NewDecoder(&buf)
	err = gd.Decode(pr)
	if err != nil {
		t.Error(err)
	}
	path = pr.AstarPath(nb, rogrid.Point{0, 0}, rogrid.Point{5, 0})
	if len(path) != 6 {
		t.Errorf("bad length: %d", len(path))
	}
}

func TestCCBf(t *testing.T) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 10, 5))
	nb := npath{}
	pr.ComputeCCAll(nb)
	rg := pr.Rg
	p := rogrid.Point{X: rg.Min.X, Y: rg.Min.Y}
	id := pr.CCAt(p)
	for y := rg.Min.Y + 1; y < rg.Max.Y; y++ {
		p := rogrid.Point{X: rg.Min.X, Y: y}
		nid := pr.CCAt(p)
		if id == nid {
			t.Errorf("same id on different lines: %d, %d", id, nid)
		}
		if nid != y-rg.Min.Y {
			t.Errorf("bad id: %d, %d", id, y-rg.Min.Y)
		}
		id = nid
	}
	id = pr.CCAt(p)
	for y := rg.Min.Y; y < rg.Max.Y; y++ {
		p := rogrid.Point{X: rg.Min.X, Y: y}
		id := pr.CCAt(p)
		for x := rg.Min.X; x < rg.Max.X; x++ {
			if id != pr.CCAt(rogrid.Point{X: x, Y: y}) {
				t.Errorf("different id on same line: %d, %d", id, pr.CCAt(rogrid.Point{X: x, Y: y}))
			}
		}
	}
	pr.ComputeCC(nb, rogrid.Point{X: 1, Y: 1})
	count := 0
	pr.CCIter(func(p rogrid.Point) {
		count++
		if p.Y != 1 {
			t.Errorf("bad id on line 1: %d", id)
		}
	})
	if count != 10 {
		t.Errorf("bad count: %d", count)
	}
	poscosts := []struct {
		p    rogrid.Point
		cost int
	}{
		{rogrid.Point{0, 0}, 2},
		{rogrid.Point{1, 0}, 1},
		{rogrid.Point{2, 0}, 0},
		{rogrid.Point{3, 0}, 1},
		{rogrid.Point{4, 0}, 2},
		{rogrid.Point{5, 0}, 3},
		{rogrid.Point{6, 0}, 4},
		{rogrid.Point{7, 0}, 4},
		{rogrid.Point{0, 2}, 2},
		{rogrid.Point{1, 2}, 1},
		{rogrid.Point{2, 2}, 0},
		{rogrid.Point{3, 2}, 1},
		{rogrid.Point{4, 2}, 2},
		{rogrid.Point{5, 2}, 3},
		{rogrid.Point{6, 2}, 4},
		{rogrid.Point{7, 2}, 4},
		{rogrid.Point{0, 1}, 4},
		{rogrid.Point{1, 1}, 4},
		{rogrid.Point{2, 1}, 4},
		{rogrid.Point{3, 1}, 4},
		{rogrid.Point{4, 1}, 4},
		{rogrid.Point{5, 1}, 4},
		{rogrid.Point{6, 1}, 4},
	}
	for i := 0; i < 2; i++ {
		pr.BreadthFirstMap(nb, []rogrid.Point{{X: 2, Y: 0}, {X: 2, Y: 2}}, 3)
		for _, pc := range poscosts {
			if pc.cost != pr.CostAt(pc.p) {
				t.Errorf("bad cost %d for %+v", pc.cost, pc.p)
			}
		}
		pr.DijkstraMap(nb, []rogrid.Point{{X: 2, Y: 0}, {X: 2, Y: 2}}, 9)
		pr.MapIter(func(n Node) {
			for _, pc := range poscosts {
				if pc.p == n.P && 2*pc.cost != n.Cost {
					t.Errorf("bad cost %d for %+v", n.Cost, n.P)
				}
			}
		})
	}
}

func TestCCBfOutOfRange(t *testing.T) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 10, 5))
	nb := npath{}
	p := rogrid.Point{-1, -1}
	pr.ComputeCCAll(nb)
	pr.ComputeCC(nb, p)
	if pr.CCAt(p) != -1 {
		t.Errorf("bad out of range value: %v", pr.CCAt(p))
	}
	p = rogrid.Point{4, 0}
	if pr.CCAt(p) != -1 {
		t.Errorf("bad unreachable value: %v", pr.CCAt(p))
	}
	q := rogrid.Point{6, 2}
	pr.ComputeCC(nb, p)
	if pr.CCAt(q) != -1 {
		t.Errorf("bad unreachable value: %v", pr.CCAt(q))
	}
}
