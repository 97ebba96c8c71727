package paths

import (
	"testing"

	"github.com/havfrost/rogrid"
)

func TestPathMaps(t *testing.T) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 10, 5))
	nb := npath{}
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

func BenchmarkDijktraMapSmall(b *testing.B) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 80, 24))
	nb := bpath{&Neighbors{}}
	for i := 0; i < b.N; i++ {
		pr.DijkstraMap(nb, []rogrid.Point{{X: 2, Y: 2}}, 9)
	}
}

func BenchmarkDijktraMapBig(b *testing.B) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 80, 24))
	nb := bpath{&Neighbors{}}
	for i := 0; i < b.N; i++ {
		pr.DijkstraMap(nb, []rogrid.Point{{X: 2, Y: 2}}, 80)
	}
}

func BenchmarkBfMapSmall(b *testing.B) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 80, 24))
	nb := bpath{&Neighbors{}}
	for i := 0; i < b.N; i++ {
		pr.BreadthFirstMap(nb, []rogrid.Point{{X: 2, Y: 2}}, 9)
	}
}

func BenchmarkBfMapBig(b *testing.B) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 80, 24))
	nb := bpath{&Neighbors{}}
	for i := 0; i < b.N; i++ {
		pr.BreadthFirstMap(nb, []rogrid.Point{{X: 2, Y: 2}}, 80)
	}
}

func BenchmarkAstar(b *testing.B) {
	pr := NewPathRange(rogrid.NewRange(0, 0, 80, 24))
	nb := bpath{&Neighbors{}}
	for i := 0; i < b.N; i++ {
		pr.AstarPath(nb, rogrid.Point{X: 2, Y: 2}, rogrid.Point{X: 70, Y: 20})
	}
}
