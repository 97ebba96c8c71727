package rl

import (
	"testing"

	"github.com/havfrost/rogrid"
)

func TestFOVRetainCircular(t *testing.T) {
	const maxDepth = 10
	fov := NewFOV(rogrid.NewRange(-maxDepth, -maxDepth, maxDepth+1, maxDepth+1))
	src := rogrid.Point{0, 0}
	fov.SSCVisionMap(src, maxDepth, func(p rogrid.Point) bool { return true }, true)
	square := 0
	fov.Rg.Iter(func(p rogrid.Point) {
		if fov.Visible(p) {
			square++
		}
	})
	if square != (2*maxDepth+1)*(2*maxDepth+1) {
		t.Errorf("bad square count: %d", square)
	}

	fov.SSCVisionMap(src, maxDepth, func(p rogrid.Point) bool { return true }, true)
	fov.RetainCircular(src, maxDepth)
	circle := 0
	corner := 0
	fov.Rg.Iter(func(p rogrid.Point) {
		if fov.Visible(p) {
			circle++
		}
	})
	if fov.Visible(rogrid.Point{maxDepth, maxDepth}) {
		corner++
	}
	if circle >= square {
		t.Errorf("RetainCircular did not shrink the lit set: %d vs %d", circle, square)
	}
	if corner != 0 {
		t.Error("far corner should have been clipped by RetainCircular")
	}
	if !fov.Visible(src) {
		t.Error("source position should remain visible after RetainCircular")
	}
}

func TestFOVRetainCircularLightMap(t *testing.T) {
	const maxDepth = 6
	fov := NewFOV(rogrid.NewRange(-maxDepth, -maxDepth, maxDepth+1, maxDepth+1))
	srcs := []rogrid.Point{{-3, 0}, {3, 0}}
	fov.SSCLightMap(srcs, maxDepth, func(p rogrid.Point) bool { return true }, true)
	fov.RetainCircular(rogrid.Point{0, 0}, maxDepth)
	for _, src := range srcs {
		if !fov.Visible(src) {
			t.Errorf("light source %v should remain visible", src)
		}
	}
}
