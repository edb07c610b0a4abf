package kdop

import (
	"testing"

	"github.com/chazu/meshkernel/internal/ipgeom"
)

func cubePositions() []ipgeom.Pos {
	return []ipgeom.Pos{
		{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 0}, {X: 0, Y: 10, Z: 0},
		{X: 0, Y: 0, Z: 10}, {X: 10, Y: 0, Z: 10}, {X: 10, Y: 10, Z: 10}, {X: 0, Y: 10, Z: 10},
	}
}

func TestInitializeFromPositionsPadsConservatively(t *testing.T) {
	for _, k := range []Kind{Kind3, Kind8, Kind9, Kind12} {
		t.Run(string(rune('0'+int(k))), func(t *testing.T) {
			d := New(k)
			pos := cubePositions()
			handles := make([]int, len(pos))
			for i := range handles {
				handles[i] = i
			}
			d.InitializeFromPositions(handles, pos)
			if d.Min[0] >= 0 || d.Max[0] <= 10 {
				t.Errorf("expected x bounds padded beyond [0,10], got [%v,%v]", d.Min[0], d.Max[0])
			}
		})
	}
}

func TestIntersectsNoFalseNegative(t *testing.T) {
	d := New(Kind3)
	pos := cubePositions()
	handles := []int{0, 1, 2, 3, 4, 5, 6, 7}
	d.InitializeFromPositions(handles, pos)

	// plane x=20, inside is x<20: the whole cube is strictly inside,
	// so this plane cannot cut it -- must report false.
	redundant := ipgeom.PlaneFromPosNormal(ipgeom.Pos{X: 20, Y: 0, Z: 0}, ipgeom.Vec{X: 1, Y: 0, Z: 0})
	if d.Intersects(redundant) {
		t.Errorf("expected redundant plane to be skippable")
	}

	// plane x=5 straddles the cube -- must report true.
	straddling := ipgeom.PlaneFromPosNormal(ipgeom.Pos{X: 5, Y: 0, Z: 0}, ipgeom.Vec{X: 1, Y: 0, Z: 0})
	if !d.Intersects(straddling) {
		t.Errorf("expected straddling plane to be reported as possibly cutting")
	}

	// every k-DOP corner must classify strictly negative against a
	// plane the oracle pruned -- check the box corners directly.
	for _, p := range pos {
		if ipgeom.ClassifyPos(p, redundant) >= 0 {
			t.Fatalf("corner %v does not classify negative against pruned plane", p)
		}
	}
}

func TestUpdateWidensWhenWitnessRemoved(t *testing.T) {
	d := New(Kind3)
	pos := cubePositions()
	handles := []int{0, 1, 2, 3, 4, 5, 6, 7}
	d.InitializeFromPositions(handles, pos)

	minXVert := d.MinVert[0]
	alive := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	delete(alive, minXVert)

	d.Update([]int{1, 2}, []ipgeom.Pos{{X: 10, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 0}}, alive)
	if d.Min[0] > -1 {
		t.Errorf("expected conservative widening of min x after witness removal, got %v", d.Min[0])
	}
}
