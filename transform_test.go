package tilegrid

import (
	"math"
	"testing"
)

const matrixTolerance = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > matrixTolerance {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > matrixTolerance {
			t.Errorf("%s = %v, want %v (element %d)", name, got, want, i)
			return
		}
	}
}

func TestComputeLocalTransform(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  [6]float64
	}{
		{"zero value", func(*Node) {}, identityTransform},
		{"grid offset", func(n *Node) { n.X, n.Y = 48, 24 }, [6]float64{1, 0, 0, 1, 48, 24}},
		{"tile scale", func(n *Node) { n.ScaleX, n.ScaleY = 0.5, 4 }, [6]float64{0.5, 0, 0, 4, 0, 0}},
		{"quarter turn", func(n *Node) { n.Rotation = math.Pi / 2 }, [6]float64{0, 1, -1, 0, 0, 0}},
		{
			"centered pivot",
			func(n *Node) { n.X, n.Y, n.PivotX, n.PivotY = 64, 64, 8, 12 },
			[6]float64{1, 0, 0, 1, 56, 52},
		},
		{
			"pivot scale and turn",
			func(n *Node) {
				n.X, n.Y = 10, 10
				n.ScaleX, n.ScaleY = 2, 2
				n.PivotX = 4
				n.Rotation = math.Pi
			},
			// pivot moves to -8 after scaling, a half turn flips it to +8.
			[6]float64{-2, 0, 0, -2, 18, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewContainer("grid")
			tt.setup(n)
			assertMatrix(t, "local", computeLocalTransform(n), tt.want)
		})
	}
}

func TestMultiplyAffine(t *testing.T) {
	m := [6]float64{2, 1, 3, 4, 5, 6}
	assertMatrix(t, "identity*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*identity", multiplyAffine(m, identityTransform), m)

	scale := [6]float64{2, 0, 0, 2, 0, 0}
	offset := [6]float64{1, 0, 0, 1, 16, 8}
	assertMatrix(t, "scale*offset", multiplyAffine(scale, offset), [6]float64{2, 0, 0, 2, 32, 16})
	assertMatrix(t, "offset*scale", multiplyAffine(offset, scale), [6]float64{2, 0, 0, 2, 16, 8})
}

func TestInvertAffine(t *testing.T) {
	n := NewContainer("grid")
	n.SetScale(2, 0.5)
	n.SetRotation(math.Pi / 3)
	n.SetPosition(7, -3)
	m := computeLocalTransform(n)
	assertMatrix(t, "m*inverse", multiplyAffine(m, invertAffine(m)), identityTransform)

	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestUpdateWorldTransform(t *testing.T) {
	root := NewContainer("root")
	grid := NewContainer("grid")
	cell := NewContainer("cell")
	root.AddChild(grid)
	grid.AddChild(cell)
	grid.SetPosition(100, 0)
	grid.SetScale(2, 2)
	cell.SetPosition(16, 16)

	updateWorldTransform(root, identityTransform, false)
	assertMatrix(t, "cell", cell.WorldTransform(), [6]float64{2, 0, 0, 2, 132, 32})

	// Fields written directly are only picked up after MarkDirty.
	cell.X = 0
	updateWorldTransform(root, identityTransform, false)
	assertNear(t, "stale cell.tx", cell.worldTransform[4], 132)
	cell.MarkDirty()
	updateWorldTransform(root, identityTransform, false)
	assertNear(t, "fresh cell.tx", cell.worldTransform[4], 100)

	// A moved parent drags clean children along.
	grid.SetPosition(0, 0)
	updateWorldTransform(root, identityTransform, false)
	assertNear(t, "moved cell.tx", cell.worldTransform[4], 0)
	assertNear(t, "moved cell.ty", cell.worldTransform[5], 32)
}

func TestSettersMarkDirty(t *testing.T) {
	n := NewContainer("n")
	setters := map[string]func(){
		"SetPosition": func() { n.SetPosition(1, 2) },
		"SetScale":    func() { n.SetScale(2, 2) },
		"SetRotation": func() { n.SetRotation(1) },
		"SetPivot":    func() { n.SetPivot(3, 3) },
		"MarkDirty":   n.MarkDirty,
	}
	for name, set := range setters {
		n.transformDirty = false
		set()
		if !n.transformDirty {
			t.Errorf("%s did not mark the node dirty", name)
		}
	}
}

func TestWorldLocalConversion(t *testing.T) {
	root := NewContainer("root")
	cell := NewContainer("cell")
	root.AddChild(cell)
	root.SetPosition(100, 50)
	cell.SetPosition(10, 20)
	cell.SetScale(2, 3)
	cell.SetRotation(math.Pi / 6)
	updateWorldTransform(root, identityTransform, false)

	for _, p := range [][2]float64{{0, 0}, {150, 80}, {-32, 7.5}} {
		lx, ly := cell.WorldToLocal(p[0], p[1])
		wx, wy := cell.LocalToWorld(lx, ly)
		assertNear(t, "x", wx, p[0])
		assertNear(t, "y", wy, p[1])
	}
	wx, wy := cell.LocalToWorld(0, 0)
	assertNear(t, "origin x", wx, 110)
	assertNear(t, "origin y", wy, 70)
}
