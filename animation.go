package tilegrid

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 3 values of a node simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenScale, TweenOpacity,
// TweenColor) and call Update(dt) each frame. Values are applied through the
// node's setters, so color and opacity changes keep the atlas state in sync.
// If the target node is disposed, the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	values [3]float32
	count  int
	apply  func(v [3]float32)
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values. If the
// target node has been disposed, Done is set to true and nothing is applied.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

func newTweenGroup(target *Node, from, to []float32, duration float32, fn ease.TweenFunc, apply func([3]float32)) *TweenGroup {
	g := &TweenGroup{count: len(from), target: target, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(from[i], to[i], duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// TweenPosition animates node.X and node.Y to the given coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node,
		[]float32{float32(node.X), float32(node.Y)},
		[]float32{float32(toX), float32(toY)},
		duration, fn, func(v [3]float32) {
			node.SetPosition(float64(v[0]), float64(v[1]))
		})
}

// TweenScale animates node.ScaleX and node.ScaleY to the given values.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node,
		[]float32{float32(node.ScaleX), float32(node.ScaleY)},
		[]float32{float32(toSX), float32(toSY)},
		duration, fn, func(v [3]float32) {
			node.SetScale(float64(v[0]), float64(v[1]))
		})
}

// TweenOpacity animates the atlas node's opacity through SetOpacity.
func TweenOpacity(a *AtlasNode, to uint8, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(a.node,
		[]float32{float32(a.Opacity())},
		[]float32{float32(to)},
		duration, fn, func(v [3]float32) {
			a.SetOpacity(unitToByte(v[0]))
		})
}

// TweenColor animates the atlas node's color through SetColor, starting from
// the color Color reports.
func TweenColor(a *AtlasNode, to RGB, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := a.Color()
	return newTweenGroup(a.node,
		[]float32{float32(from.R), float32(from.G), float32(from.B)},
		[]float32{float32(to.R), float32(to.G), float32(to.B)},
		duration, fn, func(v [3]float32) {
			a.SetColor(RGB{R: unitToByte(v[0]), G: unitToByte(v[1]), B: unitToByte(v[2])})
		})
}
