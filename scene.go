package tilegrid

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene owns the node tree and draws it. Each frame call Update, then Draw
// (or Render with a custom RenderContext).
type Scene struct {
	root  *Node
	ctx   *EbitenContext
	debug bool
	stats debugStats

	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots" in the working directory.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{root: NewContainer("root")}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes the world transforms of every dirty node.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	updateWorldTransform(s.root, identityTransform, false)
	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
}

// Draw renders the tree into screen through a reused EbitenContext.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ctx == nil {
		s.ctx = NewEbitenContext(screen)
	} else {
		s.ctx.Reset(screen)
	}

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	nodes := s.Render(s.ctx)
	if s.debug {
		s.stats.renderTime = time.Since(t0)
		s.stats.nodes = nodes
		s.stats.drawCalls = s.ctx.DrawCalls()
		s.stats.quads = s.ctx.Quads()
		s.debugLog(s.stats)
	}
	s.flushScreenshots(screen)
}

// Render draws every visible node depth first, children in ZIndex order
// (ties keep insertion order), and returns the number of nodes drawn.
func (s *Scene) Render(ctx RenderContext) int {
	return s.traverse(s.root, ctx)
}

func (s *Scene) traverse(n *Node, ctx RenderContext) int {
	if !n.Visible || n.disposed {
		return 0
	}
	n.draw(ctx)
	drawn := 1

	if !n.childrenSorted {
		n.sortedChildren = sortByZIndex(n.sortedChildren, n.children)
		n.childrenSorted = true
	}
	children := n.children
	if len(n.sortedChildren) == len(n.children) {
		children = n.sortedChildren
	}
	for _, child := range children {
		drawn += s.traverse(child, ctx)
	}
	return drawn
}

// sortByZIndex copies src into dst, reusing dst's storage, and orders it by
// ZIndex. Equal ZIndex values keep their src order.
func sortByZIndex(dst, src []*Node) []*Node {
	dst = append(dst[:0], src...)
	for i := 1; i < len(dst); i++ {
		n := dst[i]
		j := i
		for ; j > 0 && dst[j-1].ZIndex > n.ZIndex; j-- {
			dst[j] = dst[j-1]
		}
		dst[j] = n
	}
	return dst
}

// SetDebugMode enables or disables debug mode. When enabled, tree operations
// on disposed nodes panic, depth and child count warnings are printed, and
// per-frame stats are logged to stderr.
//
// globalDebug mirrors the most recent call, so with several scenes the last
// one wins.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}
