package tilegrid

import (
	"fmt"
	"os"
	"time"
)

// globalDebug enables tree sanity checks. Set by Scene.SetDebugMode.
var globalDebug bool

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	renderTime time.Duration
	nodes      int
	drawCalls  int
	quads      int
}

// debugLog prints timing and draw-call stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilegrid] update: %v | render: %v | total: %v\n",
		stats.updateTime, stats.renderTime, stats.updateTime+stats.renderTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[tilegrid] nodes: %d | draw calls: %d | quads: %d\n",
		stats.nodes, stats.drawCalls, stats.quads)
}

// debugCheckDisposed panics when a disposed node is used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("tilegrid debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[tilegrid] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns on stderr if a node has too many children.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[tilegrid] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
