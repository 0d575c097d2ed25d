package tilegrid

// nodeIDCounter is a plain counter (no atomic: tilegrid is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element every drawable hangs off. A single flat
// struct is used for all node types; the type-specific payload is reached
// through the atlas and tile pointers.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	transformDirty bool

	Visible bool
	ZIndex  int

	UserData any

	// Color bookkeeping. real* is what the node was set to; displayed* is the
	// value after cascading from the parent.
	realColor        RGB
	displayedColor   RGB
	realOpacity      uint8
	displayedOpacity uint8
	cascadeColor     bool
	cascadeOpacity   bool

	// Payloads
	atlas *AtlasNode
	tile  *tileSprite

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.realColor = White
	n.displayedColor = White
	n.realOpacity = 255
	n.displayedOpacity = 255
	n.cascadeOpacity = true
	n.worldTransform = identityTransform
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// Atlas returns the atlas node carried by n, or nil.
func (n *Node) Atlas() *AtlasNode { return n.atlas }

// --- Color and opacity ---

// Color returns the node's own color.
func (n *Node) Color() RGB { return n.realColor }

// DisplayedColor returns the color after cascading from the parent.
func (n *Node) DisplayedColor() RGB { return n.displayedColor }

// SetColor sets the node's own color and refreshes the displayed color of
// the node and, when color cascading is enabled, its subtree.
func (n *Node) SetColor(c RGB) {
	n.realColor = c
	parent := White
	if n.Parent != nil && n.Parent.cascadeColor {
		parent = n.Parent.displayedColor
	}
	n.updateDisplayedColor(parent)
}

// Opacity returns the node's own opacity.
func (n *Node) Opacity() uint8 { return n.realOpacity }

// DisplayedOpacity returns the opacity after cascading from the parent.
func (n *Node) DisplayedOpacity() uint8 { return n.displayedOpacity }

// SetOpacity sets the node's own opacity and refreshes the displayed opacity
// of the node and, when opacity cascading is enabled, its subtree.
func (n *Node) SetOpacity(o uint8) {
	n.realOpacity = o
	var parent uint8 = 255
	if n.Parent != nil && n.Parent.cascadeOpacity {
		parent = n.Parent.displayedOpacity
	}
	n.updateDisplayedOpacity(parent)
}

// CascadeColorEnabled reports whether the node's color tints its children.
func (n *Node) CascadeColorEnabled() bool { return n.cascadeColor }

// SetCascadeColorEnabled toggles color cascading. Disabled by default.
func (n *Node) SetCascadeColorEnabled(enabled bool) {
	if n.cascadeColor == enabled {
		return
	}
	n.cascadeColor = enabled
	c := White
	if enabled {
		c = n.displayedColor
	}
	for _, child := range n.children {
		child.updateDisplayedColor(c)
	}
}

// CascadeOpacityEnabled reports whether the node's opacity fades its children.
func (n *Node) CascadeOpacityEnabled() bool { return n.cascadeOpacity }

// SetCascadeOpacityEnabled toggles opacity cascading. Enabled by default.
func (n *Node) SetCascadeOpacityEnabled(enabled bool) {
	if n.cascadeOpacity == enabled {
		return
	}
	n.cascadeOpacity = enabled
	var o uint8 = 255
	if enabled {
		o = n.displayedOpacity
	}
	for _, child := range n.children {
		child.updateDisplayedOpacity(o)
	}
}

func scaleChannel(a, b uint8) uint8 {
	return uint8(uint32(a) * uint32(b) / 255)
}

func (n *Node) updateDisplayedColor(parent RGB) {
	n.displayedColor = RGB{
		R: scaleChannel(n.realColor.R, parent.R),
		G: scaleChannel(n.realColor.G, parent.G),
		B: scaleChannel(n.realColor.B, parent.B),
	}
	if n.atlas != nil {
		n.atlas.backend.displayedChanged(n.atlas)
	}
	if n.cascadeColor {
		for _, child := range n.children {
			child.updateDisplayedColor(n.displayedColor)
		}
	}
}

func (n *Node) updateDisplayedOpacity(parent uint8) {
	n.displayedOpacity = scaleChannel(n.realOpacity, parent)
	if n.atlas != nil {
		n.atlas.backend.displayedChanged(n.atlas)
	}
	if n.cascadeOpacity {
		for _, child := range n.children {
			child.updateDisplayedOpacity(n.displayedOpacity)
		}
	}
}

// refreshDisplayed recomputes the displayed color and opacity of a node that
// was just attached to or detached from a parent.
func (n *Node) refreshDisplayed() {
	c, o := White, uint8(255)
	if p := n.Parent; p != nil {
		if p.cascadeColor {
			c = p.displayedColor
		}
		if p.cascadeOpacity {
			o = p.displayedOpacity
		}
	}
	n.updateDisplayedColor(c)
	n.updateDisplayedOpacity(o)
}

// --- Drawing ---

// draw issues the node's own draw calls. Children are drawn by the traversal.
func (n *Node) draw(ctx RenderContext) {
	switch {
	case n.atlas != nil:
		n.atlas.backend.draw(n.atlas, ctx)
	case n.tile != nil:
		n.tile.draw(ctx)
	}
}

// --- Tree manipulation ---

// AddChild appends child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child before position index. It panics on a nil child,
// an index outside [0, NumChildren], or when child is n or one of its
// ancestors.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("tilegrid: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("tilegrid: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("tilegrid: child index out of range")
	}
	if old := child.Parent; old != nil {
		if i := old.indexOf(child); i >= 0 {
			old.cut(i)
		}
		if old == n {
			index = min(index, len(n.children))
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.Parent = n
	n.parentChanged(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child. It panics if n is not child's parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("tilegrid: child's parent is not this node")
	}
	n.RemoveChildAt(n.indexOf(child))
}

// RemoveChildAt detaches and returns the child at index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("tilegrid: child index out of range")
	}
	child := n.cut(index)
	child.Parent = nil
	n.parentChanged(child)
	return child
}

// parentChanged resets n's sort order and the cached state of a child that
// was just added to or removed from n.
func (n *Node) parentChanged(child *Node) {
	n.childrenSorted = false
	markSubtreeDirty(child)
	child.refreshDisplayed()
}

// RemoveFromParent detaches n. It does nothing for a root.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child without disposing it.
func (n *Node) RemoveChildren() {
	detached := n.children
	n.children = nil
	for _, child := range detached {
		child.Parent = nil
		markSubtreeDirty(child)
		child.refreshDisplayed()
	}
	clear(detached)
	n.children = detached[:0]
	clear(n.sortedChildren)
	n.sortedChildren = n.sortedChildren[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, releases the textures held by
// it and its descendants, and marks them all disposed.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	if n.atlas != nil {
		n.atlas.backend.release(n.atlas)
	}
	if n.tile != nil {
		n.tile.release()
		n.tile = nil
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// cut removes the child at i and returns it. Parent is left untouched.
func (n *Node) cut(i int) *Node {
	child := n.children[i]
	last := len(n.children) - 1
	copy(n.children[i:], n.children[i+1:])
	n.children[last] = nil
	n.children = n.children[:last]
	n.childrenSorted = false
	return child
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
