package tilegrid

// RGB is an 8-bit opaque color. Nodes carry opacity separately from color,
// so RGB never holds an alpha channel.
type RGB struct {
	R, G, B uint8
}

// White is the default node color (no tint).
var White = RGB{255, 255, 255}

// Black is the zero color.
var Black = RGB{}

// Size is a width/height pair, in logical units or pixels depending on the
// accessor that produced it.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeAtlas                     // renders an AtlasNode
	NodeTypeTile                      // renders one tile sampled from a TextureSource
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeAtlas:
		return "atlas"
	case NodeTypeTile:
		return "tile"
	default:
		return "unknown"
	}
}
