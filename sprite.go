package tilegrid

import "image"

// TextureSource is implemented by nodes whose texture and blend state are
// shared with the tiles they own.
type TextureSource interface {
	Texture() *Texture
	BlendFunc() BlendFunc
}

// tileSprite draws one tile of its source's texture. The software backend
// uses it in place of a quad in the texture atlas.
type tileSprite struct {
	node    *Node
	source  TextureSource
	texture *Texture
	src     image.Rectangle // texel rectangle
}

// newTileSprite creates a tile node positioned at (x, y) in its parent.
func newTileSprite(name string, source TextureSource, src image.Rectangle, x, y float64) *Node {
	n := &Node{Name: name, Type: NodeTypeTile, X: x, Y: y}
	nodeDefaults(n)
	t := &tileSprite{node: n, source: source, src: src}
	t.setTexture(source.Texture())
	n.tile = t
	return n
}

func (t *tileSprite) setTexture(tex *Texture) {
	if tex == t.texture {
		return
	}
	retainTexture(tex)
	releaseTexture(t.texture)
	t.texture = tex
}

// Region returns the texel rectangle the tile samples.
func (t *tileSprite) Region() image.Rectangle { return t.src }

func (t *tileSprite) draw(ctx RenderContext) {
	nodeDrawSetup(ctx, t.node, nil)
	ctx.SetBlendFunc(t.source.BlendFunc())
	if t.texture == nil {
		return
	}
	ctx.DrawImage(t.texture, t.src, colorScale(t.node.displayedColor, t.node.displayedOpacity, t.texture.HasPremultipliedAlpha()))
}

func (t *tileSprite) release() {
	releaseTexture(t.texture)
	t.texture = nil
	t.source = nil
}

// refreshTileSprites points every tile child of n at tex.
func refreshTileSprites(n *Node, tex *Texture) {
	for _, child := range n.children {
		if child.tile != nil {
			child.tile.setTexture(tex)
		}
	}
}
