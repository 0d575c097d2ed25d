package tilegrid

import (
	"fmt"
	"image"
	"strconv"
)

// CharMap renders a string with one tile per rune. Rune r uses the tile at
// index r - startChar, counting left to right, top to bottom. Runes outside
// the tile grid render as empty tiles.
type CharMap struct {
	*AtlasNode
	text      string
	startChar rune
}

// NewCharMap creates a char map from a tile file resolved through the texture
// cache.
func NewCharMap(name, text, tile string, itemW, itemH int, startChar rune, opts Options) (*CharMap, error) {
	if tile == "" {
		return nil, ErrEmptyTileFile
	}
	c := newCharMap(name, text, startChar, opts)
	if !c.InitWithTileFile(tile, itemW, itemH, len([]rune(text))) {
		c.Dispose()
		return nil, fmt.Errorf("%w: char map %q from %q", ErrInitFailed, name, tile)
	}
	c.UpdateAtlasValues()
	return c, nil
}

// NewCharMapWithTexture creates a char map drawing from tex.
func NewCharMapWithTexture(name, text string, tex *Texture, itemW, itemH int, startChar rune, opts Options) (*CharMap, error) {
	c := newCharMap(name, text, startChar, opts)
	if !c.InitWithTexture(tex, itemW, itemH, len([]rune(text))) {
		c.Dispose()
		return nil, fmt.Errorf("%w: char map %q", ErrInitFailed, name)
	}
	c.UpdateAtlasValues()
	return c, nil
}

func newCharMap(name, text string, startChar rune, opts Options) *CharMap {
	c := &CharMap{
		AtlasNode: NewAtlasNode(name, opts),
		text:      text,
		startChar: startChar,
	}
	c.updater = c.updateAtlasValues
	return c
}

// String returns the rendered text.
func (c *CharMap) String() string { return c.text }

// StartChar returns the rune mapped to tile 0.
func (c *CharMap) StartChar() rune { return c.startChar }

// SetString replaces the rendered text and rebuilds the tiles.
func (c *CharMap) SetString(s string) {
	if s == c.text {
		return
	}
	c.text = s
	c.UpdateAtlasValues()
}

// ContentSize returns the size of the rendered text in logical units.
func (c *CharMap) ContentSize() Size {
	n := len([]rune(c.text))
	return Size{Width: float64(n * c.itemWidth), Height: float64(c.itemHeight)}
}

// tileRect returns the texel rectangle for rune r, or false when r has no
// tile in the grid.
func (c *CharMap) tileRect(r rune, tex *Texture) (image.Rectangle, bool) {
	idx := int(r - c.startChar)
	if idx < 0 || c.itemsPerRow <= 0 || idx >= c.itemsPerRow*c.itemsPerColumn {
		return image.Rectangle{}, false
	}
	scale := c.texelScale(tex)
	w := int(float64(c.itemWidth) * scale)
	h := int(float64(c.itemHeight) * scale)
	col, row := idx%c.itemsPerRow, idx/c.itemsPerRow
	return image.Rect(col*w, row*h, col*w+w, row*h+h), true
}

// texelScale returns the texels per logical unit used to slice the tiles. It
// matches the grid: the GPU grid honours ignore-content-scale, the software
// grid is always measured in logical units.
func (c *CharMap) texelScale(tex *Texture) float64 {
	if c.ignoreContentScale && c.textureAtlas != nil {
		return 1
	}
	return tex.ContentScale()
}

func (c *CharMap) updateAtlasValues() {
	tex := c.Texture()
	if tex == nil {
		return
	}
	runes := []rune(c.text)
	if c.textureAtlas != nil {
		c.updateQuads(runes, tex)
	} else {
		c.updateTiles(runes, tex)
	}
}

func (c *CharMap) updateQuads(runes []rune, tex *Texture) {
	ta := c.textureAtlas
	if len(runes) > ta.Capacity() {
		if err := ta.ResizeCapacity(len(runes)); err != nil {
			Logger().Warn("tilegrid: resize char map atlas", "node", c.node.Name, "err", err)
			return
		}
	}
	ta.RemoveAllQuads()
	w, h := float64(c.itemWidth), float64(c.itemHeight)
	for i, r := range runes {
		var q Quad
		if src, ok := c.tileRect(r, tex); ok {
			q = NewQuad(Rect{X: float64(i) * w, Y: 0, Width: w, Height: h}, src)
		}
		if err := ta.UpdateQuad(q, i); err != nil {
			Logger().Warn("tilegrid: update char map quad", "node", c.node.Name, "index", i, "err", err)
			c.quadsToDraw = i
			return
		}
	}
	c.quadsToDraw = len(runes)
}

func (c *CharMap) updateTiles(runes []rune, tex *Texture) {
	var stale []*Node
	for _, child := range c.node.children {
		if child.tile != nil {
			stale = append(stale, child)
		}
	}
	for _, n := range stale {
		n.Dispose()
	}

	inv := 1 / c.texelScale(tex)
	for i, r := range runes {
		src, ok := c.tileRect(r, tex)
		if !ok {
			continue
		}
		tile := newTileSprite(c.node.Name+"/"+strconv.Itoa(i), c, src, float64(i*c.itemWidth), 0)
		tile.SetScale(inv, inv)
		c.node.AddChild(tile)
	}
	c.capacity = max(c.capacity, len(runes))
	c.quadsToDraw = len(runes)
}
