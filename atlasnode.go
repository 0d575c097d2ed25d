package tilegrid

import "fmt"

// Options configures an atlas node. The zero value draws with DefaultBackend,
// TintAuto, and the process-wide texture and shader caches.
type Options struct {
	// Backend selects the rendering strategy. It is fixed for the node's life.
	Backend Backend
	// Tint selects the software retint algorithm. Ignored by BackendGPU.
	Tint TintMode
	// Textures resolves tile files. Nil means DefaultTextureCache().
	Textures *TextureCache
	// Shaders provides the GPU program. Nil means DefaultShaderCache().
	Shaders *ShaderCache
	// IgnoreContentScale measures the texture in pixels instead of logical
	// units when computing the tile grid. GPU backend only: the software grid
	// and its tiles always use logical units.
	IgnoreContentScale bool
}

// AtlasNode draws a grid of equally sized tiles ("items") sampled from one
// shared texture.
//
// Color handling follows the opacity-modifies-RGB contract: while the flag is
// set, Color returns the color last passed to SetColor, never the value
// scaled by opacity.
type AtlasNode struct {
	node    *Node
	backend renderBackend

	textureAtlas *TextureAtlas

	itemsPerRow    int
	itemsPerColumn int
	itemWidth      int
	itemHeight     int
	quadsToDraw    int
	capacity       int

	blendFunc          BlendFunc
	colorUnmodified    RGB
	opacityModifyRGB   bool
	ignoreContentScale bool
	initialized        bool

	textures *TextureCache
	shaders  *ShaderCache

	// updater replaces the default UpdateAtlasValues (see CharMap).
	updater func()
}

// NewAtlasNode creates an uninitialized atlas node. Call InitWithTileFile or
// InitWithTexture before drawing.
func NewAtlasNode(name string, opts Options) *AtlasNode {
	n := &Node{Name: name, Type: NodeTypeAtlas}
	nodeDefaults(n)

	textures := opts.Textures
	if textures == nil {
		textures = DefaultTextureCache()
	}
	shaders := opts.Shaders
	if shaders == nil {
		shaders = DefaultShaderCache()
	}

	a := &AtlasNode{
		node:               n,
		blendFunc:          DefaultBlendFunc,
		colorUnmodified:    White,
		ignoreContentScale: opts.IgnoreContentScale,
		textures:           textures,
		shaders:            shaders,
	}
	a.backend = newRenderBackend(opts.Backend, opts, textures)
	n.atlas = a
	return a
}

// NewAtlasNodeWithTileFile creates a node and initializes it from a texture
// file resolved through the texture cache.
func NewAtlasNodeWithTileFile(name, tile string, itemW, itemH, itemsToRender int, opts Options) (*AtlasNode, error) {
	if tile == "" {
		return nil, ErrEmptyTileFile
	}
	a := NewAtlasNode(name, opts)
	if !a.InitWithTileFile(tile, itemW, itemH, itemsToRender) {
		a.Dispose()
		return nil, fmt.Errorf("%w: atlas node %q from %q", ErrInitFailed, name, tile)
	}
	return a, nil
}

// NewAtlasNodeWithTexture creates a node and initializes it from tex.
func NewAtlasNodeWithTexture(name string, tex *Texture, itemW, itemH, itemsToRender int, opts Options) (*AtlasNode, error) {
	a := NewAtlasNode(name, opts)
	if !a.InitWithTexture(tex, itemW, itemH, itemsToRender) {
		a.Dispose()
		return nil, fmt.Errorf("%w: atlas node %q", ErrInitFailed, name)
	}
	return a, nil
}

// InitWithTileFile loads tile through the texture cache and initializes the
// node with it. Panics if tile is empty. A file that cannot be loaded is
// logged and reported as false.
func (a *AtlasNode) InitWithTileFile(tile string, itemW, itemH, itemsToRender int) bool {
	if tile == "" {
		panic(ErrEmptyTileFile)
	}
	tex, err := a.textures.AddImage(tile)
	if err != nil {
		Logger().Warn("tilegrid: load tile file", "node", a.node.Name, "path", tile, "err", err)
		tex = nil
	}
	return a.InitWithTexture(tex, itemW, itemH, itemsToRender)
}

// InitWithTexture binds tex and sizes the node for itemsToRender tiles of
// itemW x itemH. It returns false, after logging, when the texture is
// missing or the GPU resources cannot be created; the node should then be
// discarded.
func (a *AtlasNode) InitWithTexture(tex *Texture, itemW, itemH, itemsToRender int) bool {
	a.initialized = a.backend.initWithTexture(a, tex, itemW, itemH, itemsToRender)
	return a.initialized
}

// Initialized reports whether the last Init call succeeded.
func (a *AtlasNode) Initialized() bool { return a.initialized }

// Node returns the scene graph node carrying the atlas node.
func (a *AtlasNode) Node() *Node { return a.node }

// Backend returns the rendering strategy chosen at construction.
func (a *AtlasNode) Backend() Backend { return a.backend.kind() }

// Draw issues the node's draw calls through ctx. It never mutates the node.
func (a *AtlasNode) Draw(ctx RenderContext) {
	a.backend.draw(a, ctx)
}

// UpdateAtlasValues rewrites the atlas quads. The base node has nothing to
// write; nodes that lay out tiles, like CharMap, provide their own.
func (a *AtlasNode) UpdateAtlasValues() {
	if a.updater != nil {
		a.updater()
		return
	}
	Logger().Debug("tilegrid: UpdateAtlasValues has no layout for a plain atlas node", "node", a.node.Name)
}

// --- Color and opacity ---

// Color returns the unmodified color while opacity-modifies-RGB is set, and
// the node's own color otherwise.
func (a *AtlasNode) Color() RGB {
	if a.opacityModifyRGB {
		return a.colorUnmodified
	}
	return a.node.Color()
}

// SetColor sets the tint applied to every tile.
func (a *AtlasNode) SetColor(c RGB) {
	a.backend.setColor(a, c)
}

// PremultipliedColor returns the color as drawn: the unmodified color scaled
// by the displayed opacity while opacity-modifies-RGB is set.
func (a *AtlasNode) PremultipliedColor() RGB {
	if a.opacityModifyRGB {
		return opacityScaled(a.colorUnmodified, a.node.displayedOpacity)
	}
	return a.colorUnmodified
}

// Opacity returns the node's own opacity.
func (a *AtlasNode) Opacity() uint8 { return a.node.Opacity() }

// SetOpacity sets the node's opacity.
func (a *AtlasNode) SetOpacity(o uint8) {
	a.backend.setOpacity(a, o)
}

// IsOpacityModifyRGB reports whether opacity also scales the RGB channels.
func (a *AtlasNode) IsOpacityModifyRGB() bool { return a.opacityModifyRGB }

// SetOpacityModifyRGB sets the flag and reapplies the current color under it.
func (a *AtlasNode) SetOpacityModifyRGB(v bool) {
	old := a.Color()
	a.opacityModifyRGB = v
	a.SetColor(old)
}

// --- Blend state ---

// BlendFunc returns the current blend factors.
func (a *AtlasNode) BlendFunc() BlendFunc { return a.blendFunc }

// SetBlendFunc stores b as the node's blend state.
func (a *AtlasNode) SetBlendFunc(b BlendFunc) { a.blendFunc = b }

// SetBlendFactors sets the blend state from a source and destination factor.
func (a *AtlasNode) SetBlendFactors(src, dst BlendFactor) {
	a.blendFunc = BlendFunc{Src: src, Dst: dst}
}

// updateBlendFunc switches to straight-alpha blending for textures that are
// not premultiplied.
func (a *AtlasNode) updateBlendFunc() {
	if t := a.Texture(); t != nil && !t.HasPremultipliedAlpha() {
		a.blendFunc = AlphaBlendFunc
	}
}

func (a *AtlasNode) updateOpacityModifyRGB() {
	if t := a.Texture(); t != nil {
		a.opacityModifyRGB = t.HasPremultipliedAlpha()
	}
}

// --- Texture ---

// Texture returns the texture the node draws from. On the software backend
// this is the tinted copy.
func (a *AtlasNode) Texture() *Texture { return a.backend.texture(a) }

// SetTexture replaces the texture and recomputes the tile grid. The previous
// texture is released, not destroyed; other holders keep it alive.
func (a *AtlasNode) SetTexture(t *Texture) {
	a.backend.setTexture(a, t)
	if a.initialized {
		a.backend.calculateMaxItems(a)
	}
}

// TextureAtlas returns the quad buffer, or nil on the software backend.
func (a *AtlasNode) TextureAtlas() *TextureAtlas { return a.textureAtlas }

// SetTextureAtlas replaces the quad buffer. The node releases the previous
// one.
func (a *AtlasNode) SetTextureAtlas(ta *TextureAtlas) {
	if ta == a.textureAtlas {
		return
	}
	if a.textureAtlas != nil {
		a.textureAtlas.Release()
	}
	a.textureAtlas = ta
}

// --- Geometry ---

// QuadsToDraw returns the number of quads Draw submits.
func (a *AtlasNode) QuadsToDraw() int { return a.quadsToDraw }

// SetQuadsToDraw sets the number of quads Draw submits, clamped to
// [0, Capacity()].
func (a *AtlasNode) SetQuadsToDraw(n int) {
	a.quadsToDraw = max(0, min(n, a.Capacity()))
}

// Capacity returns the number of quads the node can draw.
func (a *AtlasNode) Capacity() int {
	if a.textureAtlas != nil {
		return a.textureAtlas.Capacity()
	}
	return a.capacity
}

// ItemsPerRow returns the number of tile columns in the texture.
func (a *AtlasNode) ItemsPerRow() int { return a.itemsPerRow }

// ItemsPerColumn returns the number of tile rows in the texture.
func (a *AtlasNode) ItemsPerColumn() int { return a.itemsPerColumn }

// ItemWidth returns the tile width in logical units.
func (a *AtlasNode) ItemWidth() int { return a.itemWidth }

// ItemHeight returns the tile height in logical units.
func (a *AtlasNode) ItemHeight() int { return a.itemHeight }

// IgnoresContentScale reports whether the grid is measured in pixels.
func (a *AtlasNode) IgnoresContentScale() bool { return a.ignoreContentScale }

// SetIgnoreContentScale toggles pixel measurement and recomputes the grid.
func (a *AtlasNode) SetIgnoreContentScale(v bool) {
	a.ignoreContentScale = v
	if a.initialized {
		a.backend.calculateMaxItems(a)
	}
}

func (a *AtlasNode) setGeometry(g TileGeometry) {
	a.itemsPerRow = g.ItemsPerRow
	a.itemsPerColumn = g.ItemsPerColumn
}

// Dispose removes the node from the scene and releases its texture and quad
// buffer.
func (a *AtlasNode) Dispose() {
	a.node.Dispose()
}
