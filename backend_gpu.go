package tilegrid

// gpuBackend draws every tile of the node with one batched quad submission
// through the ShaderPositionTextureUColor program, or its straight variant
// while opacity does not modify RGB. The node's color and opacity reach the
// shader as a single vec4 uniform.
type gpuBackend struct {
	program      *ShaderProgram
	straight     *ShaderProgram
	uniformColor UniformLocation
	colorF32     *[4]float32 // nil until initialized
}

func (g *gpuBackend) kind() Backend { return BackendGPU }

func (g *gpuBackend) initWithTexture(a *AtlasNode, tex *Texture, itemW, itemH, itemsToRender int) bool {
	a.itemWidth = itemW
	a.itemHeight = itemH
	a.colorUnmodified = White
	a.opacityModifyRGB = true
	a.blendFunc = DefaultBlendFunc

	g.updateColor(a)

	ta, err := NewTextureAtlas(tex, itemsToRender)
	if err != nil {
		Logger().Warn("tilegrid: could not initialize texture atlas", "node", a.node.Name, "err", err)
		return false
	}
	a.SetTextureAtlas(ta)

	a.updateBlendFunc()
	a.updateOpacityModifyRGB()
	g.calculateMaxItems(a)
	a.capacity = itemsToRender
	a.quadsToDraw = itemsToRender

	prog, err := a.shaders.ProgramForKey(ShaderPositionTextureUColor)
	if err != nil {
		Logger().Warn("tilegrid: atlas node shader unavailable", "node", a.node.Name, "err", err)
		return false
	}
	straight, err := a.shaders.ProgramForKey(ShaderPositionTextureUColorStraight)
	if err != nil {
		Logger().Warn("tilegrid: atlas node shader unavailable", "node", a.node.Name, "err", err)
		return false
	}
	g.program = prog
	g.straight = straight
	g.uniformColor = prog.UniformLocation(UniformColor)
	return true
}

// programFor returns the program matching the node's opacity-modifies-RGB
// flag. Both declare UniformColor at the same location.
func (g *gpuBackend) programFor(a *AtlasNode) *ShaderProgram {
	if !a.opacityModifyRGB && g.straight != nil {
		return g.straight
	}
	return g.program
}

// updateColor rebuilds the uniform vector from the displayed color and
// opacity.
func (g *gpuBackend) updateColor(a *AtlasNode) {
	v := colorVector(a.node.displayedColor, a.node.displayedOpacity)
	g.colorF32 = &v
}

func (g *gpuBackend) draw(a *AtlasNode, ctx RenderContext) {
	nodeDrawSetup(ctx, a.node, g.programFor(a))
	ctx.SetBlendFunc(a.blendFunc)
	if g.uniformColor.Valid() && g.colorF32 != nil && a.textureAtlas != nil {
		ctx.Uniform4fv(g.uniformColor, *g.colorF32)
		a.textureAtlas.DrawNumberOfQuads(ctx, a.quadsToDraw, 0)
	}
}

func (g *gpuBackend) setColor(a *AtlasNode, c RGB) {
	a.colorUnmodified = c
	// The node keeps the canonical color; opacity is applied in the shader.
	a.node.SetColor(c)
	g.updateColor(a)
}

func (g *gpuBackend) setOpacity(a *AtlasNode, o uint8) {
	a.node.SetOpacity(o)
	if a.opacityModifyRGB {
		a.SetColor(a.colorUnmodified)
		return
	}
	g.updateColor(a)
}

func (g *gpuBackend) texture(a *AtlasNode) *Texture {
	if a.textureAtlas == nil {
		return nil
	}
	return a.textureAtlas.Texture()
}

func (g *gpuBackend) setTexture(a *AtlasNode, t *Texture) {
	if a.textureAtlas == nil {
		return
	}
	a.textureAtlas.SetTexture(t)
	a.updateBlendFunc()
	a.updateOpacityModifyRGB()
}

func (g *gpuBackend) calculateMaxItems(a *AtlasNode) {
	a.setGeometry(contentScaleAwareGeometry(g.texture(a), a.itemWidth, a.itemHeight, a.ignoreContentScale))
}

func (g *gpuBackend) displayedChanged(a *AtlasNode) {
	if g.colorF32 != nil {
		g.updateColor(a)
	}
}

func (g *gpuBackend) release(a *AtlasNode) {
	a.SetTextureAtlas(nil)
	g.program = nil
	g.straight = nil
	g.uniformColor = InvalidUniform
	g.colorF32 = nil
}
