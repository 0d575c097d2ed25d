package tilegrid

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderContext receives the state changes and draw calls issued by nodes.
// It is always passed explicitly to Draw; there is no global current context.
type RenderContext interface {
	// SetTransform sets the node-to-target affine matrix [a, b, c, d, tx, ty]
	// applied to subsequent draws.
	SetTransform(m [6]float64)
	// UseProgram binds the shader program used by DrawQuads. nil unbinds it.
	UseProgram(p *ShaderProgram)
	// SetBlendFunc sets the blend factors for subsequent draws.
	SetBlendFunc(b BlendFunc)
	// Uniform4fv uploads a vec4 to the bound program.
	Uniform4fv(loc UniformLocation, v [4]float32)
	// DrawQuads submits count quads of atlas starting at start.
	DrawQuads(atlas *TextureAtlas, count, start int)
	// DrawImage draws the src rectangle of tex with each channel multiplied
	// by the matching entry of colorScale.
	DrawImage(tex *Texture, src image.Rectangle, colorScale [4]float32)
}

// nodeDrawSetup binds the node's world transform and program.
func nodeDrawSetup(ctx RenderContext, n *Node, p *ShaderProgram) {
	ctx.UseProgram(p)
	ctx.SetTransform(n.worldTransform)
}

// EbitenContext is the RenderContext that draws into an *ebiten.Image.
// Vertices are transformed on the CPU into a reused scratch buffer.
type EbitenContext struct {
	target    *ebiten.Image
	transform [6]float64
	program   *ShaderProgram
	blend     BlendFunc
	uniforms  map[string]any

	scratch []ebiten.Vertex
	triOp   ebiten.DrawTrianglesOptions
	shadOp  ebiten.DrawTrianglesShaderOptions
	imgOp   ebiten.DrawImageOptions

	drawCalls int
	quads     int
}

// NewEbitenContext creates a context drawing into target.
func NewEbitenContext(target *ebiten.Image) *EbitenContext {
	c := &EbitenContext{uniforms: make(map[string]any, 1)}
	c.Reset(target)
	return c
}

// Reset retargets the context and restores default state. Buffers are kept.
func (c *EbitenContext) Reset(target *ebiten.Image) {
	c.target = target
	c.transform = identityTransform
	c.program = nil
	c.blend = DefaultBlendFunc
	clear(c.uniforms)
	c.drawCalls = 0
	c.quads = 0
}

// DrawCalls returns the number of draw calls submitted since the last Reset.
func (c *EbitenContext) DrawCalls() int { return c.drawCalls }

// Quads returns the number of quads submitted since the last Reset.
func (c *EbitenContext) Quads() int { return c.quads }

func (c *EbitenContext) SetTransform(m [6]float64) { c.transform = m }

func (c *EbitenContext) UseProgram(p *ShaderProgram) {
	if p != c.program {
		clear(c.uniforms)
	}
	c.program = p
}

func (c *EbitenContext) SetBlendFunc(b BlendFunc) { c.blend = b }

func (c *EbitenContext) Uniform4fv(loc UniformLocation, v [4]float32) {
	if c.program == nil {
		return
	}
	name, ok := c.program.uniformName(loc)
	if !ok {
		return
	}
	c.uniforms[name] = []float32{v[0], v[1], v[2], v[3]}
}

func (c *EbitenContext) DrawQuads(atlas *TextureAtlas, count, start int) {
	if c.target == nil || atlas == nil || atlas.texture == nil || count <= 0 {
		return
	}
	src, inds := atlas.quadVertices(start, count)
	dst := c.transformVertices(src)
	img := atlas.texture.Image()

	if c.program != nil && c.program.shader != nil {
		c.shadOp.Blend = c.blend.EbitenBlend()
		c.shadOp.Uniforms = c.uniforms
		c.shadOp.Images[0] = img
		c.target.DrawTrianglesShader32(dst, inds, c.program.shader, &c.shadOp)
	} else {
		c.triOp.Blend = c.blend.EbitenBlend()
		c.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		c.target.DrawTriangles32(dst, inds, img, &c.triOp)
	}
	c.drawCalls++
	c.quads += count
}

func (c *EbitenContext) DrawImage(tex *Texture, src image.Rectangle, colorScale [4]float32) {
	if c.target == nil || tex == nil || src.Empty() {
		return
	}
	sub := tex.Image().SubImage(src).(*ebiten.Image)

	m := c.transform
	c.imgOp.GeoM.Reset()
	c.imgOp.GeoM.SetElement(0, 0, m[0])
	c.imgOp.GeoM.SetElement(1, 0, m[1])
	c.imgOp.GeoM.SetElement(0, 1, m[2])
	c.imgOp.GeoM.SetElement(1, 1, m[3])
	c.imgOp.GeoM.SetElement(0, 2, m[4])
	c.imgOp.GeoM.SetElement(1, 2, m[5])
	c.imgOp.ColorScale.Reset()
	c.imgOp.ColorScale.Scale(colorScale[0], colorScale[1], colorScale[2], colorScale[3])
	c.imgOp.Blend = c.blend.EbitenBlend()

	c.target.DrawImage(sub, &c.imgOp)
	c.drawCalls++
	c.quads++
}

// transformVertices applies the current transform to src, writing into the
// scratch buffer. src is never modified.
func (c *EbitenContext) transformVertices(src []ebiten.Vertex) []ebiten.Vertex {
	if cap(c.scratch) < len(src) {
		c.scratch = make([]ebiten.Vertex, len(src))
	}
	dst := c.scratch[:len(src)]
	a, b, cc, d, tx, ty := c.transform[0], c.transform[1], c.transform[2], c.transform[3], c.transform[4], c.transform[5]
	for i := range src {
		v := src[i]
		x, y := float64(v.DstX), float64(v.DstY)
		v.DstX = float32(a*x + cc*y + tx)
		v.DstY = float32(b*x + d*y + ty)
		dst[i] = v
	}
	return dst
}
