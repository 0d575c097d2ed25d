package tilegrid

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Quad is one tile instance: four corners in TL, TR, BL, BR order. Positions
// are in node-local space; SrcX/SrcY are texel coordinates on the atlas
// texture.
type Quad [4]ebiten.Vertex

// NewQuad maps the src texel rectangle onto the dst rectangle with an opaque
// white vertex color.
func NewQuad(dst Rect, src image.Rectangle) Quad {
	x0, y0 := float32(dst.X), float32(dst.Y)
	x1, y1 := float32(dst.X+dst.Width), float32(dst.Y+dst.Height)
	u0, v0 := float32(src.Min.X), float32(src.Min.Y)
	u1, v1 := float32(src.Max.X), float32(src.Max.Y)
	return Quad{
		{DstX: x0, DstY: y0, SrcX: u0, SrcY: v0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x1, DstY: y0, SrcX: u1, SrcY: v0, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x0, DstY: y1, SrcX: u0, SrcY: v1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
		{DstX: x1, DstY: y1, SrcX: u1, SrcY: v1, ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1},
	}
}

// TextureAtlas is a fixed-capacity quad buffer bound to one texture. All quads
// are drawn with a single triangle batch.
//
// Indices are uint32 (DrawTriangles32), so a single atlas is not limited to
// the 16383 quads a uint16 index buffer allows.
type TextureAtlas struct {
	texture    *Texture
	vertices   []ebiten.Vertex // 4 per quad, len = capacity * 4
	indices    []uint32        // 6 per quad, len = capacity * 6
	totalQuads int             // highest written quad index + 1
}

// NewTextureAtlas allocates an atlas for capacity quads bound to texture. The
// atlas retains the texture.
func NewTextureAtlas(texture *Texture, capacity int) (*TextureAtlas, error) {
	if texture == nil {
		return nil, ErrNilTexture
	}
	if capacity < 0 {
		return nil, fmt.Errorf("tilegrid: negative atlas capacity %d", capacity)
	}
	a := &TextureAtlas{texture: texture}
	texture.Retain()
	a.allocate(capacity)
	return a, nil
}

// allocate sizes the vertex and index buffers, keeping existing quads that
// still fit.
func (a *TextureAtlas) allocate(capacity int) {
	verts := make([]ebiten.Vertex, capacity*4)
	copy(verts, a.vertices)
	a.vertices = verts

	a.indices = make([]uint32, capacity*6)
	for i := 0; i < capacity; i++ {
		base := uint32(i * 4)
		// Two triangles: TL-TR-BL, TR-BR-BL
		copy(a.indices[i*6:], []uint32{base + 0, base + 1, base + 2, base + 1, base + 3, base + 2})
	}
	if a.totalQuads > capacity {
		a.totalQuads = capacity
	}
}

// Texture returns the bound texture.
func (a *TextureAtlas) Texture() *Texture { return a.texture }

// SetTexture rebinds the atlas to t, retaining t and releasing the old texture.
func (a *TextureAtlas) SetTexture(t *Texture) {
	if t == a.texture {
		return
	}
	retainTexture(t)
	releaseTexture(a.texture)
	a.texture = t
}

// Capacity returns the number of quads the atlas can hold.
func (a *TextureAtlas) Capacity() int { return len(a.vertices) / 4 }

// TotalQuads returns one past the highest quad index written.
func (a *TextureAtlas) TotalQuads() int { return a.totalQuads }

// UpdateQuad writes q at index.
func (a *TextureAtlas) UpdateQuad(q Quad, index int) error {
	if index < 0 || index >= a.Capacity() {
		return fmt.Errorf("%w: %d (capacity %d)", ErrQuadIndex, index, a.Capacity())
	}
	copy(a.vertices[index*4:index*4+4], q[:])
	if index >= a.totalQuads {
		a.totalQuads = index + 1
	}
	return nil
}

// Quad returns the quad stored at index.
func (a *TextureAtlas) Quad(index int) (Quad, error) {
	var q Quad
	if index < 0 || index >= a.Capacity() {
		return q, fmt.Errorf("%w: %d (capacity %d)", ErrQuadIndex, index, a.Capacity())
	}
	copy(q[:], a.vertices[index*4:index*4+4])
	return q, nil
}

// RemoveAllQuads clears every quad without changing the capacity.
func (a *TextureAtlas) RemoveAllQuads() {
	clear(a.vertices)
	a.totalQuads = 0
}

// ResizeCapacity grows or shrinks the atlas. Quads beyond the new capacity are
// dropped.
func (a *TextureAtlas) ResizeCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("tilegrid: negative atlas capacity %d", capacity)
	}
	if capacity == a.Capacity() {
		return nil
	}
	a.allocate(capacity)
	return nil
}

// quadVertices returns the vertices of count quads starting at start, and the
// matching indices rebased to the returned slice.
func (a *TextureAtlas) quadVertices(start, count int) ([]ebiten.Vertex, []uint32) {
	return a.vertices[start*4 : (start+count)*4], a.indices[:count*6]
}

// DrawNumberOfQuads submits n quads starting at start through ctx. n is
// clamped to the capacity; the draw is issued even when n is zero.
func (a *TextureAtlas) DrawNumberOfQuads(ctx RenderContext, n, start int) {
	capacity := a.Capacity()
	if start < 0 {
		start = 0
	}
	if start > capacity {
		start = capacity
	}
	if n < 0 {
		n = 0
	}
	if start+n > capacity {
		n = capacity - start
	}
	ctx.DrawQuads(a, n, start)
}

// DrawQuads submits every written quad.
func (a *TextureAtlas) DrawQuads(ctx RenderContext) {
	a.DrawNumberOfQuads(ctx, a.totalQuads, 0)
}

// Release drops the atlas's texture reference and frees its buffers.
func (a *TextureAtlas) Release() {
	releaseTexture(a.texture)
	a.texture = nil
	a.vertices = nil
	a.indices = nil
	a.totalQuads = 0
}
