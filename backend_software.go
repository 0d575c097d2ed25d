package tilegrid

// softwareBackend bakes the node color into a tinted copy of the texture on
// the CPU. The node itself issues no quad draws; tiles are drawn by child
// sprites sampling the tinted texture.
type softwareBackend struct {
	original *Texture // untinted source, never rewritten
	current  *Texture // texture the node draws from
	canvas   *Texture // last canvas this backend allocated; the only one it rewrites
	tinter   tinter
}

func (s *softwareBackend) kind() Backend { return BackendSoftware }

func (s *softwareBackend) initWithTexture(a *AtlasNode, tex *Texture, itemW, itemH, itemsToRender int) bool {
	a.itemWidth = itemW
	a.itemHeight = itemH
	a.opacityModifyRGB = true

	if tex == nil {
		Logger().Warn("tilegrid: atlas node has no texture", "node", a.node.Name)
		return false
	}
	retainTexture(tex)
	s.releaseOriginal()
	s.original = tex
	s.setTexture(a, tex)

	s.calculateMaxItems(a)
	a.capacity = itemsToRender
	a.quadsToDraw = itemsToRender

	// A color set before initialization still has to reach the bitmap.
	if a.colorUnmodified != White {
		s.retint(a)
	}
	return true
}

// draw is the generic node draw: the color is already baked into the
// texture, so there is nothing to submit for the node itself.
func (s *softwareBackend) draw(a *AtlasNode, ctx RenderContext) {}

func (s *softwareBackend) setColor(a *AtlasNode, c RGB) {
	if c == a.colorUnmodified {
		return
	}
	a.colorUnmodified = c
	// The opacity-scaled color is not written back to the node; opacity is
	// applied when the tiles are drawn.
	s.retint(a)
}

func (s *softwareBackend) setOpacity(a *AtlasNode, o uint8) {
	a.node.SetOpacity(o)
	if a.opacityModifyRGB {
		a.SetColor(a.colorUnmodified)
	}
}

// retint regenerates the current texture from the original multiplied by
// the unmodified color. The canvas this backend allocated is rewritten in
// place when it is still current and of matching size; any other texture,
// including a canvas set from another node, is replaced by a new canvas.
func (s *softwareBackend) retint(a *AtlasNode) {
	cur := s.current
	if cur == nil || s.original == nil {
		return
	}
	src := s.original.Bitmap()
	if cur == s.canvas && cur.Bitmap().Bounds().Size() == src.Bounds().Size() {
		s.tinter.tint(src, a.colorUnmodified, BorrowedSurface{Bitmap: cur.Bitmap()})
		cur.invalidate()
		return
	}
	out := s.tinter.tint(src, a.colorUnmodified, OwnedSurface{})
	canvas := newCanvasTexture(out, s.original)
	a.SetTexture(canvas)
	s.canvas = canvas
}

func (s *softwareBackend) texture(a *AtlasNode) *Texture { return s.current }

func (s *softwareBackend) setTexture(a *AtlasNode, t *Texture) {
	if t == s.current {
		return
	}
	retainTexture(t)
	releaseTexture(s.current)
	s.current = t
	a.updateBlendFunc()
	refreshTileSprites(a.node, t)
}

func (s *softwareBackend) calculateMaxItems(a *AtlasNode) {
	a.setGeometry(contentSizeGeometry(s.current, a.itemWidth, a.itemHeight))
}

func (s *softwareBackend) displayedChanged(a *AtlasNode) {}

func (s *softwareBackend) release(a *AtlasNode) {
	releaseTexture(s.current)
	s.releaseOriginal()
	s.current = nil
	s.original = nil
	s.canvas = nil
}

// releaseOriginal drops the reference to the untinted source. Once nothing
// holds it, its cached channel planes are evicted.
func (s *softwareBackend) releaseOriginal() {
	o := s.original
	if o == nil {
		return
	}
	o.Release()
	if o.RefCount() == 0 {
		s.tinter.forget(o.Bitmap())
	}
}
