package tilegrid

import (
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

// TextureOptions configures NewTexture. The zero value is a premultiplied
// texture at content scale 1.
type TextureOptions struct {
	// ContentScale is the number of pixels per logical unit. Zero means 1.
	ContentScale float64
	// StraightAlpha keeps the asset's channels un-premultiplied. Atlas nodes
	// switch to AlphaBlendFunc and disable opacity-modifies-RGB for such
	// textures.
	StraightAlpha bool
}

// Texture is a shared, reference-counted image handle. It keeps a CPU bitmap
// (origin at 0,0) and uploads its bytes unchanged to an *ebiten.Image on first
// use. The bitmap is premultiplied unless HasPremultipliedAlpha reports false,
// in which case Pix holds straight RGBA despite the *image.RGBA container.
//
// Textures are shared by reference: the cache, atlases and nodes each hold a
// reference via Retain and give it up via Release. No holder may assume it is
// the sole owner. The GPU image is deallocated when the count drops to zero.
type Texture struct {
	key    string
	bitmap *image.RGBA
	image  *ebiten.Image

	imageDirty    bool
	contentScale  float64
	premultiplied bool
	canvas        bool // bitmap is a tint target that may be rewritten in place
	refs          int  // plain counter (no atomic: single-threaded)
}

// NewTexture copies img into a bitmap and returns a texture with a reference
// count of zero. Callers that keep the texture call Retain.
func NewTexture(img image.Image, opts TextureOptions) *Texture {
	scale := opts.ContentScale
	if scale <= 0 {
		scale = 1
	}
	var bitmap *image.RGBA
	if opts.StraightAlpha {
		bitmap = straightBitmap(img)
	} else {
		bitmap = clone.AsRGBA(img)
		// The copy is freshly allocated, so its pixels start at Pix[0]
		// whatever the source bounds were; rebase to the origin.
		bitmap.Rect = image.Rect(0, 0, bitmap.Rect.Dx(), bitmap.Rect.Dy())
	}
	return &Texture{
		bitmap:        bitmap,
		contentScale:  scale,
		premultiplied: !opts.StraightAlpha,
	}
}

// straightBitmap copies img as non-premultiplied RGBA and stores the bytes in
// an *image.RGBA so the rest of the pipeline handles one bitmap type.
func straightBitmap(img image.Image) *image.RGBA {
	b := img.Bounds()
	n := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(n, n.Bounds(), img, b.Min, draw.Src)
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}

// newCanvasTexture wraps a bitmap produced by tinting. The bitmap is owned by
// the texture and may be rewritten through a BorrowedSurface.
func newCanvasTexture(bitmap *image.RGBA, like *Texture) *Texture {
	return &Texture{
		key:           like.key,
		bitmap:        bitmap,
		contentScale:  like.contentScale,
		premultiplied: like.premultiplied,
		canvas:        true,
	}
}

// Key returns the cache key the texture was loaded under, or "".
func (t *Texture) Key() string { return t.key }

// Bitmap returns the CPU-side pixels. The returned image MUST NOT be mutated
// unless the texture is a canvas.
func (t *Texture) Bitmap() *image.RGBA { return t.bitmap }

// PixelsWide returns the bitmap width in pixels.
func (t *Texture) PixelsWide() int { return t.bitmap.Bounds().Dx() }

// PixelsHigh returns the bitmap height in pixels.
func (t *Texture) PixelsHigh() int { return t.bitmap.Bounds().Dy() }

// ContentScale returns the number of pixels per logical unit.
func (t *Texture) ContentScale() float64 { return t.contentScale }

// ContentSizeInPixels returns the bitmap size in pixels.
func (t *Texture) ContentSizeInPixels() Size {
	return Size{float64(t.PixelsWide()), float64(t.PixelsHigh())}
}

// ContentSize returns the texture size in logical units.
func (t *Texture) ContentSize() Size {
	return Size{
		Width:  float64(t.PixelsWide()) / t.contentScale,
		Height: float64(t.PixelsHigh()) / t.contentScale,
	}
}

// HasPremultipliedAlpha reports whether the bitmap holds premultiplied alpha.
func (t *Texture) HasPremultipliedAlpha() bool { return t.premultiplied }

// IsCanvas reports whether the texture's bitmap may be rewritten in place.
func (t *Texture) IsCanvas() bool { return t.canvas }

// Image returns the GPU image, uploading the bitmap on first use and after
// the bitmap was rewritten.
func (t *Texture) Image() *ebiten.Image {
	if t.image == nil {
		t.image = ebiten.NewImageFromImage(t.bitmap)
		t.imageDirty = false
		return t.image
	}
	if t.imageDirty {
		t.image.WritePixels(t.bitmap.Pix)
		t.imageDirty = false
	}
	return t.image
}

// invalidate marks the GPU copy stale after the bitmap was rewritten.
func (t *Texture) invalidate() {
	t.imageDirty = true
}

// Retain adds a reference.
func (t *Texture) Retain() {
	t.refs++
}

// Release drops a reference. When the count reaches zero the GPU image is
// deallocated; the CPU bitmap stays valid so the texture can be uploaded again.
func (t *Texture) Release() {
	if t.refs > 0 {
		t.refs--
	}
	if t.refs == 0 && t.image != nil {
		t.image.Deallocate()
		t.image = nil
	}
}

// RefCount returns the current number of references.
func (t *Texture) RefCount() int { return t.refs }

// retainTexture and releaseTexture are nil-safe helpers for holders that swap
// texture references.
func retainTexture(t *Texture) {
	if t != nil {
		t.Retain()
	}
}

func releaseTexture(t *Texture) {
	if t != nil {
		t.Release()
	}
}
