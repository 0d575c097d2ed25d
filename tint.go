package tilegrid

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/fcolor"
	"golang.org/x/image/draw"
)

// TintMode selects the algorithm the software backend uses to bake a node's
// color into its texture.
type TintMode uint8

const (
	TintAuto     TintMode = iota // resolve to the best supported algorithm
	TintMultiply                 // multiply-blend composite of the bitmap and a solid color
	TintLookup                   // per-channel lookup tables over cached channel planes
)

func (m TintMode) String() string {
	switch m {
	case TintAuto:
		return "auto"
	case TintMultiply:
		return "multiply"
	case TintLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// multiplyBlendSupported reports whether multiply-blend compositing is
// available. bild provides it on every platform; TintLookup remains selectable
// explicitly.
const multiplyBlendSupported = true

func (m TintMode) resolve() TintMode {
	if m != TintAuto {
		return m
	}
	if multiplyBlendSupported {
		return TintMultiply
	}
	return TintLookup
}

// BitmapSurface is the destination of a tint operation: either a fresh bitmap
// the tinter allocates (OwnedSurface) or an existing canvas bitmap rewritten
// in place (BorrowedSurface).
type BitmapSurface interface {
	isBitmapSurface()
}

// OwnedSurface asks the tinter to allocate the destination bitmap.
type OwnedSurface struct{}

// BorrowedSurface rewrites an existing bitmap in place. It must have the same
// size as the source.
type BorrowedSurface struct {
	Bitmap *image.RGBA
}

func (OwnedSurface) isBitmapSurface()    {}
func (BorrowedSurface) isBitmapSurface() {}

// tinter multiplies every pixel of src by c and writes the result to dst.
// forget drops any state kept for src.
type tinter interface {
	tint(src *image.RGBA, c RGB, dst BitmapSurface) *image.RGBA
	forget(src *image.RGBA)
}

func newTinter(mode TintMode, cache *TextureCache) tinter {
	if mode.resolve() == TintLookup {
		return &lookupTinter{cache: cache}
	}
	return multiplyTinter{}
}

// --- multiply-blend composite ---

type multiplyTinter struct{}

func (multiplyTinter) tint(src *image.RGBA, c RGB, dst BitmapSurface) *image.RGBA {
	b := src.Bounds()
	solid := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(solid, solid.Bounds(), image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}), image.Point{}, draw.Src)

	// Multiplying RGB by an opaque color keeps premultiplied and straight
	// channels valid alike, so the source alpha is carried through unchanged.
	// Every channel is rounded like multiplyChannel so both tinters agree.
	out := blend.Blend(src, solid, func(bg, fg fcolor.RGBAF64) fcolor.RGBAF64 {
		return fcolor.RGBAF64{
			R: roundedUnit(bg.R * fg.R),
			G: roundedUnit(bg.G * fg.G),
			B: roundedUnit(bg.B * fg.B),
			A: roundedUnit(bg.A),
		}
	})

	if borrowed, ok := dst.(BorrowedSurface); ok && borrowed.Bitmap != nil {
		draw.Copy(borrowed.Bitmap, borrowed.Bitmap.Bounds().Min, out, out.Bounds(), draw.Src, nil)
		return borrowed.Bitmap
	}
	return out
}

func (multiplyTinter) forget(*image.RGBA) {}

// roundedUnit maps v in [0, 1] to the centre of its nearest 8-bit step, so
// bild's truncating conversion back to bytes yields round(v*255).
func roundedUnit(v float64) float64 {
	return (math.Floor(v*255+0.5) + 0.5) / 255
}

// --- lookup-table fallback ---

type lookupTinter struct {
	cache *TextureCache
}

// tintTables returns one 256-entry table per color channel.
func tintTables(c RGB) (r, g, b [256]uint8) {
	for v := 0; v < 256; v++ {
		r[v] = multiplyChannel(uint8(v), c.R)
		g[v] = multiplyChannel(uint8(v), c.G)
		b[v] = multiplyChannel(uint8(v), c.B)
	}
	return r, g, b
}

func (t *lookupTinter) forget(src *image.RGBA) {
	if t.cache != nil {
		t.cache.forgetColors(src)
	}
}

func (t *lookupTinter) tint(src *image.RGBA, c RGB, dst BitmapSurface) *image.RGBA {
	var planes *ChannelPlanes
	if t.cache != nil {
		planes = t.cache.TextureColors(src)
	} else {
		planes = splitChannels(src)
	}

	var out *image.RGBA
	if borrowed, ok := dst.(BorrowedSurface); ok && borrowed.Bitmap != nil {
		out = borrowed.Bitmap
	} else {
		out = image.NewRGBA(image.Rect(0, 0, planes.Width, planes.Height))
	}

	lr, lg, lb := tintTables(c)
	for y := 0; y < planes.Height; y++ {
		row := out.Pix[y*out.Stride:]
		for x := 0; x < planes.Width; x++ {
			i := y*planes.Width + x
			px := row[x*4 : x*4+4]
			px[0] = lr[planes.R[i]]
			px[1] = lg[planes.G[i]]
			px[2] = lb[planes.B[i]]
			px[3] = planes.A[i]
		}
	}
	return out
}
