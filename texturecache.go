package tilegrid

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ChannelPlanes holds the pixels of a bitmap split into one plane per channel.
// It is the pixel cache the lookup-table tinter reads from.
type ChannelPlanes struct {
	Width, Height int
	R, G, B, A    []uint8
}

// TextureCache loads images from a file system and shares the resulting
// textures by path. The cache holds one reference on every texture it stores.
type TextureCache struct {
	fsys     fs.FS
	textures map[string]*Texture
	colors   map[*image.RGBA]*ChannelPlanes

	// ContentScale is applied to every texture loaded by AddImage.
	// Zero means 1.
	ContentScale float64
}

// NewTextureCache creates a cache reading from fsys. A nil fsys reads from the
// process working directory.
func NewTextureCache(fsys fs.FS) *TextureCache {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	return &TextureCache{
		fsys:     fsys,
		textures: make(map[string]*Texture),
		colors:   make(map[*image.RGBA]*ChannelPlanes),
	}
}

// default cache singleton (no sync.Once: tilegrid is single-threaded)
var defaultTextureCache *TextureCache

// DefaultTextureCache returns the process-wide cache used by nodes created
// without an explicit Options.Textures.
func DefaultTextureCache() *TextureCache {
	if defaultTextureCache == nil {
		defaultTextureCache = NewTextureCache(nil)
	}
	return defaultTextureCache
}

// AddImage returns the texture for path, decoding and caching it on first use.
// Supported formats: PNG, JPEG, GIF, BMP, WebP.
func (c *TextureCache) AddImage(path string) (*Texture, error) {
	if t, ok := c.textures[path]; ok {
		return t, nil
	}
	f, err := c.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("tilegrid: decode texture %q: %w", path, err)
	}
	t := NewTexture(img, TextureOptions{ContentScale: c.ContentScale})
	c.AddTexture(path, t)
	return t, nil
}

// AddTexture stores t under key, replacing (and releasing) any previous entry.
func (c *TextureCache) AddTexture(key string, t *Texture) {
	if t == nil {
		return
	}
	if old, ok := c.textures[key]; ok {
		if old == t {
			return
		}
		c.drop(old)
	}
	t.key = key
	t.Retain()
	c.textures[key] = t
}

// Texture returns the cached texture for key, or nil.
func (c *TextureCache) Texture(key string) *Texture {
	return c.textures[key]
}

// RemoveTexture drops the cache's reference on the texture stored under key.
// Nodes still holding the texture keep it alive.
func (c *TextureCache) RemoveTexture(key string) {
	t, ok := c.textures[key]
	if !ok {
		return
	}
	delete(c.textures, key)
	c.drop(t)
}

// RemoveAll drops every cached texture and channel plane.
func (c *TextureCache) RemoveAll() {
	for key, t := range c.textures {
		delete(c.textures, key)
		c.drop(t)
	}
	clear(c.colors)
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return len(c.textures)
}

func (c *TextureCache) drop(t *Texture) {
	delete(c.colors, t.bitmap)
	t.Release()
}

// TextureColors returns the channel planes of bitmap, computing them on first
// request. Planes are keyed by the bitmap pointer, so they are only valid for
// bitmaps that are never rewritten (original textures, not canvases).
func (c *TextureCache) TextureColors(bitmap *image.RGBA) *ChannelPlanes {
	if bitmap == nil {
		return nil
	}
	if p, ok := c.colors[bitmap]; ok {
		return p
	}
	p := splitChannels(bitmap)
	c.colors[bitmap] = p
	return p
}

// forgetColors evicts the channel planes cached for bitmap.
func (c *TextureCache) forgetColors(bitmap *image.RGBA) {
	delete(c.colors, bitmap)
}

func splitChannels(bitmap *image.RGBA) *ChannelPlanes {
	b := bitmap.Bounds()
	w, h := b.Dx(), b.Dy()
	n := w * h
	p := &ChannelPlanes{
		Width:  w,
		Height: h,
		R:      make([]uint8, n),
		G:      make([]uint8, n),
		B:      make([]uint8, n),
		A:      make([]uint8, n),
	}
	for y := 0; y < h; y++ {
		row := bitmap.Pix[(y)*bitmap.Stride:]
		for x := 0; x < w; x++ {
			i := y*w + x
			px := row[x*4 : x*4+4]
			p.R[i] = px[0]
			p.G[i] = px[1]
			p.B[i] = px[2]
			p.A[i] = px[3]
		}
	}
	return p
}
