package tilegrid

import (
	"errors"
	"image/color"
	"io/fs"
	"testing"
	"testing/fstest"
)

func testFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"tiles.png":  {Data: encodePNG(t, solidImage(64, 32, color.RGBA{R: 10, G: 20, B: 30, A: 255}))},
		"broken.png": {Data: []byte("not a png")},
	}
}

func TestTextureCacheAddImage(t *testing.T) {
	c := NewTextureCache(testFS(t))
	tex, err := c.AddImage("tiles.png")
	if err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	if tex.PixelsWide() != 64 || tex.PixelsHigh() != 32 {
		t.Errorf("size = %dx%d, want 64x32", tex.PixelsWide(), tex.PixelsHigh())
	}
	if tex.Key() != "tiles.png" {
		t.Errorf("Key = %q", tex.Key())
	}
	if tex.RefCount() != 1 {
		t.Errorf("RefCount = %d, want 1 (held by cache)", tex.RefCount())
	}

	again, err := c.AddImage("tiles.png")
	if err != nil {
		t.Fatalf("AddImage (cached): %v", err)
	}
	if again != tex {
		t.Error("second AddImage should return the cached texture")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestTextureCacheContentScale(t *testing.T) {
	c := NewTextureCache(testFS(t))
	c.ContentScale = 2
	tex, err := c.AddImage("tiles.png")
	if err != nil {
		t.Fatalf("AddImage: %v", err)
	}
	if got := tex.ContentSize(); got != (Size{32, 16}) {
		t.Errorf("ContentSize = %v, want {32 16}", got)
	}
}

func TestTextureCacheMissingFile(t *testing.T) {
	c := NewTextureCache(testFS(t))
	_, err := c.AddImage("nope.png")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestTextureCacheDecodeError(t *testing.T) {
	c := NewTextureCache(testFS(t))
	if _, err := c.AddImage("broken.png"); err == nil {
		t.Error("expected decode error")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after failed load", c.Len())
	}
}

func TestTextureCacheRemoveKeepsSharedTexture(t *testing.T) {
	c := NewTextureCache(testFS(t))
	tex, _ := c.AddImage("tiles.png")
	tex.Retain() // a node holds it

	c.RemoveTexture("tiles.png")
	if c.Texture("tiles.png") != nil {
		t.Error("texture still cached after RemoveTexture")
	}
	if tex.RefCount() != 1 {
		t.Errorf("RefCount = %d, want 1 (node reference survives)", tex.RefCount())
	}
}

func TestTextureCacheAddTextureReplaces(t *testing.T) {
	c := NewTextureCache(fstest.MapFS{})
	a := solidTexture(2, 2, color.RGBA{A: 255}, TextureOptions{})
	b := solidTexture(2, 2, color.RGBA{A: 255}, TextureOptions{})
	c.AddTexture("k", a)
	c.AddTexture("k", a) // same texture, no double retain
	if a.RefCount() != 1 {
		t.Fatalf("RefCount = %d, want 1", a.RefCount())
	}
	c.AddTexture("k", b)
	if a.RefCount() != 0 || b.RefCount() != 1 {
		t.Errorf("refs a=%d b=%d, want 0 and 1", a.RefCount(), b.RefCount())
	}
	if c.Texture("k") != b || b.Key() != "k" {
		t.Error("replacement not stored under key")
	}
}

func TestTextureCacheRemoveAll(t *testing.T) {
	c := NewTextureCache(testFS(t))
	tex, _ := c.AddImage("tiles.png")
	c.TextureColors(tex.Bitmap())
	c.RemoveAll()
	if c.Len() != 0 || len(c.colors) != 0 {
		t.Errorf("Len = %d, colors = %d, want both empty", c.Len(), len(c.colors))
	}
}

func TestTextureColorsCachedPerBitmap(t *testing.T) {
	c := NewTextureCache(fstest.MapFS{})
	img := solidImage(3, 2, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	p := c.TextureColors(img)
	if p.Width != 3 || p.Height != 2 || len(p.R) != 6 {
		t.Fatalf("planes = %dx%d (%d), want 3x2 (6)", p.Width, p.Height, len(p.R))
	}
	if p.R[5] != 1 || p.G[5] != 2 || p.B[5] != 3 || p.A[5] != 4 {
		t.Errorf("plane values = %d %d %d %d", p.R[5], p.G[5], p.B[5], p.A[5])
	}
	if c.TextureColors(img) != p {
		t.Error("TextureColors should return the cached planes")
	}
	if c.TextureColors(nil) != nil {
		t.Error("TextureColors(nil) should be nil")
	}
}
