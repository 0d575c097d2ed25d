package tilegrid

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchAtlas creates a GPU atlas node with n quads laid out in rows of
// 64 over a 256×256 texture of 16×16 tiles.
func setupBenchAtlas(b *testing.B, n int) (*Scene, *AtlasNode) {
	b.Helper()
	tex := solidTexture(256, 256, color.RGBA{R: 255, G: 255, B: 255, A: 255}, TextureOptions{})
	a, err := NewAtlasNodeWithTexture("bench", tex, 16, 16, n, testOptions(BackendGPU))
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		tile := i % 256
		src := image.Rect(tile%16*16, tile/16*16, tile%16*16+16, tile/16*16+16)
		dst := Rect{X: float64(i%64) * 16, Y: float64(i/64) * 16, Width: 16, Height: 16}
		_ = a.TextureAtlas().UpdateQuad(NewQuad(dst, src), i)
	}
	s := NewScene()
	s.Root().AddChild(a.Node())
	s.Update()
	return s, a
}

func BenchmarkDraw_10000Quads(b *testing.B) {
	s, _ := setupBenchAtlas(b, 10000)
	screen := ebiten.NewImage(1280, 720)
	s.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Draw(screen)
	}
}

func BenchmarkDraw_10000Quads_Moving(b *testing.B) {
	s, a := setupBenchAtlas(b, 10000)
	screen := ebiten.NewImage(1280, 720)
	s.Draw(screen)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.Node().SetPosition(float64(i%100), 0)
		s.Update()
		s.Draw(screen)
	}
}

func BenchmarkSetOpacity_GPU(b *testing.B) {
	_, a := setupBenchAtlas(b, 16)
	a.SetColor(RGB{R: 200, G: 100, B: 50})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		a.SetOpacity(uint8(i))
	}
}

func BenchmarkRetint(b *testing.B) {
	for _, mode := range []TintMode{TintMultiply, TintLookup} {
		b.Run(mode.String(), func(b *testing.B) {
			opts := testOptions(BackendSoftware)
			opts.Tint = mode
			tex := solidTexture(256, 256, color.RGBA{R: 255, G: 255, B: 255, A: 255}, TextureOptions{})
			a, err := NewAtlasNodeWithTexture("bench", tex, 16, 16, 1, opts)
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				a.SetColor(RGB{R: uint8(i), G: 128, B: 255})
			}
		})
	}
}

func BenchmarkCharMapSetString(b *testing.B) {
	for _, backend := range bothBackends {
		b.Run(backend.String(), func(b *testing.B) {
			tex := solidTexture(160, 16, color.RGBA{A: 255}, TextureOptions{})
			c, err := NewCharMapWithTexture("score", "0000000", tex, 16, 16, '0', testOptions(backend))
			if err != nil {
				b.Fatal(err)
			}
			texts := []string{"0012345", "9876543", "5555555"}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.SetString(texts[i%len(texts)])
			}
		})
	}
}
