package tilegrid

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Recording render context ---

type recordedCall struct {
	op        string
	transform [6]float64
	program   *ShaderProgram
	blend     BlendFunc
	loc       UniformLocation
	vec       [4]float32
	atlas     *TextureAtlas
	count     int
	start     int
	texture   *Texture
	src       image.Rectangle
}

// recordingContext is a RenderContext that records every call in order.
type recordingContext struct {
	calls []recordedCall
}

func (r *recordingContext) SetTransform(m [6]float64) {
	r.calls = append(r.calls, recordedCall{op: "SetTransform", transform: m})
}

func (r *recordingContext) UseProgram(p *ShaderProgram) {
	r.calls = append(r.calls, recordedCall{op: "UseProgram", program: p})
}

func (r *recordingContext) SetBlendFunc(b BlendFunc) {
	r.calls = append(r.calls, recordedCall{op: "SetBlendFunc", blend: b})
}

func (r *recordingContext) Uniform4fv(loc UniformLocation, v [4]float32) {
	r.calls = append(r.calls, recordedCall{op: "Uniform4fv", loc: loc, vec: v})
}

func (r *recordingContext) DrawQuads(a *TextureAtlas, count, start int) {
	r.calls = append(r.calls, recordedCall{op: "DrawQuads", atlas: a, count: count, start: start})
}

func (r *recordingContext) DrawImage(tex *Texture, src image.Rectangle, cs [4]float32) {
	r.calls = append(r.calls, recordedCall{op: "DrawImage", texture: tex, src: src, vec: cs})
}

// ops returns the recorded calls named op.
func (r *recordingContext) ops(op string) []recordedCall {
	var out []recordedCall
	for _, c := range r.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *recordingContext) opNames() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.op
	}
	return names
}

// --- Fixtures ---

// solidImage returns a w×h image filled with c.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func solidTexture(w, h int, c color.RGBA, opts TextureOptions) *Texture {
	return NewTexture(solidImage(w, h, c), opts)
}

// encodePNG returns img encoded as PNG.
func encodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// testShaders returns a shader cache whose compiler succeeds without
// touching the graphics driver.
func testShaders() *ShaderCache {
	c := NewShaderCache()
	c.compile = func([]byte) (*ebiten.Shader, error) { return nil, nil }
	return c
}

func testOptions(b Backend) Options {
	return Options{
		Backend:  b,
		Textures: NewTextureCache(fstest.MapFS{}),
		Shaders:  testShaders(),
	}
}

var bothBackends = []Backend{BackendGPU, BackendSoftware}

// newTestAtlasNode initializes an atlas node over a 64×64 opaque texture.
func newTestAtlasNode(t *testing.T, b Backend, itemW, itemH, n int) (*AtlasNode, *Texture) {
	t.Helper()
	tex := solidTexture(64, 64, color.RGBA{R: 200, G: 100, B: 50, A: 255}, TextureOptions{})
	a, err := NewAtlasNodeWithTexture("atlas", tex, itemW, itemH, n, testOptions(b))
	if err != nil {
		t.Fatalf("NewAtlasNodeWithTexture: %v", err)
	}
	return a, tex
}

func assertRGB(t *testing.T, name string, got, want RGB) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

// assertChannel compares two 8-bit values with a tolerance of 1 to absorb
// float rounding in the compositors.
func assertChannel(t *testing.T, name string, got, want uint8) {
	t.Helper()
	d := int(got) - int(want)
	if d < -1 || d > 1 {
		t.Errorf("%s = %d, want %d (±1)", name, got, want)
	}
}
