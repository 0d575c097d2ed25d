package tilegrid

import (
	"errors"
	"image/color"
	"testing"
	"testing/fstest"
)

const digitsTOML = `
name = "digits"
image = "digits.png"
tile_width = 16
tile_height = 16
items = 4
start_char = "0"
`

func TestLoadTileSheetJSON(t *testing.T) {
	s, err := LoadTileSheet([]byte(`{"name":"abc","image":"abc.png","tile_width":8,"tile_height":12,"ignore_content_scale":true}`))
	if err != nil {
		t.Fatalf("LoadTileSheet: %v", err)
	}
	if s.Name != "abc" || s.Image != "abc.png" || s.TileWidth != 8 || s.TileHeight != 12 || !s.IgnoreContentScale {
		t.Errorf("sheet = %+v", s)
	}
	if s.Start() != ' ' {
		t.Errorf("Start = %q, want ' '", s.Start())
	}
}

func TestLoadTileSheetTOML(t *testing.T) {
	s, err := LoadTileSheetTOML([]byte(digitsTOML))
	if err != nil {
		t.Fatalf("LoadTileSheetTOML: %v", err)
	}
	if s.Name != "digits" || s.Items != 4 || s.Start() != '0' {
		t.Errorf("sheet = %+v", s)
	}
}

func TestLoadTileSheetSyntaxErrors(t *testing.T) {
	if _, err := LoadTileSheet([]byte("{")); err == nil {
		t.Error("expected JSON syntax error")
	}
	if _, err := LoadTileSheetTOML([]byte("image = ")); err == nil {
		t.Error("expected TOML syntax error")
	}
}

func TestTileSheetValidate(t *testing.T) {
	tests := []struct {
		name  string
		sheet TileSheet
	}{
		{"missing image", TileSheet{TileWidth: 1, TileHeight: 1}},
		{"zero width", TileSheet{Image: "a.png", TileHeight: 1}},
		{"negative height", TileSheet{Image: "a.png", TileWidth: 1, TileHeight: -1}},
		{"negative items", TileSheet{Image: "a.png", TileWidth: 1, TileHeight: 1, Items: -1}},
		{"long start", TileSheet{Image: "a.png", TileWidth: 1, TileHeight: 1, StartChar: "ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sheet.Validate(); !errors.Is(err, ErrInvalidTileSheet) {
				t.Errorf("Validate = %v, want ErrInvalidTileSheet", err)
			}
		})
	}

	ok := TileSheet{Image: "a.png", TileWidth: 1, TileHeight: 1, StartChar: "é"}
	if err := ok.Validate(); err != nil {
		t.Errorf("single multi-byte rune rejected: %v", err)
	}
}

func TestTileSheetBuildsNodes(t *testing.T) {
	s, err := LoadTileSheetTOML([]byte(digitsTOML))
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions(BackendGPU)
	opts.Textures = NewTextureCache(fstest.MapFS{
		"digits.png": {Data: encodePNG(t, solidImage(64, 16, color.RGBA{A: 255}))},
	})

	a, err := s.NewAtlasNode(opts)
	if err != nil {
		t.Fatalf("NewAtlasNode: %v", err)
	}
	if a.Node().Name != "digits" || a.Capacity() != 4 || a.ItemsPerRow() != 4 {
		t.Errorf("atlas node %q capacity %d row %d", a.Node().Name, a.Capacity(), a.ItemsPerRow())
	}

	c, err := s.NewCharMap("3210", opts)
	if err != nil {
		t.Fatalf("NewCharMap: %v", err)
	}
	q, _ := c.TextureAtlas().Quad(0)
	if q[0].SrcX != 48 {
		t.Errorf("'3' samples x=%v, want 48", q[0].SrcX)
	}
}

func TestTileSheetIgnoreContentScaleOption(t *testing.T) {
	s := TileSheet{IgnoreContentScale: true}
	if !s.options(Options{}).IgnoreContentScale {
		t.Error("sheet flag should set the option")
	}
	s.IgnoreContentScale = false
	if !s.options(Options{IgnoreContentScale: true}).IgnoreContentScale {
		t.Error("sheet should not clear a caller's option")
	}
}
