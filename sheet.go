package tilegrid

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// TileSheet describes a tile texture and how to slice it. It can be loaded
// from JSON or TOML:
//
//	name = "digits"
//	image = "fonts/digits.png"
//	tile_width = 16
//	tile_height = 24
//	start_char = "0"
type TileSheet struct {
	Name               string `json:"name" toml:"name"`
	Image              string `json:"image" toml:"image"`
	TileWidth          int    `json:"tile_width" toml:"tile_width"`
	TileHeight         int    `json:"tile_height" toml:"tile_height"`
	Items              int    `json:"items,omitempty" toml:"items,omitempty"`
	StartChar          string `json:"start_char,omitempty" toml:"start_char,omitempty"`
	IgnoreContentScale bool   `json:"ignore_content_scale,omitempty" toml:"ignore_content_scale,omitempty"`
}

// LoadTileSheet parses a JSON tile sheet descriptor.
func LoadTileSheet(data []byte) (*TileSheet, error) {
	var s TileSheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("tilegrid: parse tile sheet JSON: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadTileSheetTOML parses a TOML tile sheet descriptor.
func LoadTileSheetTOML(data []byte) (*TileSheet, error) {
	var s TileSheet
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("tilegrid: parse tile sheet TOML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the sheet names an image and a positive tile size.
func (s *TileSheet) Validate() error {
	switch {
	case s.Image == "":
		return fmt.Errorf("%w: missing image", ErrInvalidTileSheet)
	case s.TileWidth <= 0 || s.TileHeight <= 0:
		return fmt.Errorf("%w: tile size %dx%d", ErrInvalidTileSheet, s.TileWidth, s.TileHeight)
	case s.Items < 0:
		return fmt.Errorf("%w: negative item count %d", ErrInvalidTileSheet, s.Items)
	case len([]rune(s.StartChar)) > 1:
		return fmt.Errorf("%w: start_char %q is more than one character", ErrInvalidTileSheet, s.StartChar)
	}
	return nil
}

// Start returns the rune mapped to tile 0. Defaults to a space.
func (s *TileSheet) Start() rune {
	for _, r := range s.StartChar {
		return r
	}
	return ' '
}

func (s *TileSheet) options(opts Options) Options {
	if s.IgnoreContentScale {
		opts.IgnoreContentScale = true
	}
	return opts
}

// NewAtlasNode creates an atlas node drawing Items tiles of the sheet.
func (s *TileSheet) NewAtlasNode(opts Options) (*AtlasNode, error) {
	return NewAtlasNodeWithTileFile(s.Name, s.Image, s.TileWidth, s.TileHeight, s.Items, s.options(opts))
}

// NewCharMap creates a char map rendering text with the sheet.
func (s *TileSheet) NewCharMap(text string, opts Options) (*CharMap, error) {
	return NewCharMap(s.Name, text, s.Image, s.TileWidth, s.TileHeight, s.Start(), s.options(opts))
}
