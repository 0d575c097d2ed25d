package tilegrid

import "math"

// TileGeometry is the grid of same-sized items that fit in a texture.
type TileGeometry struct {
	ItemsPerRow    int
	ItemsPerColumn int
}

// Capacity returns the number of distinct tiles in the grid.
func (g TileGeometry) Capacity() int {
	return g.ItemsPerRow * g.ItemsPerColumn
}

// computeTileGeometry floors the texture extent by the tile extent. A
// non-positive tile extent yields zero along that axis.
func computeTileGeometry(size Size, itemW, itemH int) TileGeometry {
	var g TileGeometry
	if itemW > 0 && size.Width > 0 {
		g.ItemsPerRow = int(math.Floor(size.Width / float64(itemW)))
	}
	if itemH > 0 && size.Height > 0 {
		g.ItemsPerColumn = int(math.Floor(size.Height / float64(itemH)))
	}
	return g
}

// contentScaleAwareGeometry measures the texture in logical units unless
// ignoreContentScale is set, in which case pixel size is used.
func contentScaleAwareGeometry(tex *Texture, itemW, itemH int, ignoreContentScale bool) TileGeometry {
	if tex == nil {
		return TileGeometry{}
	}
	size := tex.ContentSize()
	if ignoreContentScale {
		size = tex.ContentSizeInPixels()
	}
	return computeTileGeometry(size, itemW, itemH)
}

// contentSizeGeometry always measures the texture in logical units.
func contentSizeGeometry(tex *Texture, itemW, itemH int) TileGeometry {
	if tex == nil {
		return TileGeometry{}
	}
	return computeTileGeometry(tex.ContentSize(), itemW, itemH)
}
