package tiled

import (
	"fmt"
	"image"
)

// deriveColumns computes the tile column count of a spritesheet from its
// image width: (imageWidth - margin + spacing) / (tileWidth + spacing),
// truncating toward zero. A result below zero clamps to zero.
func deriveColumns(imageWidth, tileWidth, margin, spacing int) (int, error) {
	if tileWidth+spacing == 0 {
		return 0, fmt.Errorf("tiled: cannot derive columns with zero tilewidth and spacing in <tileset>: %w", ErrMalformedAttributes)
	}
	n := (imageWidth - margin + spacing) / (tileWidth + spacing)
	if n < 0 {
		n = 0
	}
	return n, nil
}

// TileRect returns the pixel rectangle of the tile inside the tileset's
// spritesheet image, honoring margin and spacing. The second result is false
// for collection tilesets and for ids outside [0, TileCount).
func (ts *Tileset) TileRect(id TileID) (image.Rectangle, bool) {
	if ts.Image == nil || ts.Columns <= 0 || int(id) >= ts.TileCount {
		return image.Rectangle{}, false
	}
	col := int(id) % ts.Columns
	row := int(id) / ts.Columns
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight), true
}
