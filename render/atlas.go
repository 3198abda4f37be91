package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tiled"
)

// Atlas slices a spritesheet tileset into per-tile subimages. Subimages
// share the sheet's pixels, so slicing is cheap and lazy.
type Atlas struct {
	tileset *tiled.Tileset
	sheet   *ebiten.Image
	tiles   map[tiled.TileID]*ebiten.Image
}

// NewAtlas wraps an already decoded spritesheet.
func NewAtlas(ts *tiled.Tileset, sheet *ebiten.Image) *Atlas {
	return &Atlas{
		tileset: ts,
		sheet:   sheet,
		tiles:   map[tiled.TileID]*ebiten.Image{},
	}
}

// LoadAtlas reads the tileset's spritesheet through the cache and wraps it.
// Tilesets without a shared image (image collections) have no atlas.
func LoadAtlas(ts *tiled.Tileset, c *Cache) (*Atlas, error) {
	if ts.Image == nil {
		return nil, fmt.Errorf("render: tileset %q has no spritesheet image", ts.Name)
	}
	var (
		sheet *ebiten.Image
		err   error
	)
	if ts.Image.Trans != nil {
		sheet, err = c.ImageKeyed(ts.Image.Source, *ts.Image.Trans)
	} else {
		sheet, err = c.Image(ts.Image.Source)
	}
	if err != nil {
		return nil, err
	}
	return NewAtlas(ts, sheet), nil
}

// Tile returns the subimage for id, or nil when the id has no rectangle on
// the sheet.
func (a *Atlas) Tile(id tiled.TileID) *ebiten.Image {
	if img, ok := a.tiles[id]; ok {
		return img
	}
	r, ok := a.tileset.TileRect(id)
	if !ok {
		return nil
	}
	sub := a.sheet.SubImage(r).(*ebiten.Image)
	a.tiles[id] = sub
	return sub
}

// Draw draws tile id onto dst with its top-left corner at (x, y).
func (a *Atlas) Draw(dst *ebiten.Image, id tiled.TileID, x, y float64) {
	img := a.Tile(id)
	if img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(img, op)
}
