package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tiled"
)

// Images returns a drawable image for every registered tile that has one.
// Spritesheet tiles slice the shared sheet; tiles carrying their own image,
// including every tile of an image collection, load it through the cache.
// Tiles without any image are left out of the result.
func Images(ts *tiled.Tileset, c *Cache) (map[tiled.TileID]*ebiten.Image, error) {
	out := make(map[tiled.TileID]*ebiten.Image, ts.NumTiles())

	var atlas *Atlas
	if ts.Image != nil {
		var err error
		atlas, err = LoadAtlas(ts, c)
		if err != nil {
			return nil, err
		}
	}

	for id, tile := range ts.Tiles() {
		img := tile.Image()
		if img != nil && img != ts.Image {
			var (
				e   *ebiten.Image
				err error
			)
			if img.Trans != nil {
				e, err = c.ImageKeyed(img.Source, *img.Trans)
			} else {
				e, err = c.Image(img.Source)
			}
			if err != nil {
				return nil, err
			}
			out[id] = e
			continue
		}
		if atlas != nil {
			if sub := atlas.Tile(id); sub != nil {
				out[id] = sub
			}
		}
	}
	return out, nil
}
