// Package render turns resolved tilesets into drawable ebiten images: a
// cache for decoded image files, an Atlas slicing spritesheets into per-tile
// subimages, and per-tile image maps covering both tileset kinds.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"

	"github.com/milk9111/tiled"
)

// Cache loads and decodes images through a tiled.ResourceReader, caching by
// cleaned path. Passing the same reader the tileset loader uses keeps every
// resource resolving through one source.
type Cache struct {
	reader tiled.ResourceReader

	mu     sync.Mutex
	images map[string]*ebiten.Image
}

func NewCache(r tiled.ResourceReader) *Cache {
	if r == nil {
		r = tiled.FileReader{}
	}
	return &Cache{reader: r, images: map[string]*ebiten.Image{}}
}

// Image returns the decoded image at path, reading it at most once.
func (c *Cache) Image(path string) (*ebiten.Image, error) {
	return c.load(path, filepath.Clean(path), nil)
}

// ImageKeyed is Image with a color key applied: pixels matching key decode
// as fully transparent. Keyed variants cache separately from the plain image.
func (c *Cache) ImageKeyed(path string, key color.NRGBA) (*ebiten.Image, error) {
	cacheKey := fmt.Sprintf("%s#%02x%02x%02x", filepath.Clean(path), key.R, key.G, key.B)
	return c.load(path, cacheKey, &key)
}

func (c *Cache) load(path, cacheKey string, key *color.NRGBA) (*ebiten.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if img, ok := c.images[cacheKey]; ok {
		return img, nil
	}

	b, err := c.reader.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load image %s: %w", path, err)
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode image %s: %w", path, err)
	}
	if key != nil {
		im = applyColorKey(im, *key)
	}

	img := ebiten.NewImageFromImage(im)
	c.images[cacheKey] = img
	return img, nil
}
