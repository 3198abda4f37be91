// Package tiled resolves Tiled tileset documents into validated, queryable
// in-memory models. A tileset is either a spritesheet, where every tile is a
// cell of one shared grid image, or a collection, where every tile carries
// its own image. Reading map documents is out of scope except for the
// <tileset> element a map embeds or references; ResolveReference handles
// that entry point.
package tiled

import (
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"maps"
	"path/filepath"
	"slices"
)

// Tileset is a resolved tileset document. It is immutable once built: a
// failed parse never exposes a partial Tileset.
type Tileset struct {
	Name       string
	TileWidth  int
	TileHeight int

	// Spacing and Margin are the pixel gaps between grid cells and around
	// the grid's edge in the spritesheet image.
	Spacing int
	Margin  int

	// TileCount is the declared number of tiles. For spritesheet tilesets
	// the registry is dense over [0, TileCount); for collection tilesets the
	// count is informational and registered ids may fall outside it.
	TileCount int

	// Columns is the spritesheet grid's column count, explicit or derived
	// from the image width.
	Columns int

	// Image is the shared spritesheet image; nil for collection tilesets.
	Image *Image

	Properties Properties

	tiles map[TileID]*TileData
}

// Tile returns the registered tile with the given local id, composed with
// the tileset's context. The second result is false when the id is not
// registered.
func (ts *Tileset) Tile(id TileID) (Tile, bool) {
	data, ok := ts.tiles[id]
	if !ok {
		return Tile{}, false
	}
	return Tile{id: id, ts: ts, data: data}, true
}

// Tiles iterates over every registered tile exactly once, in no particular
// order. Use TileIDs for a deterministic order.
func (ts *Tileset) Tiles() iter.Seq2[TileID, Tile] {
	return func(yield func(TileID, Tile) bool) {
		for id, data := range ts.tiles {
			if !yield(id, Tile{id: id, ts: ts, data: data}) {
				return
			}
		}
	}
}

// TileIDs returns every registered tile id in ascending order.
func (ts *Tileset) TileIDs() []TileID {
	return slices.Sorted(maps.Keys(ts.tiles))
}

// NumTiles returns the registry size: the number of ids Tiles will yield.
func (ts *Tileset) NumTiles() int { return len(ts.tiles) }

// tilesetHeader stages validated <tileset> attributes until the element's
// children have been consumed and the Tileset can be built.
type tilesetHeader struct {
	name       string
	tileWidth  int
	tileHeight int
	spacing    int
	margin     int
	tileCount  int
	columns    int
	hasColumns bool
	dir        string
}

// scanTilesetHeader reads the embedded-form attribute set: tilecount,
// tilewidth and tileheight required, the rest optional. Failures accumulate
// in s for the caller's Err check.
func scanTilesetHeader(s *attrScanner) tilesetHeader {
	h := tilesetHeader{
		name:       s.OptString("name", ""),
		tileWidth:  s.Uint("tilewidth"),
		tileHeight: s.Uint("tileheight"),
		tileCount:  s.Uint("tilecount"),
		spacing:    s.OptUint("spacing", 0),
		margin:     s.OptUint("margin", 0),
	}
	h.columns, h.hasColumns = s.OptUintOK("columns")
	return h
}

// ParseTileset reads a standalone tileset document. path is the document's
// own path; image sources inside the document resolve relative to its
// directory.
func ParseTileset(r io.Reader, path string) (*Tileset, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("tiled: read tileset %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "tileset" {
			return nil, fmt.Errorf("tiled: %s: unexpected root element <%s>", path, start.Name.Local)
		}
		return parseTileset(dec, start, path)
	}
}

// parseTileset consumes a <tileset> element of a standalone document, where
// no firstgid is expected.
func parseTileset(dec *xml.Decoder, start xml.StartElement, path string) (*Tileset, error) {
	s := scanAttrs(start)
	h := scanTilesetHeader(s)
	if err := s.Err("a tilecount, tilewidth, and tileheight"); err != nil {
		return nil, err
	}
	dir, err := parentDir(path)
	if err != nil {
		return nil, err
	}
	h.dir = dir
	return parseTilesetBody(dec, h)
}

// parseTilesetBody consumes the element's children in document order, then
// resolves columns and synthesizes default registry entries for spritesheet
// tilesets.
func parseTilesetBody(dec *xml.Decoder, h tilesetHeader) (*Tileset, error) {
	ts := &Tileset{
		Name:       h.name,
		TileWidth:  h.tileWidth,
		TileHeight: h.tileHeight,
		Spacing:    h.spacing,
		Margin:     h.margin,
		TileCount:  h.tileCount,
		tiles:      make(map[TileID]*TileData),
	}

	err := forEachChild(dec, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "image":
			img, err := parseImage(dec, child, h.dir)
			if err != nil {
				return err
			}
			ts.Image = img
		case "properties":
			props, err := parseProperties(dec, child)
			if err != nil {
				return err
			}
			ts.Properties = props
		case "tile":
			id, data, err := parseTile(dec, child, h.dir)
			if err != nil {
				return err
			}
			// A repeated id replaces the earlier declaration.
			ts.tiles[id] = data
		default:
			return dec.Skip()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case h.hasColumns:
		ts.Columns = h.columns
	case ts.Image != nil:
		cols, err := deriveColumns(ts.Image.Width, ts.TileWidth, ts.Margin, ts.Spacing)
		if err != nil {
			return nil, err
		}
		ts.Columns = cols
	default:
		return nil, fmt.Errorf("tiled: no <image> nor columns attribute in <tileset>: %w", ErrMalformedAttributes)
	}

	// Spritesheet tilesets expose every grid cell; fill the ids the markup
	// left undeclared. Collection registries stay sparse.
	if ts.Image != nil {
		for id := TileID(0); int(id) < ts.TileCount; id++ {
			if _, ok := ts.tiles[id]; !ok {
				ts.tiles[id] = &TileData{Probability: 1}
			}
		}
	}

	return ts, nil
}

// parentDir returns the directory containing path, or ErrPathIsNotFile when
// path has no parent to resolve relative sources against (empty, a bare
// directory like ".", or a filesystem root).
func parentDir(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("tiled: %q: %w", path, ErrPathIsNotFile)
	}
	clean := filepath.Clean(path)
	dir := filepath.Dir(clean)
	if dir == clean {
		return "", fmt.Errorf("tiled: %q: %w", path, ErrPathIsNotFile)
	}
	return dir, nil
}
