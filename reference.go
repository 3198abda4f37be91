package tiled

import (
	"encoding/xml"
	"path/filepath"
)

// MapTileset is the result of resolving a map document's <tileset> element:
// the raw first gid plus either a fully built embedded tileset or the
// resolved path of an external tileset document. Exactly one of Tileset and
// Source is set. Combining FirstGID with local tile ids to form map-wide
// ids stays with the caller.
type MapTileset struct {
	FirstGID GID

	// Tileset is the embedded definition; nil for an external reference.
	Tileset *Tileset

	// Source is the external document's path, resolved against the map
	// document's directory; empty for an embedded definition.
	Source string
}

// ResolveReference resolves the <tileset> element of a map document, which
// is either a full embedded definition or a firstgid/source reference to an
// external file. The attribute shape picks the form: an embedded definition
// always carries tilecount, tilewidth and tileheight, while a reference
// carries only firstgid and source. docPath is the map document's own path;
// relative sources resolve against its directory.
//
// The element's content is fully consumed, so dec is left positioned at the
// map document's next element.
func ResolveReference(dec *xml.Decoder, start xml.StartElement, docPath string) (MapTileset, error) {
	s := scanAttrs(start)
	if s.Has("tilecount") && s.Has("tilewidth") && s.Has("tileheight") {
		first := GID(s.Uint("firstgid"))
		h := scanTilesetHeader(s)
		if err := s.Err("a firstgid, tilecount, tilewidth, and tileheight"); err != nil {
			return MapTileset{}, err
		}
		dir, err := parentDir(docPath)
		if err != nil {
			return MapTileset{}, err
		}
		h.dir = dir
		ts, err := parseTilesetBody(dec, h)
		if err != nil {
			return MapTileset{}, err
		}
		return MapTileset{FirstGID: first, Tileset: ts}, nil
	}

	first := GID(s.Uint("firstgid"))
	source := s.String("source")
	if err := s.Err("a firstgid and source"); err != nil {
		return MapTileset{}, err
	}
	dir, err := parentDir(docPath)
	if err != nil {
		return MapTileset{}, err
	}
	if err := dec.Skip(); err != nil {
		return MapTileset{}, err
	}
	return MapTileset{FirstGID: first, Source: filepath.Join(dir, source)}, nil
}
