package tiled

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
)

// Loader resolves external tileset documents through an injected reader and
// cache. The zero value reads from the OS filesystem and does not cache;
// NewLoader fills nil collaborators with FileReader and a fresh MemoryCache.
type Loader struct {
	Reader ResourceReader
	Cache  ResourceCache
}

func NewLoader(r ResourceReader, c ResourceCache) *Loader {
	if r == nil {
		r = FileReader{}
	}
	if c == nil {
		c = NewMemoryCache()
	}
	return &Loader{Reader: r, Cache: c}
}

// Load reads and parses the tileset document at path. Results are cached by
// the cleaned path: a second Load for the same document returns the cached
// tileset without touching the reader.
func (l *Loader) Load(path string) (*Tileset, error) {
	key := filepath.Clean(path)
	if l.Cache != nil {
		if ts := l.Cache.Tileset(key); ts != nil {
			return ts, nil
		}
	}

	data, err := l.reader().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tiled: read tileset %s: %w", path, err)
	}
	ts, err := ParseTileset(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}

	if l.Cache != nil {
		l.Cache.StoreTileset(key, ts)
	}
	return ts, nil
}

// LoadReference resolves a map document's <tileset> element like
// ResolveReference and then loads any external reference through the
// loader, so the returned MapTileset always carries a non-nil Tileset.
// Source stays set for external references, naming the document the tileset
// came from.
func (l *Loader) LoadReference(dec *xml.Decoder, start xml.StartElement, docPath string) (MapTileset, error) {
	mt, err := ResolveReference(dec, start, docPath)
	if err != nil {
		return MapTileset{}, err
	}
	if mt.Tileset == nil {
		ts, err := l.Load(mt.Source)
		if err != nil {
			return MapTileset{}, err
		}
		mt.Tileset = ts
	}
	return mt, nil
}

func (l *Loader) reader() ResourceReader {
	if l.Reader != nil {
		return l.Reader
	}
	return FileReader{}
}
