package tiled

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog is a YAML manifest mapping project-level tileset names to document
// paths, so tools can say "terrain" instead of "../art/terrain.tsx". Entry
// paths are relative to the catalog file itself.
type Catalog struct {
	Tilesets []CatalogEntry `yaml:"tilesets"`

	dir string
}

type CatalogEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// LoadCatalog reads and parses the catalog manifest at filename.
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("tiled: load catalog %s: %w", filename, err)
	}
	return ParseCatalog(data, filepath.Dir(filename))
}

// ParseCatalog parses catalog YAML with entry paths relative to dir.
func ParseCatalog(data []byte, dir string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tiled: unmarshal catalog: %w", err)
	}
	c.dir = dir
	return &c, nil
}

// Path returns the resolved document path for the named entry.
func (c *Catalog) Path(name string) (string, bool) {
	for _, e := range c.Tilesets {
		if e.Name == name {
			return filepath.Join(c.dir, e.Path), true
		}
	}
	return "", false
}

// Names returns every entry name in manifest order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Tilesets))
	for i, e := range c.Tilesets {
		names[i] = e.Name
	}
	return names
}

// Resolve loads the named entry's document through l.
func (c *Catalog) Resolve(name string, l *Loader) (*Tileset, error) {
	path, ok := c.Path(name)
	if !ok {
		return nil, fmt.Errorf("tiled: catalog has no tileset named %q", name)
	}
	return l.Load(path)
}
