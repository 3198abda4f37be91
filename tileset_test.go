package tiled

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func parseString(t *testing.T, src, path string) *Tileset {
	t.Helper()
	ts, err := ParseTileset(strings.NewReader(src), path)
	if err != nil {
		t.Fatalf("ParseTileset: %v", err)
	}
	return ts
}

const spritesheetSrc = `<?xml version="1.0" encoding="UTF-8"?>
<tileset name="terrain" tilewidth="16" tileheight="16" tilecount="4">
	<image source="terrain.png" width="64" height="16"/>
</tileset>`

func TestParseTilesetSpritesheet(t *testing.T) {
	ts := parseString(t, spritesheetSrc, "fixtures/terrain.tsx")

	if ts.Name != "terrain" {
		t.Fatalf("expected name terrain, got %q", ts.Name)
	}
	if ts.TileWidth != 16 || ts.TileHeight != 16 {
		t.Fatalf("expected 16x16 tiles, got %dx%d", ts.TileWidth, ts.TileHeight)
	}
	if ts.Spacing != 0 || ts.Margin != 0 {
		t.Fatalf("expected zero spacing/margin defaults, got %d/%d", ts.Spacing, ts.Margin)
	}
	if ts.Columns != 4 {
		t.Fatalf("expected 4 derived columns, got %d", ts.Columns)
	}
	if ts.Image == nil {
		t.Fatal("expected spritesheet image")
	}
	if want := filepath.Join("fixtures", "terrain.png"); ts.Image.Source != want {
		t.Fatalf("expected image source %q, got %q", want, ts.Image.Source)
	}
}

func TestSpritesheetRegistryIsDense(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"no_tile_children", spritesheetSrc},
		{"some_tile_children", `<tileset tilewidth="16" tileheight="16" tilecount="4">
	<image source="terrain.png" width="64" height="16"/>
	<tile id="1" type="wall"/>
	<tile id="3" type="door"/>
</tileset>`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := parseString(t, c.src, "fixtures/terrain.tsx")
			if ts.NumTiles() != 4 {
				t.Fatalf("expected 4 registry entries, got %d", ts.NumTiles())
			}
			for id := TileID(0); id < 4; id++ {
				if _, ok := ts.Tile(id); !ok {
					t.Fatalf("expected synthesized entry for id %d", id)
				}
			}
			if _, ok := ts.Tile(4); ok {
				t.Fatal("expected no entry past tilecount")
			}
		})
	}
}

func TestSpritesheetKeepsDeclaredTileData(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="3">
	<image source="terrain.png" width="48" height="16"/>
	<tile id="1" type="wall" probability="0.5"/>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")

	wall, ok := ts.Tile(1)
	if !ok {
		t.Fatal("expected declared tile present")
	}
	if wall.Type() != "wall" || wall.Probability() != 0.5 {
		t.Fatalf("expected declared data, got type=%q probability=%v", wall.Type(), wall.Probability())
	}

	synth, ok := ts.Tile(0)
	if !ok {
		t.Fatal("expected synthesized tile present")
	}
	if synth.Type() != "" || synth.Probability() != 1 {
		t.Fatalf("expected default data, got type=%q probability=%v", synth.Type(), synth.Probability())
	}
}

func TestCollectionRegistryIsSparse(t *testing.T) {
	src := `<tileset name="props" tilewidth="16" tileheight="16" tilecount="3" columns="0">
	<tile id="1"><image source="barrel.png" width="24" height="32"/></tile>
	<tile id="5"><image source="crate.png" width="16" height="16"/></tile>
	<tile id="9"><image source="lamp.png" width="8" height="24"/></tile>
</tileset>`
	ts := parseString(t, src, "fixtures/props.tsx")

	if ts.Image != nil {
		t.Fatal("expected collection tileset to have no shared image")
	}
	if ts.NumTiles() != 3 {
		t.Fatalf("expected exactly the declared ids, got %d entries", ts.NumTiles())
	}
	for _, id := range []TileID{1, 5, 9} {
		if _, ok := ts.Tile(id); !ok {
			t.Fatalf("expected declared id %d", id)
		}
	}
	// ids may exceed tilecount for collection tilesets; no densification
	for _, id := range []TileID{0, 2, 3} {
		if _, ok := ts.Tile(id); ok {
			t.Fatalf("did not expect synthesized id %d", id)
		}
	}
}

func TestCollectionWithoutColumnsFails(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="1">
	<tile id="0"><image source="barrel.png" width="24" height="32"/></tile>
</tileset>`
	_, err := ParseTileset(strings.NewReader(src), "fixtures/props.tsx")
	if !errors.Is(err, ErrMalformedAttributes) {
		t.Fatalf("expected ErrMalformedAttributes, got %v", err)
	}
}

func TestExplicitColumnsWinOverDerivation(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="4" columns="2">
	<image source="terrain.png" width="64" height="16"/>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")
	if ts.Columns != 2 {
		t.Fatalf("expected explicit columns 2, got %d", ts.Columns)
	}
}

func TestDuplicateTileIDLastWins(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="2">
	<image source="terrain.png" width="32" height="16"/>
	<tile id="1" type="first"/>
	<tile id="1" type="second"/>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")
	if ts.NumTiles() != 2 {
		t.Fatalf("expected 2 entries, got %d", ts.NumTiles())
	}
	tile, ok := ts.Tile(1)
	if !ok {
		t.Fatal("expected id 1 present")
	}
	if tile.Type() != "second" {
		t.Fatalf("expected later declaration to win, got %q", tile.Type())
	}
}

func TestRequiredTilesetAttributes(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_tilecount", `<tileset tilewidth="16" tileheight="16"><image source="a.png" width="16" height="16"/></tileset>`},
		{"missing_tilewidth", `<tileset tileheight="16" tilecount="1"><image source="a.png" width="16" height="16"/></tileset>`},
		{"malformed_tileheight", `<tileset tilewidth="16" tileheight="tall" tilecount="1"><image source="a.png" width="16" height="16"/></tileset>`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseTileset(strings.NewReader(c.src), "fixtures/bad.tsx")
			if !errors.Is(err, ErrMalformedAttributes) {
				t.Fatalf("expected ErrMalformedAttributes, got %v", err)
			}
		})
	}
}

func TestTilesEnumeration(t *testing.T) {
	ts := parseString(t, spritesheetSrc, "fixtures/terrain.tsx")

	count := 0
	seen := map[TileID]bool{}
	for id, tile := range ts.Tiles() {
		count++
		if seen[id] {
			t.Fatalf("id %d yielded twice", id)
		}
		seen[id] = true
		if tile.ID() != id {
			t.Fatalf("tile view id %d does not match key %d", tile.ID(), id)
		}
	}
	if count != ts.NumTiles() {
		t.Fatalf("expected %d yields, got %d", ts.NumTiles(), count)
	}

	ids := ts.TileIDs()
	if len(ids) != 4 {
		t.Fatalf("expected 4 ids, got %d", len(ids))
	}
	for i, id := range ids {
		if id != TileID(i) {
			t.Fatalf("expected sorted ids 0..3, got %v", ids)
		}
	}
}

func TestTileViewInheritance(t *testing.T) {
	t.Run("spritesheet_tile_inherits", func(t *testing.T) {
		ts := parseString(t, spritesheetSrc, "fixtures/terrain.tsx")
		tile, ok := ts.Tile(2)
		if !ok {
			t.Fatal("expected tile")
		}
		if tile.Image() != ts.Image {
			t.Fatal("expected tile to inherit the tileset image")
		}
		w, h := tile.Size()
		if w != 16 || h != 16 {
			t.Fatalf("expected inherited 16x16, got %dx%d", w, h)
		}
	})

	t.Run("collection_tile_owns", func(t *testing.T) {
		src := `<tileset tilewidth="16" tileheight="16" tilecount="1" columns="0">
	<tile id="0"><image source="barrel.png" width="24" height="32"/></tile>
</tileset>`
		ts := parseString(t, src, "fixtures/props.tsx")
		tile, ok := ts.Tile(0)
		if !ok {
			t.Fatal("expected tile")
		}
		if tile.Image() == nil || !strings.HasSuffix(tile.Image().Source, "barrel.png") {
			t.Fatalf("expected tile's own image, got %+v", tile.Image())
		}
		w, h := tile.Size()
		if w != 24 || h != 32 {
			t.Fatalf("expected own 24x32, got %dx%d", w, h)
		}
	})
}

func TestUnknownChildrenSkipped(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="2">
	<grid orientation="orthogonal" width="16" height="16"/>
	<tileoffset x="0" y="8"/>
	<image source="terrain.png" width="32" height="16"/>
	<wangsets><wangset name="paths" tile="-1"/></wangsets>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")
	if ts.NumTiles() != 2 {
		t.Fatalf("expected 2 entries, got %d", ts.NumTiles())
	}
}

func TestTilesetProperties(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="1">
	<properties><property name="biome" value="cave"/></properties>
	<image source="terrain.png" width="16" height="16"/>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")
	if v, ok := ts.Properties["biome"].(string); !ok || v != "cave" {
		t.Fatalf("expected biome property, got %#v", ts.Properties["biome"])
	}
}

func TestImageTrans(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="1">
	<image source="terrain.png" trans="ff00ff" width="16" height="16"/>
</tileset>`
	ts := parseString(t, src, "fixtures/terrain.tsx")
	if ts.Image.Trans == nil {
		t.Fatal("expected trans color")
	}
	c := *ts.Image.Trans
	if c.R != 0xff || c.G != 0 || c.B != 0xff || c.A != 0xff {
		t.Fatalf("expected magenta, got %+v", c)
	}
}

func TestImageRequiredAttributes(t *testing.T) {
	src := `<tileset tilewidth="16" tileheight="16" tilecount="1">
	<image source="terrain.png"/>
</tileset>`
	_, err := ParseTileset(strings.NewReader(src), "fixtures/terrain.tsx")
	if !errors.Is(err, ErrMalformedAttributes) {
		t.Fatalf("expected ErrMalformedAttributes, got %v", err)
	}
}

func TestParseTilesetRootElement(t *testing.T) {
	_, err := ParseTileset(strings.NewReader(`<map width="4" height="4"/>`), "fixtures/x.tsx")
	if err == nil || !strings.Contains(err.Error(), "unexpected root") {
		t.Fatalf("expected unexpected-root error, got %v", err)
	}
}

func TestParseTilesetPathContext(t *testing.T) {
	for _, path := range []string{"", ".", "/"} {
		if _, err := ParseTileset(strings.NewReader(spritesheetSrc), path); !errors.Is(err, ErrPathIsNotFile) {
			t.Fatalf("expected ErrPathIsNotFile for %q, got %v", path, err)
		}
	}
}
