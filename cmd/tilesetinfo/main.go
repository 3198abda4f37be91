package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"slices"

	"github.com/milk9111/tiled"
	"github.com/milk9111/tiled/script"
)

func main() {
	tilesetPath := flag.String("tileset", "", "Path to a tileset XML file")
	catalogPath := flag.String("catalog", "", "Catalog YAML listing named tilesets")
	name := flag.String("name", "", "Tileset name to resolve from the catalog")
	filter := flag.String("filter", "", "Tile filter expression, e.g. 'tile_type == \"wall\"'")
	showTiles := flag.Bool("tiles", false, "Print per-tile details")
	flag.Parse()

	loader := tiled.NewLoader(nil, nil)

	var (
		ts  *tiled.Tileset
		err error
	)
	switch {
	case *tilesetPath != "":
		ts, err = loader.Load(*tilesetPath)
	case *catalogPath != "":
		if *name == "" {
			log.Fatal("-name is required with -catalog")
		}
		var cat *tiled.Catalog
		cat, err = tiled.LoadCatalog(*catalogPath)
		if err == nil {
			ts, err = cat.Resolve(*name, loader)
		}
	default:
		log.Fatal("one of -tileset or -catalog is required")
	}
	if err != nil {
		log.Fatalf("Failed to load tileset: %v", err)
	}

	printTileset(ts)

	if *filter != "" {
		f, err := script.Compile(*filter)
		if err != nil {
			log.Fatalf("Failed to compile filter: %v", err)
		}
		ids, err := script.Select(ts, f)
		if err != nil {
			log.Fatalf("Failed to run filter: %v", err)
		}
		fmt.Printf("\nFilter %q matches %d of %d tiles: %v\n", *filter, len(ids), ts.NumTiles(), ids)
	}

	if *showTiles {
		printTiles(ts)
	}
}

func printTileset(ts *tiled.Tileset) {
	kind := "spritesheet"
	if ts.Image == nil {
		kind = "collection"
	}
	fmt.Printf("Tileset:   %s\n", ts.Name)
	fmt.Printf("Kind:      %s\n", kind)
	fmt.Printf("Tile size: %dx%d\n", ts.TileWidth, ts.TileHeight)
	fmt.Printf("Geometry:  %d columns, spacing %d, margin %d\n", ts.Columns, ts.Spacing, ts.Margin)
	fmt.Printf("Tiles:     %d registered (tilecount %d)\n", ts.NumTiles(), ts.TileCount)
	if ts.Image != nil {
		fmt.Printf("Image:     %s (%dx%d)\n", ts.Image.Source, ts.Image.Width, ts.Image.Height)
	}
	if len(ts.Properties) > 0 {
		fmt.Println("Properties:")
		for _, k := range slices.Sorted(maps.Keys(ts.Properties)) {
			fmt.Printf("  %s = %v\n", k, ts.Properties[k])
		}
	}
}

func printTiles(ts *tiled.Tileset) {
	fmt.Println("\nTiles:")
	for _, id := range ts.TileIDs() {
		t, ok := ts.Tile(id)
		if !ok {
			continue
		}
		w, h := t.Size()
		line := fmt.Sprintf("  %4d  %dx%d", id, w, h)
		if t.Type() != "" {
			line += "  type=" + t.Type()
		}
		if img := t.Image(); img != nil && img != ts.Image {
			line += "  image=" + img.Source
		}
		if n := len(t.Animation()); n > 0 {
			line += fmt.Sprintf("  frames=%d", n)
		}
		if n := len(t.Collision()); n > 0 {
			line += fmt.Sprintf("  collision=%d", n)
		}
		fmt.Println(line)
	}
}
