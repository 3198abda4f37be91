package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	tilesetPath := flag.String("tileset", "", "Path to a tileset XML file")
	catalogPath := flag.String("catalog", "", "Catalog YAML listing named tilesets")
	name := flag.String("name", "", "Tileset name to select at startup")
	watch := flag.Bool("watch", false, "Reload the tileset when its files change")
	flag.Parse()

	if *tilesetPath == "" && *catalogPath == "" {
		log.Fatal("one of -tileset or -catalog is required")
	}

	log.Println("Viewer starting...")

	v, err := newViewer(*tilesetPath, *catalogPath, *name, *watch)
	if err != nil {
		log.Fatalf("Failed to start viewer: %v", err)
	}
	defer v.Close()

	ebiten.SetWindowSize(960, 640)
	ebiten.SetWindowTitle("Tileset Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
