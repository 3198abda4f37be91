package main

import (
	"log"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/tiled"
)

// collectionColumns lays out tilesets that have no column geometry of their
// own, i.e. image collections.
const collectionColumns = 8

// newTileGrid lays out one clickable graphic per registered tile that has an
// image, in the tileset's own column count.
func newTileGrid(ts *tiled.Tileset, imgs map[tiled.TileID]*ebiten.Image) *widget.Container {
	cols := ts.Columns
	if cols <= 0 {
		cols = collectionColumns
	}
	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(cols),
				widget.GridLayoutOpts.Spacing(2, 2),
			),
		),
	)
	for _, id := range ts.TileIDs() {
		img := imgs[id]
		if img == nil {
			continue
		}
		tile, ok := ts.Tile(id)
		if !ok {
			continue
		}
		w, h := tile.Size()
		graphic := widget.NewGraphic(
			widget.GraphicOpts.Image(img),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(w, h),
				widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
					logTile(tile)
				}),
			),
		)
		grid.AddChild(graphic)
	}
	return grid
}

// newCatalogList builds the left-hand list of catalog tileset names.
func newCatalogList(cat *tiled.Catalog, onSelected func(name string)) *widget.List {
	names := cat.Names()
	entries := make([]any, len(names))
	for i, n := range names {
		entries[i] = n
	}
	return widget.NewList(
		widget.ListOpts.Entries(entries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if onSelected == nil {
				return
			}
			if name, ok := args.Entry.(string); ok {
				onSelected(name)
			}
		}),
	)
}

func logTile(t tiled.Tile) {
	w, h := t.Size()
	log.Printf("Tile %d: %dx%d type=%q probability=%g frames=%d collision=%d props=%v",
		t.ID(), w, h, t.Type(), t.Probability(), len(t.Animation()), len(t.Collision()), t.Properties())
}
