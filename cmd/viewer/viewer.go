package main

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/tiled"
	"github.com/milk9111/tiled/render"
)

// Viewer shows one tileset as a clickable grid of its tiles, with a catalog
// list on the left when a catalog was given. Clicking a tile logs its
// details. With -watch, edits to the tileset or its images reload the view.
type Viewer struct {
	ui *ebitenui.UI

	loader *tiled.Loader
	images *render.Cache

	catalog     *tiled.Catalog
	tilesetPath string

	content *widget.Container
	grid    *widget.Container

	watcher *tiled.Watcher
}

func newViewer(tilesetPath, catalogPath, name string, watch bool) (*Viewer, error) {
	v := &Viewer{
		loader: tiled.NewLoader(nil, nil),
		images: render.NewCache(nil),
	}

	if catalogPath != "" {
		cat, err := tiled.LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
		v.catalog = cat
		if name == "" {
			names := cat.Names()
			if len(names) == 0 {
				return nil, fmt.Errorf("catalog %s lists no tilesets", catalogPath)
			}
			name = names[0]
		}
		path, ok := cat.Path(name)
		if !ok {
			return nil, fmt.Errorf("catalog has no tileset named %q", name)
		}
		tilesetPath = path
	}

	if watch {
		w, err := tiled.NewWatcher(filepath.Dir(tilesetPath))
		if err != nil {
			return nil, err
		}
		v.watcher = w
	}

	v.buildUI()

	if err := v.showTileset(tilesetPath); err != nil {
		v.Close()
		return nil, err
	}
	return v, nil
}

func (v *Viewer) buildUI() {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newViewerTheme(&fontFace)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	v.content = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)
	v.content.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}
	root.AddChild(v.content)

	if v.catalog != nil {
		list := newCatalogList(v.catalog, func(name string) {
			path, ok := v.catalog.Path(name)
			if !ok {
				return
			}
			if err := v.showTileset(path); err != nil {
				log.Printf("Failed to load tileset %s: %v", name, err)
			}
		})
		list.GetWidget().LayoutData = widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionCenter,
			StretchVertical:    true,
		}
		root.AddChild(list)
	}

	ui.Container = root
	v.ui = ui
}

// showTileset loads path and swaps the grid to show it.
func (v *Viewer) showTileset(path string) error {
	ts, err := v.loader.Load(path)
	if err != nil {
		return err
	}
	v.tilesetPath = path

	imgs, err := render.Images(ts, v.images)
	if err != nil {
		return err
	}

	if v.grid != nil {
		v.content.RemoveChild(v.grid)
	}
	v.grid = newTileGrid(ts, imgs)
	v.content.AddChild(v.grid)

	if v.watcher != nil {
		if err := v.watcher.WatchTileset(ts, path); err != nil {
			log.Printf("Failed to watch %s: %v", path, err)
		}
	}
	return nil
}

func (v *Viewer) Update() error {
	if v.watcher != nil {
		select {
		case ev, ok := <-v.watcher.Events:
			if ok {
				log.Printf("Change detected in %s, reloading", ev.Path)
				v.images = render.NewCache(nil)
				if ev.Kind == tiled.EventDocument {
					v.loader = tiled.NewLoader(nil, nil)
				}
				if err := v.showTileset(v.tilesetPath); err != nil {
					log.Printf("Failed to reload %s: %v", v.tilesetPath, err)
				}
			}
		case err, ok := <-v.watcher.Errors:
			if ok {
				log.Printf("Watcher error: %v", err)
			}
		default:
		}
	}
	v.ui.Update()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	v.ui.Draw(screen)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func (v *Viewer) Close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}
