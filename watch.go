package tiled

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind says what class of tileset resource changed on disk.
type EventKind int

const (
	// EventDocument is a change to a tileset XML document.
	EventDocument EventKind = iota
	// EventImage is a change to a referenced image file.
	EventImage
)

// Event is one debounced filesystem change under a watched directory.
type Event struct {
	Path string
	Kind EventKind
}

// Watcher reports changes to tileset documents and their images, debounced,
// for development-time hot reloading. Consumers typically re-Load a document
// on EventDocument and re-decode on EventImage, swapping in fresh caches.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Event
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Event, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// WatchTileset adds every directory the tileset draws files from: the
// document's own directory plus the directories of its spritesheet and of
// each per-tile image.
func (w *Watcher) WatchTileset(ts *Tileset, docPath string) error {
	dirs := map[string]struct{}{filepath.Dir(docPath): {}}
	if ts.Image != nil {
		dirs[filepath.Dir(ts.Image.Source)] = struct{}{}
	}
	for _, data := range ts.tiles {
		if data.Image != nil {
			dirs[filepath.Dir(data.Image.Source)] = struct{}{}
		}
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("tiled: watch %s: %w", dir, err)
		}
	}
	return nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			var kind EventKind
			switch {
			case isTilesetFile(event.Name):
				kind = EventDocument
			case isImageFile(event.Name):
				kind = EventImage
			default:
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			w.Events <- Event{Path: event.Name, Kind: kind}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

func isTilesetFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tsx" || ext == ".tmx" || ext == ".xml"
}

func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".png" || ext == ".jpg" || ext == ".jpeg" || ext == ".bmp"
}
