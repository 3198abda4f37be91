package tiled

import (
	"encoding/xml"
	"time"
)

// TileID is a tile identifier local to its owning tileset. Map-wide ids are
// formed by the caller from a TileID and the tileset's first gid.
type TileID uint32

// GID is the first-id offset a map assigns to a tileset so the tileset's
// local ids become unique across the whole map.
type GID uint32

// TileData is the declared data of a single tile. Fields left empty inherit
// tileset-level context through the Tile view.
type TileData struct {
	// Image is the tile's own image for collection tilesets; nil means the
	// tile is a cell of the tileset's shared spritesheet.
	Image       *Image
	Properties  Properties
	Type        string
	Probability float64
	Animation   []Frame
	Collision   []CollisionObject
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID   TileID
	Duration time.Duration
}

// CollisionObject is an axis-aligned collision rectangle declared on a tile,
// in pixels relative to the tile's top-left corner.
type CollisionObject struct {
	ID     int
	Name   string
	X, Y   float64
	Width  float64
	Height float64
}

// Tile is a read-only view of one registered tile composed with its
// tileset's context: a tile that declares no image of its own reports the
// tileset's shared image and tile size.
type Tile struct {
	id   TileID
	ts   *Tileset
	data *TileData
}

// ID returns the tile's local id.
func (t Tile) ID() TileID { return t.id }

// Tileset returns the owning tileset.
func (t Tile) Tileset() *Tileset { return t.ts }

// Image returns the tile's own image if declared, otherwise the tileset's.
func (t Tile) Image() *Image {
	if t.data.Image != nil {
		return t.data.Image
	}
	return t.ts.Image
}

// Size returns the tile's pixel size: its own image's size when it has one,
// otherwise the tileset's uniform tile size.
func (t Tile) Size() (w, h int) {
	if t.data.Image != nil {
		return t.data.Image.Width, t.data.Image.Height
	}
	return t.ts.TileWidth, t.ts.TileHeight
}

func (t Tile) Properties() Properties { return t.data.Properties }

func (t Tile) Type() string { return t.data.Type }

func (t Tile) Probability() float64 { return t.data.Probability }

func (t Tile) Animation() []Frame { return t.data.Animation }

func (t Tile) Collision() []CollisionObject { return t.data.Collision }

// parseTile consumes a <tile> element and returns its id and declared data.
func parseTile(dec *xml.Decoder, start xml.StartElement, dir string) (TileID, *TileData, error) {
	s := scanAttrs(start)
	id := TileID(s.Uint("id"))
	data := &TileData{
		Type:        s.OptString("type", ""),
		Probability: s.OptFloat("probability", 1),
	}
	if err := s.Err("an id"); err != nil {
		return 0, nil, err
	}

	err := forEachChild(dec, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "image":
			img, err := parseImage(dec, child, dir)
			if err != nil {
				return err
			}
			data.Image = img
		case "properties":
			props, err := parseProperties(dec, child)
			if err != nil {
				return err
			}
			data.Properties = props
		case "animation":
			frames, err := parseAnimation(dec, child)
			if err != nil {
				return err
			}
			data.Animation = frames
		case "objectgroup":
			objs, err := parseObjectGroup(dec, child)
			if err != nil {
				return err
			}
			data.Collision = objs
		default:
			return dec.Skip()
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return id, data, nil
}

func parseAnimation(dec *xml.Decoder, start xml.StartElement) ([]Frame, error) {
	var frames []Frame
	err := forEachChild(dec, func(child xml.StartElement) error {
		if child.Name.Local != "frame" {
			return dec.Skip()
		}
		s := scanAttrs(child)
		f := Frame{
			TileID:   TileID(s.Uint("tileid")),
			Duration: time.Duration(s.Uint("duration")) * time.Millisecond,
		}
		if err := s.Err("a tileid and duration"); err != nil {
			return err
		}
		frames = append(frames, f)
		return dec.Skip()
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

// parseObjectGroup collects the rectangle objects of a tile's collision
// group. Point objects and shaped objects (ellipse, polygon) are skipped.
func parseObjectGroup(dec *xml.Decoder, start xml.StartElement) ([]CollisionObject, error) {
	var objs []CollisionObject
	err := forEachChild(dec, func(child xml.StartElement) error {
		if child.Name.Local != "object" {
			return dec.Skip()
		}
		s := scanAttrs(child)
		obj := CollisionObject{
			ID:     s.OptUint("id", 0),
			Name:   s.OptString("name", ""),
			X:      s.OptFloat("x", 0),
			Y:      s.OptFloat("y", 0),
			Width:  s.OptFloat("width", 0),
			Height: s.OptFloat("height", 0),
		}
		rect := true
		err := forEachChild(dec, func(shape xml.StartElement) error {
			switch shape.Name.Local {
			case "ellipse", "point", "polygon", "polyline", "text":
				rect = false
			}
			return dec.Skip()
		})
		if err != nil {
			return err
		}
		if rect && obj.Width > 0 && obj.Height > 0 {
			objs = append(objs, obj)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objs, nil
}
