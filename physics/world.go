// Package physics builds chipmunk collision geometry from tile collision
// rectangles, for games that place tiles on a grid and want a ready static
// world. Coordinates are screen style: y grows downward, a box's B edge is
// its top.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/tiled"
)

// Collision types assigned to the shapes this package creates, for wiring
// cp collision handlers.
const (
	CollisionTypeSolid cp.CollisionType = iota + 1
	CollisionTypeBounds
)

// World owns a cp.Space populated from tile collision data.
type World struct {
	space *cp.Space

	// Friction applied to every created shape.
	Friction float64
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	return &World{space: space, Friction: 0.8}
}

// Space exposes the underlying cp.Space for stepping options, gravity and
// collision handlers.
func (w *World) Space() *cp.Space { return w.space }

// Step advances the simulation.
func (w *World) Step(dt float64) { w.space.Step(dt) }

// Boxes returns the cp bounding boxes of a tile's collision rectangles,
// offset to world position (x, y).
func Boxes(t tiled.Tile, x, y float64) []cp.BB {
	objs := t.Collision()
	if len(objs) == 0 {
		return nil
	}
	bbs := make([]cp.BB, 0, len(objs))
	for _, o := range objs {
		bbs = append(bbs, cp.BB{
			L: x + o.X,
			B: y + o.Y,
			R: x + o.X + o.Width,
			T: y + o.Y + o.Height,
		})
	}
	return bbs
}

// AddTile inserts a static box for each of the tile's collision rectangles
// at world position (x, y) and returns the created shapes.
func (w *World) AddTile(t tiled.Tile, x, y float64) []*cp.Shape {
	bbs := Boxes(t, x, y)
	if len(bbs) == 0 {
		return nil
	}
	shapes := make([]*cp.Shape, 0, len(bbs))
	for _, bb := range bbs {
		shapes = append(shapes, w.addBox(bb, CollisionTypeSolid))
	}
	return shapes
}

// AddGrid inserts static geometry for a grid of tile ids laid out cols
// cells wide, each cell ts.TileWidth by ts.TileHeight pixels. A negative
// cell is empty. Runs of cells whose tiles are fully solid (a collision
// rectangle covering the whole cell) merge into larger boxes so the space
// holds fewer shapes; tiles with partial rectangles keep their own boxes.
// Returns the bounding boxes of everything created.
func (w *World) AddGrid(ts *tiled.Tileset, cells []int, cols int) []cp.BB {
	if cols <= 0 || len(cells) == 0 {
		return nil
	}
	rows := (len(cells) + cols - 1) / cols
	tw := float64(ts.TileWidth)
	th := float64(ts.TileHeight)

	full := make([]bool, len(cells))
	for i, c := range cells {
		if c < 0 {
			continue
		}
		if t, ok := ts.Tile(tiled.TileID(c)); ok {
			full[i] = coversCell(t, ts.TileWidth, ts.TileHeight)
		}
	}

	var bbs []cp.BB
	processed := make([]bool, len(cells))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			if idx >= len(cells) || processed[idx] {
				continue
			}
			processed[idx] = true

			c := cells[idx]
			if c < 0 {
				continue
			}
			t, ok := ts.Tile(tiled.TileID(c))
			if !ok {
				continue
			}

			x0 := float64(x) * tw
			y0 := float64(y) * th

			if !full[idx] {
				for _, bb := range Boxes(t, x0, y0) {
					w.addBox(bb, CollisionTypeSolid)
					bbs = append(bbs, bb)
				}
				continue
			}

			// Greedily expand a rectangle of fully solid cells, width first,
			// then height.
			wc := 1
			for x+wc < cols {
				idx2 := y*cols + (x + wc)
				if idx2 >= len(cells) || processed[idx2] || !full[idx2] {
					break
				}
				wc++
			}

			hc := 1
		heightLoop:
			for y+hc < rows {
				for xi := x; xi < x+wc; xi++ {
					idx2 := (y+hc)*cols + xi
					if idx2 >= len(cells) || processed[idx2] || !full[idx2] {
						break heightLoop
					}
				}
				hc++
			}

			bb := cp.BB{L: x0, B: y0, R: x0 + float64(wc)*tw, T: y0 + float64(hc)*th}
			w.addBox(bb, CollisionTypeSolid)
			bbs = append(bbs, bb)

			for yy := y; yy < y+hc; yy++ {
				for xx := x; xx < x+wc; xx++ {
					processed[yy*cols+xx] = true
				}
			}
		}
	}
	return bbs
}

// AddBounds walls the rectangle (0, 0)-(width, height) with static
// segments.
func (w *World) AddBounds(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(w.Friction)
		shape.SetCollisionType(CollisionTypeBounds)
		w.space.AddShape(shape)
	}
}

func (w *World) addBox(bb cp.BB, ct cp.CollisionType) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(w.Friction)
	shape.SetCollisionType(ct)
	w.space.AddShape(shape)
	return shape
}

// coversCell reports whether one of the tile's collision rectangles covers
// the whole cell, making the cell mergeable with its neighbors.
func coversCell(t tiled.Tile, w, h int) bool {
	for _, o := range t.Collision() {
		if o.X == 0 && o.Y == 0 && o.Width == float64(w) && o.Height == float64(h) {
			return true
		}
	}
	return false
}
