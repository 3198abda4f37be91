// Package script evaluates tengo expressions against tiles, so tools can
// select tiles by property without recompiling ("props.solid == true",
// "tile_type == \"wall\" && probability < 1").
package script

import (
	"fmt"
	"image/color"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/tiled"
)

// Filter is a compiled boolean expression evaluated once per tile. The
// expression sees these globals, refreshed before every run:
//
//	id          the tile's local id (int)
//	tile_type   the tile's type string
//	probability the tile's probability
//	props       the tile's custom properties (map)
//
// plus the tengo standard library. Truthiness follows tengo: a non-bool
// result counts as a match unless it is falsy.
type Filter struct {
	compiled *tengo.Compiled
}

// Compile builds a Filter from a tengo expression.
func Compile(expr string) (*Filter, error) {
	src := fmt.Sprintf("__ok := (%s)", expr)
	script := tengo.NewScript([]byte(src))
	_ = script.Add("id", 0)
	_ = script.Add("tile_type", "")
	_ = script.Add("probability", 0.0)
	_ = script.Add("props", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile filter: %w", err)
	}
	return &Filter{compiled: compiled}, nil
}

// Match runs the filter against one tile. Not safe for concurrent use; a
// Filter runs tiles one at a time.
func (f *Filter) Match(t tiled.Tile) (bool, error) {
	if err := f.compiled.Set("id", int(t.ID())); err != nil {
		return false, err
	}
	if err := f.compiled.Set("tile_type", t.Type()); err != nil {
		return false, err
	}
	if err := f.compiled.Set("probability", t.Probability()); err != nil {
		return false, err
	}
	if err := f.compiled.Set("props", scriptProps(t.Properties())); err != nil {
		return false, err
	}
	if err := f.compiled.Run(); err != nil {
		return false, fmt.Errorf("script: run filter: %w", err)
	}
	return f.compiled.Get("__ok").Bool(), nil
}

// Select returns the ids of every registered tile satisfying the filter, in
// ascending order.
func Select(ts *tiled.Tileset, f *Filter) ([]tiled.TileID, error) {
	var ids []tiled.TileID
	for _, id := range ts.TileIDs() {
		t, ok := ts.Tile(id)
		if !ok {
			continue
		}
		match, err := f.Match(t)
		if err != nil {
			return nil, err
		}
		if match {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// scriptProps rewrites property values tengo has no native form for.
func scriptProps(p tiled.Properties) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		switch v := v.(type) {
		case color.NRGBA:
			out[k] = fmt.Sprintf("#%02x%02x%02x%02x", v.A, v.R, v.G, v.B)
		case tiled.FilePath:
			out[k] = string(v)
		case tiled.ObjectRef:
			out[k] = int(v)
		default:
			out[k] = v
		}
	}
	return out
}
