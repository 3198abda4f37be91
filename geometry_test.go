package tiled

import (
	"errors"
	"image"
	"testing"
)

func TestDeriveColumns(t *testing.T) {
	cases := []struct {
		name       string
		imageWidth int
		tileWidth  int
		margin     int
		spacing    int
		want       int
	}{
		{"no_gaps", 264, 32, 0, 0, 8},
		{"margin_and_spacing", 300, 32, 4, 2, 8},
		{"truncates", 270, 32, 0, 0, 8},
		{"narrow_image_clamps_to_zero", 10, 32, 16, 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := deriveColumns(c.imageWidth, c.tileWidth, c.margin, c.spacing)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %d columns, got %d", c.want, got)
			}
		})
	}

	t.Run("zero_tilewidth_and_spacing", func(t *testing.T) {
		_, err := deriveColumns(264, 0, 0, 0)
		if !errors.Is(err, ErrMalformedAttributes) {
			t.Fatalf("expected ErrMalformedAttributes, got %v", err)
		}
	})
}

func TestTileRect(t *testing.T) {
	ts := &Tileset{
		TileWidth:  16,
		TileHeight: 16,
		Margin:     4,
		Spacing:    2,
		TileCount:  8,
		Columns:    4,
		Image:      &Image{Source: "sheet.png", Width: 100, Height: 50},
	}

	cases := []struct {
		name string
		id   TileID
		want image.Rectangle
	}{
		{"first", 0, image.Rect(4, 4, 20, 20)},
		{"end_of_first_row", 3, image.Rect(58, 4, 74, 20)},
		{"second_row", 5, image.Rect(22, 22, 38, 38)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ts.TileRect(c.id)
			if !ok {
				t.Fatalf("expected rect for id %d", c.id)
			}
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}

	t.Run("out_of_range", func(t *testing.T) {
		if _, ok := ts.TileRect(8); ok {
			t.Fatal("expected no rect past tilecount")
		}
	})

	t.Run("collection_kind", func(t *testing.T) {
		coll := &Tileset{TileWidth: 16, TileHeight: 16, TileCount: 2, Columns: 1}
		if _, ok := coll.TileRect(0); ok {
			t.Fatal("expected no rect without a spritesheet image")
		}
	})
}
