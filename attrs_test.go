package tiled

import (
	"encoding/xml"
	"errors"
	"testing"
)

func startWithAttrs(element string, attrs map[string]string) xml.StartElement {
	start := xml.StartElement{Name: xml.Name{Local: element}}
	for k, v := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: v})
	}
	return start
}

func TestAttrScannerRequired(t *testing.T) {
	cases := []struct {
		name    string
		attrs   map[string]string
		wantErr bool
	}{
		{"all_present", map[string]string{"tilecount": "4", "name": "x"}, false},
		{"missing", map[string]string{"name": "x"}, true},
		{"not_a_number", map[string]string{"tilecount": "abc", "name": "x"}, true},
		{"negative", map[string]string{"tilecount": "-1", "name": "x"}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := scanAttrs(startWithAttrs("tileset", c.attrs))
			n := s.Uint("tilecount")
			name := s.String("name")
			err := s.Err("a tilecount and name")
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got tilecount=%d name=%q", n, name)
				}
				if !errors.Is(err, ErrMalformedAttributes) {
					t.Fatalf("expected ErrMalformedAttributes, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != 4 || name != "x" {
				t.Fatalf("expected 4/x, got %d/%q", n, name)
			}
		})
	}
}

func TestAttrScannerSingleErrorForManyFailures(t *testing.T) {
	s := scanAttrs(startWithAttrs("tileset", nil))
	s.Uint("tilecount")
	s.Uint("tilewidth")
	s.String("source")
	err := s.Err("a tilecount, tilewidth, and source")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrMalformedAttributes) {
		t.Fatalf("expected ErrMalformedAttributes, got %v", err)
	}
}

func TestAttrScannerOptional(t *testing.T) {
	cases := []struct {
		name  string
		attrs map[string]string
		want  int
	}{
		{"present", map[string]string{"spacing": "2"}, 2},
		{"absent", map[string]string{}, 7},
		{"malformed_falls_back", map[string]string{"spacing": "two"}, 7},
		{"negative_falls_back", map[string]string{"spacing": "-3"}, 7},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := scanAttrs(startWithAttrs("tileset", c.attrs))
			got := s.OptUint("spacing", 7)
			if got != c.want {
				t.Fatalf("expected %d, got %d", c.want, got)
			}
			if err := s.Err("nothing required"); err != nil {
				t.Fatalf("optional lookups must not fail the scan: %v", err)
			}
		})
	}
}

func TestAttrScannerOptUintOK(t *testing.T) {
	s := scanAttrs(startWithAttrs("tileset", map[string]string{"columns": "8", "bad": "x"}))
	if v, ok := s.OptUintOK("columns"); !ok || v != 8 {
		t.Fatalf("expected 8/true, got %d/%v", v, ok)
	}
	if _, ok := s.OptUintOK("bad"); ok {
		t.Fatal("expected malformed value to report absent")
	}
	if _, ok := s.OptUintOK("missing"); ok {
		t.Fatal("expected missing attribute to report absent")
	}
}

func TestAttrScannerOptFloatAndString(t *testing.T) {
	s := scanAttrs(startWithAttrs("tile", map[string]string{"probability": "0.5", "type": "wall"}))
	if got := s.OptFloat("probability", 1); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
	if got := s.OptFloat("missing", 1); got != 1 {
		t.Fatalf("expected default 1, got %v", got)
	}
	if got := s.OptString("type", ""); got != "wall" {
		t.Fatalf("expected wall, got %q", got)
	}
	if got := s.OptString("missing", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestAttrScannerHas(t *testing.T) {
	s := scanAttrs(startWithAttrs("tileset", map[string]string{"tilecount": "nonsense"}))
	if !s.Has("tilecount") {
		t.Fatal("Has should report presence even for malformed values")
	}
	if s.Has("tilewidth") {
		t.Fatal("Has should report absent attributes")
	}
}
