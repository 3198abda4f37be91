package tiled

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Properties holds an element's custom properties. Values are typed by the
// markup's type attribute: string, int, float64, bool, color.NRGBA, FilePath
// or ObjectRef.
type Properties map[string]any

// FilePath is the value of a file-typed property, relative to the document
// that declared it.
type FilePath string

// ObjectRef is the value of an object-typed property: the id of an object on
// some object layer.
type ObjectRef uint32

// ParseColor parses a Tiled color string, "#AARRGGBB" or "#RRGGBB" with an
// optional leading '#'. A six-digit color gets full alpha.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("tiled: invalid color format: %q", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var c color.NRGBA
	var err error
	c.A = 255
	i := 0
	if len(s) == 8 {
		if c.A, err = parse(0); err != nil {
			return color.NRGBA{}, fmt.Errorf("tiled: invalid color format: %q", s)
		}
		i = 2
	}
	if c.R, err = parse(i); err == nil {
		if c.G, err = parse(i + 2); err == nil {
			c.B, err = parse(i + 4)
		}
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("tiled: invalid color format: %q", s)
	}
	return c, nil
}

// parseProperties consumes a <properties> element into a typed map.
func parseProperties(dec *xml.Decoder, start xml.StartElement) (Properties, error) {
	props := Properties{}
	err := forEachChild(dec, func(child xml.StartElement) error {
		if child.Name.Local != "property" {
			return dec.Skip()
		}
		return parseProperty(dec, child, props)
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

func parseProperty(dec *xml.Decoder, start xml.StartElement, props Properties) error {
	s := scanAttrs(start)
	name := s.String("name")
	typ := s.OptString("type", "string")
	raw, hasValue := s.lookup("value")
	if err := s.Err("a name"); err != nil {
		return err
	}

	if hasValue {
		if err := dec.Skip(); err != nil {
			return err
		}
	} else {
		// Multiline string values are stored as element text instead of a
		// value attribute.
		text, err := innerText(dec)
		if err != nil {
			return err
		}
		raw = text
	}

	v, err := convertProperty(typ, raw)
	if err != nil {
		return err
	}
	props[name] = v
	return nil
}

func convertProperty(typ, value string) (any, error) {
	switch typ {
	case "string", "":
		return value, nil
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("tiled: invalid int property value %q: %w", value, err)
		}
		return n, nil
	case "float":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("tiled: invalid float property value %q: %w", value, err)
		}
		return f, nil
	case "bool":
		switch value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("tiled: invalid bool property value %q", value)
	case "color":
		if value == "" {
			// An unset color property serializes as an empty value.
			return color.NRGBA{}, nil
		}
		return ParseColor(value)
	case "file":
		return FilePath(value), nil
	case "object":
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tiled: invalid object property value %q: %w", value, err)
		}
		return ObjectRef(n), nil
	}
	return nil, fmt.Errorf("tiled: unknown property type %q", typ)
}
