package tiled

import (
	"encoding/xml"
	"strings"
)

// forEachChild pulls tokens from dec until the current element's end tag,
// calling fn once per direct child element. fn must consume the child's
// entire subtree (recurse or dec.Skip) before returning, so that the next
// token seen here is a sibling or the closing tag. Character data and
// comments between children are ignored.
func forEachChild(dec *xml.Decoder, fn func(child xml.StartElement) error) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// innerText consumes the current element's remaining tokens and returns the
// concatenated character data of the element itself, skipping any nested
// elements.
func innerText(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
