package tiled

import (
	"encoding/xml"
	"image/color"
	"path/filepath"
)

// Image describes the pixel source backing a tileset or a single tile. The
// source path is resolved against the directory of the document that declared
// it; reading and decoding the file is the caller's concern.
type Image struct {
	Source string
	Width  int
	Height int

	// Trans is the color to treat as transparent, if the document names one.
	Trans *color.NRGBA
}

func parseImage(dec *xml.Decoder, start xml.StartElement, dir string) (*Image, error) {
	s := scanAttrs(start)
	img := &Image{
		Source: s.String("source"),
		Width:  s.Uint("width"),
		Height: s.Uint("height"),
	}
	if err := s.Err("a source, width, and height"); err != nil {
		return nil, err
	}
	img.Source = filepath.Join(dir, img.Source)

	if v, ok := s.lookup("trans"); ok {
		c, err := ParseColor(v)
		if err != nil {
			return nil, err
		}
		img.Trans = &c
	}

	return img, dec.Skip()
}
