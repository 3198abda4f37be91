package render

import (
	"image"
	"image/color"
	"image/draw"
)

// applyColorKey copies src, making every pixel matching key fully
// transparent. Tiled stores the key without alpha, so only RGB is compared.
func applyColorKey(src image.Image, key color.NRGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := dst.PixOffset(x, y)
			if dst.Pix[i] == key.R && dst.Pix[i+1] == key.G && dst.Pix[i+2] == key.B {
				dst.Pix[i+3] = 0
			}
		}
	}
	return dst
}
