package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyColorKey(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	dst := applyColorKey(src, color.NRGBA{R: 255, G: 0, B: 255})

	if got := dst.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("keyed pixel alpha = %d, want 0", got.A)
	}
	if got := dst.NRGBAAt(1, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("untouched pixel = %v, want opaque 10/20/30", got)
	}
}

func TestApplyColorKeyIgnoresAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 128})

	dst := applyColorKey(src, color.NRGBA{R: 255, G: 0, B: 255, A: 255})

	if got := dst.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("keyed half-transparent pixel alpha = %d, want 0", got.A)
	}
}
