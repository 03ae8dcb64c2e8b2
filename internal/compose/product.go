package compose

import (
	"image"
	"image/color"

	"sen2compare/internal/raster"
)

// Product is one computed composition: three [0,1] channels for a stack, a
// single index grid for an index composition. Products are transient, they
// hold no cross-scene state.
type Product struct {
	Spec     Spec
	Channels []*raster.Band
}

// Dims returns the product's pixel dimensions.
func (p *Product) Dims() (rows, cols int) {
	return p.Channels[0].Rows, p.Channels[0].Cols
}

// Image renders the product for display. Stacks map their channels straight
// to RGB, index products are mapped through a diverging color scale over the
// spec's display range.
func (p *Product) Image() *image.RGBA {
	rows, cols := p.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))

	if p.Spec.Kind == KindStack {
		red, green, blue := p.Channels[0], p.Channels[1], p.Channels[2]
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				img.SetRGBA(c, r, color.RGBA{
					R: toByte(red.Data[r][c]),
					G: toByte(green.Data[r][c]),
					B: toByte(blue.Data[r][c]),
					A: 255,
				})
			}
		}
		return img
	}

	grid := p.Channels[0]
	min, max := p.Spec.Min, p.Spec.Max
	if max <= min {
		min, max = -1, 1
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := (grid.Data[r][c] - min) / (max - min)
			img.SetRGBA(c, r, DivergingRgb(t))
		}
	}
	return img
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
