package simulate

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"

	"sen2compare/internal/raster"
)

// Method is one named resolution-simulation configuration, a deterministic
// stand-in for a super-resolution technique. Factor 1 without sharpening is
// the identity and doubles as the baseline.
type Method struct {
	Name    string `json:"name"`
	Factor  int    `json:"factor"`
	Sharpen bool   `json:"sharpen"`
}

// Baseline is the identity method every comparison is measured against.
var Baseline = Method{Name: "brut", Factor: 1, Sharpen: false}

// IsIdentity reports whether the method leaves bands untouched.
func (m Method) IsIdentity() bool {
	return m.Factor == 1 && !m.Sharpen
}

// Validate checks the method parameters.
func (m Method) Validate() error {
	if m.Factor < 1 {
		return fmt.Errorf("method %s: factor must be >= 1, got %d", m.Name, m.Factor)
	}
	return nil
}

const (
	sharpenRadius = 2.0
	sharpenAmount = 1.5
)

// Simulate resamples a band to factor times its dimensions with anti-aliased
// Mitchell-Netravali interpolation and optionally applies an unsharp mask.
// The band's dynamic range is mapped through 16-bit grayscale for the
// resampling, so resampled values stay within the original range. Factor 1
// without sharpening returns an exact copy.
func Simulate(b *raster.Band, factor int, sharpen bool) (*raster.Band, error) {
	if factor < 1 {
		return nil, fmt.Errorf("factor must be >= 1, got %d", factor)
	}

	if factor == 1 && !sharpen {
		return b.Clone(), nil
	}

	out := b
	if factor > 1 {
		out = resample(out, factor)
	}
	if sharpen {
		out = unsharpMask(out, sharpenRadius, sharpenAmount)
	}
	out.Code = b.Code

	return out, nil
}

// resample scales the band grid to (rows*factor, cols*factor).
func resample(b *raster.Band, factor int) *raster.Band {
	min, max := b.Data[0][0], b.Data[0][0]
	for _, row := range b.Data {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	span := max - min
	if span == 0 {
		// constant band, resampling can't change anything
		out := &raster.Band{Code: b.Code, Rows: b.Rows * factor, Cols: b.Cols * factor}
		out.Data = make([][]float64, out.Rows)
		for r := range out.Data {
			row := make([]float64, out.Cols)
			for c := range row {
				row[c] = min
			}
			out.Data[r] = row
		}
		return out
	}

	gray := image.NewGray16(image.Rect(0, 0, b.Cols, b.Rows))
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			v := (b.Data[r][c] - min) / span * 65535
			idx := gray.PixOffset(c, r)
			u := uint16(v + 0.5)
			gray.Pix[idx] = uint8(u >> 8)
			gray.Pix[idx+1] = uint8(u)
		}
	}

	resized := resize.Resize(uint(b.Cols*factor), uint(b.Rows*factor), gray, resize.MitchellNetravali)

	out := &raster.Band{Code: b.Code, Rows: b.Rows * factor, Cols: b.Cols * factor}
	out.Data = make([][]float64, out.Rows)
	for r := 0; r < out.Rows; r++ {
		row := make([]float64, out.Cols)
		for c := 0; c < out.Cols; c++ {
			g := color16(resized, c, r)
			row[c] = min + float64(g)/65535*span
		}
		out.Data[r] = row
	}
	return out
}

func color16(img image.Image, x, y int) uint32 {
	r, _, _, _ := img.At(x, y).RGBA()
	return r
}

// unsharpMask sharpens the grid by adding back the difference to a
// gaussian-blurred copy: out = v + amount*(v - blurred).
func unsharpMask(b *raster.Band, radius, amount float64) *raster.Band {
	blurred := gaussianBlur(b, radius)

	data := make([][]float64, b.Rows)
	for r := 0; r < b.Rows; r++ {
		row := make([]float64, b.Cols)
		for c := 0; c < b.Cols; c++ {
			row[c] = b.Data[r][c] + amount*(b.Data[r][c]-blurred.Data[r][c])
		}
		data[r] = row
	}
	return &raster.Band{Code: b.Code, Rows: b.Rows, Cols: b.Cols, Data: data}
}

// gaussianBlur applies a separable gaussian kernel with the given sigma.
func gaussianBlur(b *raster.Band, sigma float64) *raster.Band {
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2

	// horizontal pass
	tmp := make([][]float64, b.Rows)
	for r := 0; r < b.Rows; r++ {
		row := make([]float64, b.Cols)
		for c := 0; c < b.Cols; c++ {
			sum, weight := 0.0, 0.0
			for k := -half; k <= half; k++ {
				cc := c + k
				if cc < 0 || cc >= b.Cols {
					continue
				}
				w := kernel[k+half]
				sum += b.Data[r][cc] * w
				weight += w
			}
			row[c] = sum / weight
		}
		tmp[r] = row
	}

	// vertical pass
	data := make([][]float64, b.Rows)
	for r := range data {
		data[r] = make([]float64, b.Cols)
	}
	for c := 0; c < b.Cols; c++ {
		for r := 0; r < b.Rows; r++ {
			sum, weight := 0.0, 0.0
			for k := -half; k <= half; k++ {
				rr := r + k
				if rr < 0 || rr >= b.Rows {
					continue
				}
				w := kernel[k+half]
				sum += tmp[rr][c] * w
				weight += w
			}
			data[r][c] = sum / weight
		}
	}

	return &raster.Band{Code: b.Code, Rows: b.Rows, Cols: b.Cols, Data: data}
}

func gaussianKernel(sigma float64) []float64 {
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float64, half*2+1)
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	return kernel
}
