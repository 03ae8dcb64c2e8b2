package compose

import (
	"fmt"

	"sen2compare/internal/raster"
)

// eps keeps the normalization and index denominators away from zero for
// constant or all-dark bands.
const eps = 1e-10

// Kind selects the formula a composition is computed with.
type Kind string

const (
	// KindStack normalizes three bands and stacks them into an RGB image
	// (true-color, false-color).
	KindStack Kind = "stack"
	// KindIndex computes a normalized-difference index from two bands
	// (vegetation index).
	KindIndex Kind = "index"
)

// Spec declares one derived product: which bands go in and how they're
// combined. Specs are plain configuration data, every run supplies its own
// list.
type Spec struct {
	Name  string   `json:"name"`
	Kind  Kind     `json:"kind"`
	Bands []string `json:"bands"`
	// display range, only meaningful for index compositions
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Validate checks the band count against the composition kind.
func (s Spec) Validate() error {
	switch s.Kind {
	case KindStack:
		if len(s.Bands) != 3 {
			return fmt.Errorf("composition %s: stack needs exactly 3 bands, got %d", s.Name, len(s.Bands))
		}
	case KindIndex:
		if len(s.Bands) != 2 {
			return fmt.Errorf("composition %s: index needs exactly 2 bands, got %d", s.Name, len(s.Bands))
		}
	default:
		return fmt.Errorf("composition %s: unknown kind %q", s.Name, s.Kind)
	}
	return nil
}

// MissingBandError reports a composition or method referencing a band code
// the supplied band set doesn't contain.
type MissingBandError struct {
	Code string
}

func (e *MissingBandError) Error() string {
	return fmt.Sprintf("band %s is missing from the supplied band set", e.Code)
}

// Normalize rescales a band's value range to [0,1]. A constant band comes out
// uniformly ~0 instead of dividing by zero. The input band is not modified.
func Normalize(b *raster.Band) *raster.Band {
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

	span := max - min + eps

	data := make([][]float64, b.Rows)
	for r, row := range b.Data {
		out := make([]float64, b.Cols)
		for c, v := range row {
			out[c] = (v - min) / span
		}
		data[r] = out
	}

	return &raster.Band{Code: b.Code, Rows: b.Rows, Cols: b.Cols, Data: data}
}

// Compute evaluates a composition spec against a band set. The band set may
// hold raw or simulated bands, only the codes matter.
func Compute(spec Spec, bands map[string]*raster.Band) (*Product, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	selected := make([]*raster.Band, len(spec.Bands))
	for i, code := range spec.Bands {
		band, found := bands[code]
		if !found {
			return nil, &MissingBandError{Code: code}
		}
		selected[i] = band
	}

	switch spec.Kind {
	case KindStack:
		channels := make([]*raster.Band, 3)
		for i, band := range selected {
			channels[i] = Normalize(band)
		}
		return &Product{Spec: spec, Channels: channels}, nil
	default:
		return &Product{Spec: spec, Channels: []*raster.Band{index(selected[0], selected[1])}}, nil
	}
}

// index computes (a-b)/(a+b+eps) element-wise. For reflectance-like inputs
// (a,b >= 0) the result lies in [-1,1]. Negative input values can push it
// outside that range; the value is deliberately not clamped, the display
// mapping takes care of the range.
func index(a, b *raster.Band) *raster.Band {
	data := make([][]float64, a.Rows)
	for r := 0; r < a.Rows; r++ {
		row := make([]float64, a.Cols)
		for c := 0; c < a.Cols; c++ {
			row[c] = (a.Data[r][c] - b.Data[r][c]) / (a.Data[r][c] + b.Data[r][c] + eps)
		}
		data[r] = row
	}
	return &raster.Band{Code: a.Code + "-" + b.Code, Rows: a.Rows, Cols: a.Cols, Data: data}
}
