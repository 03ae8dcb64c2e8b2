package compose

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sen2compare/internal/raster"
)

func bandFromRows(code string, rows [][]float64) *raster.Band {
	return &raster.Band{Code: code, Rows: len(rows), Cols: len(rows[0]), Data: rows}
}

func TestNormalizeRange(t *testing.T) {
	b := bandFromRows("B4", [][]float64{
		{120, 340, 560},
		{780, 210, 90},
	})

	n := Normalize(b)

	min, max := n.Data[0][0], n.Data[0][0]
	for _, row := range n.Data {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	assert.InDelta(t, 0, min, 1e-9)
	assert.InDelta(t, 1, max, 1e-9)
}

func TestNormalizeConstantBand(t *testing.T) {
	b := bandFromRows("B4", [][]float64{
		{42, 42},
		{42, 42},
	})

	n := Normalize(b)

	for _, row := range n.Data {
		for _, v := range row {
			assert.InDelta(t, 0, v, 1e-9)
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	b := bandFromRows("B4", [][]float64{{1, 2}, {3, 4}})

	Normalize(b)

	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, b.Data)
}

func TestComputeStack(t *testing.T) {
	bands := map[string]*raster.Band{
		"B4": bandFromRows("B4", [][]float64{{1, 2}, {3, 4}}),
		"B3": bandFromRows("B3", [][]float64{{5, 6}, {7, 8}}),
		"B2": bandFromRows("B2", [][]float64{{9, 10}, {11, 12}}),
	}

	spec := Spec{Name: "rgb", Kind: KindStack, Bands: []string{"B4", "B3", "B2"}}

	product, err := Compute(spec, bands)
	require.NoError(t, err)
	require.Len(t, product.Channels, 3)

	rows, cols := product.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	// band order is preserved: first spec band becomes the red channel
	assert.Equal(t, "B4", product.Channels[0].Code)

	for _, channel := range product.Channels {
		for _, row := range channel.Data {
			for _, v := range row {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestComputeIndexRange(t *testing.T) {
	bands := map[string]*raster.Band{
		"B8": bandFromRows("B8", [][]float64{{500, 600}, {700, 800}}),
		"B4": bandFromRows("B4", [][]float64{{100, 200}, {300, 400}}),
	}

	spec := Spec{Name: "ndvi", Kind: KindIndex, Bands: []string{"B8", "B4"}, Min: -1, Max: 1}

	product, err := Compute(spec, bands)
	require.NoError(t, err)
	require.Len(t, product.Channels, 1)

	for _, row := range product.Channels[0].Data {
		for _, v := range row {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestComputeIndexFormula(t *testing.T) {
	bands := map[string]*raster.Band{
		"B8": bandFromRows("B8", [][]float64{{300}}),
		"B4": bandFromRows("B4", [][]float64{{100}}),
	}

	spec := Spec{Name: "ndvi", Kind: KindIndex, Bands: []string{"B8", "B4"}}

	product, err := Compute(spec, bands)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, product.Channels[0].Data[0][0], 1e-9)
}

func TestComputeMissingBand(t *testing.T) {
	bands := map[string]*raster.Band{
		"B4": bandFromRows("B4", [][]float64{{1}}),
		"B3": bandFromRows("B3", [][]float64{{1}}),
	}

	spec := Spec{Name: "rgb", Kind: KindStack, Bands: []string{"B4", "B3", "B2"}}

	_, err := Compute(spec, bands)

	var missing *MissingBandError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "B2", missing.Code)
}

func TestSpecValidateBandCount(t *testing.T) {
	assert.Error(t, Spec{Name: "rgb", Kind: KindStack, Bands: []string{"B4", "B3"}}.Validate())
	assert.Error(t, Spec{Name: "ndvi", Kind: KindIndex, Bands: []string{"B8"}}.Validate())
	assert.Error(t, Spec{Name: "x", Kind: Kind("nope"), Bands: []string{"B8", "B4"}}.Validate())
	assert.NoError(t, Spec{Name: "ndvi", Kind: KindIndex, Bands: []string{"B8", "B4"}}.Validate())
}

func TestProductImageStack(t *testing.T) {
	bands := map[string]*raster.Band{
		"B4": bandFromRows("B4", [][]float64{{0, 100}, {200, 300}}),
		"B3": bandFromRows("B3", [][]float64{{0, 100}, {200, 300}}),
		"B2": bandFromRows("B2", [][]float64{{0, 100}, {200, 300}}),
	}

	spec := Spec{Name: "rgb", Kind: KindStack, Bands: []string{"B4", "B3", "B2"}}

	product, err := Compute(spec, bands)
	require.NoError(t, err)

	img := product.Image()
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	// grayscale gradient: min everywhere black, max everywhere white
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestDivergingScaleEndpoints(t *testing.T) {
	low := DivergingRgb(0)
	high := DivergingRgb(1)
	mid := DivergingRgb(0.5)

	// red end, green end, yellowish middle
	assert.Greater(t, low.R, low.G)
	assert.Greater(t, high.G, high.R)
	assert.Greater(t, int(mid.R)+int(mid.G), 2*int(mid.B))

	// out-of-range values clamp to the endpoints
	assert.Equal(t, low, DivergingRgb(-3))
	assert.Equal(t, high, DivergingRgb(7))
}
