package raster

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChannelCountMismatch(t *testing.T) {
	channels := [][][]float64{
		{{1, 2}, {3, 4}},
	}

	_, err := New(channels, []string{"B2", "B3"}, Metadata{})

	var format *FormatError
	require.True(t, errors.As(err, &format))
	assert.Contains(t, format.Error(), "expected 2 bands")
}

func TestNewKeepsBandOrder(t *testing.T) {
	channels := [][][]float64{
		{{1, 2}, {3, 4}},
		{{5, 6}, {7, 8}},
		{{9, 10}, {11, 12}},
	}

	r, err := New(channels, []string{"B2", "B3", "B4"}, Metadata{SceneID: "s1", CloudCover: 12.5})
	require.NoError(t, err)

	assert.Equal(t, []string{"B2", "B3", "B4"}, r.Codes())
	assert.Equal(t, 5.0, r.Band("B3").At(0, 0))
	assert.Nil(t, r.Band("B8"))

	rows, cols := r.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	assert.Equal(t, "s1", r.Meta().SceneID)
}

const gridFixture = `NCOLS 3
NROWS 2
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
NODATA_VALUE -9999
1 2 3
4 5 6
`

func TestParseASCIIGrid(t *testing.T) {
	grid, err := ParseASCIIGrid(strings.NewReader(gridFixture))
	require.NoError(t, err)

	assert.Equal(t, 3, grid.Ncols)
	assert.Equal(t, 2, grid.Nrows)
	assert.Equal(t, 10.0, grid.CellSize)
	assert.Equal(t, -9999.0, grid.NoDataValue)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, grid.Data)
}

func TestParseASCIIGridMissingHeaders(t *testing.T) {
	_, err := ParseASCIIGrid(strings.NewReader("NCOLS 2\n1 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mandatory headers")
}

func TestParseASCIIGridZeroDimensions(t *testing.T) {
	zeroRows := `NCOLS 2
NROWS 0
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
`
	_, err := ParseASCIIGrid(strings.NewReader(zeroRows))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NROWS must be greater than 0")

	zeroCols := `NCOLS 0
NROWS 2
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
1 2
3 4
`
	_, err = ParseASCIIGrid(strings.NewReader(zeroCols))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NCOLS must be greater than 0")
}

func TestParseASCIIGridNoData(t *testing.T) {
	// neither an empty stream nor a headers-only stream may come back as a
	// usable zero-row grid
	_, err := ParseASCIIGrid(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data lines")

	headersOnly := `NCOLS 2
NROWS 2
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
`
	_, err = ParseASCIIGrid(strings.NewReader(headersOnly))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data lines")
}

func TestParseASCIIGridShortRow(t *testing.T) {
	broken := `NCOLS 3
NROWS 1
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
1 2
`
	_, err := ParseASCIIGrid(strings.NewReader(broken))
	assert.Error(t, err)
}

func TestParseASCIIGridTruncated(t *testing.T) {
	truncated := `NCOLS 2
NROWS 3
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
1 2
`
	_, err := ParseASCIIGrid(strings.NewReader(truncated))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header says 3")
}

func writeGrid(t *testing.T, dir, code, body string) {
	t.Helper()

	f, err := os.Create(path.Join(dir, code+".asc.gz"))
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func writeMeta(t *testing.T, dir string, meta Metadata) {
	t.Helper()

	bytes, err := json.Marshal(meta)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path.Join(dir, "scene.json"), bytes, 0o644))
}

func TestReadScene(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "B4", gridFixture)
	writeGrid(t, dir, "B8", gridFixture)
	writeMeta(t, dir, Metadata{SceneID: "scene-1", CloudCover: 3.5})

	r, err := ReadScene(dir, []string{"B4", "B8"})
	require.NoError(t, err)

	assert.Equal(t, []string{"B4", "B8"}, r.Codes())
	assert.Equal(t, "scene-1", r.Meta().SceneID)

	rows, cols := r.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
}

func TestReadSceneDimensionMismatch(t *testing.T) {
	other := `NCOLS 2
NROWS 2
XLLCORNER 0.0
YLLCORNER 0.0
CELLSIZE 10.0
1 2
3 4
`
	dir := t.TempDir()
	writeGrid(t, dir, "B4", gridFixture)
	writeGrid(t, dir, "B8", other)
	writeMeta(t, dir, Metadata{SceneID: "scene-1"})

	_, err := ReadScene(dir, []string{"B4", "B8"})

	var format *FormatError
	require.True(t, errors.As(err, &format))
}

func TestReadSceneMissingBandFile(t *testing.T) {
	dir := t.TempDir()
	writeGrid(t, dir, "B4", gridFixture)
	writeMeta(t, dir, Metadata{SceneID: "scene-1"})

	_, err := ReadScene(dir, []string{"B4", "B8"})
	assert.Error(t, err)
}
