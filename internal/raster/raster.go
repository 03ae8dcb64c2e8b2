package raster

import "fmt"

// Band holds one spectral channel of a scene as a 2-D grid of
// reflectance-like values.
type Band struct {
	Code string
	Rows int
	Cols int
	Data [][]float64
}

// At returns the value at (row, col).
// It will panic if row or col are out of bounds for the band.
func (b *Band) At(row, col int) float64 {
	return b.Data[row][col]
}

// Clone returns a deep copy of the band.
func (b *Band) Clone() *Band {
	data := make([][]float64, b.Rows)
	for r := range data {
		data[r] = make([]float64, b.Cols)
		copy(data[r], b.Data[r])
	}
	return &Band{Code: b.Code, Rows: b.Rows, Cols: b.Cols, Data: data}
}

// Metadata holds the scalar scene attributes delivered by the catalog.
type Metadata struct {
	SceneID    string  `json:"sceneId"`
	CloudCover float64 `json:"cloudCover"`
	Resolution float64 `json:"resolution"`
	CRS        string  `json:"crs"`
}

// Raster is an immutable multi-band scene: an ordered set of equally sized
// bands plus the scene metadata.
type Raster struct {
	codes []string
	bands map[string]*Band
	meta  Metadata
}

// FormatError reports decoded raster data that doesn't match the expected
// band layout.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("raster format: %s", e.Reason)
}

// New builds a Raster from decoded channel data. channels[i] becomes the band
// named codes[i]. The decode format guarantees that all channels of one file
// share dimensions, so the only check at this layer is the channel count.
func New(channels [][][]float64, codes []string, meta Metadata) (*Raster, error) {
	if len(channels) != len(codes) {
		return nil, &FormatError{
			Reason: fmt.Sprintf("decoded %d channels, expected %d bands (%v)", len(channels), len(codes), codes),
		}
	}

	bands := map[string]*Band{}
	for i, code := range codes {
		data := channels[i]
		rows := len(data)
		cols := 0
		if rows > 0 {
			cols = len(data[0])
		}
		bands[code] = &Band{Code: code, Rows: rows, Cols: cols, Data: data}
	}

	ordered := make([]string, len(codes))
	copy(ordered, codes)

	return &Raster{codes: ordered, bands: bands, meta: meta}, nil
}

// Codes returns the band codes in their configured order.
func (r *Raster) Codes() []string {
	codes := make([]string, len(r.codes))
	copy(codes, r.codes)
	return codes
}

// Band returns the band with the given code, or nil if the raster doesn't
// contain it.
func (r *Raster) Band(code string) *Band {
	return r.bands[code]
}

// Bands returns the code→band mapping shared by all pipeline stages.
func (r *Raster) Bands() map[string]*Band {
	bands := make(map[string]*Band, len(r.bands))
	for code, band := range r.bands {
		bands[code] = band
	}
	return bands
}

// Meta returns the scene metadata.
func (r *Raster) Meta() Metadata {
	return r.meta
}

// Dims returns the shared dimensions of all bands.
func (r *Raster) Dims() (rows, cols int) {
	if len(r.codes) == 0 {
		return 0, 0
	}
	first := r.bands[r.codes[0]]
	return first.Rows, first.Cols
}
