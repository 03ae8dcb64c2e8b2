package raster

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path"
)

// ReadBandGrid reads one gzipped band grid from the given path.
func ReadBandGrid(gridPath string) (Grid, error) {
	file, err := os.Open(gridPath)
	if err != nil {
		return Grid{}, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return Grid{}, err
	}
	defer gz.Close()

	return ParseASCIIGrid(gz)
}

// ReadScene reads every band of one downloaded scene from sceneDir. The fetch
// step stores one <code>.asc.gz grid per band plus a scene.json with the
// catalog metadata. All bands of a scene must share dimensions.
func ReadScene(sceneDir string, codes []string) (*Raster, error) {
	meta, err := ReadMetadata(path.Join(sceneDir, "scene.json"))
	if err != nil {
		return nil, err
	}

	channels := make([][][]float64, 0, len(codes))
	rows, cols := 0, 0
	for i, code := range codes {
		grid, err := ReadBandGrid(path.Join(sceneDir, code+".asc.gz"))
		if err != nil {
			return nil, fmt.Errorf("band %s: %w", code, err)
		}
		if i == 0 {
			rows, cols = grid.Nrows, grid.Ncols
		} else if grid.Nrows != rows || grid.Ncols != cols {
			return nil, &FormatError{
				Reason: fmt.Sprintf("band %s is %dx%d, band %s is %dx%d", code, grid.Nrows, grid.Ncols, codes[0], rows, cols),
			}
		}
		channels = append(channels, grid.Data)
	}

	return New(channels, codes, meta)
}

// ReadMetadata reads a scene.json written by the fetch step.
func ReadMetadata(metaPath string) (Metadata, error) {
	var meta Metadata

	bytes, err := os.ReadFile(metaPath)
	if err != nil {
		return meta, err
	}

	err = json.Unmarshal(bytes, &meta)
	return meta, err
}
