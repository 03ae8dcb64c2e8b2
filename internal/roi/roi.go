// Package roi loads the region-of-interest boundary a zone is fetched with.
package roi

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Load reads a GeoJSON feature collection and returns the union of its
// feature geometries as a single collection. Empty geometries and degenerate
// polygon rings are rejected up front so the catalog never sees them.
func Load(roiPath string) (orb.Collection, error) {
	bytes, err := os.ReadFile(roiPath)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(bytes)
	if err != nil {
		return nil, err
	}

	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("%s contains no features", roiPath)
	}

	var geometries orb.Collection
	for _, feature := range fc.Features {
		if feature.Geometry == nil {
			return nil, fmt.Errorf("%s contains a feature without geometry", roiPath)
		}
		if err := validateGeometry(feature.Geometry); err != nil {
			return nil, fmt.Errorf("%s: %w", roiPath, err)
		}
		geometries = append(geometries, feature.Geometry)
	}

	return geometries, nil
}

func validateGeometry(geometry orb.Geometry) error {
	switch g := geometry.(type) {
	case orb.Polygon:
		return validateRings(g)
	case orb.MultiPolygon:
		for _, polygon := range g {
			if err := validateRings(polygon); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRings(polygon orb.Polygon) error {
	for _, ring := range polygon {
		// a closed ring repeats its first point, so a triangle has 4 entries
		if len(ring) < 4 {
			return fmt.Errorf("polygon ring needs at least 3 distinct points, got %d", len(ring))
		}
	}
	return nil
}
