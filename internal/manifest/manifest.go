// Package manifest writes the per-zone manifest.json describing which
// artifacts a run produced.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"sen2compare/internal/compose"
	"sen2compare/internal/raster"
	"sen2compare/internal/simulate"
)

// SceneEntry describes one processed scene.
type SceneEntry struct {
	Index      int     `json:"index"`
	SceneID    string  `json:"sceneId"`
	CloudCover float64 `json:"cloudCover"`
}

// Manifest represents the structure of the manifest.json written next to the
// produced artifacts.
type Manifest struct {
	Zone         string       `json:"zone"`
	Name         string       `json:"name"`
	Bands        []string     `json:"bands"`
	Compositions []string     `json:"compositions"`
	Methods      []string     `json:"methods"`
	Scenes       []SceneEntry `json:"scenes"`
}

// Write a manifest.json for one processed zone.
func Write(outputDirectory, zoneID, zoneName string, bands []string, specs []compose.Spec, methods []simulate.Method, scenes []raster.Metadata) error {
	obj := Manifest{
		Zone:  zoneID,
		Name:  fmt.Sprintf("%s comparison artifacts", zoneName),
		Bands: bands,
	}

	for _, spec := range specs {
		obj.Compositions = append(obj.Compositions, spec.Name)
	}
	for _, method := range methods {
		obj.Methods = append(obj.Methods, method.Name)
	}
	for i, meta := range scenes {
		obj.Scenes = append(obj.Scenes, SceneEntry{
			Index:      i,
			SceneID:    meta.SceneID,
			CloudCover: meta.CloudCover,
		})
	}

	f, err := os.Create(path.Join(outputDirectory, "manifest.json"))
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		f.Close()
		return err
	}

	if _, err = f.Write(bytes); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
