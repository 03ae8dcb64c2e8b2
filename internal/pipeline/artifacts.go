package pipeline

import (
	"fmt"
	"path"

	"sen2compare/internal/render"
	"sen2compare/internal/utils"
)

// WriteArtifacts writes one PNG per (method, composition) into
// <outDir>/<method>/<composition>_<sceneIdx>.png.
func WriteArtifacts(outDir string, sceneIdx int, results []Result) error {
	for _, result := range results {
		methodDir := path.Join(outDir, result.Method.Name)
		if err := utils.EnsureDirectory(methodDir); err != nil {
			return err
		}
		for _, product := range result.Products {
			file := path.Join(methodDir, fmt.Sprintf("%s_%d.png", product.Spec.Name, sceneIdx))
			if err := utils.SaveImage(file, product.Image()); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePanels writes one comparison panel per composition into
// <outDir>/comparisons, laying every method's rendering out side by side in
// the order the results were produced.
func WritePanels(outDir, zoneTitle string, sceneIdx int, results []Result) error {
	if len(results) == 0 {
		return nil
	}

	compDir := path.Join(outDir, "comparisons")
	if err := utils.EnsureDirectory(compDir); err != nil {
		return err
	}

	for specIdx, product := range results[0].Products {
		entries := make([]render.Entry, len(results))
		for i, result := range results {
			entries[i] = render.Entry{
				Label: result.Method.Name,
				Image: result.Products[specIdx].Image(),
			}
		}

		title := fmt.Sprintf("Comparison %s - %s - scene %d", product.Spec.Name, zoneTitle, sceneIdx+1)
		panel, err := render.Panel(title, entries)
		if err != nil {
			return err
		}

		file := path.Join(compDir, fmt.Sprintf("comparison_%s_%d.png", product.Spec.Name, sceneIdx))
		if err := utils.SaveImage(file, panel); err != nil {
			return err
		}
	}
	return nil
}
