package validate

import (
	"fmt"
	"path"

	"sen2compare/internal/utils"
)

// ZoneDirectory validates that given directory holds fetched scenes for a
// zone: a raw/ directory with one sub-directory per scene.
func ZoneDirectory(zoneDirPath string) error {
	if !utils.IsDirectory(zoneDirPath) {
		return fmt.Errorf("%s does not exist or is no directory", zoneDirPath)
	}

	if !utils.IsDirectory(path.Join(zoneDirPath, "raw")) {
		return fmt.Errorf("%s is missing", path.Join(zoneDirPath, "raw"))
	}

	return nil
}

// SceneDirectory validates that given directory holds one fetched scene with
// all expected band grids and its metadata.
func SceneDirectory(sceneDirPath string, bands []string) error {
	if !utils.IsDirectory(sceneDirPath) {
		return fmt.Errorf("%s does not exist or is no directory", sceneDirPath)
	}

	for _, code := range bands {
		filePath := path.Join(sceneDirPath, code+".asc.gz")
		if !utils.IsFile(filePath) {
			return fmt.Errorf("%s is missing", filePath)
		}
	}

	if !utils.IsFile(path.Join(sceneDirPath, "scene.json")) {
		return fmt.Errorf("%s is missing", path.Join(sceneDirPath, "scene.json"))
	}

	return nil
}
