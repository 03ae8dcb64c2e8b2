package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/pkg/errors"

	"sen2compare/internal/raster"
	"sen2compare/internal/utils"
)

// Download fetches every requested band grid of a scene into destDir and
// writes the scene metadata next to them, producing the layout ReadScene
// expects.
func (c *Client) Download(ctx context.Context, scene Scene, bands []string, destDir string) error {
	if err := utils.EnsureDirectory(destDir); err != nil {
		return err
	}

	for _, code := range bands {
		url, err := scene.AssetURL(code)
		if err != nil {
			return err
		}
		if err := c.downloadFile(ctx, url, path.Join(destDir, code+".asc.gz")); err != nil {
			return errors.Wrapf(err, "scene %s, band %s", scene.ID, code)
		}
	}

	meta := raster.Metadata{
		SceneID:    scene.ID,
		CloudCover: scene.CloudCover,
		Resolution: scene.Resolution,
		CRS:        scene.CRS,
	}
	bytes, err := json.MarshalIndent(meta, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path.Join(destDir, "scene.json"), bytes, 0o644)
}

func (c *Client) downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %s", resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
