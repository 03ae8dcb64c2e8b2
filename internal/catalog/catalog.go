// Package catalog talks to the scene-catalog HTTP API: searching candidate
// scenes for a region of interest and downloading their band grids.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// Scene is one candidate acquisition returned by the catalog.
type Scene struct {
	ID         string            `json:"id"`
	Acquired   time.Time         `json:"acquired"`
	CloudCover float64           `json:"cloudCover"`
	Resolution float64           `json:"resolution"`
	CRS        string            `json:"crs"`
	Assets     map[string]string `json:"assets"`
}

// Filter narrows a catalog search by acquisition window and cloud cover.
type Filter struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	MaxCloud float64 `json:"maxCloud"`
}

// Client queries one catalog collection.
type Client struct {
	BaseURL    string
	Collection string
	HTTPClient *http.Client
}

// NewClient returns a client with a sane default timeout.
func NewClient(baseURL, collection string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Collection: collection,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type searchRequest struct {
	Collection string            `json:"collection"`
	Intersects *geojson.Geometry `json:"intersects"`
	Start      string            `json:"start"`
	End        string            `json:"end"`
	MaxCloud   float64           `json:"maxCloud"`
}

type searchResponse struct {
	Scenes []Scene `json:"scenes"`
}

// Search returns the scenes matching the region of interest and filter,
// sorted by ascending cloud cover.
func (c *Client) Search(ctx context.Context, region orb.Geometry, filter Filter) ([]Scene, error) {
	body, err := json.Marshal(searchRequest{
		Collection: c.Collection,
		Intersects: geojson.NewGeometry(region),
		Start:      filter.Start,
		End:        filter.End,
		MaxCloud:   filter.MaxCloud,
	})
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + "/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "catalog search")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("catalog search: unexpected status %s", resp.Status)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "catalog search: decoding response")
	}

	sort.SliceStable(decoded.Scenes, func(i, j int) bool {
		return decoded.Scenes[i].CloudCover < decoded.Scenes[j].CloudCover
	})

	return decoded.Scenes, nil
}

// SearchWithFallback searches with the primary filter first and retries once
// with the fallback filter when nothing matches. Which fallback window and
// cloud threshold to use is the caller's configuration, not a policy of this
// package.
func (c *Client) SearchWithFallback(ctx context.Context, region orb.Geometry, primary, fallback Filter) ([]Scene, bool, error) {
	scenes, err := c.Search(ctx, region, primary)
	if err != nil {
		return nil, false, err
	}
	if len(scenes) > 0 {
		return scenes, false, nil
	}

	scenes, err = c.Search(ctx, region, fallback)
	if err != nil {
		return nil, true, err
	}
	return scenes, true, nil
}

// AssetURL returns the download URL of one band of a scene.
func (s Scene) AssetURL(code string) (string, error) {
	url, found := s.Assets[code]
	if !found {
		return "", fmt.Errorf("scene %s has no asset for band %s", s.ID, code)
	}
	return url, nil
}
