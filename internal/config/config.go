// Package config reads the run configuration. Band lists, compositions,
// methods and catalog filters are all data here so the same pipeline serves
// different band sets and method catalogs.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"sen2compare/internal/catalog"
	"sen2compare/internal/compose"
	"sen2compare/internal/simulate"
)

// Zone is one region of interest to process.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	ROI  string `json:"roi"`
}

// Catalog points at the scene-catalog service.
type Catalog struct {
	URL        string `json:"url"`
	Collection string `json:"collection"`
}

// Config represents the structure of a sen2compare config file.
type Config struct {
	Zones        []Zone            `json:"zones"`
	Bands        []string          `json:"bands"`
	Compositions []compose.Spec    `json:"compositions"`
	Methods      []simulate.Method `json:"methods"`
	Catalog      Catalog           `json:"catalog"`
	Filter       catalog.Filter    `json:"filter"`
	Fallback     catalog.Filter    `json:"fallback"`
}

// Read a config file from given path.
func Read(configPath string) (Config, error) {
	var cfg Config

	bytes, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for mistakes the pipeline would only
// notice mid-run.
func (c Config) Validate() error {
	if len(c.Zones) == 0 {
		return fmt.Errorf("config contains no zones")
	}
	for _, zone := range c.Zones {
		if zone.ID == "" {
			return fmt.Errorf("zone without id")
		}
	}

	if len(c.Bands) == 0 {
		return fmt.Errorf("config contains no bands")
	}
	if len(c.Compositions) == 0 {
		return fmt.Errorf("config contains no compositions")
	}

	known := map[string]bool{}
	for _, code := range c.Bands {
		known[code] = true
	}

	for _, spec := range c.Compositions {
		if err := spec.Validate(); err != nil {
			return err
		}
		for _, code := range spec.Bands {
			if !known[code] {
				return fmt.Errorf("composition %s references band %s, which is not in the band list %v", spec.Name, code, c.Bands)
			}
		}
	}

	for _, method := range c.Methods {
		if err := method.Validate(); err != nil {
			return err
		}
	}

	return nil
}
