package process

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"sort"
	"strconv"
	"time"

	"sen2compare/internal/config"
	"sen2compare/internal/manifest"
	"sen2compare/internal/pipeline"
	"sen2compare/internal/raster"
	"sen2compare/internal/simulate"
	"sen2compare/internal/utils"
	"sen2compare/internal/validate"
)

// Run is the process subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	configPtr := flagSet.String("config", "", "Path to config file")
	inputPtr := flagSet.String("in", "", "Path to data directory with fetched zones")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *configPtr == "" || *inputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Read(*configPtr)
	if err != nil {
		log.Fatal(err)
	}

	// baseline first, then every configured method, all through the same path
	methods := append([]simulate.Method{simulate.Baseline}, cfg.Methods...)

	for _, zone := range cfg.Zones {
		fmt.Printf("\n=== Processing %s ===\n", zone.Name)

		zoneDir := path.Join(*inputPtr, zone.ID)
		if err := validate.ZoneDirectory(zoneDir); err != nil {
			log.Fatal(err)
		}

		sceneDirs, err := listSceneDirs(path.Join(zoneDir, "raw"))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("ℹ️  Found %d fetched scenes\n", len(sceneDirs))

		var processed []raster.Metadata

		// n is the running position, idx the scene directory's name; the two
		// differ when raw/ has gaps
		for n, idx := range sceneDirs {
			sceneDir := path.Join(zoneDir, "raw", strconv.Itoa(idx))
			if err := validate.SceneDirectory(sceneDir, cfg.Bands); err != nil {
				fmt.Printf("⚠️  Skipping scene %d/%d: %s\n", n+1, len(sceneDirs), err)
				continue
			}

			timer = time.Now()
			fmt.Printf("▶️  Processing scene %d/%d (raw/%d)\n", n+1, len(sceneDirs), idx)

			scene, err := raster.ReadScene(sceneDir, cfg.Bands)
			if err != nil {
				fmt.Printf("⚠️  Skipping scene %d/%d: %s\n", n+1, len(sceneDirs), err)
				continue
			}

			results, err := pipeline.Run(scene, cfg.Compositions, methods)
			if err != nil {
				fmt.Printf("⚠️  Skipping scene %d/%d: %s\n", n+1, len(sceneDirs), err)
				continue
			}

			if err := pipeline.WriteArtifacts(zoneDir, idx, results); err != nil {
				log.Fatal(err)
			}
			if err := pipeline.WritePanels(zoneDir, zone.Name, idx, results); err != nil {
				log.Fatal(err)
			}

			processed = append(processed, scene.Meta())
			fmt.Printf("✔️  Processed scene %d/%d in %s\n", n+1, len(sceneDirs), time.Since(timer).String())
		}

		timer = time.Now()
		fmt.Println("▶️  Writing manifest.json")
		if err := manifest.Write(zoneDir, zone.ID, zone.Name, cfg.Bands, cfg.Compositions, methods, processed); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✔️  Wrote manifest.json in", time.Since(timer).String())

		fmt.Printf("ℹ️  Processed %d scenes, results in %s\n", len(processed), zoneDir)
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}

// listSceneDirs returns the numeric scene directory names in ascending order.
func listSceneDirs(rawDir string) ([]int, error) {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return nil, err
	}

	var indices []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		idx, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		if utils.IsDirectory(path.Join(rawDir, entry.Name())) {
			indices = append(indices, idx)
		}
	}

	sort.Ints(indices)
	return indices, nil
}
