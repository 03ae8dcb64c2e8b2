package fetch

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"sen2compare/internal/catalog"
	"sen2compare/internal/config"
	"sen2compare/internal/roi"
	"sen2compare/internal/utils"
)

// Run is the fetch subcommand's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	configPtr := flagSet.String("config", "", "Path to config file")
	outputPtr := flagSet.String("out", "", "Path to data directory")

	flagSet.Parse(os.Args[2:])

	// make sure both flags are present
	if *configPtr == "" || *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Read(*configPtr)
	if err != nil {
		log.Fatal(err)
	}

	if err := utils.EnsureDirectory(*outputPtr); err != nil {
		log.Fatal(err)
	}

	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Collection)
	ctx := context.Background()

	for _, zone := range cfg.Zones {
		fmt.Printf("\n=== Fetching %s ===\n", zone.Name)

		zoneDir := path.Join(*outputPtr, zone.ID)
		if err := utils.EnsureDirectory(path.Join(zoneDir, "raw")); err != nil {
			log.Fatal(err)
		}

		timer = time.Now()
		fmt.Println("▶️  Loading region of interest")
		region, err := roi.Load(zone.ROI)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("✔️  Loaded region of interest in", time.Since(timer).String())

		timer = time.Now()
		fmt.Println("▶️  Searching for scenes")
		scenes, widened, err := client.SearchWithFallback(ctx, region, cfg.Filter, cfg.Fallback)
		if err != nil {
			log.Fatal(err)
		}
		if widened {
			fmt.Println("ℹ️  No scenes matched, widened the search window")
		}
		fmt.Printf("✔️  Found %d scenes in %s\n", len(scenes), time.Since(timer).String())

		for i, scene := range scenes {
			timer = time.Now()
			fmt.Printf("▶️  Downloading scene %d/%d (ID: %s, clouds: %.1f%%)\n", i+1, len(scenes), scene.ID, scene.CloudCover)

			sceneDir := path.Join(zoneDir, "raw", fmt.Sprintf("%d", i))
			if err := client.Download(ctx, scene, cfg.Bands, sceneDir); err != nil {
				log.Fatal(err)
			}

			fmt.Printf("✔️  Downloaded scene %d in %s\n", i+1, time.Since(timer).String())
		}
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())
}
