package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/budcare/budcare-registry/pkg/importer"
)

func sourceDBPath(dataDir string) string {
	return filepath.Join(dataDir, "sources.db")
}

func cmdImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	source := fs.String("source", "", "adapter ID to import (e.g. budcare-strains)")
	all := fs.Bool("all", false, "import all available sources")
	dataDir := fs.String("data-dir", "data", "output directory for dataset snapshots")
	fs.Parse(args)

	// Open source DB and seed defaults.
	sdb, err := importer.OpenSourceDB(sourceDBPath(*dataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sources.db: %v\n", err)
		os.Exit(1)
	}
	defer sdb.Close()

	if err := sdb.Seed(importer.All()); err != nil {
		fmt.Fprintf(os.Stderr, "Error seeding sources: %v\n", err)
		os.Exit(1)
	}

	if !*all && *source == "" {
		fmt.Println("Available sources:")
		fmt.Println()
		sources, _ := sdb.ListSources()
		for _, src := range sources {
			status := ""
			if src.LastStatus != nil {
				status = fmt.Sprintf("  [%d]", *src.LastStatus)
			}
			fmt.Printf("  %-18s  %s  (-> %s)%s\n", src.AdapterID, src.Description, src.DatasetFile, status)
		}
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  budcare import --source <id> [--data-dir <dir>]")
		fmt.Println("  budcare import --all [--data-dir <dir>]")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *all {
		for _, a := range importer.All() {
			url, err := sdb.GetURL(a.ID())
			if err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
				continue
			}
			fmt.Printf("[%s] Importing...\n", a.ID())
			if err := a.Import(ctx, url, *dataDir); err != nil {
				fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
				continue
			}
			fmt.Printf("[%s] OK\n", a.ID())
		}
		return
	}

	a, err := importer.Get(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Println("\nAvailable sources:")
		for _, a := range importer.All() {
			fmt.Printf("  %s\n", a.ID())
		}
		os.Exit(1)
	}

	url, err := sdb.GetURL(a.ID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR (URL): %v\n", a.ID(), err)
		os.Exit(1)
	}

	fmt.Printf("[%s] Importing...\n", a.ID())
	if err := a.Import(ctx, url, *dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "[%s] ERROR: %v\n", a.ID(), err)
		os.Exit(1)
	}
	fmt.Printf("[%s] OK -> %s/%s\n", a.ID(), *dataDir, a.DatasetFile())
}
