// aquarium-widget renders the home-screen widget timeline from the snapshot
// the aquarium shares.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/storage"
	"github.com/Faultbox/aquarium/internal/widget"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render":
		cmdRender(args)
	case "timeline", "ls":
		cmdTimeline(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`aquarium-widget - render the aquarium home-screen widget

Usage:
  aquarium-widget <command> [options]

Commands:
  render [-family f] [-out dir] [-data dir]   Write one PNG per timeline entry
  timeline [-data dir]                        Print the timeline entries

Families: small (170x170), medium (364x170), large (364x382), all

Examples:
  aquarium-widget render -family medium -out ./widget
  aquarium-widget timeline`)
}

// provider opens the shared namespace the aquarium writes.
func provider(dataDir string, verbose bool) *widget.Provider {
	level := "warn"
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if dataDir == "" {
		dataDir = cfg.StorageDir()
	}

	shared, err := storage.OpenFileStore(dataDir, cfg.Storage.SharedNamespace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return widget.NewProvider(shared, nil)
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	family := fs.String("family", "all", "Widget family: small, medium, large or all")
	out := fs.String("out", ".", "Output directory")
	data := fs.String("data", "", "Aquarium data directory")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	families := widget.Families
	if *family != "all" {
		f, err := widget.ParseFamily(*family)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		families = []widget.Family{f}
	}

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	p := provider(*data, *verbose)
	defer logger.Sync()
	timeline := p.Timeline(time.Now())

	written := 0
	for i, entry := range timeline.Entries {
		for _, f := range families {
			name := filepath.Join(*out, fmt.Sprintf("widget_%s_%02d.png", f, i))
			if err := writePNG(name, entry, f); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			written++
		}
	}
	fmt.Printf("Wrote %d images to %s (refresh at %s)\n", written, *out, timeline.RefreshAt.Format(time.Kitchen))
}

func writePNG(name string, entry widget.Entry, f widget.Family) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer file.Close()
	if err := png.Encode(file, widget.Render(entry, f)); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}

func cmdTimeline(args []string) {
	fs := flag.NewFlagSet("timeline", flag.ExitOnError)
	data := fs.String("data", "", "Aquarium data directory")
	fs.Parse(args)

	p := provider(*data, false)
	defer logger.Sync()
	timeline := p.Timeline(time.Now())

	fmt.Printf("%-3s %-8s %-10s %s\n", "#", "TIME", "MODE", "CREATURES")
	for i, e := range timeline.Entries {
		fmt.Printf("%-3d %-8s %-10s %d\n", i, e.Date.Format("15:04"), e.Mode, len(e.Creatures))
	}
	fmt.Printf("\nRefresh at %s\n", timeline.RefreshAt.Format("2006-01-02 15:04"))
}
