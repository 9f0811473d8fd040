package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"strava-heatmaps/internal/aggregate"
	"strava-heatmaps/internal/config"
	"strava-heatmaps/internal/logging"
	"strava-heatmaps/internal/palette"
	"strava-heatmaps/internal/payload"
	"strava-heatmaps/internal/service"
	"strava-heatmaps/internal/store"
	"strava-heatmaps/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	offline := flag.Bool("offline", false, "show the latest cached snapshot instead of fetching")
	file := flag.String("file", "", "load the payload from a local JSON file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set source.url to the location of your generated data.json.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *file != "" {
		cfg.Source.File = *file
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	logFile, err := config.ResolvePath(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("resolving log file: %w", err)
	}
	closer := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   logFile,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	defer closer.Close()

	// Open the snapshot cache
	var db *store.Store
	if cfg.Cache.Enabled {
		path, err := config.ResolvePath(cfg.Cache.Path)
		if err != nil {
			return fmt.Errorf("resolving cache path: %w", err)
		}
		db, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()
	}

	p, status, err := loadPayload(cfg, db, *offline)
	if err != nil {
		log.WithError(err).Error("payload unavailable")
		return errors.New(payload.Unavailable(err))
	}

	opts := []service.Option{
		service.WithVisibleYears(aggregate.VisibleYearsPolicy(cfg.Display.VisibleYears)),
		service.WithPaletteOptions(palette.WithAccentOverrides(cfg.Display.Accents)),
	}
	session := service.NewSession(p, opts...)

	// Launch TUI
	app := tui.NewApp(session, db, status, opts...)
	program := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

// loadPayload fetches the payload once and caches it. Offline mode reads
// the latest cached snapshot instead.
func loadPayload(cfg *config.Config, db *store.Store, offline bool) (*payload.Payload, string, error) {
	if offline {
		if db == nil {
			return nil, "", errors.New("offline mode needs cache.enabled")
		}
		snap, err := db.LatestSnapshot()
		if err != nil {
			return nil, "", fmt.Errorf("reading cached snapshot: %w", err)
		}
		p, err := payload.Parse(snap.Body)
		if err != nil {
			return nil, "", fmt.Errorf("parsing cached snapshot: %w", err)
		}
		return p, fmt.Sprintf("Offline: snapshot from %s", humanize.Time(snap.FetchedAt)), nil
	}

	var loader payload.Loader
	if cfg.Source.File != "" {
		path, err := config.ResolvePath(cfg.Source.File)
		if err != nil {
			return nil, "", fmt.Errorf("resolving payload file: %w", err)
		}
		loader = payload.NewFileLoader(path)
	} else {
		loader = payload.NewHTTPLoader(cfg.Source.URL, cfg.Source.Token, cfg.Timeout())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout()+5*time.Second)
	defer cancel()

	p, body, err := loader.Load(ctx)
	if err != nil {
		if db != nil {
			if serr := db.SetSyncState(store.StateLastFailure, err.Error()); serr != nil {
				log.WithError(serr).Warn("recording fetch failure")
			}
		}
		return nil, "", err
	}

	if db != nil {
		if _, err := db.SaveSnapshot(loader.Source(), p, body); err != nil {
			log.WithError(err).Warn("caching snapshot")
		} else if n, err := db.PruneSnapshots(cfg.Cache.Keep); err != nil {
			log.WithError(err).Warn("pruning snapshots")
		} else if n > 0 {
			log.WithField("removed", n).Debug("pruned old snapshots")
		}
	}

	return p, fmt.Sprintf("Loaded %s activities", humanize.Comma(int64(len(p.Activities)))), nil
}
