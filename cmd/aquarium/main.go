// Package main is the entry point for the aquarium.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/audio"
	"github.com/Faultbox/aquarium/internal/engine/debug"
	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/engine/term"
	"github.com/Faultbox/aquarium/internal/engine/window"
	"github.com/Faultbox/aquarium/internal/game"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/storage"
)

// termScale maps canvas units to half-block pixels. A terminal cell is
// roughly 8×16 pixels, so one half block covers about 5×5 canvas units.
const termScale = 0.2

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger. The terminal renderer owns stdout and stderr, so
	// it logs to a file only.
	if cfg.Window.Terminal {
		logFile := cfg.Logging.LogFile
		if logFile == "" {
			logFile = filepath.Join(config.ConfigDir(), "aquarium.log")
		}
		err = logger.InitWithFileConfig(cfg.Logging.Level, logger.DefaultFileConfig(logFile), false)
	} else {
		err = logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Aquarium ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("aquarium error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("aquarium closed normally")
}

func run(cfg *config.Config) error {
	dataDir := cfg.StorageDir()
	store, err := storage.OpenFileStore(dataDir, cfg.Storage.AppNamespace)
	if err != nil {
		return fmt.Errorf("open app store: %w", err)
	}
	shared, err := storage.OpenFileStore(dataDir, cfg.Storage.SharedNamespace)
	if err != nil {
		return fmt.Errorf("open shared store: %w", err)
	}
	logger.Info("storage ready", zap.String("dir", dataDir))

	snd := audio.New()
	snd.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	snd.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	snd.SetMuted(cfg.Audio.Muted)
	if err := snd.Init(); err != nil {
		// Sound is optional; every play call is a no-op without it.
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer snd.Close()

	opts := game.Options{
		Config:      cfg,
		Store:       store,
		Shared:      shared,
		Audio:       snd,
		PickImage:   pickImage,
		Screenshots: debug.NewScreenshotCapture(filepath.Join(dataDir, "screenshots"), "aquarium"),
	}

	if cfg.Window.Terminal {
		return runTerminal(cfg, opts)
	}
	return runWindow(cfg, opts)
}

func runWindow(cfg *config.Config, opts game.Options) error {
	win, err := window.New(window.Config{
		Title:      "Aquarium",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	g := game.New(opts)
	g.Resize(win.GetSize())

	var frameTime time.Duration
	if cfg.Window.FPSLimit > 0 {
		frameTime = time.Second / time.Duration(cfg.Window.FPSLimit)
	}

	q := input.New()
	title := ""
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")
	for g.Running() {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if window.PollEvents(q) {
			break
		}

		// 2. Update
		if err := g.Step(q, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render and present
		if err := win.Present(g.Draw()); err != nil {
			return fmt.Errorf("present error: %w", err)
		}
		if t := g.Title(); t != title {
			win.SetTitle(t)
			title = t
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameTime > 0 {
			if elapsed := time.Since(now); elapsed < frameTime {
				time.Sleep(frameTime - elapsed)
			}
		}
	}
	return nil
}

func runTerminal(cfg *config.Config, opts game.Options) error {
	scr, err := term.New()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer scr.Close()

	opts.Scale = termScale
	g := game.New(opts)
	g.Resize(scr.Size())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fps := cfg.Window.FPSLimit
	if fps <= 0 {
		fps = 30
	}

	var stepErr error
	lastTime := time.Now()
	err = scr.Run(ctx, time.Second/time.Duration(fps), func(q *input.Queue) bool {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if stepErr = g.Step(q, dt); stepErr != nil || !g.Running() {
			return false
		}
		scr.Present(g.Draw())
		return true
	})
	if stepErr != nil {
		return fmt.Errorf("update error: %w", stepErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pickImage asks for a picture to turn into a creature. A cancelled dialog
// returns no data and no error.
func pickImage() ([]byte, error) {
	path, err := dialog.File().
		Filter("Images", "png", "jpg", "jpeg", "bmp").
		Title("Add a creature").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file dialog: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logger.Info("image picked", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}
