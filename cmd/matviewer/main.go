// Material Viewer - a BRDF preview panel and a realistic/stylized texture
// comparison viewer.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/config"
	"github.com/Faultbox/aquarium/internal/engine/debug"
	"github.com/Faultbox/aquarium/internal/engine/ui"
	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/material"
	"github.com/Faultbox/aquarium/internal/storage"
)

const (
	sidebarWidth = 340
	previewSize  = 320 // Shaded swatch resolution
	viewSize     = 192 // Comparison viewport resolution
	materialKey  = "material"
	storeName    = "matviewer"
	noticeTime   = 2 * time.Second
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("material viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

// App is the material viewer state.
type App struct {
	backend *ui.Backend
	store   storage.Store
	log     *zap.Logger

	panel   *material.Panel
	compare *material.Compare

	// Previews are re-rendered only when marked dirty.
	swatch        ui.Preview
	swatchDirty   bool
	views         []ui.Preview
	viewsDirty    bool
	spin          bool // Auto-rotate the swatch
	lastFrame     time.Time
	uploadSurface string
	uploadStyle   material.Style

	// File dialogs run off the main thread and hand their result back here.
	pending chan upload

	stats               *debug.FrameStats
	shots               *debug.ScreenshotCapture
	screenshotRequested bool
	notice              string
	noticeAt            time.Time
}

// NewApp opens the window and restores the last edited material.
func NewApp(cfg *config.Config) (*App, error) {
	store, err := storage.OpenFileStore(cfg.StorageDir(), storeName)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	app := &App{
		store:         store,
		log:           logger.Named("matviewer"),
		panel:         material.NewPanel(),
		compare:       material.NewCompare(),
		swatchDirty:   true,
		viewsDirty:    true,
		uploadSurface: material.SurfaceNames[0],
		pending:       make(chan upload, 4),
		stats:         debug.NewFrameStats(),
		shots:         debug.NewScreenshotCapture(filepath.Join(cfg.StorageDir(), "screenshots"), "matviewer"),
	}
	app.restore()

	app.backend, err = ui.NewBackend("Material Viewer", 1280, 800)
	if app.backend == nil {
		return nil, err
	}
	if err != nil {
		// The window works without GL reads; only screenshots are lost.
		app.log.Warn("screenshots disabled", zap.Error(err))
	}
	return app, nil
}

// restore loads the saved material into the panel. A missing entry keeps
// the defaults.
func (app *App) restore() {
	var m material.Material
	err := storage.Load(app.store, materialKey, &m)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		app.log.Warn("saved material unreadable", zap.Error(err))
		return
	}
	app.panel.Load(m)
	app.log.Info("material restored")
}

func (app *App) persist() {
	if err := storage.Save(app.store, materialKey, app.panel.Material); err != nil {
		app.log.Warn("save material", zap.Error(err))
	}
}

// Close saves the material and frees the preview textures.
func (app *App) Close() {
	app.persist()
	app.swatch.Release()
	for i := range app.views {
		app.views[i].Release()
	}
}

// Run starts the main render loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Capture at the start of the frame so the previous one is complete.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	app.drainUploads()

	if ui.IsKeyPressed(imgui.KeyF12) {
		app.screenshotRequested = true
	}

	now := time.Now()
	dt := now.Sub(app.lastFrame)
	app.lastFrame = now
	app.stats.Update(dt)
	if app.compare.Advance(dt) {
		app.viewsDirty = true
	}
	if app.spin {
		app.panel.Rotation = material.Spin(app.panel.Rotation, dt)
		app.swatchDirty = true
	}

	x, y, w, h := app.backend.GetViewport()

	imgui.SetNextWindowPos(imgui.NewVec2(x, y))
	imgui.SetNextWindowSize(imgui.NewVec2(sidebarWidth, h))
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Controls", nil, flags) {
		if imgui.BeginTabBar("Modes") {
			if imgui.BeginTabItem("Material") {
				app.renderMaterialControls()
				imgui.EndTabItem()
			}
			if imgui.BeginTabItem("Compare") {
				app.renderCompareControls()
				imgui.EndTabItem()
			}
			imgui.EndTabBar()
		}
		imgui.Separator()
		imgui.Checkbox("Stats", &app.stats.Enabled)
		imgui.SameLine()
		imgui.Checkbox("Memory", &app.stats.ShowMemory)
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(x+sidebarWidth, y))
	imgui.SetNextWindowSize(imgui.NewVec2(w-sidebarWidth, h))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreviews(w - sidebarWidth - 20)
	}
	imgui.End()

	ui.DrawStats(app.stats, x+sidebarWidth, y, w-sidebarWidth)
	app.renderNotice(x, y, w, h)
}

func (app *App) notify(msg string) {
	app.notice = msg
	app.noticeAt = time.Now()
}

func (app *App) captureScreenshot() {
	img, err := app.backend.CaptureFrame()
	if err != nil {
		app.notify("Screenshot failed: " + err.Error())
		return
	}
	path, err := app.shots.CaptureFromImage(img)
	if err != nil {
		app.notify("Screenshot failed: " + err.Error())
		return
	}
	app.log.Info("screenshot saved", zap.String("path", path))
	app.notify("Screenshot saved: " + filepath.Base(path))
}

func (app *App) renderNotice(x, y, w, h float32) {
	if app.notice == "" || time.Since(app.noticeAt) > noticeTime {
		return
	}
	const msgWidth = 420
	imgui.SetNextWindowPos(imgui.NewVec2(x+(w-msgWidth)/2, y+h-60))
	imgui.SetNextWindowSize(imgui.NewVec2(msgWidth, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove |
		imgui.WindowFlagsNoScrollbar | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Notice", nil, flags) {
		imgui.TextColored(imgui.NewVec4(0.2, 1.0, 0.2, 1.0), app.notice)
	}
	imgui.End()
}
