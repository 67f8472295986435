package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/engine/ui"
	"github.com/Faultbox/aquarium/internal/material"
)

// upload is a file picked in a dialog, waiting to be applied on the main
// thread. A zero surface means the normal map of the material panel.
type upload struct {
	surface string
	style   material.Style
	slot    material.Slot
	name    string
	data    []byte
}

// pickFile opens a file dialog in the background and queues the result.
func (app *App) pickFile(title string, u upload) {
	go func() {
		path, err := dialog.File().
			Filter("Images", "png", "jpg", "jpeg").
			Title(title).
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				app.log.Warn("file dialog", zap.Error(err))
			}
			return
		}
		data, err := os.ReadFile(path)
		if err != nil {
			app.log.Warn("read texture", zap.String("path", path), zap.Error(err))
			return
		}
		u.name = filepath.Base(path)
		u.data = data
		app.pending <- u
	}()
}

func (app *App) drainUploads() {
	for {
		select {
		case u := <-app.pending:
			app.apply(u)
		default:
			return
		}
	}
}

func (app *App) apply(u upload) {
	if u.surface == "" {
		if err := app.panel.LoadNormalMap(u.data); err != nil {
			app.notify(err.Error())
			return
		}
		app.swatchDirty = true
		app.notify("Normal map: " + u.name)
		return
	}
	if err := app.compare.LoadTexture(u.surface, u.style, u.slot, u.data); err != nil {
		app.notify(err.Error())
		return
	}
	app.viewsDirty = true
	app.notify(fmt.Sprintf("%s %s %s: %s", u.surface, u.style, u.slot, u.name))
}

func (app *App) renderMaterialControls() {
	changed := false

	if imgui.CollapsingHeaderTreeNodeFlagsV("Properties", imgui.TreeNodeFlagsDefaultOpen) {
		for _, c := range material.Controls() {
			b := app.panel.Binding(c)
			if !b.Present {
				continue
			}
			r := c.Range()
			v := b.Value
			imgui.SetNextItemWidth(-120)
			if imgui.SliderFloatV(c.String(), &v, r.Min, r.Max, "%.2f", imgui.SliderFlagsNone) {
				app.panel.Set(c, v)
				changed = true
			}
		}
		if changed {
			app.panel.Update()
		}

		sw := app.panel.ColorSwatch
		imgui.TextColored(imgui.NewVec4(float32(sw.R)/255, float32(sw.G)/255, float32(sw.B)/255, 1), "■■■")
		imgui.SameLine()
		imgui.Text(app.panel.ColorText)
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Presets", imgui.TreeNodeFlagsDefaultOpen) {
		for i, name := range material.Names() {
			if i%3 != 0 {
				imgui.SameLine()
			}
			if imgui.ButtonV(name, imgui.NewVec2(100, 0)) {
				if err := app.panel.ApplyPreset(name); err != nil {
					app.notify(err.Error())
				}
				changed = true
			}
		}
		imgui.Separator()
		if imgui.BeginTable("States", 3) {
			for _, name := range material.Metals() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(name)
				for _, kind := range []material.StateKind{material.Normal, material.Weathered} {
					imgui.TableNextColumn()
					if imgui.Button(fmt.Sprintf("%s##%s", kind, name)) {
						if err := app.panel.ApplyState(name, kind); err != nil {
							app.notify(err.Error())
						}
						changed = true
					}
				}
			}
			imgui.EndTable()
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Geometry", imgui.TreeNodeFlagsDefaultOpen) {
		for _, g := range material.Geometries() {
			if imgui.SelectableBoolV(g.String(), app.panel.Geometry == g, 0, imgui.NewVec2(0, 0)) {
				app.panel.Geometry = g
				changed = true
			}
		}
		if imgui.Checkbox("Auto-rotate", &app.spin) && !app.spin {
			app.panel.Rotation = 0
			changed = true
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Lighting", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.ButtonV(app.panel.IBLLabel(), imgui.NewVec2(-1, 0)) {
			app.panel.ToggleIBL()
			changed = true
		}
		if app.environmentList("##env", app.panel.Environment, func(name string) error {
			return app.panel.SetEnvironment(name)
		}) {
			changed = true
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Normal Map", 0) {
		if imgui.Button("Upload...") {
			app.pickFile("Normal map", upload{})
		}
		imgui.SameLine()
		imgui.BeginDisabledV(app.panel.NormalMap == nil)
		if imgui.Button("Clear") {
			app.panel.NormalMap = nil
			changed = true
		}
		imgui.EndDisabled()
	}

	if changed {
		app.swatchDirty = true
	}
}

// environmentList draws a selectable list of environments and reports
// whether the selection changed.
func (app *App) environmentList(id, current string, set func(string) error) bool {
	changed := false
	if imgui.BeginListBoxV(id, imgui.NewVec2(-1, 120)) {
		for _, env := range material.Environments {
			if imgui.SelectableBoolV(env.Name, env.Name == current, 0, imgui.NewVec2(0, 0)) && env.Name != current {
				if err := set(env.Name); err != nil {
					app.notify(err.Error())
				} else {
					changed = true
				}
			}
		}
		imgui.EndListBox()
	}
	return changed
}

func (app *App) renderCompareControls() {
	c := app.compare
	changed := false

	blend := c.StyleBlend
	imgui.SetNextItemWidth(-80)
	if imgui.SliderFloatV("Style", &blend, 0, 100, "%.0f", imgui.SliderFlagsNone) {
		c.SetStyleBlend(blend)
		changed = true
	}
	imgui.TextDisabled(fmt.Sprintf("Showing %s textures", c.Active()))

	imgui.Separator()
	for i, mode := range []material.ViewMode{material.Quad, material.Single, material.SideBySide} {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.SelectableBoolV(mode.String(), c.Mode == mode, 0, imgui.NewVec2(90, 0)) {
			c.Mode = mode
			changed = true
		}
	}

	imgui.Text("Surface")
	for i, name := range material.SurfaceNames {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.SelectableBoolV(name, c.Current == name, 0, imgui.NewVec2(60, 0)) {
			if err := c.Select(name); err != nil {
				app.notify(err.Error())
			}
			changed = true
		}
	}

	imgui.Separator()
	if imgui.ButtonV(iblLabel(c.IBL()), imgui.NewVec2(-1, 0)) {
		c.ToggleIBL()
		changed = true
	}
	if app.environmentList("##cmpenv", c.Environment, c.SetEnvironment) {
		changed = true
	}
	imgui.Checkbox("Auto-rotate##cmp", &c.AutoRotate)
	imgui.SetNextItemWidth(-80)
	if imgui.SliderFloatV("Displacement", &c.DisplacementScale, 0, 2, "%.2f", imgui.SliderFlagsNone) {
		changed = true
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Textures", imgui.TreeNodeFlagsDefaultOpen) {
		app.renderUploads()
	}

	if changed {
		app.viewsDirty = true
	}
}

func (app *App) renderUploads() {
	for _, name := range material.SurfaceNames {
		if imgui.SelectableBoolV(name+"##upload", app.uploadSurface == name, 0, imgui.NewVec2(60, 0)) {
			app.uploadSurface = name
		}
		imgui.SameLine()
	}
	imgui.NewLine()
	for _, style := range []material.Style{material.Realistic, material.Stylized} {
		if imgui.SelectableBoolV(style.String(), app.uploadStyle == style, 0, imgui.NewVec2(90, 0)) {
			app.uploadStyle = style
		}
		imgui.SameLine()
	}
	imgui.NewLine()

	s, _ := app.compare.Surface(app.uploadSurface)
	if imgui.BeginTable("Slots", 2) {
		for _, slot := range material.Slots() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if s != nil && s.Sets[app.uploadStyle][slot] != nil {
				imgui.TextColored(imgui.NewVec4(0.4, 0.8, 0.4, 1), slot.String())
			} else {
				imgui.TextDisabled(slot.String())
			}
			imgui.TableNextColumn()
			if imgui.Button("Upload##" + slot.String()) {
				app.pickFile(fmt.Sprintf("%s %s %s", app.uploadSurface, app.uploadStyle, slot), upload{
					surface: app.uploadSurface,
					style:   app.uploadStyle,
					slot:    slot,
				})
			}
		}
		imgui.EndTable()
	}
}

func iblLabel(on bool) string {
	if on {
		return "IBL Environment: ON##cmp"
	}
	return "IBL Environment: OFF##cmp"
}

// renderPreviews shows the shaded swatch and the comparison viewports,
// re-rendering whatever changed.
func (app *App) renderPreviews(width float32) {
	if app.swatchDirty {
		app.swatchDirty = false
		start := time.Now()
		app.swatch.Set(material.Shade(app.panel.Material, app.panel.ShadeOptions(previewSize)))
		app.stats.Rendered(time.Since(start))
	}
	if app.viewsDirty {
		app.viewsDirty = false
		app.refreshViews()
	}

	imgui.Text("Material")
	app.swatch.Draw(previewSize)

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Compare: %s", app.compare.Mode))
	views := app.compare.Views()
	cell := float32(viewSize)
	perRow := int(width / (cell + 8))
	if perRow < 1 {
		perRow = 1
	}
	for i, v := range views {
		if i%perRow != 0 {
			imgui.SameLine()
		}
		imgui.BeginGroup()
		imgui.Text(fmt.Sprintf("%s (%s)", v.Surface, v.Style))
		app.views[i].Draw(cell)
		imgui.EndGroup()
	}
}

func (app *App) refreshViews() {
	views := app.compare.Views()
	for len(app.views) > len(views) {
		last := len(app.views) - 1
		app.views[last].Release()
		app.views = app.views[:last]
	}
	for len(app.views) < len(views) {
		app.views = append(app.views, ui.Preview{})
	}
	for i, v := range views {
		start := time.Now()
		app.views[i].Set(app.compare.Render(v, viewSize))
		app.stats.Rendered(time.Since(start))
	}
}
