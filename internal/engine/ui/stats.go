package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/aquarium/internal/engine/debug"
)

// DrawStats renders the frame stats overlay at the top-right of the work
// area.
func DrawStats(s *debug.FrameStats, x, y, width float32) {
	if !s.Enabled {
		return
	}

	const w = 220
	imgui.SetNextWindowPos(imgui.NewVec2(x+width-w-10, y+10))
	imgui.SetNextWindowSize(imgui.NewVec2(w, 0))

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoInputs

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(8, 8))
	imgui.SetNextWindowBgAlpha(0.6)

	if imgui.BeginV("##Stats", nil, flags) {
		fps := s.FPS()
		fpsColor := imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
		if fps < 30 {
			fpsColor = imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
		} else if fps < 60 {
			fpsColor = imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
		}
		imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.1f", fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", float64(s.FrameTime().Microseconds())/1000))
		imgui.Separator()
		for _, line := range s.Lines() {
			imgui.Text(line)
		}
	}
	imgui.End()

	imgui.PopStyleVar()
}
