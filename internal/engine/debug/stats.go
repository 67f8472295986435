package debug

import (
	"fmt"
	"runtime"
	"time"
)

// FrameStats tracks frame timing, preview render cost and memory use for
// the on-screen stats overlay.
type FrameStats struct {
	fps       float64
	frameTime time.Duration
	fpsWindow time.Duration
	frames    int

	memStats  runtime.MemStats
	memWindow time.Duration

	// Renders counts preview images shaded since the last Reset.
	Renders    int
	RenderTime time.Duration // Cost of the last shaded preview

	ShowMemory bool
	Enabled    bool
}

// NewFrameStats creates an enabled overlay.
func NewFrameStats() *FrameStats {
	return &FrameStats{Enabled: true}
}

// Update records one frame of dt.
func (s *FrameStats) Update(dt time.Duration) {
	s.frameTime = dt
	s.frames++
	s.fpsWindow += dt

	// FPS is refreshed every half second
	if s.fpsWindow >= 500*time.Millisecond {
		s.fps = float64(s.frames) / s.fpsWindow.Seconds()
		s.frames = 0
		s.fpsWindow = 0
	}

	if s.ShowMemory {
		s.memWindow += dt
		if s.memWindow >= 2*time.Second || s.memStats.Sys == 0 {
			runtime.ReadMemStats(&s.memStats)
			s.memWindow = 0
		}
	}
}

// Rendered records the cost of one shaded preview.
func (s *FrameStats) Rendered(d time.Duration) {
	s.Renders++
	s.RenderTime = d
}

// FPS returns the last measured frame rate.
func (s *FrameStats) FPS() float64 {
	return s.fps
}

// FrameTime returns the duration of the last frame.
func (s *FrameStats) FrameTime() time.Duration {
	return s.frameTime
}

// Lines formats everything but the FPS line.
func (s *FrameStats) Lines() []string {
	lines := []string{
		fmt.Sprintf("Renders: %d (last %.1f ms)", s.Renders, float64(s.RenderTime.Microseconds())/1000),
	}
	if s.ShowMemory {
		lines = append(lines,
			fmt.Sprintf("Alloc: %s", FormatBytes(int64(s.memStats.Alloc))),
			fmt.Sprintf("Sys: %s", FormatBytes(int64(s.memStats.Sys))),
			fmt.Sprintf("GC: %d", s.memStats.NumGC),
		)
	}
	return lines
}

// FormatBytes formats a byte count for display.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
