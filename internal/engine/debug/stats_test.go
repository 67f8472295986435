package debug

import (
	"strings"
	"testing"
	"time"
)

func TestFrameStatsFPS(t *testing.T) {
	s := NewFrameStats()
	for i := 0; i < 30; i++ {
		s.Update(20 * time.Millisecond)
	}
	// 25 frames fill the first half-second window.
	if got := s.FPS(); got < 49.9 || got > 50.1 {
		t.Errorf("FPS = %v, want 50", got)
	}
	if s.FrameTime() != 20*time.Millisecond {
		t.Errorf("FrameTime = %v", s.FrameTime())
	}
}

func TestFrameStatsLines(t *testing.T) {
	s := NewFrameStats()
	s.Rendered(1500 * time.Microsecond)
	s.Rendered(2500 * time.Microsecond)
	lines := s.Lines()
	if len(lines) != 1 || lines[0] != "Renders: 2 (last 2.5 ms)" {
		t.Errorf("Lines = %q", lines)
	}

	s.ShowMemory = true
	s.Update(time.Millisecond)
	lines = s.Lines()
	if len(lines) != 4 || !strings.HasPrefix(lines[1], "Alloc: ") {
		t.Errorf("Lines with memory = %q", lines)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
