package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCaptureFromImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "aquarium")
	at := time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC)
	sc.SetClock(func() time.Time { return at })

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})

	first, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("CaptureFromImage: %v", err)
	}
	if want := filepath.Join(dir, "aquarium_2026-03-01_12-30-05.png"); first != want {
		t.Errorf("filename = %q, want %q", first, want)
	}

	second, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("second capture: %v", err)
	}
	if second == first {
		t.Error("same-second captures overwrote each other")
	}

	f, err := os.Open(first)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
}

func TestCaptureRejectsEmpty(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "x")
	if _, err := sc.CaptureFromImage(image.NewRGBA(image.Rectangle{})); err == nil {
		t.Error("empty image accepted")
	}
}
