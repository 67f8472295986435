// Package ui wraps the cimgui-go SDL backend used by the material viewer.
package ui

import (
	"fmt"
	"image"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
	glReady bool
}

// NewBackend creates the window and the ImGui context.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetBgColor(imgui.NewVec4(0.06, 0.06, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	// GL function pointers are only needed for framebuffer reads.
	if err := gl.Init(); err != nil {
		return b, fmt.Errorf("init opengl: %w", err)
	}
	b.glReady = true

	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetViewport returns the main viewport work area.
func (b *Backend) GetViewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// CaptureFrame reads the currently displayed framebuffer. Call it at the
// start of a frame so the previous frame is complete.
func (b *Backend) CaptureFrame() (*image.RGBA, error) {
	if !b.glReady {
		return nil, fmt.Errorf("opengl not initialized")
	}

	io := imgui.CurrentIO()
	displaySize := io.DisplaySize()
	fbScale := io.DisplayFramebufferScale()
	width := int(displaySize.X * fbScale.X)
	height := int(displaySize.Y * fbScale.Y)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", width, height)
	}

	gl.ReadBuffer(gl.FRONT)
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK)

	// OpenGL rows start at the bottom.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Preview is a texture that is replaced whenever its image changes.
type Preview struct {
	tex  *backend.Texture
	w, h int
}

// Set uploads img, releasing the previous texture.
func (p *Preview) Set(img *image.RGBA) {
	p.Release()
	p.tex = backend.NewTextureFromRgba(img)
	p.w, p.h = img.Rect.Dx(), img.Rect.Dy()
}

// Valid reports whether an image has been uploaded.
func (p *Preview) Valid() bool {
	return p.tex != nil
}

// Draw shows the texture scaled to fit size, keeping its aspect ratio.
func (p *Preview) Draw(size float32) {
	if p.tex == nil || p.w == 0 || p.h == 0 {
		imgui.TextDisabled("No preview")
		return
	}
	w, h := size, size*float32(p.h)/float32(p.w)
	imgui.ImageWithBgV(
		p.tex.ID,
		imgui.NewVec2(w, h),
		imgui.NewVec2(0, 0),
		imgui.NewVec2(1, 1),
		imgui.NewVec4(0, 0, 0, 0),
		imgui.NewVec4(1, 1, 1, 1),
	)
}

// Release frees the GPU texture.
func (p *Preview) Release() {
	if p.tex != nil {
		p.tex.Release()
		p.tex = nil
	}
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}
