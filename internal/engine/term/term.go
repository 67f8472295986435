// Package term presents frames in a terminal with tcell. Every cell shows two
// vertically stacked pixels as an upper half block, so a cols×rows terminal
// is a cols×(rows*2) canvas.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/engine/input"
	"github.com/Faultbox/aquarium/internal/logger"
)

const halfBlock = '▀'

// Screen wraps a tcell screen.
type Screen struct {
	screen  tcell.Screen
	buttons tcell.ButtonMask
	log     *zap.Logger
}

// New opens the controlling terminal.
func New() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(screen)
}

// Wrap initializes an existing tcell screen, such as a simulation screen.
func Wrap(screen tcell.Screen) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	s := &Screen{
		screen: screen,
		log:    logger.Named("term"),
	}
	w, h := s.Size()
	s.log.Info("terminal opened", zap.Int("width", w), zap.Int("height", h))
	return s, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Size returns the canvas size in pixels.
func (s *Screen) Size() (int, int) {
	cols, rows := s.screen.Size()
	return cols, rows * 2
}

// Present draws frame, one cell per two pixel rows. Pixels outside frame are
// black.
func (s *Screen) Present(frame *image.RGBA) {
	cols, rows := s.screen.Size()
	for row := 0; row < rows; row++ {
		for x := 0; x < cols; x++ {
			top := pixel(frame, x, row*2)
			bottom := pixel(frame, x, row*2+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			s.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	s.screen.Show()
}

func pixel(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}.In(img.Rect)) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	i := img.PixOffset(x, y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}

// Translate converts a tcell event into input events on q.
func (s *Screen) Translate(ev tcell.Event, q *input.Queue) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		q.Push(input.Event{Type: input.EventWindowResize, Width: cols, Height: rows * 2})

	case *tcell.EventKey:
		key := translateKey(ev)
		if ev.Key() == tcell.KeyCtrlC {
			q.Push(input.Event{Type: input.EventQuit})
			return
		}
		if key != input.KeyUnknown {
			// Terminals report presses only.
			q.Push(input.Event{Type: input.EventKeyDown, Key: key})
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := x, y*2
		q.Push(input.Event{Type: input.EventMouseMove, MouseX: px, MouseY: py})

		buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		pressed := buttons &^ s.buttons
		released := s.buttons &^ buttons
		s.buttons = buttons
		if pressed != 0 {
			q.Push(input.Event{Type: input.EventMouseDown, MouseX: px, MouseY: py, Button: buttonIndex(pressed)})
		}
		if released != 0 {
			q.Push(input.Event{Type: input.EventMouseUp, MouseX: px, MouseY: py, Button: buttonIndex(released)})
		}
	}
}

func translateKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.KeyFromRune(ev.Rune())
	case tcell.KeyTab:
		return input.KeyTab
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyDelete
	case tcell.KeyF12:
		return input.KeyF12
	}
	return input.KeyUnknown
}

// buttonIndex numbers buttons like SDL: 1 left, 2 middle, 3 right.
func buttonIndex(m tcell.ButtonMask) uint8 {
	switch {
	case m&tcell.Button1 != 0:
		return 1
	case m&tcell.Button3 != 0:
		return 2
	case m&tcell.Button2 != 0:
		return 3
	}
	return 0
}

// Run calls frame every interval with the events gathered since the previous
// call, until frame returns false or ctx is cancelled.
func (s *Screen) Run(ctx context.Context, interval time.Duration, frame func(q *input.Queue) bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	q := input.New()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			s.Translate(ev, q)
		case <-ticker.C:
			if !frame(q) {
				return nil
			}
			q.Reset()
		}
	}
}
