package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/aquarium/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_A:         input.KeyA,
	sdl.SCANCODE_I:         input.KeyI,
	sdl.SCANCODE_M:         input.KeyM,
	sdl.SCANCODE_T:         input.KeyT,
	sdl.SCANCODE_DELETE:    input.KeyDelete,
	sdl.SCANCODE_BACKSPACE: input.KeyDelete,
	sdl.SCANCODE_TAB:       input.KeyTab,
	sdl.SCANCODE_ESCAPE:    input.KeyEscape,
	sdl.SCANCODE_SPACE:     input.KeySpace,
	sdl.SCANCODE_F12:       input.KeyF12,
}

// PollEvents drains the SDL queue into q. Returns true if the app should quit.
func PollEvents(q *input.Queue) bool {
	q.Reset()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			q.Push(input.Event{Type: input.EventQuit})
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				q.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_ENTER:
				q.Push(input.Event{Type: input.EventMouseEnter})
			case sdl.WINDOWEVENT_LEAVE:
				q.Push(input.Event{Type: input.EventMouseLeave})
			}

		case *sdl.KeyboardEvent:
			key, ok := scancodes[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				q.Push(input.Event{Type: input.EventKeyDown, Key: key})
			} else if e.Type == sdl.KEYUP {
				q.Push(input.Event{Type: input.EventKeyUp, Key: key})
			}

		case *sdl.MouseMotionEvent:
			q.Push(input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
			})

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN {
				q.Push(input.Event{
					Type:   input.EventMouseDown,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			} else if e.Type == sdl.MOUSEBUTTONUP {
				q.Push(input.Event{
					Type:   input.EventMouseUp,
					MouseX: int(e.X),
					MouseY: int(e.Y),
					Button: e.Button,
				})
			}
		}
	}

	return false
}
