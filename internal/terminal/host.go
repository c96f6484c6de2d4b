package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/neon-rain/internal/misc"
	"github.com/iburimskiy/neon-rain/internal/rain"
)

// Host adapts a tcell screen to rain.Host. Events are dispatched on the
// goroutine that calls Dispatch, which must also drive the engine.
type Host struct {
	screen  tcell.Screen
	surface *Surface

	nextID int
	resize map[int]func(int, int)
	move   map[int]func(float64, float64)
	leave  map[int]func()
}

func NewHost(screen tcell.Screen) *Host {
	return &Host{
		screen: screen,
		resize: map[int]func(int, int){},
		move:   map[int]func(float64, float64){},
		leave:  map[int]func(){},
	}
}

func (h *Host) Acquire(width, height int) (rain.Surface, error) {
	if h.screen == nil || width <= 0 || height <= 0 {
		return nil, rain.ErrSurfaceUnavailable
	}
	h.surface = NewSurface(h.screen, width, height)
	return h.surface, nil
}

// Surface returns the most recently acquired surface.
func (h *Host) Surface() *Surface { return h.surface }

func (h *Host) OnResize(fn func(width, height int)) func() {
	id := h.register()
	h.resize[id] = fn
	return func() { delete(h.resize, id) }
}

func (h *Host) OnPointerMove(fn func(x, y float64)) func() {
	id := h.register()
	h.move[id] = fn
	return func() { delete(h.move, id) }
}

func (h *Host) OnPointerLeave(fn func()) func() {
	id := h.register()
	h.leave[id] = fn
	return func() { delete(h.leave, id) }
}

func (h *Host) register() int {
	h.nextID++
	return h.nextID
}

// Listeners reports how many callbacks are still registered.
func (h *Host) Listeners() int {
	return len(h.resize) + len(h.move) + len(h.leave)
}

// Resize reports the current screen size to every resize callback.
func (h *Host) Resize() {
	w, ht := h.screen.Size()
	for _, fn := range h.resize {
		fn(w, ht)
	}
}

// Dispatch routes one tcell event. It returns false when the user asked to quit.
func (h *Host) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.Resize()
	case *tcell.EventMouse:
		x, y := ev.Position()
		// pointer sits on the glyph baseline of its row
		px, py := float64(x), float64(y+1)
		for _, fn := range h.move {
			fn(px, py)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			for _, fn := range h.leave {
				fn()
			}
		}
	}
	return true
}

// Run drives engine on screen at fps until ctx ends or the user quits.
func Run(ctx context.Context, screen tcell.Screen, engine *rain.Engine, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	host := NewHost(screen)
	engine.Attach(host)
	defer engine.Close()
	host.Resize()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
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

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	misc.InfoLogger.Printf("terminal rain running at %d fps", fps)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !host.Dispatch(ev) {
				return nil
			}
		case <-ticker.C:
			engine.Tick()
			if s := host.Surface(); s != nil {
				s.Flush()
			}
		}
	}
}
