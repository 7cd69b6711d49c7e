// Package screen drives a greeter session on a raw tcell screen.
package screen

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/greeter"
)

// Adapter exposes a tcell screen as a cell.Screen. Colors are palette
// indices in both directions.
type Adapter struct {
	Screen tcell.Screen
}

func (a Adapter) Size() (int, int) { return a.Screen.Size() }

func (a Adapter) Cell(x, y int) cell.Cell {
	w, h := a.Screen.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return cell.Cell{}
	}
	ch, _, style, _ := a.Screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return cell.Cell{Ch: ch, Fg: paletteIndex(fg), Bg: paletteIndex(bg)}
}

func (a Adapter) SetCell(x, y int, c cell.Cell) {
	w, h := a.Screen.Size()
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	ch := c.Ch
	if ch == 0 {
		ch = ' '
	}
	st := tcell.StyleDefault.
		Foreground(tcell.PaletteColor(int(c.Fg))).
		Background(tcell.PaletteColor(int(c.Bg)))
	a.Screen.SetContent(x, y, ch, nil, st)
}

func paletteIndex(c tcell.Color) cell.Color {
	if c == tcell.ColorDefault || c&tcell.ColorIsRGB != 0 {
		return cell.Black
	}
	return cell.Color(c &^ tcell.ColorValid)
}

// Run paints a frame every interval and feeds key presses to the session
// until a key yields an action or ctx ends. The caller owns Init and Fini.
func Run(ctx context.Context, scr tcell.Screen, s *greeter.Session, interval time.Duration) (greeter.Action, error) {
	if interval <= 0 {
		interval = time.Second / 20
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scr.HideCursor()
	scr.Clear()
	out := Adapter{Screen: scr}
	w, h := scr.Size()
	s.Start(w, h)
	frame := func() {
		s.Draw(out)
		scr.Show()
	}
	frame()

	events := make(chan tcell.Event, 16)
	go poll(ctx, scr, events)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return greeter.ActionNone, ctx.Err()
		case <-ticker.C:
			frame()
		case ev, ok := <-events:
			if !ok {
				return greeter.ActionQuit, nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				scr.Sync()
				s.Resize(ev.Size())
				frame()
			case *tcell.EventKey:
				k, r := mapKey(ev)
				if k == greeter.KeyNone {
					continue
				}
				if a := s.HandleKey(ctx, k, r); a != greeter.ActionNone {
					return a, nil
				}
				frame()
			}
		}
	}
}

// poll forwards events until the screen is finalized or ctx ends.
func poll(ctx context.Context, scr tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func mapKey(ev *tcell.EventKey) (greeter.Key, rune) {
	switch ev.Key() {
	case tcell.KeyRune:
		return greeter.KeyRune, ev.Rune()
	case tcell.KeyEnter:
		return greeter.KeyEnter, 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return greeter.KeyBackspace, 0
	case tcell.KeyDelete:
		return greeter.KeyDelete, 0
	case tcell.KeyLeft:
		return greeter.KeyLeft, 0
	case tcell.KeyRight:
		return greeter.KeyRight, 0
	case tcell.KeyUp:
		return greeter.KeyUp, 0
	case tcell.KeyDown:
		return greeter.KeyDown, 0
	case tcell.KeyTab:
		return greeter.KeyTab, 0
	case tcell.KeyF1:
		return greeter.KeyF1, 0
	case tcell.KeyF2:
		return greeter.KeyF2, 0
	case tcell.KeyCtrlC:
		return greeter.KeyCtrlC, 0
	default:
		return greeter.KeyNone, 0
	}
}
