package draw

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/config"
	"github.com/fchimpan/tgreet/internal/input"
	"github.com/fchimpan/tgreet/internal/layout"
	"github.com/fchimpan/tgreet/internal/led"
)

// clockLayout renders as "Dow YYYY Mon DD HH:MM:SS".
const clockLayout = "Mon 2006 Jan 02 15:04:05"

const clockWidth = 24

// Renderer paints the dialog and status bar.
type Renderer struct {
	Config  config.Config
	Encoder cell.Encoder
	Locks   led.Querier
	Now     func() time.Time
	Logger  *slog.Logger
}

func NewRenderer(cfg config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		Config: cfg,
		Locks:  led.Query,
		Now:    time.Now,
		Logger: logger,
	}
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// text encodes s and blits it at (x, y). If encoding fails the element is
// skipped and whatever was on screen stays.
func (r *Renderer) text(scr cell.Screen, name string, x, y int, s string, fg, bg cell.Color) {
	cells, err := r.Encoder.EncodeString(s, fg, bg)
	if err != nil {
		r.logger().Debug("skipping text element", "element", name, "error", err)
		return
	}
	cell.Blit(scr, x, y, len(cells), 1, cells)
}

// Labels paints the login and password captions and the info line.
func (r *Renderer) Labels(scr cell.Screen, buf *TermBuf) {
	cfg := r.Config
	b := buf.Box

	r.text(scr, "login label", b.X+cfg.MarginBoxH, b.Y+cfg.MarginBoxV+4, cfg.Lang.Login, cfg.Fg, cfg.Bg)
	r.text(scr, "password label", b.X+cfg.MarginBoxH, b.Y+cfg.MarginBoxV+6, cfg.Lang.Password, cfg.Fg, cfg.Bg)

	if buf.InfoLine != "" {
		x := b.X + (b.Width-runeLen(buf.InfoLine))/2
		r.text(scr, "info line", x, b.Y+cfg.MarginBoxV, buf.InfoLine, cfg.Fg, cfg.Bg)
	}
}

// PositionInputs places the selector and fields inside the box. It returns
// false, leaving them where they were, when the box leaves no room.
func (r *Renderer) PositionInputs(buf *TermBuf, desktop *input.DesktopList, login, password *input.Field) bool {
	f, ok := layout.Place(buf.Box, r.Config.MarginBoxH, r.Config.MarginBoxV)
	if !ok {
		return false
	}
	desktop.Place(f.Desktop.X, f.Desktop.Y, f.Desktop.VisibleLen)
	login.Place(f.Login.X, f.Login.Y, f.Login.VisibleLen)
	password.Place(f.Password.X, f.Password.Y, f.Password.VisibleLen)
	return true
}

// Field paints the visible window of f, left-aligned, blank-padded to its
// visible width.
func (r *Renderer) Field(scr cell.Screen, f *input.Field) {
	fg, bg := r.Config.Fg, r.Config.Bg
	window := f.Window()

	cells, err := r.Encoder.Encode([]byte(string(window)), len(window), fg, bg)
	if err != nil {
		r.logger().Debug("skipping field", "error", err)
		return
	}
	cell.Blit(scr, f.X, f.Y, len(cells), 1, cells)
	cell.Fill(scr, f.X+len(cells), f.Y, f.VisibleLen-len(cells), cell.Cell{Ch: ' ', Fg: fg, Bg: bg})
}

// MaskedField paints one mask glyph per occupied cell of the window and
// blanks the rest, so at most VisibleLen glyphs ever show.
func (r *Renderer) MaskedField(scr cell.Screen, f *input.Field) {
	mask := cell.Cell{Ch: r.Config.Mask(), Fg: r.Config.Fg, Bg: r.Config.Bg}
	blank := cell.Cell{Ch: ' ', Fg: r.Config.Fg, Bg: r.Config.Bg}

	for i := 0; i < f.VisibleLen; i++ {
		if f.VisibleStart+i < f.End {
			scr.SetCell(f.X+i, f.Y, mask)
		} else {
			scr.SetCell(f.X+i, f.Y, blank)
		}
	}
}

// Desktop paints the current entry between '<' and '>'.
func (r *Renderer) Desktop(scr cell.Screen, d *input.DesktopList) {
	fg, bg := r.Config.Fg, r.Config.Bg
	name := d.Current().Name

	n := min(runeLen(name), d.VisibleLen-3)
	if n < 0 {
		n = 0
	}

	scr.SetCell(d.X, d.Y, cell.Cell{Ch: '<', Fg: fg, Bg: bg})
	scr.SetCell(d.X+d.VisibleLen-1, d.Y, cell.Cell{Ch: '>', Fg: fg, Bg: bg})

	cells, err := r.Encoder.Encode([]byte(name), n, fg, bg)
	if err != nil {
		r.logger().Debug("skipping desktop name", "error", err)
		return
	}
	cell.Blit(scr, d.X+2, d.Y, len(cells), 1, cells)
}

// InfoBar paints the function-key hints, blanks the rest of row 0 and puts
// the clock above the box.
func (r *Renderer) InfoBar(scr cell.Screen, buf *TermBuf) {
	cfg := r.Config
	fg, bg := cfg.Fg, cfg.BarBg()
	f1 := runeLen(cfg.Lang.F1)
	f2 := runeLen(cfg.Lang.F2)

	r.text(scr, "f1 hint", 0, 0, cfg.Lang.F1, fg, bg)
	r.text(scr, "f2 hint", f1+1, 0, cfg.Lang.F2, fg, bg)

	blank := cell.Cell{Ch: ' ', Fg: fg, Bg: bg}
	scr.SetCell(f1, 0, blank)
	w, _ := scr.Size()
	cell.Fill(scr, f1+1+f2, 0, w-(f1+1+f2), blank)

	now := r.Now
	if now == nil {
		now = time.Now
	}
	stamp := now().Format(clockLayout)
	r.text(scr, "clock", buf.Box.X+(buf.Box.Width-clockWidth)/2, 0, stamp, fg, bg)
}

// LockState paints the NumLock and CapsLock captions at the right edge of
// row 0. If the console device cannot be read, the info line reports it.
func (r *Renderer) LockState(scr cell.Screen, buf *TermBuf) {
	cfg := r.Config
	query := r.Locks
	if query == nil {
		query = led.Query
	}

	st, err := query(cfg.ConsoleDev)
	if err != nil {
		if buf.InfoLine != cfg.Lang.ErrConsoleDev {
			r.logger().Warn("keyboard lock state unavailable", "device", cfg.ConsoleDev, "error", err)
		}
		buf.InfoLine = cfg.Lang.ErrConsoleDev
		return
	}

	fg, bg := cfg.Fg, cfg.BarBg()
	x := buf.Width - runeLen(cfg.Lang.NumLock)
	if st.NumLock {
		r.text(scr, "numlock", x, 0, cfg.Lang.NumLock, fg, bg)
	}

	x -= runeLen(cfg.Lang.CapsLock) + 1
	if st.CapsLock {
		r.text(scr, "capslock", x, 0, cfg.Lang.CapsLock, fg, bg)
	}
}
