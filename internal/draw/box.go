package draw

import (
	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/layout"
)

// BoxGlyphs is the border character set.
type BoxGlyphs struct {
	LeftUp    rune
	LeftDown  rune
	RightUp   rune
	RightDown rune
	Top       rune
	Bottom    rune
	Left      rune
	Right     rune
}

var (
	UnicodeGlyphs = BoxGlyphs{
		LeftUp:    '┌',
		LeftDown:  '└',
		RightUp:   '┐',
		RightDown: '┘',
		Top:       '─',
		Bottom:    '─',
		Left:      '│',
		Right:     '│',
	}
	ASCIIGlyphs = BoxGlyphs{
		LeftUp:    '+',
		LeftDown:  '+',
		RightUp:   '+',
		RightDown: '+',
		Top:       '-',
		Bottom:    '-',
		Left:      '|',
		Right:     '|',
	}
)

func GlyphsFor(unicode bool) BoxGlyphs {
	if unicode {
		return UnicodeGlyphs
	}
	return ASCIIGlyphs
}

// TermBuf is the per-session render state.
type TermBuf struct {
	Width  int
	Height int

	Box    layout.Box
	Glyphs BoxGlyphs

	// InfoLine is shown centered on the first interior row; empty hides it.
	InfoLine string
}

// Layout recomputes the box for the current size and labels.
func (r *Renderer) Layout(buf *TermBuf) {
	buf.Box = layout.Compute(layout.Params{
		Width:            buf.Width,
		Height:           buf.Height,
		LoginLabelLen:    runeLen(r.Config.Lang.Login),
		PasswordLabelLen: runeLen(r.Config.Lang.Password),
		InputLen:         r.Config.InputLen,
		MarginH:          r.Config.MarginBoxH,
		MarginV:          r.Config.MarginBoxV,
	})
}

// Box paints the border (unless hidden) and, when configured, blanks the
// interior. It does not clip against the live screen size.
func (r *Renderer) Box(scr cell.Screen, buf *TermBuf) {
	b := buf.Box
	fg, bg := r.Config.Fg, r.Config.Bg
	g := buf.Glyphs

	if !r.Config.HideBorders {
		scr.SetCell(b.X-1, b.Y-1, cell.Cell{Ch: g.LeftUp, Fg: fg, Bg: bg})
		scr.SetCell(b.X2, b.Y-1, cell.Cell{Ch: g.RightUp, Fg: fg, Bg: bg})
		scr.SetCell(b.X-1, b.Y2, cell.Cell{Ch: g.LeftDown, Fg: fg, Bg: bg})
		scr.SetCell(b.X2, b.Y2, cell.Cell{Ch: g.RightDown, Fg: fg, Bg: bg})

		cell.Fill(scr, b.X, b.Y-1, b.Width, cell.Cell{Ch: g.Top, Fg: fg, Bg: bg})
		cell.Fill(scr, b.X, b.Y2, b.Width, cell.Cell{Ch: g.Bottom, Fg: fg, Bg: bg})

		for i := 0; i < b.Height; i++ {
			scr.SetCell(b.X-1, b.Y+i, cell.Cell{Ch: g.Left, Fg: fg, Bg: bg})
			scr.SetCell(b.X2, b.Y+i, cell.Cell{Ch: g.Right, Fg: fg, Bg: bg})
		}
	}

	if r.Config.BlankBox {
		blank := cell.Cell{Ch: ' ', Fg: fg, Bg: bg}
		for i := 0; i < b.Height; i++ {
			cell.Fill(scr, b.X, b.Y+i, b.Width, blank)
		}
	}
}
