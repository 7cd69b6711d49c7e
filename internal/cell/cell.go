package cell

import "unicode"

// Color is a terminal palette index (ANSI numbering: 0 black, 1 red, 2 green,
// 3 yellow, 7 white).
type Color uint8

const (
	Black  Color = 0
	Red    Color = 1
	Green  Color = 2
	Yellow Color = 3
	White  Color = 7
)

// Cell is one screen position.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Blank reports whether the cell shows nothing. NUL counts as blank so cells
// cleared by the matrix animation do not block the cascade.
func (c Cell) Blank() bool {
	return c.Ch == 0 || unicode.IsSpace(c.Ch)
}

// Screen is the terminal backend the renderers paint into.
// Implementations drop writes outside [0,w)x[0,h).
type Screen interface {
	Size() (w, h int)
	Cell(x, y int) Cell
	SetCell(x, y int, c Cell)
}

// Blit copies a row-major w x h run of cells to (x, y).
func Blit(s Screen, x, y, w, h int, cells []Cell) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			if i >= len(cells) {
				return
			}
			s.SetCell(x+col, y+row, cells[i])
		}
	}
}

// Fill writes c over a horizontal run of n cells starting at (x, y).
func Fill(s Screen, x, y, n int, c Cell) {
	for i := 0; i < n; i++ {
		s.SetCell(x+i, y, c)
	}
}

// Clear blanks the whole screen with the given colors.
func Clear(s Screen, fg, bg Color) {
	w, h := s.Size()
	blank := Cell{Ch: ' ', Fg: fg, Bg: bg}
	for y := 0; y < h; y++ {
		Fill(s, 0, y, w, blank)
	}
}

// Grid is an in-memory Screen backed by a flat y*w+x slice.
type Grid struct {
	w     int
	h     int
	cells []Cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

// Resize reallocates only when capacity is insufficient and clears the grid.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	if cap(g.cells) >= n {
		g.cells = g.cells[:n]
	} else {
		g.cells = make([]Cell, n)
	}
	g.w = w
	g.h = h
	g.Clear()
}

// Clear resets every cell to a space on the default colors.
func (g *Grid) Clear() {
	blank := Cell{Ch: ' ', Fg: White, Bg: Black}
	for i := range g.cells {
		g.cells[i] = blank
	}
}

func (g *Grid) Size() (int, int) { return g.w, g.h }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) Cell(x, y int) Cell {
	if !g.inBounds(x, y) {
		return Cell{}
	}
	return g.cells[y*g.w+x]
}

func (g *Grid) SetCell(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[y*g.w+x] = c
}

// Row returns the live cells of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.h {
		return nil
	}
	return g.cells[y*g.w : (y+1)*g.w]
}

// String returns the grid glyphs, one line per row, NUL shown as space.
func (g *Grid) String() string {
	out := make([]rune, 0, (g.w+1)*g.h)
	for y := 0; y < g.h; y++ {
		for _, c := range g.Row(y) {
			if c.Ch == 0 {
				out = append(out, ' ')
				continue
			}
			out = append(out, c.Ch)
		}
		out = append(out, '\n')
	}
	return string(out)
}
