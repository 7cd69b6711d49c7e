package anim

import "github.com/fchimpan/tgreet/internal/cell"

const (
	matrixTrail = cell.Green
	matrixHead  = cell.White
)

func randomGlyph(rng Rand) uint8 {
	return uint8(rng.IntN(94) + 33)
}

func matrixCell(ch uint8, fg cell.Color) cell.Cell {
	return cell.Cell{Ch: rune(ch), Fg: fg, Bg: cell.Black}
}

// matrix shifts every column down one row, then decides the fate of each
// column's top cell from the row beneath it.
func (e *Engine) matrix(scr cell.Screen) {
	w, h := e.idx.w, e.idx.h
	tmp := e.scratch

	for x := 0; x < w; x++ {
		for y := h - 1; y > 0; y-- {
			dst := e.idx.at(x, y)
			src := e.idx.at(x, y-1)

			if tmp[src] != 0 {
				fg := matrixHead
				if tmp[dst] != 0 {
					fg = matrixTrail
				}
				tmp[dst] = tmp[src]
				scr.SetCell(x, y, matrixCell(tmp[dst], fg))
				continue
			}
			tmp[dst] = 0
			scr.SetCell(x, y, matrixCell(0, matrixHead))
		}

		top := e.idx.at(x, 0)
		below := 0
		if h > 1 {
			below = int(tmp[e.idx.at(x, 1)])
		}

		if e.rng.IntN(32)&30 != 0 {
			// Keep the column as it is: a live stream grows, an empty one stays empty.
			if below != 0 {
				tmp[top] = randomGlyph(e.rng)
				scr.SetCell(x, 0, matrixCell(tmp[top], matrixTrail))
			} else {
				tmp[top] = 0
				scr.SetCell(x, 0, matrixCell(0, matrixHead))
			}
			continue
		}

		// Toggle: end a live stream, or start a new one.
		if below != 0 {
			tmp[top] = 0
			scr.SetCell(x, 0, matrixCell(0, matrixHead))
		} else {
			tmp[top] = randomGlyph(e.rng)
			scr.SetCell(x, 0, matrixCell(tmp[top], matrixHead))
		}
	}
}

// matrixRepeat repaints from the scratch buffer without advancing it.
func (e *Engine) matrixRepeat(scr cell.Screen) {
	w, h := e.idx.w, e.idx.h
	tmp := e.scratch

	for x := 0; x < w; x++ {
		for y := 0; y < h-1; y++ {
			ch := tmp[e.idx.at(x, y)]
			if ch == 0 {
				scr.SetCell(x, y, cell.Cell{Ch: ' ', Fg: matrixHead, Bg: cell.Black})
				continue
			}
			fg := matrixHead
			if tmp[e.idx.at(x, y+1)] != 0 {
				fg = matrixTrail
			}
			scr.SetCell(x, y, matrixCell(ch, fg))
		}
	}
}
