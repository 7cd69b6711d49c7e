package anim

import "github.com/fchimpan/tgreet/internal/cell"

const fireSteps = 13

// firePalette maps intensity 0..12 to a shade block: blank, then red,
// yellow and white ramps.
var firePalette = [fireSteps]cell.Cell{
	{Ch: ' ', Fg: cell.White, Bg: cell.Black},
	{Ch: '░', Fg: cell.Red, Bg: cell.Black},
	{Ch: '▒', Fg: cell.Red, Bg: cell.Black},
	{Ch: '▓', Fg: cell.Red, Bg: cell.Black},
	{Ch: '█', Fg: cell.Red, Bg: cell.Black},
	{Ch: '░', Fg: cell.Yellow, Bg: cell.Red},
	{Ch: '▒', Fg: cell.Yellow, Bg: cell.Red},
	{Ch: '▓', Fg: cell.Yellow, Bg: cell.Red},
	{Ch: '█', Fg: cell.Yellow, Bg: cell.Red},
	{Ch: '░', Fg: cell.White, Bg: cell.Yellow},
	{Ch: '▒', Fg: cell.White, Bg: cell.Yellow},
	{Ch: '▓', Fg: cell.White, Bg: cell.Yellow},
	{Ch: '█', Fg: cell.White, Bg: cell.Yellow},
}

// FireCell returns the palette entry for an intensity. Out-of-range values
// render as the blank entry.
func FireCell(level uint8) cell.Cell {
	if level >= fireSteps {
		return firePalette[0]
	}
	return firePalette[level]
}

// fire propagates every cell one row up with a random sideways jitter and
// an odd-decay cool-down. Row 0 is only ever a destination.
func (e *Engine) fire(scr cell.Screen) {
	w, h := e.idx.w, e.idx.h
	tmp := e.scratch

	for x := 0; x < w; x++ {
		for y := 1; y < h; y++ {
			src := e.idx.at(x, y)
			decay := e.rng.IntN(7) & 3
			dst := e.idx.shifted(x, y-1, 1-decay)

			// uint8 underflow on a dead cell wraps past the palette.
			level := tmp[src] - uint8(decay&1)
			if level > fireSteps-1 {
				level = 0
			}
			tmp[dst] = level

			dx, dy := e.idx.pos(dst)
			scr.SetCell(dx, dy, firePalette[tmp[dst]])
			scr.SetCell(x, y, FireCell(tmp[src]))
		}
	}
}
