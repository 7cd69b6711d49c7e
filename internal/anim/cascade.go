package anim

import (
	"time"

	"github.com/fchimpan/tgreet/internal/cell"
)

// DefaultCascadeDelay is how long the screen stays settled before the
// failure counter resets.
const DefaultCascadeDelay = 7 * time.Second

// Cascade makes everything on screen fall after repeated login failures.
type Cascade struct {
	Rand  Rand
	Sleep func(time.Duration)
	Delay time.Duration
}

func NewCascade(rng Rand) *Cascade {
	return &Cascade{Rand: rng, Sleep: time.Sleep, Delay: DefaultCascadeDelay}
}

// Pass drops each non-blank cell that sits on a blank one by one row, with
// a one-in-five chance of holding it back this pass. It returns true while
// anything could still fall. Once a pass finds nothing to move it blocks for
// Delay, zeroes *fails and returns false.
func (c *Cascade) Pass(scr cell.Screen, fails *int) bool {
	w, h := scr.Size()
	changes := false

	for y := h - 2; y >= 0; y-- {
		for x := 0; x < w; x++ {
			cur := scr.Cell(x, y)
			if cur.Blank() {
				continue
			}
			if !scr.Cell(x, y+1).Blank() {
				continue
			}
			changes = true

			if c.Rand.IntN(10) > 7 {
				continue
			}
			scr.SetCell(x, y+1, cur)
			cur.Ch = ' '
			scr.SetCell(x, y, cur)
		}
	}

	if changes {
		return true
	}

	if c.Sleep != nil {
		c.Sleep(c.Delay)
	}
	if fails != nil {
		*fails = 0
	}
	return false
}
