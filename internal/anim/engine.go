package anim

import (
	"fmt"
	"strings"

	"github.com/fchimpan/tgreet/internal/cell"
)

// Kind selects the background effect.
type Kind int

const (
	Off Kind = iota
	Fire
	Matrix
)

func (k Kind) String() string {
	switch k {
	case Fire:
		return "fire"
	case Matrix:
		return "matrix"
	default:
		return "off"
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return Off, nil
	case "fire", "doom":
		return Fire, nil
	case "matrix":
		return Matrix, nil
	default:
		return Off, fmt.Errorf("unknown animation %q (want fire, matrix or off)", s)
	}
}

// Rand is the random source the effects draw from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// matrixFrames is the matrix cadence: one real step every matrixFrames ticks.
const matrixFrames = 10

// Engine steps one background effect over a scratch buffer sized to the
// screen at creation time. A resize freezes it; it never reallocates.
type Engine struct {
	kind Kind
	rng  Rand

	idx     index
	scratch []uint8

	frames int
}

// New snapshots w x h and seeds the scratch buffer for kind.
func New(kind Kind, w, h int, rng Rand) *Engine {
	e := &Engine{kind: kind, rng: rng}
	if kind == Off || w <= 0 || h <= 0 {
		e.kind = Off
		return e
	}

	e.idx = index{w: w, h: h}
	e.scratch = make([]uint8, w*h)

	switch kind {
	case Fire:
		bottom := e.scratch[(h-1)*w:]
		for i := range bottom {
			bottom[i] = fireSteps - 1
		}
	case Matrix:
		e.frames = matrixFrames
	}
	return e
}

func (e *Engine) Kind() Kind { return e.kind }

// InitSize is the size snapshot the engine was created with.
func (e *Engine) InitSize() (w, h int) { return e.idx.w, e.idx.h }

// Frames is the matrix cadence counter.
func (e *Engine) Frames() int { return e.frames }

// Scratch returns a copy of the automaton state.
func (e *Engine) Scratch() []uint8 {
	out := make([]uint8, len(e.scratch))
	copy(out, e.scratch)
	return out
}

// Frozen reports whether the live size differs from the snapshot.
func (e *Engine) Frozen(scr cell.Screen) bool {
	w, h := scr.Size()
	return w != e.idx.w || h != e.idx.h
}

// Step advances the effect by one tick and paints it into scr.
func (e *Engine) Step(scr cell.Screen) {
	switch e.kind {
	case Fire:
		if e.Frozen(scr) {
			return
		}
		e.fire(scr)
	case Matrix:
		e.frames--
		if e.frames > 0 {
			if e.Frozen(scr) {
				return
			}
			e.matrixRepeat(scr)
			return
		}
		e.frames = matrixFrames
		if e.Frozen(scr) {
			return
		}
		e.matrix(scr)
	}
}

// index maps grid coordinates into the flat scratch buffer.
type index struct {
	w int
	h int
}

func (ix index) at(x, y int) int {
	return y*ix.w + x
}

// shifted returns the flat index of (x+dx, y) with the column clamped into
// the same row: underflow lands on the row start, overflow on the row end.
func (ix index) shifted(x, y, dx int) int {
	col := x + dx
	if col < 0 {
		col = 0
	}
	if col >= ix.w {
		col = ix.w - 1
	}
	return ix.at(col, y)
}

func (ix index) pos(i int) (x, y int) {
	return i % ix.w, i / ix.w
}
