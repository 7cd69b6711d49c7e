package cell

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultLimit bounds a single Encode request.
const DefaultLimit = 4096

// AllocError reports that the cell run for an encode request could not be
// reserved. The caller skips painting that element and carries on.
type AllocError struct {
	Requested int
	Limit     int
}

func (e *AllocError) Error() string {
	if e == nil {
		return "cell allocation failed"
	}
	return fmt.Sprintf("cannot allocate %d cells (limit %d)", e.Requested, e.Limit)
}

func IsAllocError(err error) bool {
	var e *AllocError
	return errors.As(err, &e)
}

// Encoder turns UTF-8 text into colored cells.
type Encoder struct {
	// Limit is the largest cell run one request may reserve; 0 means DefaultLimit.
	Limit int
}

func (e Encoder) limit() int {
	if e.Limit <= 0 {
		return DefaultLimit
	}
	return e.Limit
}

// Encode decodes up to n code points from src. It stops early at the end of
// src or at an incomplete trailing sequence, so the result may be shorter
// than n.
func (e Encoder) Encode(src []byte, n int, fg, bg Color) ([]Cell, error) {
	if n < 0 || n > e.limit() {
		return nil, &AllocError{Requested: n, Limit: e.limit()}
	}

	cells := make([]Cell, 0, n)
	off := 0
	for len(cells) < n && off < len(src) {
		r, size := utf8.DecodeRune(src[off:])
		if r == utf8.RuneError && size <= 1 && !utf8.FullRune(src[off:]) {
			break
		}
		off += size
		cells = append(cells, Cell{Ch: r, Fg: fg, Bg: bg})
	}
	return cells, nil
}

// EncodeString encodes every code point of s.
func (e Encoder) EncodeString(s string, fg, bg Color) ([]Cell, error) {
	return e.Encode([]byte(s), utf8.RuneCountInString(s), fg, bg)
}
