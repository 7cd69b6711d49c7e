package cell

import (
	"fmt"
	"testing"
)

func TestEncode_StopsAtSourceEnd(t *testing.T) {
	t.Parallel()

	src := []byte("héllo")
	cells, err := Encoder{}.Encode(src, 10, White, Black)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(cells))
	}
	if cells[1].Ch != 'é' {
		t.Fatalf("expected é, got %q", cells[1].Ch)
	}
}

func TestEncode_NeverReadsIncompleteTrailingRune(t *testing.T) {
	t.Parallel()

	// "a" + first two bytes of a three-byte rune.
	src := []byte{'a', 0xe2, 0x94}
	cells, err := Encoder{}.Encode(src, 3, White, Black)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 1 || cells[0].Ch != 'a' {
		t.Fatalf("expected only 'a', got %+v", cells)
	}
}

func TestEncode_LimitsToRequestedCount(t *testing.T) {
	t.Parallel()

	cells, err := Encoder{}.Encode([]byte("┌─┐"), 2, Red, Green)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	for _, c := range cells {
		if c.Fg != Red || c.Bg != Green {
			t.Fatalf("colors not applied: %+v", c)
		}
	}
}

func TestEncode_AllocError(t *testing.T) {
	t.Parallel()

	enc := Encoder{Limit: 4}
	cells, err := enc.Encode([]byte("too long"), 8, White, Black)
	if err == nil {
		t.Fatalf("expected error")
	}
	if cells != nil {
		t.Fatalf("expected no cells on failure")
	}
	if !IsAllocError(fmt.Errorf("wrap: %w", err)) {
		t.Fatalf("expected IsAllocError to see through wrapping")
	}
	if _, err := enc.Encode(nil, -1, White, Black); !IsAllocError(err) {
		t.Fatalf("negative length must fail, got %v", err)
	}
}

func TestGrid_DropsOutOfRangeWrites(t *testing.T) {
	t.Parallel()

	g := NewGrid(3, 2)
	g.SetCell(-1, 0, Cell{Ch: 'x'})
	g.SetCell(3, 0, Cell{Ch: 'x'})
	g.SetCell(0, 2, Cell{Ch: 'x'})
	if got := g.String(); got != "   \n   \n" {
		t.Fatalf("grid modified: %q", got)
	}
	if c := g.Cell(5, 5); c != (Cell{}) {
		t.Fatalf("expected zero cell out of range, got %+v", c)
	}
}

func TestBlit(t *testing.T) {
	t.Parallel()

	g := NewGrid(4, 2)
	cells, _ := Encoder{}.EncodeString("abcd", White, Black)
	Blit(g, 1, 0, 2, 2, cells)
	if got := g.String(); got != " ab \n cd \n" {
		t.Fatalf("unexpected grid %q", got)
	}
}

func TestCellBlank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ch   rune
		want bool
	}{
		{0, true},
		{' ', true},
		{'\t', true},
		{'a', false},
		{'█', false},
	}
	for _, tt := range tests {
		if got := (Cell{Ch: tt.ch}).Blank(); got != tt.want {
			t.Fatalf("Blank(%q) = %v, want %v", tt.ch, got, tt.want)
		}
	}
}
