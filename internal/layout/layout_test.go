package layout

import "testing"

func TestCompute_Reference80x24(t *testing.T) {
	t.Parallel()

	b := Compute(Params{
		Width:            80,
		Height:           24,
		LoginLabelLen:    6,
		PasswordLabelLen: 9,
		InputLen:         20,
		MarginH:          1,
		MarginV:          1,
	})

	if b.LabelsMaxLen != 9 {
		t.Fatalf("labels max len: got %d", b.LabelsMaxLen)
	}
	if b.Width != 32 {
		t.Fatalf("box width: got %d", b.Width)
	}
	if b.Height != 9 {
		t.Fatalf("box height: got %d", b.Height)
	}
	if b.X != 24 || b.Y != 7 {
		t.Fatalf("box origin: got (%d,%d)", b.X, b.Y)
	}
	if b.X2 != 56 || b.Y2 != 16 {
		t.Fatalf("box far edge: got (%d,%d)", b.X2, b.Y2)
	}
}

func TestPlace_FieldOffsets(t *testing.T) {
	t.Parallel()

	b := Compute(Params{Width: 80, Height: 24, LoginLabelLen: 6, PasswordLabelLen: 9, InputLen: 20, MarginH: 1, MarginV: 1})
	f, ok := Place(b, 1, 1)
	if !ok {
		t.Fatalf("expected placement")
	}

	wantX := 24 + 1 + 9 + 1
	wantVisible := 24 + 32 - 1 - wantX
	for name, got := range map[string]Field{"desktop": f.Desktop, "login": f.Login, "password": f.Password} {
		if got.X != wantX || got.VisibleLen != wantVisible {
			t.Fatalf("%s: got x=%d visible=%d", name, got.X, got.VisibleLen)
		}
	}
	if f.Desktop.Y != 7+1+2 || f.Login.Y != 7+1+4 || f.Password.Y != 7+1+6 {
		t.Fatalf("rows: %d %d %d", f.Desktop.Y, f.Login.Y, f.Password.Y)
	}
}

func TestPlace_NegativeVisibleWidthIsSkipped(t *testing.T) {
	t.Parallel()

	// Margins larger than the box leave no interior for input.
	b := Box{X: 0, Width: 4, LabelsMaxLen: 3}
	if _, ok := Place(b, 5, 1); ok {
		t.Fatalf("expected placement to be abandoned")
	}
}
