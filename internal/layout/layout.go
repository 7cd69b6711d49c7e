package layout

// Params are the inputs that shape the dialog box.
type Params struct {
	Width  int
	Height int

	LoginLabelLen    int
	PasswordLabelLen int

	InputLen int
	MarginH  int
	MarginV  int
}

// Box is the dialog geometry. X/Y is the interior origin; the border, when
// drawn, sits one cell outside it.
type Box struct {
	LabelsMaxLen int

	Width  int
	Height int
	X      int
	Y      int

	// X2/Y2 are the right and bottom border columns/rows.
	X2 int
	Y2 int
}

// Field is where one input widget lives on screen.
type Field struct {
	X          int
	Y          int
	VisibleLen int
}

// Fields holds the three widget placements.
type Fields struct {
	Desktop  Field
	Login    Field
	Password Field
}

// Compute derives box geometry. Division truncates so an odd leftover puts
// the extra column on the right.
func Compute(p Params) Box {
	labels := max(p.LoginLabelLen, p.PasswordLabelLen)

	b := Box{
		LabelsMaxLen: labels,
		Height:       7 + 2*p.MarginV,
		Width:        2*p.MarginH + (p.InputLen + 1) + labels,
	}
	b.X = (p.Width - b.Width) / 2
	b.Y = (p.Height - b.Height) / 2
	b.X2 = (p.Width + b.Width) / 2
	b.Y2 = (p.Height + b.Height) / 2
	return b
}

// Place positions the desktop selector and the two text fields. ok is false
// when the interior has no room left for input, in which case nothing is
// placed and callers keep whatever positions they had.
func Place(b Box, marginH, marginV int) (f Fields, ok bool) {
	x := b.X + marginH + b.LabelsMaxLen + 1
	visible := b.X + b.Width - marginH - x
	if visible < 0 {
		return Fields{}, false
	}

	f.Desktop = Field{X: x, Y: b.Y + marginV + 2, VisibleLen: visible}
	f.Login = Field{X: x, Y: b.Y + marginV + 4, VisibleLen: visible}
	f.Password = Field{X: x, Y: b.Y + marginV + 6, VisibleLen: visible}
	return f, true
}
