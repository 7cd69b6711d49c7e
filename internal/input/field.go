package input

// Field is a fixed-capacity text input. Buf[:End] is the content; the window
// Buf[VisibleStart:VisibleStart+VisibleLen] is what gets painted.
//
// Editing keeps VisibleStart <= Cursor <= End and
// Cursor-VisibleStart <= VisibleLen.
type Field struct {
	Buf          []rune
	End          int
	Cursor       int
	VisibleStart int

	X          int
	Y          int
	VisibleLen int
}

func NewField(capacity int) *Field {
	if capacity < 0 {
		capacity = 0
	}
	return &Field{Buf: make([]rune, capacity)}
}

func (f *Field) Text() string {
	return string(f.Buf[:f.End])
}

// Window returns the runes currently visible, clipped to VisibleLen.
func (f *Field) Window() []rune {
	start := min(f.VisibleStart, f.End)
	stop := f.End
	if f.VisibleLen >= 0 && stop-start > f.VisibleLen {
		stop = start + f.VisibleLen
	}
	return f.Buf[start:stop]
}

// Place moves the field and re-clamps the window for the new width.
func (f *Field) Place(x, y, visibleLen int) {
	f.X = x
	f.Y = y
	f.VisibleLen = visibleLen
	f.scroll()
}

// Insert adds r at the cursor. It returns false when the buffer is full.
func (f *Field) Insert(r rune) bool {
	if f.End >= len(f.Buf) {
		return false
	}
	copy(f.Buf[f.Cursor+1:f.End+1], f.Buf[f.Cursor:f.End])
	f.Buf[f.Cursor] = r
	f.End++
	f.Cursor++
	f.scroll()
	return true
}

// Backspace removes the rune before the cursor.
func (f *Field) Backspace() bool {
	if f.Cursor == 0 {
		return false
	}
	copy(f.Buf[f.Cursor-1:], f.Buf[f.Cursor:f.End])
	f.End--
	f.Cursor--
	f.scroll()
	return true
}

// Delete removes the rune under the cursor.
func (f *Field) Delete() bool {
	if f.Cursor >= f.End {
		return false
	}
	copy(f.Buf[f.Cursor:], f.Buf[f.Cursor+1:f.End])
	f.End--
	f.scroll()
	return true
}

func (f *Field) Left() {
	if f.Cursor > 0 {
		f.Cursor--
		f.scroll()
	}
}

func (f *Field) Right() {
	if f.Cursor < f.End {
		f.Cursor++
		f.scroll()
	}
}

// Clear empties the field and wipes the old content.
func (f *Field) Clear() {
	for i := range f.Buf[:f.End] {
		f.Buf[i] = 0
	}
	f.End = 0
	f.Cursor = 0
	f.VisibleStart = 0
}

// SetText replaces the content, truncated to capacity.
func (f *Field) SetText(s string) {
	f.Clear()
	for _, r := range s {
		if !f.Insert(r) {
			return
		}
	}
}

func (f *Field) scroll() {
	if f.Cursor < f.VisibleStart {
		f.VisibleStart = f.Cursor
	}
	if f.VisibleLen > 0 && f.Cursor-f.VisibleStart > f.VisibleLen {
		f.VisibleStart = f.Cursor - f.VisibleLen
	}
	if f.VisibleStart > f.End {
		f.VisibleStart = f.End
	}
}
