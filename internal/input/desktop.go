package input

import "strings"

// Server is the session kind a desktop entry starts.
type Server int

const (
	Shell Server = iota
	Xorg
	Wayland
)

func (s Server) String() string {
	switch s {
	case Xorg:
		return "xorg"
	case Wayland:
		return "wayland"
	default:
		return "shell"
	}
}

// ParseServer maps a config string to a Server; unknown values mean Shell.
func ParseServer(s string) Server {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xorg", "x11", "x":
		return Xorg
	case "wayland":
		return Wayland
	default:
		return Shell
	}
}

type Desktop struct {
	Name   string
	Exec   string
	Server Server
}

const waylandSpecifier = " (Wayland)"

// DesktopList is the session selector. Entries are append-only.
type DesktopList struct {
	Entries []Desktop
	Cur     int

	X          int
	Y          int
	VisibleLen int
}

// NewDesktopList starts with the shell entry, which is always available.
func NewDesktopList(shellName string) *DesktopList {
	return &DesktopList{Entries: []Desktop{{Name: shellName, Server: Shell}}}
}

// Add appends an entry. Wayland names get a " (Wayland)" suffix when
// specify is set and the name does not already carry it.
func (d *DesktopList) Add(name, exec string, server Server, specify bool) {
	if name == "" || exec == "" {
		return
	}
	if server == Wayland && specify && !strings.Contains(name, waylandSpecifier) {
		name += waylandSpecifier
	}
	d.Entries = append(d.Entries, Desktop{Name: name, Exec: exec, Server: server})
}

func (d *DesktopList) Current() Desktop {
	if len(d.Entries) == 0 {
		return Desktop{}
	}
	return d.Entries[d.Cur]
}

func (d *DesktopList) Next() {
	if len(d.Entries) == 0 {
		return
	}
	d.Cur = (d.Cur + 1) % len(d.Entries)
}

func (d *DesktopList) Prev() {
	if len(d.Entries) == 0 {
		return
	}
	d.Cur = (d.Cur - 1 + len(d.Entries)) % len(d.Entries)
}

func (d *DesktopList) Place(x, y, visibleLen int) {
	d.X = x
	d.Y = y
	d.VisibleLen = visibleLen
}
