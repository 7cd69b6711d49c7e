package greeter

import (
	"context"

	"github.com/fchimpan/tgreet/internal/input"
)

// Key is a frontend-neutral key press.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyTab
	KeyF1
	KeyF2
	KeyCtrlC
)

// Action tells the frontend what to do after a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionShutdown
	ActionReboot
	ActionLogin
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionShutdown:
		return "shutdown"
	case ActionReboot:
		return "reboot"
	case ActionLogin:
		return "login"
	default:
		return "none"
	}
}

// HandleKey applies one key press. r is the typed rune for KeyRune.
// Input is ignored while the cascade runs.
func (s *Session) HandleKey(ctx context.Context, k Key, r rune) Action {
	switch k {
	case KeyCtrlC:
		return ActionQuit
	case KeyF1:
		return ActionShutdown
	case KeyF2:
		return ActionReboot
	}
	if s.Cascading() {
		return ActionNone
	}

	switch k {
	case KeyUp:
		if s.focus > FocusDesktop {
			s.focus--
		}
	case KeyDown:
		if s.focus < FocusPassword {
			s.focus++
		}
	case KeyTab:
		s.focus = (s.focus + 1) % (FocusPassword + 1)
	case KeyLeft:
		if s.focus == FocusDesktop {
			s.desktops.Prev()
		} else if f := s.active(); f != nil {
			f.Left()
		}
	case KeyRight:
		if s.focus == FocusDesktop {
			s.desktops.Next()
		} else if f := s.active(); f != nil {
			f.Right()
		}
	case KeyBackspace:
		if f := s.active(); f != nil {
			f.Backspace()
		}
	case KeyDelete:
		if f := s.active(); f != nil {
			f.Delete()
		}
	case KeyRune:
		if f := s.active(); f != nil && r >= ' ' {
			f.Insert(r)
		}
	case KeyEnter:
		if s.Submit(ctx) == nil {
			return ActionLogin
		}
		s.focus = FocusPassword
	}
	return ActionNone
}

// active is the focused text field, nil on the desktop selector.
func (s *Session) active() *input.Field {
	switch s.focus {
	case FocusLogin:
		return s.login
	case FocusPassword:
		return s.password
	default:
		return nil
	}
}
