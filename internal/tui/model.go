package tui

import (
	"bytes"
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/greeter"
)

type Model struct {
	ctx     context.Context
	session *greeter.Session
	frame   time.Duration

	ready bool
	grid  *cell.Grid

	// action is the last non-trivial key outcome; the program quits on it.
	action greeter.Action

	viewBuf bytes.Buffer
	styles  map[colorPair]lipgloss.Style
}

type colorPair struct {
	fg cell.Color
	bg cell.Color
}

// NewModel wraps a session. frameRate is frames per second; non-positive
// values fall back to 20.
func NewModel(ctx context.Context, s *greeter.Session, frameRate int) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if frameRate <= 0 {
		frameRate = 20
	}
	return &Model{
		ctx:     ctx,
		session: s,
		frame:   time.Second / time.Duration(frameRate),
		grid:    cell.NewGrid(0, 0),
		styles:  make(map[colorPair]lipgloss.Style),
	}
}

// Action reports why the program stopped.
func (m *Model) Action() greeter.Action { return m.action }

// Grid is the frame painted on the last tick.
func (m *Model) Grid() *cell.Grid { return m.grid }

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.frame)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid.Resize(msg.Width, msg.Height)
		if !m.ready {
			m.session.Start(msg.Width, msg.Height)
			m.ready = true
		} else {
			m.session.Resize(msg.Width, msg.Height)
		}
		m.session.Draw(m.grid)
		return m, nil
	case tickMsg:
		if m.ready {
			m.session.Draw(m.grid)
		}
		return m, tickCmd(m.frame)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k, runes := mapKey(msg)
	if k == greeter.KeyNone {
		return nil
	}

	a := greeter.ActionNone
	if k == greeter.KeyRune {
		for _, r := range runes {
			a = m.session.HandleKey(m.ctx, k, r)
		}
	} else {
		a = m.session.HandleKey(m.ctx, k, 0)
	}
	if a == greeter.ActionNone {
		return nil
	}
	m.action = a
	return tea.Quit
}

func mapKey(msg tea.KeyMsg) (greeter.Key, []rune) {
	switch msg.Type {
	case tea.KeyRunes:
		return greeter.KeyRune, msg.Runes
	case tea.KeySpace:
		return greeter.KeyRune, []rune{' '}
	case tea.KeyEnter:
		return greeter.KeyEnter, nil
	case tea.KeyBackspace:
		return greeter.KeyBackspace, nil
	case tea.KeyDelete:
		return greeter.KeyDelete, nil
	case tea.KeyLeft:
		return greeter.KeyLeft, nil
	case tea.KeyRight:
		return greeter.KeyRight, nil
	case tea.KeyUp:
		return greeter.KeyUp, nil
	case tea.KeyDown:
		return greeter.KeyDown, nil
	case tea.KeyTab:
		return greeter.KeyTab, nil
	case tea.KeyF1:
		return greeter.KeyF1, nil
	case tea.KeyF2:
		return greeter.KeyF2, nil
	case tea.KeyCtrlC:
		return greeter.KeyCtrlC, nil
	default:
		return greeter.KeyNone, nil
	}
}

func (m *Model) style(fg, bg cell.Color) lipgloss.Style {
	p := colorPair{fg: fg, bg: bg}
	if st, ok := m.styles[p]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(strconv.Itoa(int(fg)))).
		Background(lipgloss.Color(strconv.Itoa(int(bg))))
	m.styles[p] = st
	return st
}

// View renders the grid row by row, styling runs of equal colors together.
func (m *Model) View() string {
	if !m.ready {
		return ""
	}

	m.viewBuf.Reset()
	b := &m.viewBuf
	_, h := m.grid.Size()
	run := make([]rune, 0, 64)

	for y := 0; y < h; y++ {
		row := m.grid.Row(y)
		for i := 0; i < len(row); {
			fg, bg := row[i].Fg, row[i].Bg
			run = run[:0]
			for ; i < len(row) && row[i].Fg == fg && row[i].Bg == bg; i++ {
				ch := row[i].Ch
				if ch == 0 {
					ch = ' '
				}
				run = append(run, ch)
			}
			b.WriteString(m.style(fg, bg).Render(string(run)))
		}
		if y < h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
