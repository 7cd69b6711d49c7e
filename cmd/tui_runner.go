package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/fchimpan/tgreet/internal/greeter"
	"github.com/fchimpan/tgreet/internal/screen"
	"github.com/fchimpan/tgreet/internal/tui"
)

func defaultRunTUI(ctx context.Context, s *greeter.Session, frameRate int) (greeter.Action, error) {
	m := tui.NewModel(ctx, s, frameRate)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return greeter.ActionNone, err
	}
	return m.Action(), nil
}

func defaultRunTcell(ctx context.Context, s *greeter.Session, frameRate int) (greeter.Action, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return greeter.ActionNone, fmt.Errorf("create screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return greeter.ActionNone, fmt.Errorf("init screen: %w", err)
	}
	defer scr.Fini()

	return screen.Run(ctx, scr, s, time.Second/time.Duration(max(frameRate, 1)))
}
