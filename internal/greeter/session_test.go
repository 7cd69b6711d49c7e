package greeter

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/fchimpan/tgreet/internal/anim"
	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/config"
	"github.com/fchimpan/tgreet/internal/draw"
	"github.com/fchimpan/tgreet/internal/led"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.MarginBoxH = 1
	cfg.MarginBoxV = 1
	cfg.InputLen = 20
	cfg.AuthFails = 2
	ascii := false
	cfg.ASCIIBorders = &ascii
	cfg.Desktops = []config.DesktopEntry{{Name: "Sway", Exec: "sway", Server: "wayland"}}
	return cfg
}

type sessionOpts struct {
	cfg    config.Config
	auth   Authenticator
	sleeps *int
}

func newTestSession(t *testing.T, o sessionOpts) *Session {
	t.Helper()
	r := draw.NewRenderer(o.cfg, nil)
	r.Now = func() time.Time { return time.Date(2026, 10, 15, 9, 5, 3, 0, time.UTC) }
	r.Locks = func(string) (led.State, error) { return led.State{}, nil }

	return New(Options{
		Config:   o.cfg,
		Renderer: r,
		Auth:     o.auth,
		Rand:     rand.New(rand.NewPCG(7, 7^0x9e3779b97f4a7c15)),
		Sleep: func(time.Duration) {
			if o.sleeps != nil {
				*o.sleeps++
			}
		},
		InfoLine: "host",
	})
}

func rowString(g *cell.Grid, y int) string {
	return strings.Split(g.String(), "\n")[y]
}

func TestDraw_ComposesDialog(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig()})
	s.Start(80, 24)
	g := cell.NewGrid(80, 24)

	if s.Draw(g) {
		t.Fatalf("a normal frame must not report cascade progress")
	}
	if g.Cell(23, 6).Ch != '┌' || g.Cell(56, 16).Ch != '┘' {
		t.Fatalf("box corners missing:\n%s", g.String())
	}
	if !strings.HasPrefix(rowString(g, 0), "F1 shutdown F2 reboot") {
		t.Fatalf("info bar missing: %q", rowString(g, 0))
	}
	if !strings.Contains(rowString(g, 8), "host") {
		t.Fatalf("info line missing: %q", rowString(g, 8))
	}
	d := s.Desktops()
	if g.Cell(d.X, d.Y).Ch != '<' || g.Cell(d.X+d.VisibleLen-1, d.Y).Ch != '>' {
		t.Fatalf("desktop selector missing: %q", rowString(g, d.Y))
	}
}

func TestDraw_ClearsPreviousFrame(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig()})
	s.Start(80, 24)
	g := cell.NewGrid(80, 24)
	g.SetCell(2, 20, cell.Cell{Ch: 'x'})

	s.Draw(g)
	if g.Cell(2, 20).Ch != ' ' {
		t.Fatalf("stale cell survived a frame")
	}
}

func TestSubmit_FailureCountsAndClearsPassword(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig(), auth: func(context.Context, Credentials) error {
		return errors.New("")
	}})
	s.Password().SetText("secret")

	if err := s.Submit(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.Fails() != 1 {
		t.Fatalf("fails: %d", s.Fails())
	}
	if s.Password().Text() != "" || s.Password().End != 0 {
		t.Fatalf("password not cleared")
	}
	if s.TermBuf().InfoLine != s.cfg.Lang.ErrAuth {
		t.Fatalf("info line: %q", s.TermBuf().InfoLine)
	}
}

func TestSubmit_PreviewReportsReason(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig()})
	err := s.Submit(context.Background())
	if !errors.Is(err, ErrAuthUnavailable) {
		t.Fatalf("expected ErrAuthUnavailable, got %v", err)
	}
	if s.TermBuf().InfoLine != ErrAuthUnavailable.Error() {
		t.Fatalf("info line: %q", s.TermBuf().InfoLine)
	}
}

func TestSubmit_SuccessResetsFails(t *testing.T) {
	t.Parallel()

	ok := false
	s := newTestSession(t, sessionOpts{cfg: testConfig(), auth: func(context.Context, Credentials) error {
		if ok {
			return nil
		}
		return errors.New("nope")
	}})
	_ = s.Submit(context.Background())
	ok = true
	if err := s.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Fails() != 0 || s.TermBuf().InfoLine != s.cfg.Lang.LoggedIn {
		t.Fatalf("fails=%d info=%q", s.Fails(), s.TermBuf().InfoLine)
	}
}

func TestCascade_RunsAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	sleeps := 0
	s := newTestSession(t, sessionOpts{cfg: testConfig(), sleeps: &sleeps})
	s.Start(80, 24)
	g := cell.NewGrid(80, 24)
	s.Draw(g)

	for i := 0; i < s.cfg.AuthFails; i++ {
		_ = s.Submit(context.Background())
	}
	if !s.Cascading() {
		t.Fatalf("expected cascade after %d failures", s.cfg.AuthFails)
	}
	if a := s.HandleKey(context.Background(), KeyRune, 'a'); a != ActionNone || s.Login().Text() != "" {
		t.Fatalf("input accepted during cascade")
	}

	frames := 0
	for s.Draw(g) {
		frames++
		if frames > 1000 {
			t.Fatalf("cascade never settled")
		}
	}
	if frames == 0 {
		t.Fatalf("nothing fell")
	}
	if sleeps != 1 {
		t.Fatalf("sleeps: %d", sleeps)
	}
	if s.Fails() != 0 || s.Cascading() {
		t.Fatalf("failure counter not reset")
	}
	// Bottom row holds whatever fell; the top of the box must be gone.
	if g.Cell(23, 6).Ch == '┌' {
		t.Fatalf("box corner did not fall")
	}
}

func TestResize_FreezesAnimation(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Animate = true
	cfg.Animation = "fire"
	s := newTestSession(t, sessionOpts{cfg: cfg})
	s.Start(80, 24)
	if s.Engine().Kind() != anim.Fire {
		t.Fatalf("engine kind: %v", s.Engine().Kind())
	}

	s.Resize(81, 24)
	g := cell.NewGrid(81, 24)
	if !s.Engine().Frozen(g) {
		t.Fatalf("engine should be frozen after resize")
	}
	before := s.Engine().Scratch()
	s.Draw(g)
	after := s.Engine().Scratch()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("frozen engine advanced at %d", i)
		}
	}
	if w := s.TermBuf().Width; w != 81 {
		t.Fatalf("live width: %d", w)
	}

	s.RestartAnimation()
	if s.Engine().Frozen(g) {
		t.Fatalf("restart should adopt the live size")
	}
}

func TestHandleKey_EditFocusAndLogin(t *testing.T) {
	t.Parallel()

	var got Credentials
	s := newTestSession(t, sessionOpts{cfg: testConfig(), auth: func(_ context.Context, c Credentials) error {
		got = c
		return nil
	}})
	ctx := context.Background()

	if s.Focus() != FocusLogin {
		t.Fatalf("initial focus: %v", s.Focus())
	}
	for _, r := range "roox" {
		s.HandleKey(ctx, KeyRune, r)
	}
	s.HandleKey(ctx, KeyBackspace, 0)
	s.HandleKey(ctx, KeyRune, 't')
	s.HandleKey(ctx, KeyRune, '\x07')

	s.HandleKey(ctx, KeyUp, 0)
	if s.Focus() != FocusDesktop {
		t.Fatalf("focus after up: %v", s.Focus())
	}
	s.HandleKey(ctx, KeyRight, 0)
	if s.Desktops().Current().Name != "Sway" {
		t.Fatalf("desktop: %q", s.Desktops().Current().Name)
	}

	s.HandleKey(ctx, KeyTab, 0)
	s.HandleKey(ctx, KeyTab, 0)
	if s.Focus() != FocusPassword {
		t.Fatalf("focus after tabs: %v", s.Focus())
	}
	for _, r := range "pw" {
		s.HandleKey(ctx, KeyRune, r)
	}

	if a := s.HandleKey(ctx, KeyEnter, 0); a != ActionLogin {
		t.Fatalf("action: %v", a)
	}
	if got.Login != "root" || got.Password != "pw" || got.Desktop.Exec != "sway" {
		t.Fatalf("credentials: %+v", got)
	}
	if s.Password().Text() != "" {
		t.Fatalf("password kept after submit")
	}
}

func TestHandleKey_PowerKeysAlwaysWork(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig()})
	ctx := context.Background()
	for i := 0; i < s.cfg.AuthFails; i++ {
		_ = s.Submit(ctx)
	}

	tests := []struct {
		key  Key
		want Action
	}{
		{KeyF1, ActionShutdown},
		{KeyF2, ActionReboot},
		{KeyCtrlC, ActionQuit},
	}
	for _, tt := range tests {
		if got := s.HandleKey(ctx, tt.key, 0); got != tt.want {
			t.Fatalf("key %v: got %v want %v", tt.key, got, tt.want)
		}
	}
}

func TestHandleKey_FailedLoginFocusesPassword(t *testing.T) {
	t.Parallel()

	s := newTestSession(t, sessionOpts{cfg: testConfig()})
	if a := s.HandleKey(context.Background(), KeyEnter, 0); a != ActionNone {
		t.Fatalf("action: %v", a)
	}
	if s.Focus() != FocusPassword || s.Fails() != 1 {
		t.Fatalf("focus=%v fails=%d", s.Focus(), s.Fails())
	}
}
