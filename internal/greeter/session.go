package greeter

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/fchimpan/tgreet/internal/anim"
	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/config"
	"github.com/fchimpan/tgreet/internal/draw"
	"github.com/fchimpan/tgreet/internal/input"
)

// Credentials are handed to the authenticator on submit.
type Credentials struct {
	Desktop  input.Desktop
	Login    string
	Password string
}

// Authenticator verifies credentials. It is external to the greeter.
type Authenticator func(ctx context.Context, c Credentials) error

// ErrAuthUnavailable is returned by the preview authenticator.
var ErrAuthUnavailable = errors.New("authentication backend not configured")

// PreviewAuth rejects every login. It lets the dialog be exercised without
// touching the system's authentication stack.
func PreviewAuth(context.Context, Credentials) error {
	return ErrAuthUnavailable
}

// Focus is the widget receiving input.
type Focus int

const (
	FocusDesktop Focus = iota
	FocusLogin
	FocusPassword
)

// Options wire a session to its collaborators.
type Options struct {
	Config   config.Config
	Renderer *draw.Renderer
	Auth     Authenticator
	Rand     anim.Rand
	Logger   *slog.Logger

	// Sleep blocks once the cascade settles. Defaults to time.Sleep.
	Sleep func(time.Duration)

	// InfoLine is shown until something replaces it (usually the hostname).
	InfoLine string
}

// Session is one greeter on one screen.
type Session struct {
	cfg    config.Config
	render *draw.Renderer
	auth   Authenticator
	rng    anim.Rand
	logger *slog.Logger

	buf      draw.TermBuf
	desktops *input.DesktopList
	login    *input.Field
	password *input.Field
	focus    Focus

	engine  *anim.Engine
	cascade *anim.Cascade
	fails   int
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	render := opts.Renderer
	if render == nil {
		render = draw.NewRenderer(opts.Config, logger)
	}
	auth := opts.Auth
	if auth == nil {
		auth = PreviewAuth
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	s := &Session{
		cfg:      opts.Config,
		render:   render,
		auth:     auth,
		rng:      rng,
		logger:   logger,
		desktops: opts.Config.DesktopList(),
		login:    input.NewField(opts.Config.MaxLoginLen),
		password: input.NewField(opts.Config.MaxPasswordLen),
		focus:    FocusLogin,
		engine:   anim.New(anim.Off, 0, 0, nil),
		cascade:  anim.NewCascade(rng),
	}
	if opts.Sleep != nil {
		s.cascade.Sleep = opts.Sleep
	}
	s.buf.Glyphs = draw.GlyphsFor(opts.Config.UnicodeBorders())
	s.buf.InfoLine = opts.InfoLine
	return s
}

// Start records the screen size and starts the configured animation on a
// scratch buffer of that size.
func (s *Session) Start(w, h int) {
	s.buf.Width = w
	s.buf.Height = h
	kind := s.cfg.AnimationKind()
	if kind != anim.Off {
		s.engine = anim.New(kind, w, h, s.rng)
	}
	s.logger.Info("greeter started", "width", w, "height", h, "animation", s.engine.Kind().String())
}

// Resize updates the live size. A running animation keeps its original
// snapshot and stays frozen until restarted.
func (s *Session) Resize(w, h int) {
	if w == s.buf.Width && h == s.buf.Height {
		return
	}
	s.buf.Width = w
	s.buf.Height = h
	if s.engine.Kind() != anim.Off {
		iw, ih := s.engine.InitSize()
		s.logger.Debug("screen resized, animation frozen", "width", w, "height", h, "init_width", iw, "init_height", ih)
	}
}

// RestartAnimation rebuilds the animation for the current size.
func (s *Session) RestartAnimation() {
	kind := s.cfg.AnimationKind()
	if kind == anim.Off {
		return
	}
	s.engine = anim.New(kind, s.buf.Width, s.buf.Height, s.rng)
}

func (s *Session) Engine() *anim.Engine   { return s.engine }
func (s *Session) TermBuf() *draw.TermBuf { return &s.buf }
func (s *Session) Fails() int             { return s.fails }
func (s *Session) Focus() Focus           { return s.focus }
func (s *Session) Login() *input.Field    { return s.login }
func (s *Session) Password() *input.Field { return s.password }
func (s *Session) Desktops() *input.DesktopList {
	return s.desktops
}

// Draw composes one frame. It returns true while the post-failure cascade
// still needs frames.
func (s *Session) Draw(scr cell.Screen) bool {
	if s.fails >= s.cfg.AuthFails {
		return s.cascade.Pass(scr, &s.fails)
	}

	cell.Clear(scr, s.cfg.Fg, s.cfg.Bg)
	s.engine.Step(scr)

	r := s.render
	r.Layout(&s.buf)
	r.PositionInputs(&s.buf, s.desktops, s.login, s.password)
	r.Box(scr, &s.buf)
	r.InfoBar(scr, &s.buf)
	r.LockState(scr, &s.buf)
	r.Labels(scr, &s.buf)
	r.Desktop(scr, s.desktops)
	r.Field(scr, s.login)
	r.MaskedField(scr, s.password)
	return false
}

// Cascading reports whether the failure animation owns the screen.
func (s *Session) Cascading() bool {
	return s.fails >= s.cfg.AuthFails
}

// Submit runs the authenticator. A failure bumps the counter, shows the
// reason and clears the password.
func (s *Session) Submit(ctx context.Context) error {
	creds := Credentials{
		Desktop:  s.desktops.Current(),
		Login:    s.login.Text(),
		Password: s.password.Text(),
	}

	err := s.auth(ctx, creds)
	s.password.Clear()
	if err != nil {
		s.fails++
		s.buf.InfoLine = s.cfg.Lang.ErrAuth
		if msg := err.Error(); msg != "" {
			s.buf.InfoLine = msg
		}
		s.logger.Warn("authentication failed", "login", creds.Login, "desktop", creds.Desktop.Name, "fails", s.fails, "error", err)
		return err
	}

	s.fails = 0
	s.buf.InfoLine = s.cfg.Lang.LoggedIn
	s.logger.Info("authentication succeeded", "login", creds.Login, "desktop", creds.Desktop.Name)
	return nil
}
