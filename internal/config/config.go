package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/fchimpan/tgreet/internal/anim"
	"github.com/fchimpan/tgreet/internal/cell"
	"github.com/fchimpan/tgreet/internal/input"
)

// Lang holds every user-visible caption.
type Lang struct {
	Login         string `toml:"login"`
	Password      string `toml:"password"`
	F1            string `toml:"f1"`
	F2            string `toml:"f2"`
	NumLock       string `toml:"numlock"`
	CapsLock      string `toml:"capslock"`
	Shell         string `toml:"shell"`
	ErrConsoleDev string `toml:"err_console_dev"`
	ErrAuth       string `toml:"err_auth"`
	LoggedIn      string `toml:"logged_in"`
}

type DesktopEntry struct {
	Name   string `toml:"name"`
	Exec   string `toml:"exec"`
	Server string `toml:"server"`
}

type Config struct {
	MarginBoxH  int         `toml:"margin_box_h"`
	MarginBoxV  int         `toml:"margin_box_v"`
	HideBorders bool        `toml:"hide_borders"`
	BlankBox    bool        `toml:"blank_box"`
	Fg          cell.Color  `toml:"fg"`
	Bg          cell.Color  `toml:"bg"`
	BgBar       *cell.Color `toml:"bg_bar"`

	InputLen       int    `toml:"input_len"`
	MaxLoginLen    int    `toml:"max_login_len"`
	MaxPasswordLen int    `toml:"max_password_len"`
	Asterisk       string `toml:"asterisk"`

	Animate   bool   `toml:"animate"`
	Animation string `toml:"animation"`
	FrameRate int    `toml:"frame_rate"`

	ConsoleDev string `toml:"console_dev"`
	AuthFails  int    `toml:"auth_fails"`

	// ASCIIBorders forces the ASCII border set; nil means detect from the locale.
	ASCIIBorders     *bool `toml:"ascii_borders"`
	WaylandSpecifier bool  `toml:"wayland_specifier"`

	Lang     Lang           `toml:"lang"`
	Desktops []DesktopEntry `toml:"desktop"`
}

func DefaultLang() Lang {
	return Lang{
		Login:         "login:",
		Password:      "password:",
		F1:            "F1 shutdown",
		F2:            "F2 reboot",
		NumLock:       "numlock",
		CapsLock:      "capslock",
		Shell:         "shell",
		ErrConsoleDev: "failed to access console",
		ErrAuth:       "authentication failed",
		LoggedIn:      "logged in",
	}
}

func Default() Config {
	return Config{
		MarginBoxH:     2,
		MarginBoxV:     1,
		Fg:             cell.White,
		Bg:             cell.Black,
		InputLen:       34,
		MaxLoginLen:    255,
		MaxPasswordLen: 255,
		Asterisk:       "*",
		Animate:        false,
		Animation:      "fire",
		FrameRate:      20,
		ConsoleDev:     "/dev/console",
		AuthFails:      10,
		Lang:           DefaultLang(),
	}
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(names, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.MarginBoxH < 0 || c.MarginBoxV < 0 {
		errs = append(errs, fmt.Errorf("margins must be >= 0 (got %d,%d)", c.MarginBoxH, c.MarginBoxV))
	}
	if c.InputLen <= 0 {
		errs = append(errs, fmt.Errorf("input_len must be > 0"))
	}
	if c.MaxLoginLen <= 0 || c.MaxPasswordLen <= 0 {
		errs = append(errs, fmt.Errorf("max_login_len and max_password_len must be > 0"))
	}
	if utf8.RuneCountInString(c.Asterisk) > 1 {
		errs = append(errs, fmt.Errorf("asterisk must be a single character, got %q", c.Asterisk))
	}
	if _, err := anim.ParseKind(c.Animation); err != nil {
		errs = append(errs, err)
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate must be > 0"))
	}
	if c.AuthFails <= 0 {
		errs = append(errs, fmt.Errorf("auth_fails must be > 0"))
	}
	return errors.Join(errs...)
}

// Mask is the glyph painted for each password rune; an empty asterisk
// means a blank mask.
func (c Config) Mask() rune {
	r, _ := utf8.DecodeRuneInString(c.Asterisk)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}

// BarBg is the status bar background.
func (c Config) BarBg() cell.Color {
	if c.BgBar != nil {
		return *c.BgBar
	}
	return c.Bg
}

// AnimationKind is Off unless animation is enabled.
func (c Config) AnimationKind() anim.Kind {
	if !c.Animate {
		return anim.Off
	}
	k, err := anim.ParseKind(c.Animation)
	if err != nil {
		return anim.Off
	}
	return k
}

// UnicodeBorders resolves the border capability once: the explicit setting
// wins, otherwise the locale decides.
func (c Config) UnicodeBorders() bool {
	if c.ASCIIBorders != nil {
		return !*c.ASCIIBorders
	}
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		v = strings.ToUpper(v)
		return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
	}
	return false
}

// DesktopList builds the selector: the shell first, then configured entries.
func (c Config) DesktopList() *input.DesktopList {
	list := input.NewDesktopList(c.Lang.Shell)
	for _, d := range c.Desktops {
		list.Add(d.Name, d.Exec, input.ParseServer(d.Server), c.WaylandSpecifier)
	}
	return list
}
