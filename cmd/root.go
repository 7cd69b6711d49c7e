package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fchimpan/tgreet/internal/config"
	"github.com/fchimpan/tgreet/internal/greeter"
	"github.com/fchimpan/tgreet/internal/sysinfo"
)

// RunFunc drives a session on a terminal until it yields an action.
type RunFunc func(ctx context.Context, s *greeter.Session, frameRate int) (greeter.Action, error)

type Deps struct {
	LoadConfig func(path string) (config.Config, error)
	Hostname   func() (string, error)
	Auth       greeter.Authenticator
	RunTUI     RunFunc
	RunTcell   RunFunc
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
}

func DefaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		Hostname:   sysinfo.Hostname,
		Auth:       greeter.PreviewAuth,
		RunTUI:     defaultRunTUI,
		RunTcell:   defaultRunTcell,
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

const (
	backendTea   = "tea"
	backendTcell = "tcell"
)

type options struct {
	configPath string
	animation  string
	backend    string
	seed       uint64
	logFile    string
	ascii      bool
	asciiSet   bool
}

func NewRootCmd(deps Deps) *cobra.Command {
	var opts options

	c := &cobra.Command{
		Use:          "tgreet",
		Short:        "Console login greeter with fire and matrix backgrounds",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.backend {
			case backendTea, backendTcell:
			default:
				return fmt.Errorf("--backend must be %q or %q, got %q", backendTea, backendTcell, opts.backend)
			}
			opts.asciiSet = cmd.Flags().Changed("ascii")
			if opts.seed == 0 && deps.Now != nil {
				opts.seed = uint64(deps.Now().UnixNano())
			}
			return run(cmd.Context(), deps, opts)
		},
	}

	c.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	c.Flags().StringVarP(&opts.animation, "animation", "a", "", "background animation: fire, matrix or off (overrides the config)")
	c.Flags().StringVarP(&opts.backend, "backend", "b", backendTea, "terminal backend: tea or tcell")
	c.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for the animations (default: time based)")
	c.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file (default: discarded)")
	c.Flags().BoolVar(&opts.ascii, "ascii", false, "draw the box with ASCII borders")

	c.SetOut(deps.Stdout)
	c.SetErr(deps.Stderr)
	return c
}
