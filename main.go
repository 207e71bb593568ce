package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/navarea/config"
	"github.com/pthm-cable/navarea/scene"
	"github.com/pthm-cable/navarea/world"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	scenePath  string
	seed       int64
	logLevel   string
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}
	c := &cobra.Command{
		Use:          "navarea",
		Short:        "navigation area graph tools",
		SilenceUsage: true,
	}
	c.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml (empty = use defaults)")
	c.PersistentFlags().StringVar(&opts.scenePath, "scene", "", "scene file to load")
	c.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "RNG seed for tie-breaks (0 = use config)")
	c.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	c.AddCommand(
		BakeCmd(opts),
		SplitCmd(opts),
		MergeCmd(opts),
		SpliceCmd(opts),
		InfoCmd(opts),
	)
	return c
}

// app is a loaded config, logger and scene ready for a subcommand.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	world  *world.World
	scene  *scene.Built
}

func setup(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	if err := config.Init(opts.configPath); err != nil {
		return nil, err
	}
	cfg := config.Cfg()
	if opts.seed != 0 {
		cfg.Editing.Seed = opts.seed
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}

	logger, err := newLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	if opts.scenePath == "" {
		return nil, fmt.Errorf("--scene is required")
	}
	s, err := scene.Load(opts.scenePath)
	if err != nil {
		return nil, err
	}

	w := world.New(cfg, logger)
	built, err := s.Build(w)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	logger.Info("scene loaded",
		"scene", opts.scenePath,
		"areas", w.Mesh.Len(),
		"ladders", len(w.Mesh.Ladders()),
		"solids", len(w.Tracer.Boxes()),
		"entities", w.Count(),
	)
	return &app{cfg: cfg, logger: logger, world: w, scene: built}, nil
}

// newLogger builds the slog handler named by the logging config.
func newLogger(lc config.LoggingConfig, out io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if lc.Level != "" {
		if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(lc.Format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(out, hopts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(out, hopts)), nil
	}
	return nil, fmt.Errorf("logging.format: unknown format %q", lc.Format)
}
