// Package commands wires the todo command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"todolist/internal/config"
	"todolist/internal/storage"
	"todolist/internal/tasks"
	"todolist/internal/ui"
)

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// starts the interactive list.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "Keep a short list of things to do",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			NewAddCommand(),
			NewListCommand(),
			NewToggleCommand(),
			NewEditCommand(),
			NewRemoveCommand(),
			NewClearCommand(),
			NewExportCommand(),
		},
	}
}

// env is what every command needs: the loaded config, an open store and a
// logger.
type env struct {
	cfg   config.Config
	store storage.Store
	log   *slog.Logger
}

func (e *env) Close() error {
	return e.store.Close()
}

// controller builds a task controller over the env's store.
func (e *env) controller(view tasks.View) *tasks.Controller {
	filter, err := tasks.ParseFilter(e.cfg.DefaultFilter)
	if err != nil {
		e.log.Warn("ignoring default filter", "value", e.cfg.DefaultFilter, "error", err)
	}
	return tasks.New(e.store, view,
		tasks.WithSlot(e.cfg.Storage.Slot),
		tasks.WithFilter(filter),
		tasks.WithLogger(e.log),
	)
}

func openEnv(cmd *cli.Command, logOut io.Writer) (*env, error) {
	cfg, err := config.LoadOrCreate(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newEnv(cmd, cfg, logOut)
}

// newEnv opens the store named by an already loaded config.
func newEnv(cmd *cli.Command, cfg config.Config, logOut io.Writer) (*env, error) {
	level := slog.LevelWarn
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	log.Debug("store opened", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)
	return &env{cfg: cfg, store: store, log: log}, nil
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadOrCreate(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the program; logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	e, err := newEnv(cmd, cfg, logOut)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := ui.Run(e.store, e.cfg, tasks.WithLogger(e.log)); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
