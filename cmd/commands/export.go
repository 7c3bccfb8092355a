package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"todolist/internal/render"
	"todolist/internal/tasks"
)

func NewExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the list as an HTML page or as the stored JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "html or json",
				Value: "html",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file (default stdout)",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "all, pending or completed",
			},
		},
		Action: runExport,
	}
}

func runExport(_ context.Context, cmd *cli.Command) (err error) {
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	page := render.NewPage("Todo")
	c := e.controller(page)
	if raw := cmd.String("filter"); raw != "" {
		f, err := tasks.ParseFilter(raw)
		if err != nil {
			return err
		}
		c.SetFilter(f)
	}

	var w io.Writer = out(cmd)
	if path := cmd.String("out"); path != "" {
		f, ferr := os.Create(path)
		if ferr != nil {
			return fmt.Errorf("create %s: %w", path, ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", path, cerr)
			}
		}()
		w = f
	}

	switch cmd.String("format") {
	case "html":
		_, err = page.WriteTo(w)
		return err
	case "json":
		data, err := tasks.Encode(c.Visible())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown export format %q", cmd.String("format"))
	}
}
