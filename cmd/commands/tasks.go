package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"todolist/internal/render"
	"todolist/internal/tasks"
)

func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task to the front of the list",
		ArgsUsage: "<text>",
		Action:    runAdd,
	}
}

func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "all, pending or completed (defaults to the configured filter)",
			},
		},
		Action: runList,
	}
}

func NewToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Usage:     "Flip a task between pending and completed",
		ArgsUsage: "<task_id>",
		Action:    runToggle,
	}
}

func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Replace a task's text",
		ArgsUsage: "<task_id> <text>",
		Action:    runEdit,
	}
}

func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<task_id>",
		Action:    runRemove,
	}
}

func NewClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Delete every completed task",
		Action: runClear,
	}
}

func out(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func parseID(cmd *cli.Command) (int, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("usage: todo %s %s", cmd.Name, cmd.ArgsUsage)
	}
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	text := strings.Join(cmd.Args().Slice(), " ")
	t, ok := e.controller(nil).AddTask(text)
	if !ok {
		return nil
	}
	fmt.Fprintf(out(cmd), "Added #%d %s\n", t.ID, render.Terminal(t.Text))
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	c := e.controller(nil)
	if raw := cmd.String("filter"); raw != "" {
		f, err := tasks.ParseFilter(raw)
		if err != nil {
			return err
		}
		c.SetFilter(f)
	}
	return writeList(out(cmd), c.Snapshot())
}

func writeList(w io.Writer, s tasks.Snapshot) error {
	if s.Empty {
		fmt.Fprintln(w, "No tasks here.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tTEXT")
		for _, it := range s.Items {
			status := "pending"
			if it.Completed {
				status = "completed"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\n", it.ID, status, render.Terminal(it.Text))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s • %s\n", s.TotalLabel, s.CompletedLabel)
	return err
}

func runToggle(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	c := e.controller(nil)
	if !c.ToggleTask(id) {
		fmt.Fprintf(out(cmd), "No task #%d.\n", id)
		return nil
	}
	t, _ := c.Task(id)
	state := "pending"
	if t.Completed {
		state = "completed"
	}
	fmt.Fprintf(out(cmd), "#%d is now %s\n", id, state)
	return nil
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	text := strings.Join(cmd.Args().Tail(), " ")
	if !e.controller(nil).EditTask(id, text) {
		fmt.Fprintf(out(cmd), "#%d unchanged\n", id)
		return nil
	}
	fmt.Fprintf(out(cmd), "Updated #%d\n", id)
	return nil
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	c := e.controller(nil)
	r, ok := c.DeleteTask(id)
	if !ok || !c.CommitRemoval(r) {
		fmt.Fprintf(out(cmd), "No task #%d.\n", id)
		return nil
	}
	fmt.Fprintf(out(cmd), "Deleted #%d\n", id)
	return nil
}

func runClear(_ context.Context, cmd *cli.Command) error {
	e, err := openEnv(cmd, cmd.Root().ErrWriter)
	if err != nil {
		return err
	}
	defer e.Close()

	c := e.controller(nil)
	r, ok := c.ClearCompletedTasks()
	if !ok {
		fmt.Fprintln(out(cmd), "Nothing to clear.")
		return nil
	}
	n := len(r.IDs())
	c.CommitRemoval(r)
	fmt.Fprintf(out(cmd), "Cleared %d completed\n", n)
	return nil
}
