package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runTodo runs the command tree against a config in dir and returns stdout.
func runTodo(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := NewRootCommand()
	root.Writer = &stdout
	root.ErrWriter = &stderr

	argv := append([]string{"todo", "--config", filepath.Join(dir, "config.toml")}, args...)
	err := root.Run(context.Background(), argv)
	return stdout.String(), err
}

func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runTodo(t, dir, args...)
	if err != nil {
		t.Fatalf("todo %v: %v", args, err)
	}
	return out
}

func TestAddListToggle(t *testing.T) {
	dir := t.TempDir()

	if out := mustRun(t, dir, "add", "Buy", "milk"); out != "Added #1 Buy milk\n" {
		t.Errorf("add output = %q", out)
	}
	mustRun(t, dir, "add", "Walk dog")
	if out := mustRun(t, dir, "toggle", "1"); out != "#1 is now completed\n" {
		t.Errorf("toggle output = %q", out)
	}

	out := mustRun(t, dir, "list")
	if strings.Index(out, "Walk dog") > strings.Index(out, "Buy milk") {
		t.Errorf("newest task should be listed first:\n%s", out)
	}
	if !strings.Contains(out, "2 tasks • 1 completed") {
		t.Errorf("stats missing:\n%s", out)
	}

	out = mustRun(t, dir, "list", "--filter", "completed")
	if strings.Contains(out, "Walk dog") || !strings.Contains(out, "Buy milk") {
		t.Errorf("completed filter:\n%s", out)
	}
}

func TestAddBlankIsSilent(t *testing.T) {
	dir := t.TempDir()
	if out := mustRun(t, dir, "add", "   "); out != "" {
		t.Errorf("blank add output = %q", out)
	}
	if out := mustRun(t, dir, "list"); !strings.Contains(out, "No tasks here.") {
		t.Errorf("list after blank add:\n%s", out)
	}
}

func TestEditRemoveClear(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "a")
	mustRun(t, dir, "add", "b")
	mustRun(t, dir, "add", "c")

	if out := mustRun(t, dir, "edit", "2", "bee"); out != "Updated #2\n" {
		t.Errorf("edit output = %q", out)
	}
	if out := mustRun(t, dir, "edit", "2", "bee"); out != "#2 unchanged\n" {
		t.Errorf("unchanged edit output = %q", out)
	}
	if out := mustRun(t, dir, "rm", "#3"); out != "Deleted #3\n" {
		t.Errorf("rm output = %q", out)
	}
	if out := mustRun(t, dir, "rm", "3"); out != "No task #3.\n" {
		t.Errorf("second rm output = %q", out)
	}

	mustRun(t, dir, "toggle", "1")
	if out := mustRun(t, dir, "clear"); out != "Cleared 1 completed\n" {
		t.Errorf("clear output = %q", out)
	}
	if out := mustRun(t, dir, "clear"); out != "Nothing to clear.\n" {
		t.Errorf("second clear output = %q", out)
	}

	out := mustRun(t, dir, "list")
	if !strings.Contains(out, "bee") || !strings.Contains(out, "1 task • 0 completed") {
		t.Errorf("final list:\n%s", out)
	}

	// each run restarts the counter at the highest surviving id
	if out := mustRun(t, dir, "add", "d"); out != "Added #3 d\n" {
		t.Errorf("add after deletes = %q", out)
	}
}

func TestToggleInvalidID(t *testing.T) {
	dir := t.TempDir()
	if _, err := runTodo(t, dir, "toggle", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if _, err := runTodo(t, dir, "toggle"); err == nil {
		t.Error("expected usage error without id")
	}
	if out := mustRun(t, dir, "toggle", "9"); out != "No task #9.\n" {
		t.Errorf("toggle absent = %q", out)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "add", "<b>bold</b>")

	html := mustRun(t, dir, "export")
	if !strings.Contains(html, "&lt;b&gt;bold&lt;/b&gt;") || strings.Contains(html, "<b>bold") {
		t.Errorf("html export not escaped:\n%s", html)
	}

	js := mustRun(t, dir, "export", "--format", "json")
	if !strings.HasPrefix(js, `[{"id":1,"text":"<b>bold</b>","completed":false,"createdAt":"`) {
		t.Errorf("json export = %s", js)
	}

	path := filepath.Join(dir, "out.html")
	mustRun(t, dir, "export", "--out", path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `id="taskList"`) {
		t.Errorf("exported file missing list hook")
	}

	if _, err := runTodo(t, dir, "export", "--format", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	cfg := `[storage]
backend = "file"
path = "` + filepath.ToSlash(filepath.Join(dir, "slots")) + `"
slot = "work"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mustRun(t, dir, "add", "ship it")
	if _, err := os.Stat(filepath.Join(dir, "slots", "work.json")); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
}

func TestFileBackendDefaultPath(t *testing.T) {
	dir := t.TempDir()
	cfg := "[storage]\nbackend = \"file\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mustRun(t, dir, "add", "ship it")
	if _, err := os.Stat(filepath.Join(dir, "slots", "todoTasks.json")); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "todo.db")); !os.IsNotExist(err) {
		t.Errorf("file backend created todo.db: %v", err)
	}
}

func TestExportReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	dir := t.TempDir()
	mustRun(t, dir, "add", "a")
	if _, err := runTodo(t, dir, "export", "--out", "/dev/full"); err == nil {
		t.Error("export to a full device reported success")
	}
}
