package render

import (
	"bytes"
	"strings"
	"testing"

	"todolist/internal/tasks"
)

func newController(t *testing.T, view tasks.View) *tasks.Controller {
	t.Helper()
	return tasks.New(nil, view)
}

func TestPageEscapesTaskText(t *testing.T) {
	p := NewPage("Tasks")
	c := newController(t, p)
	c.AddTask(`<script>alert("x")</script>`)

	out := p.String()
	if strings.Contains(out, "<script>") {
		t.Fatalf("task text rendered as markup:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;") {
		t.Errorf("escaped text missing:\n%s", out)
	}
}

func TestPageHooks(t *testing.T) {
	p := NewPage("Tasks")
	c := newController(t, p)
	c.AddTask("Buy milk")
	c.AddTask("Walk dog")
	c.ToggleTask(1)

	out := p.String()
	for _, want := range []string{
		`id="taskInput"`,
		`id="addBtn"`,
		`id="taskList"`,
		`id="emptyState" class="empty-state" style="display: none"`,
		`<span id="totalTasks">2 tasks</span>`,
		`<span id="completedTasks">1 completed</span>`,
		`<button class="filter-btn active" data-filter="all">All</button>`,
		`<button class="filter-btn" data-filter="pending">Pending</button>`,
		`<li class="task-item completed" data-id="1">`,
		`<li class="task-item" data-id="2">`,
		`<input type="checkbox" class="task-checkbox" checked>`,
		`class="action-btn edit-btn"`,
		`class="action-btn delete-btn"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(out, `id="clearCompleted" disabled`) {
		t.Error("clear completed disabled with a completed task")
	}
	if strings.Index(out, `data-id="2"`) > strings.Index(out, `data-id="1"`) {
		t.Error("items not in list order")
	}
}

func TestPageEmptyAndRemoving(t *testing.T) {
	p := NewPage("Tasks")
	c := newController(t, p)
	if !strings.Contains(p.String(), `style="display: block"`) {
		t.Error("empty indicator hidden on empty list")
	}
	if !strings.Contains(p.String(), `id="clearCompleted" disabled`) {
		t.Error("clear completed enabled on empty list")
	}

	task, _ := c.AddTask("a")
	c.DeleteTask(task.ID)
	if !strings.Contains(p.String(), `<li class="task-item removing" data-id="1">`) {
		t.Errorf("removing class missing:\n%s", p.String())
	}
}

func TestPageWriteTo(t *testing.T) {
	p := NewPage("Mine")
	newController(t, p)

	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<!DOCTYPE html>") || !strings.Contains(buf.String(), "<title>Mine</title>") {
		t.Errorf("unexpected document:\n%s", buf.String())
	}
}
