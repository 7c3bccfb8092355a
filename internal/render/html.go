// Package render turns task snapshots into a static HTML page carrying the
// same element hooks as the interactive widget.
package render

import (
	"bytes"
	"html/template"
	"io"

	"todolist/internal/tasks"
)

var funcs = template.FuncMap{
	"itemClass": func(it tasks.Item) string {
		class := "task-item"
		if it.Completed {
			class += " completed"
		}
		if it.Removing {
			class += " removing"
		}
		if it.Editing {
			class += " edit-mode"
		}
		return class
	},
	"filterLabel": func(f tasks.Filter) string {
		switch f {
		case tasks.FilterPending:
			return "Pending"
		case tasks.FilterCompleted:
			return "Completed"
		default:
			return "All"
		}
	},
}

var page = template.Must(template.New("page").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div class="todo-app">
<h1>{{.Title}}</h1>
<div class="input-section">
<input type="text" id="taskInput" placeholder="Add a new task...">
<button id="addBtn">Add</button>
</div>
<div class="filters">
{{- range .Snapshot.Filters}}
<button class="filter-btn{{if .Active}} active{{end}}" data-filter="{{.Filter}}">{{filterLabel .Filter}}</button>
{{- end}}
</div>
<ul id="taskList" class="task-list">
{{- range .Snapshot.Items}}
<li class="{{itemClass .}}" data-id="{{.ID}}">
<input type="checkbox" class="task-checkbox"{{if .Completed}} checked{{end}}>
<span class="task-text">{{.Text}}</span>
<div class="task-actions">
<button class="action-btn edit-btn" title="Edit task">Edit</button>
<button class="action-btn delete-btn" title="Delete task">Delete</button>
</div>
</li>
{{- end}}
</ul>
<div id="emptyState" class="empty-state" style="display: {{if .Snapshot.Empty}}block{{else}}none{{end}}">No tasks here.</div>
<div class="stats">
<span id="totalTasks">{{.Snapshot.TotalLabel}}</span>
<span id="completedTasks">{{.Snapshot.CompletedLabel}}</span>
<button id="clearCompleted"{{if .Snapshot.ClearDisabled}} disabled style="opacity: 0.3"{{end}}>Clear completed</button>
</div>
</div>
</body>
</html>
`))

type pageData struct {
	Title    string
	Snapshot tasks.Snapshot
}

// WriteHTML renders s as a complete document. Task text is always escaped.
func WriteHTML(w io.Writer, title string, s tasks.Snapshot) error {
	return page.Execute(w, pageData{Title: title, Snapshot: s})
}

// Page is a tasks.View that keeps the most recently rendered document.
type Page struct {
	Title string

	buf bytes.Buffer
	err error
}

func NewPage(title string) *Page {
	return &Page{Title: title}
}

func (p *Page) Render(s tasks.Snapshot) {
	p.buf.Reset()
	p.err = WriteHTML(&p.buf, p.Title, s)
}

// WriteTo copies the last rendered document to w.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return io.Copy(w, bytes.NewReader(p.buf.Bytes()))
}

func (p *Page) String() string {
	return p.buf.String()
}
