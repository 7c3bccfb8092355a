// Package tasks holds the task list state and the controller that mutates,
// persists and renders it.
package tasks

import (
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"
)

// Persistence is a synchronous key-value byte store. Load returns nil, nil
// when the slot has never been written.
type Persistence interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

type Option func(*Controller)

// WithSlot overrides the persistence slot name.
func WithSlot(slot string) Option {
	return func(c *Controller) {
		if slot != "" {
			c.slot = slot
		}
	}
}

// WithFilter sets the filter used for the initial render.
func WithFilter(f Filter) Option {
	return func(c *Controller) { c.filter = f }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

type removalKind int

const (
	removeOne removalKind = iota
	removeCompleted
)

// Removal is a pending deletion handed out by DeleteTask or
// ClearCompletedTasks and applied by CommitRemoval.
type Removal struct {
	kind removalKind
	ids  []int
}

// IDs returns the identifiers that were marked when the removal started.
func (r *Removal) IDs() []int {
	return slices.Clone(r.ids)
}

type editSession struct {
	id       int
	original string
}

// Controller owns the task list, the active filter and the identifier
// counter. It is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	persist Persistence
	view    View
	slot    string
	log     *slog.Logger
	now     func() time.Time

	list     []Task
	filter   Filter
	nextID   int
	removing map[int]struct{}
	edit     *editSession
}

// New loads the task list from persist and renders it once. A missing or
// unreadable slot yields an empty list.
func New(persist Persistence, view View, opts ...Option) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{
		persist:  persist,
		view:     view,
		slot:     DefaultSlot,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		removing: map[int]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.list = c.load()
	c.nextID = 1
	for _, t := range c.list {
		if t.ID >= c.nextID {
			c.nextID = t.ID + 1
		}
	}
	c.Render()
	return c
}

func (c *Controller) load() []Task {
	if c.persist == nil {
		return nil
	}
	data, err := c.persist.Load(c.slot)
	if err != nil {
		c.log.Warn("load tasks", "slot", c.slot, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	list, err := Decode(data)
	if err != nil {
		c.log.Warn("discarding malformed task list", "slot", c.slot, "error", err)
		return nil
	}
	return list
}

func (c *Controller) save() {
	if c.persist == nil {
		return
	}
	data, err := Encode(c.list)
	if err != nil {
		c.log.Error("encode tasks", "error", err)
		return
	}
	if err := c.persist.Save(c.slot, data); err != nil {
		c.log.Error("save tasks", "slot", c.slot, "error", err)
	}
}

func (c *Controller) index(id int) int {
	return slices.IndexFunc(c.list, func(t Task) bool { return t.ID == id })
}

// AddTask inserts a new task at the front of the list. Blank text is ignored.
func (c *Controller) AddTask(raw string) (Task, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Task{}, false
	}
	t := Task{
		ID:        c.nextID,
		Text:      text,
		CreatedAt: c.now(),
	}
	c.nextID++
	c.list = slices.Insert(c.list, 0, t)
	c.log.Debug("task added", "id", t.ID)
	c.save()
	c.Render()
	return t, true
}

// ToggleTask flips the completed flag of the task with the given id.
func (c *Controller) ToggleTask(id int) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.list[i].Completed = !c.list[i].Completed
	c.save()
	c.Render()
	return true
}

// EditTask replaces a task's text. Blank or unchanged text is discarded
// without touching persistence.
func (c *Controller) EditTask(id int, newText string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	text := strings.TrimSpace(newText)
	if text == "" || text == c.list[i].Text {
		return false
	}
	c.list[i].Text = text
	c.save()
	c.Render()
	return true
}

// BeginEdit starts an inline edit session on id and returns the text to
// restore on cancel. Starting a session replaces any session in progress.
func (c *Controller) BeginEdit(id int) (string, bool) {
	i := c.index(id)
	if i < 0 {
		return "", false
	}
	if _, pending := c.removing[id]; pending {
		return "", false
	}
	c.edit = &editSession{id: id, original: c.list[i].Text}
	c.Render()
	return c.edit.original, true
}

// Editing reports the id of the task under edit, if any.
func (c *Controller) Editing() (int, bool) {
	if c.edit == nil {
		return 0, false
	}
	return c.edit.id, true
}

// CommitEdit ends the edit session, applying newText through EditTask.
func (c *Controller) CommitEdit(newText string) bool {
	if c.edit == nil {
		return false
	}
	id := c.edit.id
	c.edit = nil
	if c.EditTask(id, newText) {
		return true
	}
	c.Render()
	return false
}

// CancelEdit ends the edit session without committing anything.
func (c *Controller) CancelEdit() {
	if c.edit == nil {
		return
	}
	c.edit = nil
	c.Render()
}

// DeleteTask marks a task for removal. The task stays in the list until
// the returned Removal is committed. A task already pending removal is
// left alone and no Removal is returned.
func (c *Controller) DeleteTask(id int) (*Removal, bool) {
	if c.index(id) < 0 {
		return nil, false
	}
	if _, pending := c.removing[id]; pending {
		return nil, false
	}
	c.removing[id] = struct{}{}
	c.Render()
	return &Removal{kind: removeOne, ids: []int{id}}, true
}

// ClearCompletedTasks marks every completed task for removal.
func (c *Controller) ClearCompletedTasks() (*Removal, bool) {
	r := &Removal{kind: removeCompleted}
	for _, t := range c.list {
		if !t.Completed {
			continue
		}
		if _, pending := c.removing[t.ID]; pending {
			continue
		}
		c.removing[t.ID] = struct{}{}
		r.ids = append(r.ids, t.ID)
	}
	if len(r.ids) == 0 {
		return nil, false
	}
	c.Render()
	return r, true
}

// CommitRemoval applies a Removal. A single delete drops its task; a
// clear-completed drops every task that is completed at commit time.
func (c *Controller) CommitRemoval(r *Removal) bool {
	if r == nil || len(r.ids) == 0 {
		return false
	}
	before := len(c.list)
	switch r.kind {
	case removeOne:
		id := r.ids[0]
		delete(c.removing, id)
		c.list = slices.DeleteFunc(c.list, func(t Task) bool { return t.ID == id })
	case removeCompleted:
		for _, id := range r.ids {
			delete(c.removing, id)
		}
		c.list = slices.DeleteFunc(c.list, func(t Task) bool {
			if t.Completed {
				delete(c.removing, t.ID)
			}
			return t.Completed
		})
	}
	if c.edit != nil && c.index(c.edit.id) < 0 {
		c.edit = nil
	}
	removed := before - len(c.list)
	if removed == 0 {
		c.Render()
		return false
	}
	c.log.Debug("tasks removed", "count", removed)
	c.save()
	c.Render()
	return removed > 0
}

// SetFilter changes the visible projection.
func (c *Controller) SetFilter(f Filter) {
	c.filter = f
	c.Render()
}

func (c *Controller) Filter() Filter { return c.filter }

// Tasks returns a copy of the full list in order.
func (c *Controller) Tasks() []Task {
	return slices.Clone(c.list)
}

// Task returns the task with the given id.
func (c *Controller) Task(id int) (Task, bool) {
	i := c.index(id)
	if i < 0 {
		return Task{}, false
	}
	return c.list[i], true
}

// Visible returns the tasks matching the current filter.
func (c *Controller) Visible() []Task {
	return c.filter.Apply(c.list)
}

// Pending reports whether the task is marked for removal.
func (c *Controller) Pending(id int) bool {
	_, ok := c.removing[id]
	return ok
}

// Snapshot computes what Render would hand to the view.
func (c *Controller) Snapshot() Snapshot {
	visible := c.Visible()
	s := Snapshot{
		Items:  make([]Item, 0, len(visible)),
		Filter: c.filter,
		Empty:  len(visible) == 0,
		Total:  len(c.list),
	}
	for _, t := range visible {
		_, removing := c.removing[t.ID]
		s.Items = append(s.Items, Item{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Removing:  removing,
			Editing:   c.edit != nil && c.edit.id == t.ID,
			CreatedAt: t.CreatedAt,
		})
	}
	for _, t := range c.list {
		if t.Completed {
			s.CompletedCount++
		}
	}
	for _, f := range Filters {
		s.Filters = append(s.Filters, FilterControl{Filter: f, Active: f == c.filter})
	}
	s.TotalLabel = totalLabel(s.Total)
	s.CompletedLabel = completedLabel(s.CompletedCount)
	s.ClearDisabled = s.CompletedCount == 0
	return s
}

// Render pushes the current snapshot to the view.
func (c *Controller) Render() {
	c.view.Render(c.Snapshot())
}
