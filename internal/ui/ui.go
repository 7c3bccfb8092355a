package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"todolist/internal/config"
	"todolist/internal/render"
	"todolist/internal/tasks"
)

const flashDuration = 100 * time.Millisecond

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

type removalDueMsg struct {
	removal *tasks.Removal
}

type flashDoneMsg struct{}

// snapshotView keeps the last snapshot the controller rendered so View can
// draw it.
type snapshotView struct {
	last tasks.Snapshot
}

func (v *snapshotView) Render(s tasks.Snapshot) { v.last = s }

type Model struct {
	ctrl   *tasks.Controller
	view   *snapshotView
	keys   config.Keymap
	delay  time.Duration
	cursor int
	mode   mode
	input  textinput.Model
	status string
	flash  bool
}

// New builds the controller over store and wraps it in a Bubble Tea model.
func New(store tasks.Persistence, cfg config.Config, opts ...tasks.Option) Model {
	filter, err := tasks.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		filter = tasks.FilterAll
	}
	view := &snapshotView{}
	base := []tasks.Option{tasks.WithSlot(cfg.Storage.Slot), tasks.WithFilter(filter)}
	ctrl := tasks.New(store, view, append(base, opts...)...)

	ti := textinput.New()
	ti.Placeholder = "Add a new task..."
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctrl:   ctrl,
		view:   view,
		keys:   cfg.Keys,
		delay:  cfg.Delay(),
		input:  ti,
		mode:   modeList,
		status: fmt.Sprintf("Press '%s' to add, '%s' to toggle, '%s' to delete.", cfg.Keys.Add, keyLabel(cfg.Keys.Toggle), cfg.Keys.Delete),
	}
}

func Run(store tasks.Persistence, cfg config.Config, opts ...tasks.Option) error {
	program := tea.NewProgram(New(store, cfg, opts...))
	_, err := program.Run()
	return err
}

// Controller exposes the underlying task controller.
func (m Model) Controller() *tasks.Controller { return m.ctrl }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case removalDueMsg:
		m.ctrl.CommitRemoval(msg.removal)
		m.cursor = clampCursor(m.cursor, len(m.view.last.Items))
		if _, editing := m.ctrl.Editing(); !editing && m.mode == modeEdit {
			m.leaveEdit()
			m.status = "Edited task was removed"
		}
	case flashDoneMsg:
		m.flash = false
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeEdit:
		return m.updateEditMode(key, msg)
	}
	return m.updateListMode(key)
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.keys.Confirm:
		if _, ok := m.ctrl.AddTask(m.input.Value()); !ok {
			return m, nil
		}
		m.input.SetValue("")
		m.cursor = 0
		m.status = "Added task"
		m.flash = true
		return m, tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{} })
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.keys.Cancel:
		m.ctrl.CancelEdit()
		m.leaveEdit()
		m.status = "Edit cancelled"
		return m, nil
	case m.keys.Confirm, "tab":
		if m.ctrl.CommitEdit(m.input.Value()) {
			m.status = "Saved"
		} else {
			m.status = "No changes"
		}
		m.leaveEdit()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) leaveEdit() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	items := m.view.last.Items
	switch key {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(items))
	case m.keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(items))
	case m.keys.Add:
		m.mode = modeAdd
		m.status = "Type a task and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case m.keys.Toggle:
		if it, ok := m.selected(); ok {
			m.ctrl.ToggleTask(it.ID)
			m.cursor = clampCursor(m.cursor, len(m.view.last.Items))
		}
	case m.keys.Edit:
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		original, ok := m.ctrl.BeginEdit(it.ID)
		if !ok {
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(original)
		m.input.CursorEnd()
		m.status = "Editing: enter to save, esc to cancel"
		cmd := m.input.Focus()
		return m, cmd
	case m.keys.Delete:
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		r, ok := m.ctrl.DeleteTask(it.ID)
		if !ok {
			return m, nil
		}
		m.status = "Deleted task"
		cmd := m.scheduleRemoval(r)
		return m, cmd
	case m.keys.ClearDone:
		r, ok := m.ctrl.ClearCompletedTasks()
		if !ok {
			return m, nil
		}
		m.status = "Cleared completed tasks"
		cmd := m.scheduleRemoval(r)
		return m, cmd
	case m.keys.CycleFilter:
		m.setFilter(m.ctrl.Filter().Next())
	case m.keys.FilterAll:
		m.setFilter(tasks.FilterAll)
	case m.keys.FilterActive:
		m.setFilter(tasks.FilterPending)
	case m.keys.FilterDone:
		m.setFilter(tasks.FilterCompleted)
	}
	return m, nil
}

func (m *Model) setFilter(f tasks.Filter) {
	m.ctrl.SetFilter(f)
	m.cursor = clampCursor(m.cursor, len(m.view.last.Items))
	m.status = "Showing " + f.String()
}

// scheduleRemoval commits r once the removal transition has played. With
// no delay configured the removal is committed on the spot.
func (m *Model) scheduleRemoval(r *tasks.Removal) tea.Cmd {
	if m.delay <= 0 {
		m.ctrl.CommitRemoval(r)
		m.cursor = clampCursor(m.cursor, len(m.view.last.Items))
		return nil
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return removalDueMsg{removal: r} })
}

func (m Model) selected() (tasks.Item, bool) {
	items := m.view.last.Items
	if len(items) == 0 {
		return tasks.Item{}, false
	}
	return items[clampCursor(m.cursor, len(items))], true
}

func (m Model) View() string {
	var b strings.Builder
	s := m.view.last

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
	} else {
		b.WriteString(hintStyle.Render(fmt.Sprintf("(%s) add a new task", m.keys.Add)))
	}
	b.WriteString("\n\n")

	b.WriteString(renderFilters(s.Filters))
	b.WriteString("\n\n")

	if s.Empty {
		b.WriteString(emptyStyle.Render("No tasks here."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	b.WriteString(renderStats(s, m.keys))
	b.WriteString("\n")
	if it, ok := m.selected(); ok && !it.CreatedAt.IsZero() {
		b.WriteString(hintStyle.Render(fmt.Sprintf("#%d added %s", it.ID, humanize.Time(it.CreatedAt))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.flash {
		b.WriteString(flashStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(renderHelp(m.keys)))

	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder
	for i, it := range m.view.last.Items {
		cursor := " "
		if m.cursor == i && m.mode != modeAdd {
			cursor = cursorStyle.Render(">")
		}

		checkbox := "[ ]"
		if it.Completed {
			checkbox = "[x]"
		}

		var text string
		switch {
		case it.Editing && m.mode == modeEdit:
			text = m.input.View()
		case it.Removing:
			text = removingStyle.Render(render.Terminal(it.Text))
		case it.Completed:
			text = completedStyle.Render(render.Terminal(it.Text))
		default:
			text = itemStyle.Render(render.Terminal(it.Text))
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, checkbox, text)
	}
	return b.String()
}

func renderFilters(controls []tasks.FilterControl) string {
	parts := make([]string, 0, len(controls))
	for _, fc := range controls {
		if fc.Active {
			parts = append(parts, activeFilterStyle.Render(fc.Filter.String()))
		} else {
			parts = append(parts, filterStyle.Render(fc.Filter.String()))
		}
	}
	return strings.Join(parts, "  ")
}

func renderStats(s tasks.Snapshot, k config.Keymap) string {
	control := fmt.Sprintf("(%s) clear completed", k.ClearDone)
	if s.ClearDisabled {
		control = disabledStyle.Render(control)
	} else {
		control = enabledStyle.Render(control)
	}
	return fmt.Sprintf("%s • %s • %s", s.TotalLabel, s.CompletedLabel, control)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s filter • %s quit",
		k.Up, k.Down, k.Add, keyLabel(k.Toggle), k.Edit, k.Delete, k.CycleFilter, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
