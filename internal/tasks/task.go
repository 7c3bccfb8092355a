package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultSlot is the persistence slot the task list is stored under.
const DefaultSlot = "todoTasks"

type Task struct {
	ID        int
	Text      string
	Completed bool
	CreatedAt time.Time
}

type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterCompleted
)

// Filters lists every filter in the order the filter controls are shown.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseFilter maps "all", "pending" and "completed" to a Filter.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "pending":
		return FilterPending, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q", s)
	}
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

func (f Filter) match(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching f, preserving order.
func (f Filter) Apply(list []Task) []Task {
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if f.match(t) {
			out = append(out, t)
		}
	}
	return out
}

type record struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// Encode serializes the list into the slot format: a JSON array in list order.
func Encode(list []Task) ([]byte, error) {
	recs := make([]record, 0, len(list))
	for _, t := range list {
		recs = append(recs, record{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(recs); err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a slot blob. Duplicate identifiers after the first are dropped.
func Decode(data []byte) ([]Task, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	seen := make(map[int]struct{}, len(recs))
	list := make([]Task, 0, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		t := Task{ID: r.ID, Text: r.Text, Completed: r.Completed}
		if created, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
			t.CreatedAt = created
		}
		list = append(list, t)
	}
	return list, nil
}
