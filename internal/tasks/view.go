package tasks

import (
	"fmt"
	"time"
)

// View receives a fresh Snapshot every time the controller renders.
type View interface {
	Render(Snapshot)
}

// ViewFunc adapts a plain function to View.
type ViewFunc func(Snapshot)

func (f ViewFunc) Render(s Snapshot) { f(s) }

type nopView struct{}

func (nopView) Render(Snapshot) {}

// Item is one visible task as the view should draw it.
type Item struct {
	ID        int
	Text      string
	Completed bool
	Removing  bool
	Editing   bool
	CreatedAt time.Time
}

// FilterControl is one filter trigger and whether it is the active one.
type FilterControl struct {
	Filter Filter
	Active bool
}

// Snapshot is the read-only projection handed to a View.
type Snapshot struct {
	Items          []Item
	Filter         Filter
	Filters        []FilterControl
	Empty          bool
	Total          int
	CompletedCount int
	TotalLabel     string
	CompletedLabel string
	ClearDisabled  bool
}

func totalLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

func completedLabel(n int) string {
	return fmt.Sprintf("%d completed", n)
}
