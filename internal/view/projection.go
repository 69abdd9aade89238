// Package view derives the filtered, deadline-sorted task list shown to the
// user and tracks the current selection.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nibzard/todolist-go/internal/todo"
)

// Filter selects which tasks are visible.
type Filter int

const (
	// FilterAll shows every task.
	FilterAll Filter = iota
	// FilterToday shows tasks whose deadline is the current date.
	FilterToday
)

func (f Filter) String() string {
	switch f {
	case FilterToday:
		return "today"
	default:
		return "all"
	}
}

// ParseFilter parses "all" or "today".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "today":
		return FilterToday, nil
	default:
		return FilterAll, fmt.Errorf("unknown filter %q (want all|today)", s)
	}
}

// Detail is the text shown for the selected task. All fields are empty
// when nothing is selected.
type Detail struct {
	Description string
	Details     string
	Deadline    string
}

// Empty reports whether the detail display is cleared.
func (d Detail) Empty() bool {
	return d == Detail{}
}

// Option configures a Projection.
type Option func(*Projection)

// WithClock sets the time source used for the "today" filter.
func WithClock(now func() time.Time) Option {
	return func(p *Projection) {
		if now != nil {
			p.now = now
		}
	}
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) Option {
	return func(p *Projection) {
		p.filter = f
	}
}

// Projection is a live view over a todo.Store. It re-derives the visible
// set after every store change, so callers never refresh it by hand.
type Projection struct {
	store   *todo.Store
	now     func() time.Time
	filter  Filter
	visible []*todo.Task

	selected *todo.Task
	// beforeToday is the selection when the today filter was switched on.
	beforeToday *todo.Task

	cancel func()
}

// New returns a projection over store with the first visible task selected.
func New(store *todo.Store, opts ...Option) *Projection {
	p := &Projection{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.recompute()
	if len(p.visible) > 0 {
		p.selected = p.visible[0]
	}
	p.cancel = store.Subscribe(p.storeChanged)
	return p
}

// Close detaches the projection from its store.
func (p *Projection) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Today returns the current date according to the projection's clock.
func (p *Projection) Today() todo.Date {
	return todo.Today(p.now())
}

// Filter returns the active filter.
func (p *Projection) Filter() Filter {
	return p.filter
}

// Visible returns the filtered tasks sorted by ascending deadline. Tasks
// with equal deadlines keep their store order.
func (p *Projection) Visible() []*todo.Task {
	out := make([]*todo.Task, len(p.visible))
	copy(out, p.visible)
	return out
}

// Len returns the number of visible tasks.
func (p *Projection) Len() int {
	return len(p.visible)
}

// Counts returns the number of tasks in the store and the number due today.
func (p *Projection) Counts() (all, today int) {
	day := p.Today()
	for _, t := range p.store.Tasks() {
		if t.DueOn(day) {
			today++
		}
	}
	return p.store.Len(), today
}

// SetFilter switches the filter and fixes up the selection:
//
//   - to today: keep the selection if still visible, else select the first
//     visible task, else clear it.
//   - to all: keep the selection if any; otherwise restore the task selected
//     before the today filter was applied, if it still exists.
func (p *Projection) SetFilter(f Filter) {
	if f == p.filter {
		p.Refresh()
		return
	}
	prev := p.selected
	if f == FilterToday {
		p.beforeToday = prev
	}
	p.filter = f
	p.recompute()

	switch f {
	case FilterToday:
		switch {
		case len(p.visible) == 0:
			p.selected = nil
		case !p.isVisible(prev):
			p.selected = p.visible[0]
		}
	default:
		switch {
		case prev != nil && p.isVisible(prev):
			p.selected = prev
		case p.isVisible(p.beforeToday):
			p.selected = p.beforeToday
		case len(p.visible) > 0:
			p.selected = p.visible[0]
		default:
			p.selected = nil
		}
		p.beforeToday = nil
	}
}

// ToggleToday flips between FilterAll and FilterToday.
func (p *Projection) ToggleToday() Filter {
	if p.filter == FilterToday {
		p.SetFilter(FilterAll)
	} else {
		p.SetFilter(FilterToday)
	}
	return p.filter
}

// Refresh re-derives the visible set, e.g. after the date changed.
func (p *Projection) Refresh() {
	p.storeChanged()
}

// Selected returns the selected task or nil.
func (p *Projection) Selected() *todo.Task {
	return p.selected
}

// Select selects task if it is visible and reports whether it did.
func (p *Projection) Select(task *todo.Task) bool {
	if !p.isVisible(task) {
		return false
	}
	p.selected = task
	return true
}

// SelectIndex selects the i-th visible task.
func (p *Projection) SelectIndex(i int) bool {
	if i < 0 || i >= len(p.visible) {
		return false
	}
	p.selected = p.visible[i]
	return true
}

// Cursor returns the index of the selection in the visible set, or -1.
func (p *Projection) Cursor() int {
	return p.indexOf(p.selected)
}

// MoveCursor moves the selection by delta, clamped to the visible set.
func (p *Projection) MoveCursor(delta int) {
	if len(p.visible) == 0 {
		return
	}
	i := p.Cursor()
	if i < 0 {
		i = 0
	} else {
		i += delta
	}
	p.SelectIndex(clamp(i, 0, len(p.visible)-1))
}

// Detail returns the detail display for the selection.
func (p *Projection) Detail() Detail {
	if p.selected == nil {
		return Detail{}
	}
	return Detail{
		Description: p.selected.Description,
		Details:     p.selected.Details,
		Deadline:    p.selected.Deadline.Display(),
	}
}

func (p *Projection) storeChanged() {
	prevIndex := p.Cursor()
	p.recompute()

	if p.selected != nil && p.isVisible(p.selected) {
		return
	}
	if len(p.visible) == 0 {
		p.selected = nil
		return
	}
	// The selection was deleted or filtered out: stay at the same row.
	p.selected = p.visible[clamp(prevIndex, 0, len(p.visible)-1)]
}

func (p *Projection) recompute() {
	today := p.Today()
	tasks := p.store.Tasks()
	visible := tasks[:0]
	for _, t := range tasks {
		if p.filter == FilterToday && !t.DueOn(today) {
			continue
		}
		visible = append(visible, t)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Deadline.Before(visible[j].Deadline)
	})
	p.visible = visible
}

func (p *Projection) isVisible(task *todo.Task) bool {
	return p.indexOf(task) >= 0
}

func (p *Projection) indexOf(task *todo.Task) int {
	if task == nil {
		return -1
	}
	for i, t := range p.visible {
		if t == task {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
