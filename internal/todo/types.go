package todo

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the on-disk deadline encoding (dd-mm-yyyy).
	DateLayout = "02-01-2006"
	// DateLayoutHint spells DateLayout for humans.
	DateLayoutHint = "dd-mm-yyyy"
	// DisplayLayout is the long form shown next to task details.
	DisplayLayout = "January 2, 2006"
)

// Date is a calendar date without a time component.
// The zero value is not a valid deadline.
type Date struct {
	t time.Time
}

// NewDate returns the date y-m-d. Out-of-range values are normalized the
// same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the local calendar date of now.
func Today(now time.Time) Date {
	return DateOf(now.Local())
}

// ParseDate parses a dd-mm-yyyy string. Day and month need two digits and
// surrounding space is rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want dd-mm-yyyy): %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate is like ParseDate but panics on error. Meant for tests and
// literals.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String returns d in the on-disk encoding.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Display returns d in long form, e.g. "June 15, 2025".
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DisplayLayout)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Urgency classifies a deadline relative to today.
type Urgency int

const (
	Upcoming Urgency = iota
	DueTomorrow
	DueToday
	Overdue
)

func (u Urgency) String() string {
	switch u {
	case Overdue:
		return "overdue"
	case DueToday:
		return "today"
	case DueTomorrow:
		return "tomorrow"
	default:
		return "upcoming"
	}
}

// UrgencyOn returns the urgency of deadline d when the current date is today.
func (d Date) UrgencyOn(today Date) Urgency {
	switch {
	case d.Before(today):
		return Overdue
	case d.Equal(today):
		return DueToday
	case d.Equal(today.AddDays(1)):
		return DueTomorrow
	default:
		return Upcoming
	}
}

// Task is a single to-do entry. Tasks have no identifier; the store
// tracks them by pointer, so two tasks with equal fields are distinct.
type Task struct {
	Description string
	Details     string
	Deadline    Date
}

// NewTask returns a new task. It does not validate; Store.Add does.
func NewTask(description, details string, deadline Date) *Task {
	return &Task{
		Description: description,
		Details:     details,
		Deadline:    deadline,
	}
}

// DueOn reports whether the task's deadline is day.
func (t *Task) DueOn(day Date) bool {
	return t.Deadline.Equal(day)
}

// Validate checks that the task can be written to the task file.
func (t *Task) Validate() error {
	if t.Deadline.IsZero() {
		return &ValidationError{Field: "deadline", Err: fmt.Errorf("%w: missing", ErrInvalidField)}
	}
	if err := checkField("description", t.Description); err != nil {
		return err
	}
	return checkField("details", t.Details)
}

// checkField rejects characters that would break the line format.
func checkField(name, value string) error {
	i := strings.IndexAny(value, "\t\n\r")
	if i < 0 {
		return nil
	}
	what := "tab"
	switch value[i] {
	case '\n':
		what = "newline"
	case '\r':
		what = "carriage return"
	}
	return &ValidationError{
		Field: name,
		Err:   fmt.Errorf("%w: contains a %s character", ErrInvalidField, what),
	}
}
