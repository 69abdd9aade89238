package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todolist-go/internal/todo"
)

const (
	fieldDescription = iota
	fieldDetails
	fieldDeadline
	fieldCount
)

var fieldLabels = [fieldCount]string{"Description", "Details", "Deadline"}

// taskForm collects the three fields of a new task.
type taskForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    error
}

func newTaskForm(today todo.Date) *taskForm {
	f := &taskForm{}

	f.inputs[fieldDescription] = textinput.New()
	f.inputs[fieldDescription].Placeholder = "What needs doing?"
	f.inputs[fieldDescription].CharLimit = 200

	f.inputs[fieldDetails] = textinput.New()
	f.inputs[fieldDetails].Placeholder = "Optional notes"
	f.inputs[fieldDetails].CharLimit = 500

	f.inputs[fieldDeadline] = textinput.New()
	f.inputs[fieldDeadline].Placeholder = todo.DateLayoutHint
	f.inputs[fieldDeadline].CharLimit = len(todo.DateLayout)
	f.inputs[fieldDeadline].SetValue(today.String())

	for i := range f.inputs {
		f.inputs[i].Prompt = ""
		f.inputs[i].Width = 40
	}
	f.inputs[fieldDescription].Focus()
	return f
}

// setFocus moves focus to field i, wrapping around.
func (f *taskForm) setFocus(i int) tea.Cmd {
	i = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *taskForm) next() tea.Cmd { return f.setFocus(f.focus + 1) }
func (f *taskForm) prev() tea.Cmd { return f.setFocus(f.focus - 1) }

func (f *taskForm) onLastField() bool {
	return f.focus == fieldCount-1
}

// update forwards msg to the focused input.
func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// task builds a task from the inputs. An empty deadline means today.
func (f *taskForm) task(today todo.Date) (*todo.Task, error) {
	desc := strings.TrimSpace(f.inputs[fieldDescription].Value())
	if desc == "" {
		return nil, errors.New("description is required")
	}
	details := strings.TrimSpace(f.inputs[fieldDetails].Value())

	deadline := today
	if raw := strings.TrimSpace(f.inputs[fieldDeadline].Value()); raw != "" {
		d, err := todo.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		deadline = d
	}

	t := todo.NewTask(desc, details, deadline)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (f *taskForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New task") + "\n\n")
	for i := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.err != nil {
		b.WriteString(errorStyle.Render(f.err.Error()) + "\n\n")
	}
	b.WriteString(dimStyle.Render("tab/↓ next field • shift+tab/↑ previous • enter save • esc cancel"))
	return dialogStyle.Render(b.String())
}
