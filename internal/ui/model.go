package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
	"github.com/nibzard/todolist-go/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
	modeHelp
)

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmQuit
)

type confirmDialog struct {
	kind   confirmKind
	prompt string
	target *todo.Task
}

// tickMsg re-derives the view so the today filter follows the clock.
type tickMsg time.Time

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConfirmExit controls whether quitting asks first.
func WithConfirmExit(enabled bool) ModelOption {
	return func(m *Model) {
		m.confirmExit = enabled
	}
}

// WithTickInterval sets how often the view is re-derived. Zero disables it.
func WithTickInterval(d time.Duration) ModelOption {
	return func(m *Model) {
		m.tickInterval = d
	}
}

// Model is the bubbletea model of the task list screen.
type Model struct {
	store  *todo.Store
	proj   *view.Projection
	logger *log.Logger

	confirmExit  bool
	tickInterval time.Duration

	mode    mode
	form    *taskForm
	confirm *confirmDialog

	status string
	err    error
	// saveFailed is set when saving on quit failed; the next quit request
	// leaves without saving.
	saveFailed bool
	discarded  bool
	quitting   bool

	width  int
	height int
}

// NewModel returns the list screen over store and proj.
func NewModel(store *todo.Store, proj *view.Projection, opts ...ModelOption) *Model {
	m := &Model{
		store:        store,
		proj:         proj,
		logger:       logging.Discard(),
		confirmExit:  true,
		tickInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Discarded reports whether the user quit without saving.
func (m *Model) Discarded() bool {
	return m.discarded
}

func (m *Model) Init() tea.Cmd {
	return tickCmd(m.tickInterval)
}

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		m.proj.Refresh()
		return m, tickCmd(m.tickInterval)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.requestQuit()
		}
		switch m.mode {
		case modeForm:
			return m, m.updateForm(msg)
		case modeConfirm:
			return m, m.updateConfirm(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		default:
			return m, m.updateList(msg)
		}
	}

	if m.mode == modeForm {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return m.requestQuit()
	case "up", "k":
		m.proj.MoveCursor(-1)
	case "down", "j":
		m.proj.MoveCursor(1)
	case "home", "g":
		m.proj.SelectIndex(0)
	case "end", "G":
		m.proj.SelectIndex(m.proj.Len() - 1)
	case "pgup":
		m.proj.MoveCursor(-m.listRows())
	case "pgdown":
		m.proj.MoveCursor(m.listRows())
	case "a", "n":
		m.form = newTaskForm(m.proj.Today())
		m.mode = modeForm
		m.clearMessages()
		return m.form.inputs[fieldDescription].Focus()
	case "d", "x", "delete":
		task := m.proj.Selected()
		if task == nil {
			m.status = "Nothing selected."
			return nil
		}
		m.openConfirm(confirmDelete, fmt.Sprintf("Delete %q?", task.Description), task)
	case "t":
		f := m.proj.ToggleToday()
		m.status = "Showing " + f.String() + " tasks."
	case "r":
		m.proj.Refresh()
	case "ctrl+s", "s":
		m.save()
	case "?", "h":
		m.mode = modeHelp
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeList
		return nil
	case "tab", "down":
		return m.form.next()
	case "shift+tab", "up":
		return m.form.prev()
	case "enter":
		if !m.form.onLastField() {
			return m.form.next()
		}
		m.submitForm()
		return nil
	}
	return m.form.update(msg)
}

func (m *Model) submitForm() {
	task, err := m.form.task(m.proj.Today())
	if err == nil {
		err = m.store.Add(task)
	}
	if err != nil {
		m.form.err = err
		return
	}
	if !m.proj.Select(task) {
		m.proj.SetFilter(view.FilterAll)
		m.proj.Select(task)
	}
	m.logger.Info("added task", "description", task.Description, "deadline", task.Deadline.String())
	m.form = nil
	m.mode = modeList
	m.status = "Added " + task.Description + "."
}

func (m *Model) openConfirm(kind confirmKind, prompt string, target *todo.Task) {
	m.confirm = &confirmDialog{kind: kind, prompt: prompt, target: target}
	m.mode = modeConfirm
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		c := m.confirm
		m.confirm = nil
		m.mode = modeList
		switch c.kind {
		case confirmDelete:
			if m.store.Delete(c.target) {
				m.logger.Info("deleted task", "description", c.target.Description)
				m.status = "Deleted " + c.target.Description + "."
			}
		case confirmQuit:
			return m.saveAndQuit()
		}
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.mode = modeList
	}
	return nil
}

// requestQuit handles q and ctrl+c from any mode.
func (m *Model) requestQuit() tea.Cmd {
	if m.saveFailed {
		m.logger.Warn("quitting without saving", "path", m.store.Path())
		m.discarded = true
		m.quitting = true
		return tea.Quit
	}
	if m.mode == modeConfirm && m.confirm.kind == confirmQuit {
		return m.saveAndQuit()
	}
	if m.confirmExit {
		m.form = nil
		m.openConfirm(confirmQuit, "Save and quit?", nil)
		return nil
	}
	return m.saveAndQuit()
}

func (m *Model) saveAndQuit() tea.Cmd {
	if !m.save() {
		m.saveFailed = true
		m.status = "Press q again to quit without saving."
		return nil
	}
	m.quitting = true
	return tea.Quit
}

// save writes the store and reports success. Failures are shown.
func (m *Model) save() bool {
	if err := m.store.Save(); err != nil {
		m.logger.Error("save failed", "path", m.store.Path(), "err", err)
		m.err = err
		return false
	}
	m.err = nil
	m.saveFailed = false
	m.status = "Saved."
	return true
}

func (m *Model) clearMessages() {
	m.status = ""
	m.err = nil
}

// listRows is how many task rows fit on screen.
func (m *Model) listRows() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-8, 3)
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	writeHeader(&b, m)

	switch m.mode {
	case modeHelp:
		writeHelp(&b)
		return b.String()
	case modeForm:
		b.WriteString(m.form.view() + "\n")
		return b.String()
	case modeConfirm:
		writeConfirm(&b, m.confirm)
		return b.String()
	}

	writePanes(&b, m)
	writeStatus(&b, m)
	writeFooter(&b)
	return b.String()
}

func writeHeader(b *strings.Builder, m *Model) {
	all, today := m.proj.Counts()
	title := "To-do list"
	if m.store.Dirty() {
		title += " *"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  •  filter: %s  •  %d tasks, %d due today",
		m.proj.Today().Display(), m.proj.Filter(), all, today)))
	b.WriteString("\n\n")
}

func writePanes(b *strings.Builder, m *Model) {
	width := m.width
	if width <= 0 {
		width = 80
	}
	listWidth := max(width*2/5, 24)
	detailWidth := max(width-listWidth-4, 20)

	list := renderList(m.proj, listWidth, m.listRows())
	detail := renderDetail(m.proj.Detail(), detailWidth)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(listWidth).Render(list),
		paneStyle.Width(detailWidth).Render(detail),
	))
	b.WriteString("\n")
}

func renderList(p *view.Projection, width, rows int) string {
	tasks := p.Visible()
	if len(tasks) == 0 {
		if p.Filter() == view.FilterToday {
			return dimStyle.Render("Nothing due today.")
		}
		return dimStyle.Render("No tasks. Press a to add one.")
	}

	cursor := p.Cursor()
	today := p.Today()
	start, end := listWindow(len(tasks), cursor, rows)

	var b strings.Builder
	for i := start; i < end; i++ {
		t := tasks[i]
		line := truncate(fmt.Sprintf("%s  %s", t.Deadline, t.Description), width-2)
		style := urgencyStyle(t.Deadline.UrgencyOn(today))
		if i == cursor {
			b.WriteString("> " + selectedStyle.Inherit(style).Render(line))
		} else {
			b.WriteString("  " + style.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// listWindow returns the [start, end) slice of n rows that keeps cursor in
// view when at most rows fit.
func listWindow(n, cursor, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	return start, start + rows
}

func renderDetail(d view.Detail, width int) string {
	if d.Empty() {
		return dimStyle.Render("No task selected.")
	}
	wrap := lipgloss.NewStyle().Width(width - 2)
	var b strings.Builder
	b.WriteString(titleStyle.Render(wrap.Render(d.Description)) + "\n\n")
	b.WriteString(labelStyle.Render("Deadline") + d.Deadline + "\n\n")
	if d.Details != "" {
		b.WriteString(wrap.Render(d.Details))
	} else {
		b.WriteString(dimStyle.Render("No details."))
	}
	return b.String()
}

func writeConfirm(b *strings.Builder, c *confirmDialog) {
	body := c.prompt + "\n\n" + dimStyle.Render("[y] yes   [n] no")
	b.WriteString(dialogStyle.Render(body) + "\n")
}

func writeStatus(b *strings.Builder, m *Model) {
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j, ↓         Next task\n")
	b.WriteString("  k, ↑         Previous task\n")
	b.WriteString("  g, G         First / last task\n")
	b.WriteString("  a, n         New task\n")
	b.WriteString("  d, delete    Delete selected task\n")
	b.WriteString("  t            Toggle today filter\n")
	b.WriteString("  s, ctrl+s    Save now\n")
	b.WriteString("  r            Refresh\n")
	b.WriteString("  ?, h         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Save and quit\n\n")
	b.WriteString(dimStyle.Render("Press any key to return.") + "\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(dimStyle.Render("a add • d delete • t today • ? help • q quit") + "\n")
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return strings.TrimRight(string(r), " ") + "…"
}
