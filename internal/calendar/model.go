package calendar

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what a bound key does with the selected day.
type Action string

// ActionOpen opens the journal at the selected day.
const ActionOpen Action = "open"

// Keymap maps key names, as reported by tea.KeyMsg.String, to actions.
// Bound keys take precedence over the built-in movement keys.
type Keymap struct {
	bindings map[string]Action
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[string]Action)}
}

// Bind makes key trigger action. Rebinding a key replaces its action.
func (k *Keymap) Bind(key string, action Action) {
	k.bindings[key] = action
}

// Lookup returns the action bound to key.
func (k *Keymap) Lookup(key string) (Action, bool) {
	a, ok := k.bindings[key]
	return a, ok
}

// Keys returns the bound keys for action, sorted.
func (k *Keymap) Keys(action Action) []string {
	var keys []string
	for key, a := range k.bindings {
		if a == action {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys
}

// MarksFunc returns the days of month that already have a day heading.
type MarksFunc func(month time.Time) ([]int, error)

// Result is the outcome of a calendar session.
type Result struct {
	Day    time.Time
	Action Action // empty when the user quit without choosing
}

// Model is the bubbletea model for the interactive calendar.
type Model struct {
	selected time.Time
	today    time.Time
	keymap   *Keymap
	marks    MarksFunc
	opts     Options

	marked    []int
	markMonth time.Time
	err       error
	result    Result
}

// New returns a calendar model with selected as the initially selected day.
func New(selected, today time.Time, keymap *Keymap, marks MarksFunc, opts Options) Model {
	if keymap == nil {
		keymap = NewKeymap()
	}
	m := Model{
		selected: dateOnly(selected),
		today:    dateOnly(today),
		keymap:   keymap,
		marks:    marks,
		opts:     opts,
	}
	m.loadMarks()
	return m
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

func (m *Model) loadMarks() {
	if m.marks == nil || sameMonth(m.markMonth, m.selected) {
		return
	}
	m.markMonth = m.selected
	m.marked, m.err = m.marks(m.selected)
}

// Selected returns the currently selected day.
func (m Model) Selected() time.Time { return m.selected }

// Result returns what the user chose.
func (m Model) Result() Result { return m.result }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if action, bound := m.keymap.Lookup(key.String()); bound {
		m.result = Result{Day: m.selected, Action: action}
		return m, tea.Quit
	}

	switch key.String() {
	case "left", "h":
		m.selected = m.selected.AddDate(0, 0, -1)
	case "right", "l":
		m.selected = m.selected.AddDate(0, 0, 1)
	case "up":
		m.selected = m.selected.AddDate(0, 0, -7)
	case "down":
		m.selected = m.selected.AddDate(0, 0, 7)
	case "[", "pgup":
		m.selected = addMonths(m.selected, -1)
	case "]", "pgdown":
		m.selected = addMonths(m.selected, 1)
	case "t":
		m.selected = m.today
	case "q", "esc", "ctrl+c":
		m.result = Result{}
		return m, tea.Quit
	}
	m.loadMarks()
	return m, nil
}

// addMonths moves by whole months, clamping the day to the target month.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 12, 0, 0, 0, t.Location())
	day := min(t.Day(), DaysIn(first))
	return first.AddDate(0, 0, day-1)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(Render(m.selected, MonthDays(m.selected, m.marked, m.today, m.selected), m.opts))
	b.WriteString("\n\n")

	help := "←/→ day • ↑/↓ week • [/] month • t today • q quit"
	if keys := m.keymap.Keys(ActionOpen); len(keys) > 0 {
		help = strings.Join(keys, "/") + " open • " + help
	}
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	if m.opts.Plain {
		dim = lipgloss.NewStyle()
	}
	b.WriteString(dim.Render(help))
	if m.err != nil {
		b.WriteString("\n" + fmt.Sprintf("marks unavailable: %v", m.err))
	}
	b.WriteString("\n")
	return b.String()
}

// Run shows the calendar until the user picks a day or quits.
func Run(m Model, in io.Reader, out io.Writer) (Result, error) {
	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("calendar: %w", err)
	}
	return final.(Model).Result(), nil
}
