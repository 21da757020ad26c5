package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/tmsim/internal/machine"
	"github.com/san-kum/tmsim/internal/viz"
)

const (
	defaultWidth    = 80
	defaultInterval = 200 * time.Millisecond
	minInterval     = 10 * time.Millisecond
)

// tickMsg carries the generation of the auto-run chain that scheduled it.
// Toggling, resetting or changing speed starts a new generation, and ticks
// from older ones are dropped.
type tickMsg struct{ gen int }

// Model is an interactive stepper. Each key press advances the machine by
// one [machine.Cursor.Next]; earlier cursors are kept so steps can be undone.
type Model struct {
	name     string
	history  []machine.Cursor
	auto     bool
	interval time.Duration
	width    int
	gen      int
}

func New(name string, rules *machine.RuleSet, start machine.Configuration, maxSteps int) Model {
	return Model{
		name:     name,
		history:  []machine.Cursor{machine.Begin(rules, start, maxSteps)},
		interval: defaultInterval,
		width:    defaultWidth,
	}
}

func (m Model) Current() machine.Cursor { return m.history[len(m.history)-1] }

func (m Model) Auto() bool { return m.auto }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if !m.auto || msg.gen != m.gen {
			return m, nil
		}
		m = m.step()
		if m.Current().Done() {
			m.auto = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", " ", "right", "l":
		return m.step(), nil
	case "b", "left", "h":
		if len(m.history) > 1 {
			m.history = m.history[:len(m.history)-1]
		}
	case "r":
		m.history = m.history[:1]
		m.auto = false
		m.gen++
	case "a":
		m.auto = !m.auto && !m.Current().Done()
		m.gen++
		if m.auto {
			return m, m.tick()
		}
	case "+", "-":
		if msg.String() == "+" {
			m.interval = max(m.interval/2, minInterval)
		} else {
			m.interval *= 2
		}
		if m.auto {
			m.gen++
			return m, m.tick()
		}
	}
	return m, nil
}

func (m Model) step() Model {
	cur := m.Current()
	if cur.Done() {
		return m
	}
	m.history = append(m.history[:len(m.history):len(m.history)], cur.Next())
	return m
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) View() string {
	cur := m.Current()

	var b strings.Builder
	b.WriteString(titleStyle.Render("tmsim · "+m.name) + "\n\n")

	b.WriteString(labelStyle.Render("state  ") + valueStyle.Render(cur.Config.State.String()) + "\n")
	b.WriteString(labelStyle.Render("step   ") + valueStyle.Render(fmt.Sprintf("%d / %d", cur.Steps, cur.MaxSteps())) + "\n")
	b.WriteString(labelStyle.Render("status ") + outcomeText(cur.Outcome) + "\n\n")

	b.WriteString(panelStyle.Render(m.tapeWindow(cur.Config.Tape)) + "\n\n")

	mode := "manual"
	if m.auto {
		mode = fmt.Sprintf("auto %v", m.interval)
	}
	b.WriteString(hintStyle.Render("n/space step · b back · r reset · a auto (" + mode + ") · +/- speed · q quit"))
	return b.String()
}

// tapeWindow renders the cells around the head, padding with blanks so the
// head stays centred.
func (m Model) tapeWindow(tape machine.Tape) string {
	span := max((m.width-6)/2, 3)
	cells := tape.Cells()
	head := tape.Head()

	var b strings.Builder
	for i := head - span/2; i < head-span/2+span; i++ {
		sym := machine.Blank
		if i >= 0 && i < len(cells) {
			sym = cells[i]
		}
		text := " " + viz.Glyph(sym)
		if i == head {
			b.WriteString(headStyle.Render(text))
		} else {
			b.WriteString(cellStyle.Render(text))
		}
	}
	return b.String()
}

func outcomeText(o machine.Outcome) string {
	switch o {
	case machine.Accepted:
		return acceptStyle.Render(o.String())
	case machine.RejectedExplicit, machine.RejectedImplicit:
		return rejectStyle.Render(o.String())
	case machine.StepLimitReached:
		return limitStyle.Render(o.String())
	default:
		return runningStyle.Render(o.String())
	}
}

// Run starts the stepper on the terminal and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
