// Package tui provides an interactive single-step debugger for a loaded
// Brainfuck program, built the way hejops-gone/cpu/debugger.go drives its
// 6502 CPU: a bubbletea model wrapping the thing being stepped, lipgloss
// for layout, and spew for raw dumps of whatever the eye can't parse from
// the rendered view alone.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/andreabolognani/bf/bf"
)

// windowRadius is how many cells either side of the cursor the tape view
// renders.
const windowRadius = 24

var (
	cursorStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// outputMsg carries one byte emitted by the program's output hook over to
// the bubbletea event loop while a run-to-completion is in flight on its
// own goroutine.
type outputMsg byte

// doneMsg reports that a run-to-completion goroutine has finished, with
// whatever error (possibly nil) Run returned.
type doneMsg struct{ err error }

// debugMsg carries the rendering produced by a single Debug instruction,
// forwarded from the interpreter's debug hook to the bubbletea program.
type debugMsg struct{ dump string }

type model struct {
	it        *bf.Interpreter
	output    []byte
	lastDebug string
	lastErr   error
	running   bool
	outCh     chan byte
	doneCh    chan error
}

// Run starts the interactive debugger on program, using cfg as the
// interpreter's configuration. It blocks until the user quits.
func Run(program *bf.Program, cfg bf.Configuration) error {
	it := bf.NewInterpreter()
	it.SetProgram(program)
	it.SetConfiguration(cfg)

	outCh := make(chan byte, 256)
	doneCh := make(chan error, 1)
	it.SetOutputHook(func(it *bf.Interpreter, b byte) error {
		outCh <- b
		return nil
	})

	m := model{it: it, outCh: outCh, doneCh: doneCh}
	p := tea.NewProgram(m)

	it.SetDebugHook(func(it *bf.Interpreter) error {
		p.Send(debugMsg{dump: dumpTapeWindow(it.Tape())})
		return nil
	})

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.lastErr != nil {
		return fm.lastErr
	}
	return nil
}

// dumpTapeWindow renders the tape's visited range as a spew.Sdump,
// replaying the walk through a bookmark push/pop so the cursor ends up
// exactly where it started.
func dumpTapeWindow(tp *bf.Tape) string {
	lower, upper := tp.Bounds()
	origin := tp.Position()

	tp.PushBookmark()
	defer tp.PopBookmark()

	for tp.Position() > lower {
		tp.MoveLeftBy(1)
	}

	cells := make([]int8, 0, upper-lower+1)
	for pos := lower; pos <= upper; pos++ {
		cells = append(cells, tp.GetCurrentValue())
		if pos < upper {
			tp.MoveRightBy(1)
		}
	}

	return spew.Sdump(struct {
		Lower, Upper, Cursor int64
		Cells                []int8
	}{lower, upper, origin, cells})
}

func (m model) Init() tea.Cmd {
	m.it.Reset()
	return nil
}

// waitForOutput turns the next byte off outCh into a tea.Msg; it is
// re-issued after every message so a run-to-completion goroutine's output
// keeps draining into the view as it arrives.
func waitForOutput(ch chan byte) tea.Cmd {
	return func() tea.Msg {
		b, ok := <-ch
		if !ok {
			return nil
		}
		return outputMsg(b)
	}
}

func waitForDone(ch chan error) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{err: <-ch}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			if m.running || m.it.Done() {
				return m, nil
			}
			if err := m.it.Step(); err != nil {
				m.lastErr = err
			}
			return m, nil

		case "c":
			if m.running || m.it.Done() {
				return m, nil
			}
			m.running = true
			go func() {
				err := m.it.Run()
				close(m.outCh)
				m.doneCh <- err
			}()
			return m, tea.Batch(waitForOutput(m.outCh), waitForDone(m.doneCh))

		case "r":
			m.it.Tape().PopBookmark() // best-effort: drop any stray bookmark
			m.it.SetTape(bf.NewTape())
			m.it.Reset()
			m.output = nil
			m.lastErr = nil
			return m, nil
		}

	case outputMsg:
		m.output = append(m.output, byte(msg))
		if m.running {
			return m, waitForOutput(m.outCh)
		}
		return m, nil

	case doneMsg:
		m.running = false
		if msg.err != nil {
			m.lastErr = msg.err
		}
		return m, nil

	case debugMsg:
		m.lastDebug = msg.dump
		return m, nil
	}
	return m, nil
}

func (m model) renderTape() string {
	tp := m.it.Tape()
	cursor := tp.Position()
	bLower, bUpper := tp.Bounds()

	lower, upper := cursor-windowRadius, cursor+windowRadius
	if lower < bLower {
		lower = bLower
	}
	if upper > bUpper {
		upper = bUpper
	}

	tp.PushBookmark()
	defer tp.PopBookmark()

	for tp.Position() > lower {
		tp.MoveLeftBy(1)
	}

	var b strings.Builder
	for pos := lower; pos <= upper; pos++ {
		cell := fmt.Sprintf("%4d", tp.GetCurrentValue())
		if pos == cursor {
			cell = cursorStyle.Render(cell)
		}
		b.WriteString(cell)
		if pos < upper {
			tp.MoveRightBy(1)
		}
	}
	return b.String()
}

func (m model) renderInstruction() string {
	cur, ok := m.it.Current()
	if !ok {
		return "(none)"
	}
	return spew.Sdump(struct {
		Kind     string
		Quantity int
	}{cur.Kind().String(), cur.Quantity()})
}

func (m model) status() string {
	state := "stepping"
	if m.running {
		state = "running"
	}
	if m.it.Done() {
		state = "done"
	}
	errLine := ""
	if m.lastErr != nil {
		errLine = errorStyle.Render("error: " + m.lastErr.Error())
	}
	return fmt.Sprintf("state: %s   cursor: %d\n%s", state, m.it.Tape().Position(), errLine)
}

func (m model) View() string {
	lines := []string{
		headerStyle.Render("tape"),
		m.renderTape(),
		"",
		headerStyle.Render("next instruction"),
		m.renderInstruction(),
		"",
		m.status(),
		"",
		headerStyle.Render("output"),
		string(m.output),
	}
	if m.lastDebug != "" {
		lines = append(lines, "", headerStyle.Render("last debug dump"), m.lastDebug)
	}
	lines = append(lines, "", "space/j: step   c: run   r: reset   q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
