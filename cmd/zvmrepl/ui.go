package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zata-lang/zvm/zbuiltin"
	"github.com/zata-lang/zvm/zcode"
	"github.com/zata-lang/zvm/zerror"
	"github.com/zata-lang/zvm/zvalue"
	"github.com/zata-lang/zvm/zvm"
)

// describeValue renders a value left on the operand stack at halt via its
// str slot, the same dispatch print takes - consistent with how the VM
// itself would stringify it. caller is passed through so a user class
// binding __str__ can be invoked, not just native slots.
func describeValue(caller zvalue.UserCaller, v zvalue.Value) string {
	result, bound, err := v.Header().Metatype().Slot(zvalue.SlotStr).Invoke(caller, []zvalue.Value{v})
	if err != nil || !bound {
		return fmt.Sprintf("<%s>", v.Header().Tag())
	}
	s, ok := result.(*zbuiltin.String)
	if !ok {
		return fmt.Sprintf("<%s>", v.Header().Tag())
	}
	return s.Value
}

var (
	statusBarStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

type textChunkMsg string
type haltedMsg struct {
	stack []zvalue.Value
	err   *zerror.Error
	trace []zerror.StackFrame
}

// chanWriter forwards every Write to a channel of text chunks, letting
// the VM's print built-in drive Bubble Tea the same way the teacher's
// ZMachine output channel drives its story-runner model.
type chanWriter struct {
	ch chan<- string
}

func (w chanWriter) Write(p []byte) (int, error) {
	w.ch <- string(p)
	return len(p), nil
}

type sessionModel struct {
	module  *zcode.Module
	machine *zvm.VM
	output  viewport.Model
	input   textinput.Model
	chunks  chan string
	stdin   io.WriteCloser
	text    strings.Builder
	halted  bool
	haltErr *zerror.Error
	trace   []zerror.StackFrame
	width   int
	height  int
}

func newSessionModel(module *zcode.Module) tea.Model {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Prompt = "> "
	ti.Focus()

	chunks := make(chan string, 64)
	pr, pw := io.Pipe()

	return &sessionModel{
		module: module,
		output: viewport.New(80, 20),
		input:  ti,
		chunks: chunks,
		stdin:  pw,
		machine: zvm.New(
			zvm.WithStdout(chanWriter{ch: chunks}),
			zvm.WithStdin(pr),
		),
	}
}

func (m *sessionModel) Init() tea.Cmd {
	runVM := func() tea.Msg {
		stack, zerr := m.machine.Run(m.module)
		close(m.chunks)
		var trace []zerror.StackFrame
		if zerr != nil {
			trace = m.machine.Traceback()
		}
		return haltedMsg{stack: stack, err: zerr, trace: trace}
	}

	return tea.Batch(runVM, waitForChunk(m.chunks))
}

// refreshOutput wraps the accumulated transcript to the viewport's width
// before handing it to the viewport, the way the teacher wraps story
// text so long print/error output doesn't run off the terminal.
func (m *sessionModel) refreshOutput() {
	width := m.output.Width
	if width <= 0 {
		width = 80
	}
	m.output.SetContent(wordwrap.String(m.text.String(), width))
}

func waitForChunk(chunks <-chan string) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-chunks
		if !ok {
			return nil
		}
		return textChunkMsg(chunk)
	}
}

func (m *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.output.Width = msg.Width
		m.output.Height = msg.Height - 3
		m.refreshOutput()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if !m.halted {
				line := m.input.Value()
				m.text.WriteString("> " + line + "\n")
				m.refreshOutput()
				m.output.GotoBottom()
				m.input.SetValue("")
				fmt.Fprintln(m.stdin, line)
			}
		}

	case textChunkMsg:
		m.text.WriteString(string(msg))
		m.refreshOutput()
		m.output.GotoBottom()
		return m, waitForChunk(m.chunks)

	case haltedMsg:
		m.halted = true
		m.haltErr = msg.err
		m.trace = msg.trace
		for _, v := range msg.stack {
			m.text.WriteString(describeValue(m.machine, v) + "\n")
		}
		m.refreshOutput()
		m.output.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	if !m.halted {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *sessionModel) View() string {
	if m.width == 0 {
		return "initializing...\n"
	}

	var footer string
	switch {
	case m.halted && m.haltErr != nil:
		var b strings.Builder
		zerror.Report(&b, m.haltErr, m.trace)
		footer = errorStyle.Render(b.String())
	case m.halted:
		footer = statusBarStyle.Render("module halted - ctrl+c to exit")
	default:
		footer = m.input.View()
	}

	return fmt.Sprintf("%s\n%s", m.output.View(), footer)
}
