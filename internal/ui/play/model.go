package play

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skillcheck/internal/grading"
	"skillcheck/internal/quiz"
	"skillcheck/internal/web/views"
)

// Options configures the terminal UI.
type Options struct {
	NoColor bool
}

// Model renders a quiz session using Bubble Tea.
type Model struct {
	ctx     context.Context
	state   State
	submit  SubmitFunc
	spinner spinner.Model
	table   table.Model
	noColor bool
}

// NewModel constructs a model for page. submit is called once every
// question has been answered or skipped.
func NewModel(ctx context.Context, page views.QuizPage, submit SubmitFunc, opts Options) Model {
	t := table.New(
		table.WithColumns(missedColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(8),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !opts.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	}
	return Model{
		ctx:     ctx,
		state:   NewState(page),
		submit:  submit,
		spinner: s,
		table:   t,
		noColor: opts.NoColor,
	}
}

// State returns the session state.
func (m Model) State() State {
	return m.state
}

// Init grades immediately when there is nothing to answer.
func (m Model) Init() tea.Cmd {
	if m.state.Phase == PhaseGrading {
		return m.startGrading()
	}
	return nil
}

// Update handles key presses, spinner ticks and the grading result.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(columnsForWidth(typed.Width))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.state.Phase != PhaseGrading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case gradedMsg:
		m.state = Graded(m.state, typed.outcome, typed.err)
		m.table.SetRows(missedRows(typed.outcome))
		if typed.err != nil {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "esc":
		m.state = Abort(m.state)
		return m, tea.Quit
	}
	switch m.state.Phase {
	case PhaseAnswering:
		return m.handleAnswerKey(key)
	case PhaseDone:
		switch key.String() {
		case "enter", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleAnswerKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.state = MoveCursor(m.state, -1)
		return m, nil
	case "down", "j":
		m.state = MoveCursor(m.state, 1)
		return m, nil
	case "enter", " ":
		m.state = Choose(m.state)
	case "s":
		m.state = Skip(m.state)
	default:
		item, _ := m.state.CurrentQuestion()
		value, ok := ParseChoice(key.String(), item)
		if !ok {
			return m, nil
		}
		m.state.Answers = cloneAnswers(m.state.Answers)
		m.state.Answers[item.Number] = value
		m.state = advance(m.state)
	}
	if m.state.Phase == PhaseGrading {
		return m, m.startGrading()
	}
	return m, nil
}

func (m Model) startGrading() tea.Cmd {
	return tea.Batch(m.spinner.Tick, submitCmd(m.ctx, m.submit, m.state.Answers))
}

// View renders the session.
func (m Model) View() string {
	header := renderHeader(m.state, m.noColor)
	switch m.state.Phase {
	case PhaseAnswering:
		return lipgloss.JoinVertical(lipgloss.Left, header, renderQuestion(m.state, m.noColor), renderHelp(m.noColor))
	case PhaseGrading:
		return lipgloss.JoinVertical(lipgloss.Left, header, m.spinner.View()+" Grading...")
	case PhaseDone:
		if m.state.Err != nil {
			return lipgloss.JoinVertical(lipgloss.Left, header, stylize("Grading failed: "+m.state.Err.Error(), m.noColor, lipgloss.Color("196")))
		}
		parts := []string{header, renderResult(m.state.Outcome, m.noColor)}
		if len(m.state.Outcome.Result.Missed) > 0 {
			parts = append(parts, m.table.View())
		}
		parts = append(parts, stylize("enter to exit", m.noColor, lipgloss.Color("244")))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	default:
		return ""
	}
}

// gradedMsg carries the submission result.
type gradedMsg struct {
	outcome quiz.Outcome
	err     error
}

// submitCmd grades answers off the UI loop.
func submitCmd(ctx context.Context, submit SubmitFunc, answers grading.Answers) tea.Cmd {
	return func() tea.Msg {
		outcome, err := submit(ctx, answers)
		return gradedMsg{outcome: outcome, err: err}
	}
}

// renderHeader renders the selection and progress line.
func renderHeader(state State, noColor bool) string {
	line := "Skillcheck | " + state.Page.Domain + " / " + state.Page.Topic
	if state.Phase == PhaseAnswering {
		line += " | Question " + strconv.Itoa(state.Current+1) + " of " + strconv.Itoa(len(state.Page.Questions))
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderQuestion renders the current question with the cursor marker.
func renderQuestion(state State, noColor bool) string {
	item, ok := state.CurrentQuestion()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + strconv.Itoa(item.Number) + ". " + item.Text + "\n\n")
	for i, option := range item.Options {
		marker := "  "
		line := option.Value
		if i == state.Cursor {
			marker = "> "
			line = stylize(line, noColor, lipgloss.Color("42"))
		}
		b.WriteString(marker + line + "\n")
	}
	return b.String()
}

// renderHelp renders the key hints.
func renderHelp(noColor bool) string {
	return stylize("up/down move | enter choose | letter picks | s skip | esc quit", noColor, lipgloss.Color("244"))
}

// renderResult renders the score and feedback lines.
func renderResult(outcome quiz.Outcome, noColor bool) string {
	lines := resultLines(outcome)
	lines[0] = stylize(lines[0], noColor, bandColor(outcome))
	return "\n" + strings.Join(lines, "\n")
}

// RunLive runs the Bubble Tea UI until the quiz is graded or abandoned.
func RunLive(ctx context.Context, page views.QuizPage, submit SubmitFunc, in io.Reader, out io.Writer, opts Options) (quiz.Outcome, error) {
	model := NewModel(ctx, page, submit, opts)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(out)}
	if in != nil {
		programOpts = append(programOpts, tea.WithInput(in))
	}
	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		return quiz.Outcome{}, err
	}
	state := final.(Model).State()
	switch {
	case state.Phase == PhaseAborted:
		return quiz.Outcome{}, ErrAborted
	case state.Err != nil:
		return quiz.Outcome{}, state.Err
	case state.Phase != PhaseDone:
		return quiz.Outcome{}, ErrAborted
	}
	return state.Outcome, nil
}
