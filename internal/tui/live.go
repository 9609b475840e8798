package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jchodera/openmmtools/internal/verify"
)

// Result is the verdict of one check as observed by the live runner.
type Result struct {
	Label    string
	Err      error
	Outcome  *verify.Outcome
	Duration time.Duration
}

// Run executes the checks sequentially while rendering a live status list.
// It returns the collected results once every check has run; aborting with
// q or ctrl+c returns the results gathered so far.
func Run(checks []verify.Check) ([]Result, error) {
	m := model{
		checks:  checks,
		results: make([]*Result, len(checks)),
		start:   time.Now(),
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	fm := final.(model)
	var results []Result
	for _, r := range fm.results {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, nil
}

type checkDoneMsg struct {
	index int
	res   Result
}

type model struct {
	checks  []verify.Check
	results []*Result
	current int
	done    bool
	start   time.Time
}

func (m model) Init() tea.Cmd {
	if len(m.checks) == 0 {
		return tea.Quit
	}
	return m.runCheck(0)
}

func (m model) runCheck(i int) tea.Cmd {
	check := m.checks[i]
	return func() tea.Msg {
		start := time.Now()
		out, err := check.Run()
		return checkDoneMsg{
			index: i,
			res: Result{
				Label:    check.Label,
				Err:      err,
				Outcome:  out,
				Duration: time.Since(start),
			},
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case checkDoneMsg:
		res := msg.res
		m.results[msg.index] = &res
		m.current = msg.index + 1
		if m.current >= len(m.checks) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.runCheck(m.current)
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("integrator verification"))
	b.WriteString("\n\n")

	for i, check := range m.checks {
		switch {
		case m.results[i] != nil && m.results[i].Err == nil:
			b.WriteString(PassStyle.Render("  ✓ "))
			b.WriteString(check.Label)
			b.WriteString(Subtle.Render(fmt.Sprintf("  %v", m.results[i].Duration.Round(time.Millisecond))))
		case m.results[i] != nil:
			b.WriteString(FailStyle.Render("  ✗ "))
			b.WriteString(check.Label)
		case i == m.current && !m.done:
			b.WriteString(RunningStyle.Render("  ▸ "))
			b.WriteString(check.Label)
		default:
			b.WriteString(Subtle.Render("  · " + check.Label))
		}
		b.WriteString("\n")
	}

	passed, failed := 0, 0
	for _, r := range m.results {
		if r == nil {
			continue
		}
		if r.Err == nil {
			passed++
		} else {
			failed++
		}
	}
	b.WriteString("\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("  %d/%d checks  %d passed  %d failed  %v",
		passed+failed, len(m.checks), passed, failed, time.Since(m.start).Round(time.Millisecond))))
	b.WriteString(Subtle.Render("  (q to abort)"))
	b.WriteString("\n")
	return b.String()
}
