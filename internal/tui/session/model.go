package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fittick/internal/models"
	engine "fittick/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2)

	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	restStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(20).
			Align(lipgloss.Center)

	cueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Padding(1, 2)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	machine  *engine.Machine
	plan     models.WorkoutPlan
	keys     KeyMap
	help     help.Model
	progress progress.Model
	lastCue  string
	width    int
}

func newModel(plan models.WorkoutPlan, warmupSeconds int) (Model, error) {
	m := Model{
		machine:  engine.New(&plan, warmupSeconds),
		plan:     plan,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient()),
	}
	cues, err := m.machine.Start()
	if err != nil {
		return Model{}, err
	}
	m.applyCues(cues)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) applyCues(cues []engine.Cue) {
	for _, cue := range cues {
		if cue.Text != "" {
			m.lastCue = cue.Text
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = min(msg.Width-8, 50)
		return m, nil

	case TickMsg:
		if !m.machine.Running() {
			return m, nil
		}
		m.applyCues(m.machine.Tick())
		if m.machine.Phase() == engine.PhaseComplete {
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.machine.Running() {
				m.machine.Cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			if m.machine.Running() {
				m.applyCues(m.machine.Skip())
				if m.machine.Phase() == engine.PhaseComplete {
					return m, tea.Quit
				}
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.machine.Phase() == engine.PhaseComplete {
		return doneStyle.Render(fmt.Sprintf("%s complete!", m.plan.Name))
	}
	if m.machine.Phase() == engine.PhaseCancelled {
		return dimStyle.Render("Session cancelled")
	}

	var phaseLine string
	switch m.machine.Phase() {
	case engine.PhaseWarmup:
		phaseLine = restStyle.Render("Get ready")
	case engine.PhaseWork:
		if ex, ok := m.machine.CurrentExercise(); ok {
			phaseLine = phaseStyle.Render(fmt.Sprintf("%d/%d %s",
				m.machine.ExerciseNumber(), len(m.plan.Exercises), ex.Name))
		}
	case engine.PhaseRest:
		phaseLine = restStyle.Render("Rest")
	}

	percent := 0.0
	if total := m.machine.PhaseTotal(); total > 0 {
		percent = 1 - float64(m.machine.Remaining())/float64(total)
	}

	lines := []string{
		titleStyle.Render(m.plan.Name),
		phaseLine,
		countdownStyle.Render(fmt.Sprintf("%d", m.machine.Remaining())),
		m.progress.ViewAs(percent),
	}

	if m.lastCue != "" {
		lines = append(lines, cueStyle.Render(m.lastCue))
	}

	if upcoming := m.machine.Upcoming(2); len(upcoming) > 0 {
		next := "Next: "
		for i, ex := range upcoming {
			if i > 0 {
				next += ", "
			}
			next += ex.Name
		}
		lines = append(lines, dimStyle.Render(next))
	}

	remaining := time.Duration(m.machine.TotalRemaining()) * time.Second
	lines = append(lines,
		dimStyle.Render(fmt.Sprintf("%s left", remaining)),
		m.help.View(m.keys),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run plays the workout through an interactive terminal session and reports
// whether it ran to completion (false means cancelled or interrupted).
func Run(plan models.WorkoutPlan, warmupSeconds int) (bool, error) {
	model, err := newModel(plan, warmupSeconds)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("session failed: %w", err)
	}

	finished, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected session model type")
	}
	return finished.machine.Completed(), nil
}
