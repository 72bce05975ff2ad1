// Package tui renders a live terminal view of a running co-simulation:
// one scrolling plot per recorded output plus the instance's lifecycle
// status.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gofmi/internal/fmi"
	"github.com/san-kum/gofmi/internal/instance"
	"github.com/san-kum/gofmi/internal/master"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea model wrapping one instance and its run config.
type Model struct {
	inst  *instance.Instance
	cfg   master.Config
	refs  []fmi.ValueReference
	names []string

	step    int
	steps   int
	history map[string][]float64

	running bool
	done    bool
	err     error

	width int
}

// NewModel initializes the instance and prepares the live view.
func NewModel(inst *instance.Instance, cfg master.Config) (Model, error) {
	m := Model{
		inst:    inst,
		cfg:     cfg,
		names:   cfg.Outputs,
		steps:   int(math.Round((cfg.StopTime - cfg.StartTime) / cfg.StepSize)),
		history: make(map[string][]float64, len(cfg.Outputs)),
		running: true,
		width:   70,
	}

	desc := inst.Descriptor()
outer:
	for _, name := range cfg.Outputs {
		for _, v := range desc.Variables {
			if v.Name == name {
				m.refs = append(m.refs, v.ValueReference)
				continue outer
			}
		}
		return Model{}, fmt.Errorf("model %s has no variable %q", desc.Name, name)
	}

	if err := m.initialize(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) initialize() error {
	stop := m.cfg.StopTime
	if err := m.inst.EnterInitializationMode(nil, m.cfg.StartTime, &stop); err != nil {
		return err
	}
	if err := m.inst.ExitInitializationMode(); err != nil {
		return err
	}
	if m.inst.State() == fmi.EventMode {
		if err := m.settleEvents(); err != nil {
			return err
		}
		if err := m.inst.EnterStepMode(); err != nil {
			return err
		}
	}
	return m.sample()
}

func (m *Model) settleEvents() error {
	for {
		flags, err := m.inst.UpdateDiscreteStates()
		if err != nil {
			return err
		}
		if flags.TerminateSimulation {
			m.done = true
			return nil
		}
		if !flags.DiscreteStatesNeedUpdate {
			return nil
		}
	}
}

func (m *Model) sample() error {
	values := make([]float64, len(m.refs))
	if err := m.inst.GetFloat64(m.refs, values); err != nil {
		return err
	}
	for i, name := range m.names {
		series := append(m.history[name], values[i])
		if len(series) > historyCapacity {
			series = series[1:]
		}
		m.history[name] = series
	}
	return nil
}

// advance runs one communication step, resolving events inline.
func (m *Model) advance() {
	if m.done || m.step >= m.steps {
		m.done = true
		return
	}

	comm := m.cfg.StartTime + float64(m.step)*m.cfg.StepSize
	target := m.cfg.StartTime + float64(m.step+1)*m.cfg.StepSize
	for {
		res, err := m.inst.DoStep(comm, target-comm)
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		comm = res.LastSuccessfulTime

		if res.EventHandlingNeeded {
			if err := m.inst.EnterEventMode(); err != nil {
				m.err = err
				m.done = true
				return
			}
			if err := m.settleEvents(); err != nil {
				m.err = err
				m.done = true
				return
			}
			if m.done {
				return
			}
			if err := m.inst.EnterStepMode(); err != nil {
				m.err = err
				m.done = true
				return
			}
		}
		if res.TerminateSimulation {
			m.done = true
			return
		}
		if !res.EarlyReturn {
			break
		}
	}

	m.step++
	if err := m.sample(); err != nil {
		m.err = err
		m.done = true
	}
}

func (m *Model) reset() {
	if err := m.inst.Reset(); err != nil {
		m.err = err
		return
	}
	m.step = 0
	m.done = false
	m.err = nil
	for name := range m.history {
		m.history[name] = nil
	}
	if err := m.initialize(); err != nil {
		m.err = err
		m.done = true
	}
}

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	desc := m.inst.Descriptor()
	s.WriteString(headerStyle.Render(strings.ToUpper(desc.Name)) + "\n")

	plotWidth := m.width - 12
	if plotWidth < 20 {
		plotWidth = 20
	}
	for _, name := range m.names {
		series := m.history[name]
		if len(series) > 1 {
			chart := asciigraph.Plot(series,
				asciigraph.Height(5),
				asciigraph.Width(plotWidth),
				asciigraph.Caption(name))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.inst.Time())) + "\n")
	s.WriteString(labelStyle.Render("State") + valueStyle.Render(m.inst.State().String()) + "\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = errorStyle.Render("ERROR: " + m.err.Error())
	case m.done:
		status = "DONE"
	case !m.running:
		status = "PAUSED"
	}
	s.WriteString(labelStyle.Render("Status") + valueStyle.Render(status) + "\n")

	s.WriteString(helpStyle.Render("space:pause  r:reset  q:quit"))
	return s.String()
}
