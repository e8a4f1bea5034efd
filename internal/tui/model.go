package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/notify"
)

const progressWidth = 30

// Controller is the engine surface driven by the keyboard.
type Controller interface {
	Snapshot() timer.State
	Start()
	Pause()
	Resume()
	Stop()
	Reset()
	SkipBreak()
	TakeBreak()
	TakeBreakFor(seconds int)
}

// EventMsg carries an engine event into the program.
type EventMsg timer.Event

// Model is the Bubble Tea model for the timer screen.
type Model struct {
	engine   Controller
	state    timer.State
	total    int
	notice   string
	width    int
	quitting bool
}

// NewModel creates a Model showing the engine's current state.
func NewModel(engine Controller) *Model {
	state := engine.Snapshot()
	return &Model{
		engine: engine,
		state:  state,
		total:  state.RemainingSeconds,
		width:  80,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case EventMsg:
		m.apply(timer.Event(msg))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "s":
		m.engine.Start()
	case "p":
		if m.engine.Snapshot().Paused {
			m.engine.Resume()
		} else {
			m.engine.Pause()
		}
	case "b":
		m.engine.TakeBreak()
	case "k":
		m.engine.SkipBreak()
	case "x":
		m.engine.Stop()
	case "r":
		m.engine.Reset()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.engine.TakeBreakFor(int(key[0]-'0') * 60)
			break
		}
		return m, nil
	}
	m.sync(m.engine.Snapshot())
	return m, nil
}

func (m *Model) apply(event timer.Event) {
	m.sync(event.State)
	if title, body, ok := notify.Message(event); ok {
		m.notice = title + ": " + body
	} else if event.Type == timer.EventStateChange && event.Trigger != timer.TriggerExpiry && event.PhaseChanged() {
		m.notice = ""
	}
}

func (m *Model) sync(state timer.State) {
	if state.Phase != m.state.Phase || state.RemainingSeconds > m.total {
		m.total = state.RemainingSeconds
	}
	m.state = state
}

// State returns the state currently on screen.
func (m *Model) State() timer.State {
	return m.state
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	label := strings.ToUpper(string(m.state.Phase))
	if m.state.Paused {
		label += " (paused)"
	}
	b.WriteString(badgeStyle(m.state).Render(label))
	b.WriteString(StyleClock.Render(m.state.Clock()))
	b.WriteString("\n\n")
	if m.state.Phase != timer.PhaseIdle {
		b.WriteString(m.progress())
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("deficit %s · %d done",
		timer.FormatSeconds(m.state.BreakDeficit), m.state.CompletedWorkSessions)))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(StyleNotice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.help()))
	return b.String()
}

func (m *Model) progress() string {
	filled := 0
	if m.total > 0 {
		filled = (m.total - m.state.RemainingSeconds) * progressWidth / m.total
	}
	filled = max(0, min(progressWidth, filled))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressWidth-filled) + "]"
}

func (m *Model) help() string {
	switch m.state.Phase {
	case timer.PhaseIdle:
		return "s start · r reset · q quit"
	case timer.PhaseWork:
		if m.state.Paused {
			return "p resume · x stop · r reset · q quit"
		}
		return "p pause · x stop · r reset · q quit"
	case timer.PhaseRollover:
		return "b take break · 1-9 take minutes · k skip · x stop · q quit"
	default:
		return "x stop · r reset · q quit"
	}
}
