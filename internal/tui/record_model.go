package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paralinkz/ParaTrackz/internal/models"
	"github.com/Paralinkz/ParaTrackz/internal/recorder"
	"github.com/Paralinkz/ParaTrackz/internal/session"
)

// RecorderModel is the TUI model shown while an EVP capture runs
type RecorderModel struct {
	width  int
	height int

	controller  *recorder.Controller
	sessionName string

	// Display state, refreshed from the controller
	elapsed int

	// Animation state
	pulse int

	// UI state
	stopping bool // user pressed S: finalize and keep the recording
	aborting bool // user pressed ESC/Q: tear down, keep nothing
}

// refreshTickMsg refreshes the elapsed readout
type refreshTickMsg struct{}

// pulseTickMsg drives the recording indicator animation
type pulseTickMsg struct{}

// NewRecorderModel creates the capture TUI model
func NewRecorderModel(controller *recorder.Controller, sessionName string) RecorderModel {
	return RecorderModel{
		controller:  controller,
		sessionName: sessionName,
	}
}

// Init starts the display tickers
func (m RecorderModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return refreshTickMsg{}
		}),
		tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
			return pulseTickMsg{}
		}),
	)
}

// Update handles messages
func (m RecorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshTickMsg:
		m.elapsed = m.controller.Elapsed()
		if !m.stopping && !m.aborting {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return refreshTickMsg{}
			})
		}
		return m, nil

	case pulseTickMsg:
		m.pulse = (m.pulse + 1) % 2
		if !m.stopping && !m.aborting {
			return m, tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
				return pulseTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s", "S":
			m.stopping = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.aborting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the capture screen
func (m RecorderModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	// Pulsing capture indicator
	indicator := "●  RECORDING EVP  ●"
	indicatorColor := ColorRecording
	if m.pulse == 1 {
		indicatorColor = ColorDisabledText
	}
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(indicatorColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(indicator))

	// Session name
	nameStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, nameStyle.Render(m.sessionName))

	// Big elapsed clock
	clock := renderBigClock(m.elapsed)
	clockContent := ""
	for _, line := range strings.Split(clock, "\n") {
		clockContent += lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(line) + "\n"
	}
	components = append(components, strings.TrimRight(clockContent, "\n"))

	hint := "Speak clearly. Ask your questions and leave gaps for answers."
	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, hintStyle.Render(hint))

	content := strings.Join(components, "\n\n")
	panel := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, panel, helpBar)
}

// renderHelpBar renders the help bar at the bottom
func (m RecorderModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("s stop & keep · esc/q abort capture")
}

// renderBigClock renders the elapsed time as ASCII art digits
func renderBigClock(elapsed int) string {
	minutes := elapsed / 60
	seconds := elapsed % 60

	// ASCII art for digits (5x5 characters each)
	digits := map[rune][]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if minutes >= 60 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", minutes/60, minutes%60, seconds)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		art, ok := digits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// RunRecorder starts a capture, shows the live recorder until the user stops
// or aborts it, and finalizes accordingly. ok reports whether a recording was
// kept.
func RunRecorder(controller *recorder.Controller, store *session.Store) (models.Recording, bool, error) {
	sessionName := "(unnamed session)"
	if sess, found := store.Active(); found {
		sessionName = sess.Name
	}

	if err := controller.Start(context.Background()); err != nil {
		return models.Recording{}, false, err
	}

	model := NewRecorderModel(controller, sessionName)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		controller.Close()
		return models.Recording{}, false, err
	}

	recorderModel := finalModel.(RecorderModel)
	if recorderModel.stopping {
		rec, ok, err := controller.Stop()
		if err != nil {
			return models.Recording{}, false, fmt.Errorf("failed to finalize capture: %w", err)
		}
		return rec, ok, nil
	}

	// Aborted: tear down counter and device together, keep nothing
	if err := controller.Close(); err != nil {
		return models.Recording{}, false, err
	}
	return models.Recording{}, false, nil
}
