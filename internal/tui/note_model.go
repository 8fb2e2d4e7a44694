package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NoteComposerModel is the interactive editor for writing a field note
type NoteComposerModel struct {
	width  int
	height int

	textarea textarea.Model

	completed bool
	cancelled bool
}

// NewNoteComposerModel creates the composer with an empty, focused textarea
func NewNoteComposerModel() NoteComposerModel {
	ta := textarea.New()
	ta.Placeholder = "What did you observe?"
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.Focus()

	return NoteComposerModel{textarea: ta}
}

// Init starts the textarea cursor blink
func (m NoteComposerModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m NoteComposerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 8 {
			m.textarea.SetWidth(min(msg.Width-8, 76))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s", "ctrl+d":
			m.completed = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the composer
func (m NoteComposerModel) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("📝 New field note"),
		boxStyle.Render(m.textarea.View()),
		helpStyle.Render("ctrl+s save · esc discard"),
	) + "\n"
}

// RunNoteComposer opens the interactive note editor and returns the composed
// text. ok is false when the user discarded the note or wrote nothing.
func RunNoteComposer() (text string, ok bool, err error) {
	p := tea.NewProgram(NewNoteComposerModel())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isComposer := finalModel.(NoteComposerModel)
	if !isComposer || m.cancelled || !m.completed {
		return "", false, nil
	}

	text = strings.TrimSpace(m.textarea.Value())
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}
