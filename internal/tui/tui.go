// Package tui is the local terminal client: a viewport transcript over a
// text input, driving an in-process game runtime.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fablecore/fable/internal/game/session"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Model is the bubbletea model for one local play session.
type Model struct {
	runtime   *session.Runtime
	sessionID string

	textInput textinput.Model
	viewport  viewport.Model
	log       string
	lastResp  session.Response
	width     int
	height    int
	ready     bool
}

// NewModel creates a Model bound to a runtime session.
func NewModel(rt *session.Runtime, sessionID string) Model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return Model{
		runtime:   rt,
		sessionID: sessionID,
		textInput: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.runtime.EndSession(m.sessionID)
			return m, tea.Quit

		case tea.KeyEnter:
			line := m.textInput.Value()
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.textInput.Reset()

			m.appendUser(line)
			resp := m.runtime.ProcessCommand(m.sessionID, line)
			m.appendGame(resp.Text)
			m.lastResp = resp
			if resp.Done {
				m.runtime.EndSession(m.sessionID)
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.75)
		if !m.ready {
			m.viewport = viewport.New(logWidth, msg.Height-6)
			m.ready = true
			// First paint opens with the greeting.
			m.lastResp = m.runtime.Greet(m.sessionID)
			m.appendGame(m.lastResp.Text)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 6
			m.viewport.SetContent(m.log)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) appendUser(line string) {
	logWidth := int(float64(m.width) * 0.75)
	m.log += "\n\n" + userStyle.Width(logWidth).Render("> "+line) + "\n\n"
	m.viewport.SetContent(m.log)
	m.viewport.GotoBottom()
}

func (m *Model) appendGame(text string) {
	logWidth := int(float64(m.width) * 0.75)
	m.log += gameStyle.Width(logWidth).Render(text) + "\n"
	m.viewport.SetContent(m.log)
	m.viewport.GotoBottom()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading...\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderSidebar(),
	)
	help := helpStyle.Render("Type commands like LOOK or GO NORTH. Esc quits.")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	) + "\n"
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("EXITS"))
	b.WriteString("\n")
	if len(m.lastResp.Exits) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, dir := range m.lastResp.Exits {
			b.WriteString("- " + dir + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("INVENTORY"))
	b.WriteString("\n")
	names := m.inventoryNames()
	if len(names) == 0 {
		b.WriteString("(empty)\n")
	} else {
		for _, n := range names {
			b.WriteString("- " + n + "\n")
		}
	}

	sideWidth := int(float64(m.width) * 0.23)
	return sideStyle.Width(sideWidth).Height(m.viewport.Height).Render(b.String())
}

func (m Model) inventoryNames() []string {
	sess, ok := m.runtime.Sessions().Get(m.sessionID)
	if !ok {
		return nil
	}
	return sess.InventoryNames()
}

// Run starts the terminal client and blocks until the player quits.
func Run(rt *session.Runtime, sessionID string) error {
	p := tea.NewProgram(NewModel(rt, sessionID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
