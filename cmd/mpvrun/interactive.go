package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayooooo123/peartube/bridge"
	"github.com/ayooooo123/peartube/engine"
	"github.com/ayooooo123/peartube/resource"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	mediaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFD700"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pollInterval = 200 * time.Millisecond

type playerModel struct {
	b      *bridge.Bridge
	media  string
	handle resource.Handle
	loaded bool
	err    error

	progress progress.Model
	title    string
	position float64
	duration float64
	paused   bool
}

type loadedPlayerMsg struct {
	err    error
	handle resource.Handle
}

type tickMsg time.Time

func newPlayerModel(b *bridge.Bridge, media string) *playerModel {
	return &playerModel{
		b:        b,
		media:    media,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m *playerModel) Init() tea.Cmd {
	return m.loadPlayer
}

func (m *playerModel) loadPlayer() tea.Msg {
	h, err := m.b.Create()
	if err != nil {
		return loadedPlayerMsg{err: err}
	}
	if st := m.b.Initialize(h); st.Failed() {
		m.b.Destroy(h)
		return loadedPlayerMsg{err: fmt.Errorf("initialize: %s", engine.StatusName(st))}
	}
	if st := m.b.Command(h, []string{"loadfile", m.media}); st.Failed() {
		m.b.Destroy(h)
		return loadedPlayerMsg{err: fmt.Errorf("loadfile: %s", engine.StatusName(st))}
	}
	return loadedPlayerMsg{handle: h}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.loaded {
				m.b.Destroy(m.handle)
			}
			return m, tea.Quit

		case " ", "p":
			if m.loaded {
				m.b.SetProperty(m.handle, "pause", bridge.Bool(!m.paused))
			}

		case "left":
			m.seek(-5)

		case "right":
			m.seek(5)
		}

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 4
		if m.progress.Width > 72 {
			m.progress.Width = 72
		}

	case loadedPlayerMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.handle = msg.handle
		m.loaded = true
		return m, tick()

	case tickMsg:
		if !m.loaded {
			return m, nil
		}
		m.poll()
		return m, tick()
	}

	return m, nil
}

func (m *playerModel) seek(seconds int) {
	if !m.loaded {
		return
	}
	m.b.Command(m.handle, []string{"seek", fmt.Sprintf("%d", seconds), "relative"})
}

// poll refreshes playback state from the player's properties. Absent values
// leave the previous reading in place; properties are unavailable for a
// moment after loadfile.
func (m *playerModel) poll() {
	if v := m.b.GetProperty(m.handle, "time-pos"); !v.IsAbsent() {
		m.position = v.Number()
	}
	if v := m.b.GetProperty(m.handle, "duration"); !v.IsAbsent() {
		m.duration = v.Number()
	}
	if v := m.b.GetProperty(m.handle, "pause"); !v.IsAbsent() {
		m.paused = v.Bool()
	}
	if v := m.b.GetProperty(m.handle, "media-title"); !v.IsAbsent() {
		m.title = v.Str()
	}
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%02d:%02d", int(d.Minutes())%60, int(d.Seconds())%60)
}

func (m *playerModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("mpvrun"))
	b.WriteString(" ")
	b.WriteString(mediaStyle.Render(m.media))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if m.title != "" && m.title != m.media {
		b.WriteString(m.title)
		b.WriteString("\n\n")
	}

	ratio := 0.0
	if m.duration > 0 {
		ratio = m.position / m.duration
		if ratio > 1 {
			ratio = 1
		}
	}
	b.WriteString(m.progress.ViewAs(ratio))
	b.WriteString("\n")
	b.WriteString(timeStyle.Render(formatClock(m.position) + " / " + formatClock(m.duration)))
	if m.paused {
		b.WriteString("  ")
		b.WriteString(pausedStyle.Render("⏸ paused"))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("space pause • ←/→ seek 5s • q quit"))

	return b.String()
}

func runInteractive(b *bridge.Bridge, media string) error {
	p := tea.NewProgram(newPlayerModel(b, media), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
