package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbitreel/internal/render"
	"github.com/san-kum/orbitreel/internal/trajectory"
)

const (
	DefaultCols = 60
	DefaultRows = 30
)

type TickMsg time.Time

// Options configures a preview.
type Options struct {
	Title    string
	Interval time.Duration
	Cols     int
	Rows     int
	Theme    Theme
}

// Model plays decimated frames on a Braille canvas.
type Model struct {
	table    *trajectory.Table
	frames   int
	frame    int
	running  bool
	interval time.Duration
	title    string

	canvas *Canvas
	proj   Projector
	inks   []lipgloss.Style

	titleStyle lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	helpStyle  lipgloss.Style
	frameStyle lipgloss.Style
}

// NewModel returns a preview of the first frames columns of t.
func NewModel(t *trajectory.Table, frames int, vp render.Viewport, palette render.Palette, opts Options) Model {
	if opts.Cols <= 0 {
		opts.Cols = DefaultCols
	}
	if opts.Rows <= 0 {
		opts.Rows = DefaultRows
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeDefault
	}
	if frames > t.Len() {
		frames = t.Len()
	}

	inks := make([]lipgloss.Style, len(palette))
	for i := range palette {
		inks[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Hex(i)))
	}

	c := NewCanvas(opts.Cols, opts.Rows)
	th := opts.Theme
	return Model{
		table:      t,
		frames:     frames,
		running:    true,
		interval:   opts.Interval,
		title:      opts.Title,
		canvas:     c,
		proj:       NewProjector(vp, c.SubWidth(), c.SubHeight()),
		inks:       inks,
		titleStyle: lipgloss.NewStyle().Foreground(th.Title).Bold(true).MarginBottom(1),
		labelStyle: lipgloss.NewStyle().Foreground(th.Label).Width(8),
		valueStyle: lipgloss.NewStyle().Foreground(th.Value),
		helpStyle:  lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1),
		frameStyle: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(th.Border),
	}
}

func (m Model) Frame() int    { return m.frame }
func (m Model) Running() bool { return m.running }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles keys and advances one frame per tick while running.
// Playback stops on the last frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running && m.frame == m.frames-1 {
				m.frame = 0
			}
		case "r":
			m.frame = 0
			m.running = true
		case "[":
			m.running = false
			m.seek(-1)
		case "]":
			m.running = false
			m.seek(1)
		}
	case TickMsg:
		if m.running {
			if m.frame < m.frames-1 {
				m.frame++
			} else {
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) seek(delta int) {
	m.frame += delta
	if m.frame < 0 {
		m.frame = 0
	}
	if m.frame > m.frames-1 {
		m.frame = m.frames - 1
	}
}

func (m Model) draw() {
	m.canvas.Clear()
	if m.frames == 0 {
		return
	}
	traces, err := render.Traces(m.table, m.frame)
	if err != nil {
		return
	}
	DrawTraces(m.canvas, m.proj, traces)
}

func (m Model) View() string {
	m.draw()

	status := "PLAYING"
	switch {
	case m.frames == 0:
		status = "EMPTY"
	case !m.running && m.frame == m.frames-1:
		status = "END"
	case !m.running:
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(m.titleStyle.Render(m.title) + "\n")
	s.WriteString(m.frameStyle.Render(strings.TrimSuffix(m.canvas.Render(m.inks), "\n")) + "\n")
	s.WriteString(m.labelStyle.Render("status") + m.valueStyle.Render(status) + "\n")
	s.WriteString(m.labelStyle.Render("frame") + m.valueStyle.Render(fmt.Sprintf("%d/%d", m.frame+1, m.frames)) + "\n")
	if m.frame < len(m.table.Times) {
		s.WriteString(m.labelStyle.Render("time") + m.valueStyle.Render(fmt.Sprintf("%.4g", m.table.Times[m.frame])) + "\n")
	}
	s.WriteString(m.helpStyle.Render("SP:Pause R:Restart [ ]:Step Q:Quit"))
	return s.String()
}

// Run plays the preview until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
