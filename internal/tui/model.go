// Package tui plays a frame sequence in the terminal on a braille canvas.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/player"
	"github.com/san-kum/molvis/internal/present"
	"github.com/san-kum/molvis/internal/scene"
)

const turnStep = 5.0

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type Options struct {
	Title string
	FPS   int
	Koeff float64
}

type tickMsg time.Time

// Model is the bubbletea model. Each tick advances one frame unless paused.
type Model struct {
	scene *scene.Scene
	adv   *player.Advancer
	opts  Options

	keys   keyMap
	help   help.Model
	canvas *Canvas

	step   player.Step
	ticks  int
	loops  int
	paused bool
	err    error

	width, height int
}

func New(sc *scene.Scene, adv *player.Advancer, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 20
	}
	m := Model{
		scene: sc, adv: adv, opts: opts,
		keys: defaultKeys(), help: help.New(),
		width: 80, height: 24,
	}
	m.resize()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	case tickMsg:
		if !m.paused && m.err == nil {
			step, err := present.Tick(m.adv, m.scene.Camera, m.opts.Koeff)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.step = step
			m.ticks++
			if step.Wrapped {
				m.loops++
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cam := m.scene.Camera
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Left):
		cam.Rotate(-turnStep, r3.Vec{Y: 1})
	case key.Matches(msg, m.keys.Right):
		cam.Rotate(turnStep, r3.Vec{Y: 1})
	case key.Matches(msg, m.keys.Up):
		cam.Rotate(-turnStep, r3.Vec{X: 1})
	case key.Matches(msg, m.keys.Down):
		cam.Rotate(turnStep, r3.Vec{X: 1})
	case key.Matches(msg, m.keys.ZoomIn):
		cam.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		cam.ZoomOut()
	case key.Matches(msg, m.keys.Restart):
		m.adv.Reset()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return m, nil
}

// resize fits the canvas between the title line and the help footer.
func (m *Model) resize() {
	footer := 2
	if m.help.ShowAll {
		footer = 5
	}
	w, h := m.width, m.height-footer-2
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}
	m.canvas = NewCanvas(w, h)
}

// draw projects the current markers and box onto the canvas.
func (m Model) draw() {
	c := m.canvas
	c.Clear()
	w, h := c.Dots()
	cam := m.scene.Camera

	if box := m.scene.Box; box != nil {
		for _, e := range box.Edges {
			a, b := cam.Project(e.Start, w, h), cam.Project(e.End, w, h)
			if a.Scale == 0 || b.Scale == 0 {
				continue
			}
			c.Line(int(a.X), int(a.Y), int(b.X), int(b.Y), box.Color, -1e300)
		}
	}

	mk := m.scene.Markers
	ppu := float64(min(w, h)) / 800
	for i, p := range mk.Points {
		pr := cam.Project(p, w, h)
		if pr.Scale == 0 {
			continue
		}
		c.Disc(pr.X, pr.Y, mk.Sizes[i]/2*ppu*pr.Scale, mk.Colors[i], pr.Depth)
	}
}

func (m Model) View() string {
	var b strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "molvis"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status()))
	if m.paused {
		b.WriteString("  " + pausedStyle.Render("PAUSED"))
	}
	b.WriteString("\n")

	m.draw()
	b.WriteString(m.canvas.String())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) status() string {
	return fmt.Sprintf("frame %d/%d  loop %d  zoom %.2fx  turn %.0f°",
		m.step.Index, m.adv.Len(), m.loops, m.scene.Camera.Zoom, m.scene.Camera.Angle())
}

// Err returns the error that stopped playback, if any.
func (m Model) Err() error { return m.err }

// Run plays until the user quits or ctx is cancelled.
func Run(ctx context.Context, sc *scene.Scene, adv *player.Advancer, opts Options) error {
	p := tea.NewProgram(New(sc, adv, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if present.IsCancel(ctx.Err()) {
			return nil
		}
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
