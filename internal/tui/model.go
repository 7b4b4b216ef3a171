// Package tui is the interactive terminal map: a Bubble Tea program that
// forwards mouse and keyboard input to a session and draws its snapshots.
package tui

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msalah0e/netmap/internal/session"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/msalah0e/netmap/internal/viewport"
)

const (
	headerHeight = 2
	footerHeight = 2
	detailWidth  = 38

	// cellAspect is how many screen units one terminal row spans. Cells
	// are roughly twice as tall as they are wide.
	cellAspect = 2.0

	// hitRadius is how close, in screen units, a click must land to a node.
	hitRadius = 2.5
)

// Options tunes the terminal map.
type Options struct {
	PanStep float64 // keyboard pan, in screen units
	Mouse   bool
}

// Model is the Bubble Tea model of the map screen.
type Model struct {
	sess    *session.Session
	keys    keyMap
	help    help.Model
	panStep float64

	width  int
	height int
	mapW   int
	mapH   int

	message    string
	messageErr bool
}

// New creates the map model for sess.
func New(sess *session.Session, opts Options) Model {
	step := opts.PanStep
	if step <= 0 {
		step = 4
	}
	return Model{
		sess:    sess,
		keys:    keys,
		help:    help.New(),
		panStep: step,
	}
}

// Run starts the program and blocks until the user quits.
func Run(sess *session.Session, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(New(sess, opts), progOpts...)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.BlurMsg:
		m.sess.OnPanEnd()

	case tea.MouseMsg:
		m.mouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Pathfinder):
			added := m.sess.OnPathfinder()
			log.Printf("pathfinder: %v", added)
			if len(added) == 0 {
				m.setMessage("Pathfinder found nothing new", false)
			} else {
				m.setMessage(fmt.Sprintf("Pathfinder exposed %d node(s)", len(added)), false)
			}

		case key.Matches(msg, m.keys.Center):
			if !m.sess.OnCenterSelected() {
				m.setMessage("Nothing to center on", true)
			}

		case key.Matches(msg, m.keys.Next):
			m.cycle(1)

		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)

		case key.Matches(msg, m.keys.Click):
			m.click(m.sess.Engine().Selected())

		case key.Matches(msg, m.keys.ZoomIn):
			m.sess.OnWheel(m.sess.Viewport().Size().Center(), viewport.ZoomIn)

		case key.Matches(msg, m.keys.ZoomOut):
			m.sess.OnWheel(m.sess.Viewport().Size().Center(), viewport.ZoomOut)

		case key.Matches(msg, m.keys.Up):
			m.sess.OnPanBy(viewport.Point{Y: m.panStep})

		case key.Matches(msg, m.keys.Down):
			m.sess.OnPanBy(viewport.Point{Y: -m.panStep})

		case key.Matches(msg, m.keys.Left):
			m.sess.OnPanBy(viewport.Point{X: m.panStep})

		case key.Matches(msg, m.keys.Right):
			m.sess.OnPanBy(viewport.Point{X: -m.panStep})

		case key.Matches(msg, m.keys.Reset):
			m.sess.Viewport().Reset()

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.mapW = max(w-detailWidth, 0)
	m.mapH = max(h-headerHeight-footerHeight, 0)
	m.sess.OnViewportResize(float64(m.mapW), float64(m.mapH)*cellAspect)
}

// mapPoint converts a terminal cell to a map screen point. ok is false
// outside the map pane.
func (m Model) mapPoint(x, y int) (viewport.Point, bool) {
	row := y - headerHeight
	if x < 0 || x >= m.mapW || row < 0 || row >= m.mapH {
		return viewport.Point{}, false
	}
	return viewport.Point{X: float64(x), Y: float64(row) * cellAspect}, true
}

func (m *Model) mouse(msg tea.MouseMsg) {
	pt, inside := m.mapPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionRelease:
		m.sess.OnPanEnd()
		return
	case tea.MouseActionMotion:
		if !inside {
			m.sess.OnPanEnd()
			return
		}
		m.sess.OnPanMove(pt)
		return
	}

	if !inside {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		if id, ok := m.sess.NodeAt(pt, hitRadius); ok {
			m.click(id)
		}
	case tea.MouseButtonRight:
		m.sess.OnPanStart(pt)
	case tea.MouseButtonWheelUp:
		m.sess.OnWheel(pt, viewport.ZoomIn)
	case tea.MouseButtonWheelDown:
		m.sess.OnWheel(pt, viewport.ZoomOut)
	}
}

// click forwards a node click. Locked nodes without a revealed neighbor are
// not clickable.
func (m *Model) click(id int) {
	v, ok := m.sess.Engine().View(id)
	if !ok || !m.sess.Engine().IsVisible(id) {
		return
	}
	if !v.Revealed && !v.Accessible {
		m.setMessage(fmt.Sprintf("%s: no route from a revealed node", v.DisplayLabel()), true)
		return
	}

	wasRevealed := v.Revealed
	m.sess.OnNodeClick(id)
	if !wasRevealed && m.sess.Engine().IsRevealed(id) {
		log.Printf("revealed node %d", id)
		m.setMessage(fmt.Sprintf("Revealed %s", v.Label), false)
		return
	}
	m.message = ""
}

// cycle moves the selection through the visible nodes in id order.
func (m *Model) cycle(dir int) {
	snap := m.sess.Snapshot()
	if len(snap.Nodes) == 0 {
		return
	}
	idx := 0
	for i, n := range snap.Nodes {
		if n.Selected {
			idx = (i + dir + len(snap.Nodes)) % len(snap.Nodes)
			break
		}
	}
	m.sess.Select(snap.Nodes[idx].ID)
	m.message = ""
}

func (m *Model) setMessage(s string, isErr bool) {
	m.message = s
	m.messageErr = isErr
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	snap := m.sess.Snapshot()

	var s strings.Builder
	s.WriteString(m.renderHeader(snap))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderMap(snap), m.renderDetail(snap)))
	s.WriteString("\n")

	switch {
	case m.message == "":
		s.WriteString("\n")
	case m.messageErr:
		s.WriteString(errorStyle.Render(" ✗ "+m.message) + "\n")
	default:
		s.WriteString(successStyle.Render(" ✓ "+m.message) + "\n")
	}
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m Model) renderHeader(snap session.Snapshot) string {
	title := strings.ToUpper(snap.Name)
	if title == "" {
		title = "NET ARCHITECTURE"
	}
	sub := fmt.Sprintf("TARGET: %s // ETA: %s   revealed %d/%d  visible %d  zoom %.1fx",
		snap.Target, snap.ETA, snap.Progress.Revealed, snap.Progress.Total,
		snap.Progress.Visible, snap.Camera.Zoom)
	return titleStyle.Render(title) + "\n" + subtitleStyle.Render(sub)
}

// cellOf maps a screen point to the terminal cell that draws it.
func cellOf(p viewport.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y / cellAspect))
}

func (m Model) renderMap(snap session.Snapshot) string {
	cv := newCanvas(m.mapW, m.mapH)

	for _, e := range snap.Edges {
		a, okA := snap.Node(e.A)
		b, okB := snap.Node(e.B)
		if !okA || !okB {
			continue
		}
		ax, ay := cellOf(a.Screen)
		bx, by := cellOf(b.Screen)
		if e.Lit {
			cv.line(ax, ay, bx, by, '•', inkEdgeLit)
		} else {
			cv.line(ax, ay, bx, by, '·', inkEdgeDim)
		}
	}

	for _, n := range snap.Nodes {
		x, y := cellOf(n.Screen)
		k := inkLocked
		if n.Revealed {
			k = typeInk(n.Type)
		}
		glyph := ui.TypeGlyph(n.DisplayType())
		if n.Selected {
			cv.text(x, y, glyph, inkSelected)
		} else {
			cv.text(x, y, glyph, k)
		}
		cv.text(x+2, y, n.DisplayLabel(), k)
	}
	return cv.render()
}

func (m Model) renderDetail(snap session.Snapshot) string {
	box := detailStyle.Width(detailWidth - 4).Height(max(m.mapH-2, 1))
	if snap.Selected == nil {
		return box.Render("NODE ANALYSIS\n\nNo node selected")
	}
	body := ui.RenderDetail(snap.Selected.NodeView)
	body += "\n" + actionStyle.Render("c  Center Node")
	return box.Render(body)
}
