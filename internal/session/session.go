// Package session binds a reveal engine and a viewport controller into the
// input and output surface a map front end talks to.
//
// A session is driven from a single goroutine: every handler runs to
// completion before the next event is processed.
package session

import (
	"fmt"
	"log"
	"math"

	"github.com/msalah0e/netmap/internal/activity"
	"github.com/msalah0e/netmap/internal/netarch"
	"github.com/msalah0e/netmap/internal/reveal"
	"github.com/msalah0e/netmap/internal/viewport"
)

// Options tunes a session. The zero value uses the stock viewport settings
// and no journal.
type Options struct {
	Limits         viewport.Limits
	PannableFactor float64
	InitialZoom    float64
	Journal        *activity.Journal
}

// Session is one play-through of an architecture.
type Session struct {
	arch    *netarch.Architecture
	engine  *reveal.Engine
	view    *viewport.Controller
	journal *activity.Journal

	journalFailed bool
}

// New starts a session on a private copy of arch. The shared dataset is
// never modified.
func New(arch *netarch.Architecture, opts Options) *Session {
	own := arch.Clone()
	s := &Session{
		arch:    own,
		engine:  reveal.New(own),
		journal: opts.Journal,
	}

	vopts := []viewport.Option{
		viewport.WithInitialTarget(func(size viewport.Size) (viewport.Point, bool) {
			n, ok := own.Get(own.Entry)
			if !ok {
				return viewport.Point{}, false
			}
			return viewport.WorldPosition(n.GridX, n.GridY, size, s.view.PannableFactor()), true
		}),
	}
	if opts.Limits != (viewport.Limits{}) {
		vopts = append(vopts, viewport.WithLimits(opts.Limits))
	}
	if opts.PannableFactor > 0 {
		vopts = append(vopts, viewport.WithPannableFactor(opts.PannableFactor))
	}
	if opts.InitialZoom > 0 {
		vopts = append(vopts, viewport.WithInitialZoom(opts.InitialZoom))
	}
	s.view = viewport.NewController(vopts...)

	s.record(activity.ActionStart, own.Entry, own.Name)
	return s
}

func (s *Session) record(action string, node int, details string) {
	s.noteJournal(s.journal.Record(action, node, details))
}

// noteJournal logs the first journal write failure. Later ones are dropped
// so a broken file does not flood the log.
func (s *Session) noteJournal(err error) {
	if err == nil || s.journalFailed {
		return
	}
	s.journalFailed = true
	log.Printf("journal: %v (further errors suppressed)", err)
}

// Architecture returns the session's private copy of the dataset.
func (s *Session) Architecture() *netarch.Architecture { return s.arch }

// Engine exposes the reveal state.
func (s *Session) Engine() *reveal.Engine { return s.engine }

// Viewport exposes the camera controller.
func (s *Session) Viewport() *viewport.Controller { return s.view }

// Journal returns the session journal, possibly nil.
func (s *Session) Journal() *activity.Journal { return s.journal }

// ─── Input ───

// OnNodeClick reveals id when it is still locked and accessible, then
// selects it. Clicks on nodes that are not visible are ignored.
func (s *Session) OnNodeClick(id int) {
	if !s.engine.IsVisible(id) {
		return
	}
	if s.engine.Click(id) {
		n, _ := s.arch.Get(id)
		s.record(activity.ActionReveal, id, n.Label)
		return
	}
	s.record(activity.ActionSelect, id, "")
}

// OnPathfinder extends visibility two hops out from the revealed nodes and
// returns the ids that appeared.
func (s *Session) OnPathfinder() []int {
	added := s.engine.RunPathfinder()
	s.noteJournal(s.journal.RecordNodes(activity.ActionPathfinder, added, fmt.Sprintf("%d new", len(added))))
	return added
}

// OnPanStart begins a drag at screen point pt.
func (s *Session) OnPanStart(pt viewport.Point) { s.view.StartPan(pt) }

// OnPanMove follows the drag to pt.
func (s *Session) OnPanMove(pt viewport.Point) { s.view.MovePan(pt) }

// OnPanEnd ends the drag. Front ends also call it when the pointer leaves
// the map.
func (s *Session) OnPanEnd() { s.view.EndPan() }

// OnPanBy nudges the camera by a screen-space delta (keyboard panning).
func (s *Session) OnPanBy(d viewport.Point) { s.view.PanBy(d) }

// Select moves the selection to id without revealing it. Unknown ids keep
// the current selection.
func (s *Session) Select(id int) int {
	prev := s.engine.Selected()
	sel := s.engine.Select(id)
	if sel != prev {
		s.record(activity.ActionSelect, sel, "")
	}
	return sel
}

// OnWheel zooms one step around screen point pt.
func (s *Session) OnWheel(pt viewport.Point, dir viewport.Direction) bool {
	if !s.view.ZoomAt(pt, dir) {
		return false
	}
	s.record(activity.ActionZoom, 0, fmt.Sprintf("%.2f", s.view.Camera().Zoom))
	return true
}

// OnViewportResize records the map container's measured size.
func (s *Session) OnViewportResize(w, h float64) {
	s.view.Resize(viewport.Size{W: w, H: h})
}

// CenterOn centers the camera on node id. Unknown ids and an unmeasured
// container are no-ops.
func (s *Session) CenterOn(id int) bool {
	n, ok := s.arch.Get(id)
	if !ok {
		return false
	}
	if !s.view.CenterOnGrid(n.GridX, n.GridY) {
		return false
	}
	s.record(activity.ActionCenter, id, "")
	return true
}

// OnCenterSelected centers on the selected node.
func (s *Session) OnCenterSelected() bool {
	return s.CenterOn(s.engine.Selected())
}

// ─── Output ───

// NodeState is a visible node with its placement.
type NodeState struct {
	reveal.NodeView
	World  viewport.Point
	Screen viewport.Point
}

// Snapshot is everything a front end needs to draw one frame.
type Snapshot struct {
	Name     string
	Target   string
	ETA      string
	Nodes    []NodeState
	Edges    []reveal.Edge
	Camera   viewport.Camera
	Size     viewport.Size
	Panning  bool
	Selected *NodeState
	Progress reveal.Progress
}

// Node returns the state of visible node id.
func (snap Snapshot) Node(id int) (NodeState, bool) {
	for _, n := range snap.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeState{}, false
}

func (s *Session) place(v reveal.NodeView) NodeState {
	w := s.view.WorldPosition(v.GridX, v.GridY)
	return NodeState{NodeView: v, World: w, Screen: s.view.Camera().ScreenFromWorld(w)}
}

// Snapshot captures the current state. Derived values are recomputed on
// every call.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Name:     s.arch.Name,
		Target:   s.arch.Target,
		ETA:      s.arch.ETA,
		Edges:    s.engine.Edges(),
		Camera:   s.view.Camera(),
		Size:     s.view.Size(),
		Panning:  s.view.Panning(),
		Progress: s.engine.Progress(),
	}
	for _, v := range s.engine.VisibleNodes() {
		snap.Nodes = append(snap.Nodes, s.place(v))
	}
	// The selected node may be outside the visible set, so look it up directly.
	if v, ok := s.engine.View(s.engine.Selected()); ok {
		st := s.place(v)
		snap.Selected = &st
	}
	return snap
}

// NodeAt returns the visible node whose screen position is nearest to pt,
// if it lies within radius.
func (s *Session) NodeAt(pt viewport.Point, radius float64) (int, bool) {
	best, bestDist := 0, math.Inf(1)
	cam := s.view.Camera()
	for _, v := range s.engine.VisibleNodes() {
		d := cam.ScreenFromWorld(s.view.WorldPosition(v.GridX, v.GridY)).Dist(pt)
		if d <= radius && d < bestDist {
			best, bestDist = v.ID, d
		}
	}
	return best, best != 0
}
