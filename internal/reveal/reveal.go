// Package reveal tracks which nodes of an architecture have been revealed
// (unlocked) and which are visible (drawn, but possibly still locked).
//
// Both sets only ever grow. Derived values such as accessibility are
// recomputed from the two sets on every read.
package reveal

import (
	"fmt"
	"sort"

	"github.com/msalah0e/netmap/internal/netarch"
)

// Engine owns the reveal state of one session.
type Engine struct {
	arch     *netarch.Architecture
	revealed map[int]bool
	visible  map[int]bool
	selected int
}

// New starts a session on arch with only the entry node revealed, visible
// and selected. arch is used as-is; callers pass a clone of the shared asset.
func New(arch *netarch.Architecture) *Engine {
	e := &Engine{
		arch:     arch,
		revealed: make(map[int]bool),
		visible:  make(map[int]bool),
	}
	if _, ok := arch.Get(arch.Entry); ok {
		e.revealed[arch.Entry] = true
		e.visible[arch.Entry] = true
		e.selected = arch.Entry
	}
	return e
}

// Architecture returns the graph the engine runs on.
func (e *Engine) Architecture() *netarch.Architecture {
	return e.arch
}

// IsRevealed reports whether id has been unlocked.
func (e *Engine) IsRevealed(id int) bool {
	return e.revealed[id]
}

// IsVisible reports whether id may be drawn.
func (e *Engine) IsVisible(id int) bool {
	return e.visible[id]
}

// IsAccessible reports whether id is revealed or has a revealed neighbor.
// A merely visible neighbor does not count. Unknown ids are never accessible.
func (e *Engine) IsAccessible(id int) bool {
	if _, ok := e.arch.Get(id); !ok {
		return false
	}
	if e.revealed[id] {
		return true
	}
	for _, c := range e.arch.Neighbors(id) {
		if e.revealed[c] {
			return true
		}
	}
	return false
}

// Reveal unlocks a locked id that is visible and accessible, and makes its
// neighbors visible. It reports whether id was unlocked. Other calls are
// ignored. An already revealed node exposes nothing, so the entry's
// neighbors first show up through the pathfinder.
func (e *Engine) Reveal(id int) bool {
	if e.revealed[id] || !e.visible[id] || !e.IsAccessible(id) {
		return false
	}
	e.revealed[id] = true
	for _, c := range e.arch.Neighbors(id) {
		e.visible[c] = true
	}
	return true
}

// Select records id as the focused node regardless of accessibility.
// Unknown ids leave the selection untouched.
func (e *Engine) Select(id int) int {
	if _, ok := e.arch.Get(id); ok {
		e.selected = id
	}
	return e.selected
}

// Selected returns the focused node id, or 0 when nothing is selected.
func (e *Engine) Selected() int {
	return e.selected
}

// Click attempts to reveal a visible node and then selects it. Clicks on
// nodes that are not visible change nothing.
func (e *Engine) Click(id int) (revealed bool) {
	if !e.visible[id] {
		return false
	}
	if e.IsAccessible(id) {
		revealed = e.Reveal(id)
	}
	e.Select(id)
	return revealed
}

// RunPathfinder makes visible every unrevealed node within two hops of the
// revealed set, without revealing any of them. It returns the ids that
// became visible, in ascending order.
func (e *Engine) RunPathfinder() []int {
	revealed := e.RevealedIDs()

	depth1 := make(map[int]bool)
	for _, id := range revealed {
		for _, c := range e.arch.Neighbors(id) {
			if !e.revealed[c] {
				depth1[c] = true
			}
		}
	}

	depth2 := make(map[int]bool)
	for id := range depth1 {
		for _, c := range e.arch.Neighbors(id) {
			if !e.revealed[c] {
				depth2[c] = true
			}
		}
	}

	var added []int
	for _, set := range []map[int]bool{depth1, depth2} {
		for id := range set {
			if !e.visible[id] {
				e.visible[id] = true
				added = append(added, id)
			}
		}
	}
	sort.Ints(added)
	return added
}

// RevealedIDs returns the revealed node ids in ascending order.
func (e *Engine) RevealedIDs() []int {
	return sortedKeys(e.revealed)
}

// VisibleIDs returns the visible node ids in ascending order.
func (e *Engine) VisibleIDs() []int {
	return sortedKeys(e.visible)
}

func sortedKeys(m map[int]bool) []int {
	ids := make([]int, 0, len(m))
	for id, ok := range m {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// NodeView is a visible node annotated for drawing.
type NodeView struct {
	*netarch.Node
	Revealed   bool
	Accessible bool
	Selected   bool
}

// DisplayLabel is the label to draw: the real label once revealed, the
// level placeholder before.
func (v NodeView) DisplayLabel() string {
	if v.Revealed {
		return v.Label
	}
	return fmt.Sprintf("LVL %d", v.Level)
}

// DisplayType is the type to draw. Locked nodes all look like branch points.
func (v NodeView) DisplayType() netarch.NodeType {
	if v.Revealed {
		return v.Type
	}
	return netarch.Branch
}

// View annotates a single node. ok is false for unknown ids.
func (e *Engine) View(id int) (NodeView, bool) {
	n, ok := e.arch.Get(id)
	if !ok {
		return NodeView{}, false
	}
	return NodeView{
		Node:       n,
		Revealed:   e.revealed[id],
		Accessible: e.IsAccessible(id),
		Selected:   e.selected == id,
	}, true
}

// VisibleNodes returns every visible node in id order.
func (e *Engine) VisibleNodes() []NodeView {
	ids := e.VisibleIDs()
	out := make([]NodeView, 0, len(ids))
	for _, id := range ids {
		if v, ok := e.View(id); ok {
			out = append(out, v)
		}
	}
	return out
}

// Edge is an undirected connection between two visible nodes, A < B.
// Lit is set when either endpoint is revealed.
type Edge struct {
	A   int  `json:"a"`
	B   int  `json:"b"`
	Lit bool `json:"lit"`
}

// Edges returns the edges to draw: both endpoints visible, each pair once.
func (e *Engine) Edges() []Edge {
	var out []Edge
	for _, a := range e.VisibleIDs() {
		for _, b := range e.arch.Neighbors(a) {
			if !e.visible[b] || a >= b {
				continue
			}
			out = append(out, Edge{A: a, B: b, Lit: e.revealed[a] || e.revealed[b]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Progress holds session counts.
type Progress struct {
	Total    int
	Visible  int
	Revealed int
}

// Progress returns how much of the architecture has been uncovered.
func (e *Engine) Progress() Progress {
	return Progress{
		Total:    e.arch.Len(),
		Visible:  len(e.VisibleIDs()),
		Revealed: len(e.RevealedIDs()),
	}
}
