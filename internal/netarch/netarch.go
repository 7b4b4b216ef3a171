package netarch

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// GridSize is the number of logical grid units along each world axis.
const GridSize = 25

// EntryID is the node revealed when a session starts.
const EntryID = 1

// NodeType is the category of a node. It drives color and icon only.
type NodeType string

const (
	EntryPoint  NodeType = "Entry Point"
	Password    NodeType = "Password"
	ControlNode NodeType = "Control Node"
	File        NodeType = "File"
	BlackIce    NodeType = "Black ICE"
	Branch      NodeType = "Branch Point"
)

// Types lists every node type in display order.
var Types = []NodeType{EntryPoint, Password, ControlNode, File, BlackIce, Branch}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType matches s against the known types, ignoring case and the
// separators between words ("black-ice", "BLACK_ICE" and "Black ICE" agree).
func ParseType(s string) (NodeType, error) {
	key := typeKey(s)
	for _, t := range Types {
		if typeKey(string(t)) == key {
			return t, nil
		}
	}
	// "Branch" alone is common shorthand in hand-written datasets.
	if key == "branch" {
		return Branch, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

func typeKey(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}

// Node is a single entry of the static NET architecture.
type Node struct {
	ID          int      `toml:"id" yaml:"id" json:"id" validate:"min=1"`
	Level       int      `toml:"level" yaml:"level" json:"level" validate:"min=0"`
	GridX       int      `toml:"grid_x" yaml:"grid_x" json:"grid_x" validate:"min=0,lt=25"`
	GridY       int      `toml:"grid_y" yaml:"grid_y" json:"grid_y" validate:"min=0,lt=25"`
	Type        NodeType `toml:"type" yaml:"type" json:"type" validate:"nodetype"`
	Label       string   `toml:"label" yaml:"label" json:"label" validate:"required"`
	Description string   `toml:"description" yaml:"description" json:"description"`
	Content     string   `toml:"content" yaml:"content" json:"content"`
	DV          *int     `toml:"dv,omitempty" yaml:"dv,omitempty" json:"dv" validate:"omitempty,min=0"`
	Connections []int    `toml:"connections" yaml:"connections" json:"connections"`
}

// HasDV reports whether the node carries a difficulty value.
func (n *Node) HasDV() bool {
	return n.DV != nil
}

func (n *Node) clone() *Node {
	c := *n
	c.Connections = append([]int(nil), n.Connections...)
	if n.DV != nil {
		dv := *n.DV
		c.DV = &dv
	}
	return &c
}

// Architecture is the full node graph plus the header shown above the map.
type Architecture struct {
	Name   string
	Target string
	ETA    string
	Entry  int
	Nodes  map[int]*Node
}

// New creates an empty architecture rooted at EntryID.
func New() *Architecture {
	return &Architecture{
		Entry: EntryID,
		Nodes: make(map[int]*Node),
	}
}

// Add inserts a node. Returns error if the id is already taken.
func (a *Architecture) Add(n *Node) error {
	if n == nil {
		return fmt.Errorf("node cannot be nil")
	}
	if _, exists := a.Nodes[n.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, n.ID)
	}
	a.Nodes[n.ID] = n
	return nil
}

// Get returns the node with the given id.
func (a *Architecture) Get(id int) (*Node, bool) {
	n, ok := a.Nodes[id]
	return n, ok
}

// Len returns the number of nodes.
func (a *Architecture) Len() int {
	return len(a.Nodes)
}

// IDs returns every node id in ascending order.
func (a *Architecture) IDs() []int {
	ids := make([]int, 0, len(a.Nodes))
	for id := range a.Nodes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Neighbors returns the connections of id that name an existing node other
// than id itself, each once. Unknown ids have no neighbors.
func (a *Architecture) Neighbors(id int) []int {
	n, ok := a.Nodes[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(n.Connections))
	for _, c := range n.Connections {
		if c == id {
			continue
		}
		if _, ok := a.Nodes[c]; !ok || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Clone returns a deep copy that shares no memory with a.
func (a *Architecture) Clone() *Architecture {
	c := &Architecture{
		Name:   a.Name,
		Target: a.Target,
		ETA:    a.ETA,
		Entry:  a.Entry,
		Nodes:  make(map[int]*Node, len(a.Nodes)),
	}
	for id, n := range a.Nodes {
		c.Nodes[id] = n.clone()
	}
	return c
}

// Stats holds summary counts.
type Stats struct {
	Nodes  int
	Edges  int
	Levels int
	ByType map[NodeType]int
}

// GetStats returns summary statistics. Edges are counted once per pair.
func (a *Architecture) GetStats() Stats {
	s := Stats{Nodes: len(a.Nodes), ByType: make(map[NodeType]int)}
	levels := make(map[int]bool)
	for _, n := range a.Nodes {
		s.ByType[n.Type]++
		levels[n.Level] = true
	}
	s.Levels = len(levels)
	s.Edges = len(a.Edges())
	return s
}

// Edge is an undirected pair with A < B.
type Edge struct {
	A, B int
}

// Edges returns each undirected edge once, smaller id first, sorted.
func (a *Architecture) Edges() []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, id := range a.IDs() {
		for _, c := range a.Neighbors(id) {
			e := Edge{A: min(id, c), B: max(id, c)}
			if seen[e] {
				continue
			}
			seen[e] = true
			out = append(out, e)
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
