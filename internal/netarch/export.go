package netarch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

func (a *Architecture) toFile() archFile {
	f := archFile{Name: a.Name, Target: a.Target, ETA: a.ETA, Entry: a.Entry}
	for _, id := range a.IDs() {
		f.Nodes = append(f.Nodes, a.Nodes[id])
	}
	return f
}

// ExportJSON returns the architecture as pretty-printed JSON, nodes in id order.
func (a *Architecture) ExportJSON() ([]byte, error) {
	type jsonArch struct {
		Name   string  `json:"name"`
		Target string  `json:"target"`
		ETA    string  `json:"eta"`
		Entry  int     `json:"entry"`
		Nodes  []*Node `json:"nodes"`
	}
	f := a.toFile()
	return json.MarshalIndent(jsonArch{
		Name:   f.Name,
		Target: f.Target,
		ETA:    f.ETA,
		Entry:  f.Entry,
		Nodes:  f.Nodes,
	}, "", "  ")
}

// ExportTOML returns the architecture in the same layout LoadFile reads.
func (a *Architecture) ExportTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(a.toFile()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportDOT returns the architecture in Graphviz DOT format as an
// undirected graph positioned on the logical grid.
func (a *Architecture) ExportDOT() string {
	var b strings.Builder
	name := a.Name
	if name == "" {
		name = "netmap"
	}
	b.WriteString(fmt.Sprintf("graph %q {\n", name))
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, id := range a.IDs() {
		n := a.Nodes[id]
		label := fmt.Sprintf("%s [%s]", n.Label, n.Type)
		// DOT's y axis points up; the grid's points down.
		b.WriteString(fmt.Sprintf("  n%d [label=%q, pos=\"%d,%d!\"];\n", id, label, n.GridX, GridSize-1-n.GridY))
	}

	b.WriteString("\n")
	for _, e := range a.Edges() {
		b.WriteString(fmt.Sprintf("  n%d -- n%d;\n", e.A, e.B))
	}

	b.WriteString("}\n")
	return b.String()
}
