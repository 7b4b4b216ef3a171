package netarch

import (
	"embed"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

//go:embed testdata/split
var testFS embed.FS

func loadSplit(t *testing.T) *Architecture {
	t.Helper()
	a, err := LoadFromFS(testFS, "testdata/split")
	if err != nil {
		t.Fatalf("LoadFromFS failed: %v", err)
	}
	return a
}

func TestLoadFromFS(t *testing.T) {
	a := loadSplit(t)

	if a.Len() != 4 {
		t.Fatalf("expected 4 nodes, got %d", a.Len())
	}
	if a.Name != "Test Rig" {
		t.Errorf("expected name 'Test Rig', got %q", a.Name)
	}
	if a.Entry != 1 {
		t.Errorf("expected entry 1, got %d", a.Entry)
	}

	n, ok := a.Get(3)
	if !ok {
		t.Fatal("node 3 not found")
	}
	if n.Type != BlackIce {
		t.Errorf("expected lenient type to parse as %q, got %q", BlackIce, n.Type)
	}

	gate, _ := a.Get(2)
	if !gate.HasDV() || *gate.DV != 6 {
		t.Errorf("expected dv 6 on node 2, got %v", gate.DV)
	}
	if n.HasDV() {
		t.Error("node 3 should have no dv")
	}

	if err := a.Validate(); err != nil {
		t.Errorf("expected valid dataset, got %v", err)
	}
}

func TestLoadFromFS_Empty(t *testing.T) {
	fsys := fstest.MapFS{"data/readme.md": {Data: []byte("hi")}}
	if _, err := LoadFromFS(fsys, "data"); err == nil {
		t.Fatal("expected error for directory without dataset files")
	}
}

func TestLoadFromFS_DuplicateID(t *testing.T) {
	node := "[[nodes]]\nid = 1\nlevel = 0\ngrid_x = 0\ngrid_y = 0\ntype = \"File\"\nlabel = \"x\"\n"
	fsys := fstest.MapFS{
		"data/a.toml": {Data: []byte(node)},
		"data/b.toml": {Data: []byte(node)},
	}
	_, err := LoadFromFS(fsys, "data")
	if !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	a, err := LoadFile(filepath.Join("testdata", "small.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if a.Name != "YAML Rig" {
		t.Errorf("expected name 'YAML Rig', got %q", a.Name)
	}
	n, ok := a.Get(2)
	if !ok {
		t.Fatal("node 2 not found")
	}
	if n.Type != ControlNode {
		t.Errorf("expected %q, got %q", ControlNode, n.Type)
	}
	if n.GridY != 4 {
		t.Errorf("expected grid_y 4, got %d", n.GridY)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("expected valid dataset, got %v", err)
	}
}

func TestLoadFile_UnknownType(t *testing.T) {
	_, err := Parse("x.toml", []byte("[[nodes]]\nid = 1\ntype = \"Toaster\"\nlabel = \"x\"\n"))
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestLoadFile_UnsupportedFormat(t *testing.T) {
	if _, err := Parse("x.json", []byte("{}")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidate_Broken(t *testing.T) {
	a, err := LoadFile(filepath.Join("testdata", "broken.toml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	err = a.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	for _, want := range []error{ErrSelfLoop, ErrDanglingEdge, ErrAsymmetric} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
	msg := err.Error()
	for _, want := range []string{"Level must be at least 0", "GridX must be less than 25", "Label is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidate_EntryMissing(t *testing.T) {
	a := New()
	a.Entry = 7
	a.Add(&Node{ID: 1, Type: File, Label: "x"})

	if err := a.Validate(); !errors.Is(err, ErrEntryMissing) {
		t.Fatalf("expected ErrEntryMissing, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	a, err := LoadFile(filepath.Join("testdata", "broken.toml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	fixes := a.Normalize()
	if len(fixes) != 3 {
		t.Errorf("expected 3 fixes, got %d: %v", len(fixes), fixes)
	}

	entry, _ := a.Get(1)
	if len(entry.Connections) != 1 || entry.Connections[0] != 2 {
		t.Errorf("expected node 1 connections [2], got %v", entry.Connections)
	}
	orphan, _ := a.Get(2)
	if len(orphan.Connections) != 1 || orphan.Connections[0] != 1 {
		t.Errorf("expected mirrored back edge on node 2, got %v", orphan.Connections)
	}

	if again := a.Normalize(); len(again) != 0 {
		t.Errorf("second Normalize should be a no-op, got %v", again)
	}
}

func TestClone(t *testing.T) {
	a := loadSplit(t)
	c := a.Clone()

	n, _ := c.Get(2)
	n.Label = "changed"
	n.Connections[0] = 99
	*n.DV = 20

	orig, _ := a.Get(2)
	if orig.Label != "Gate" {
		t.Errorf("clone shares label: %q", orig.Label)
	}
	if orig.Connections[0] != 1 {
		t.Errorf("clone shares connections: %v", orig.Connections)
	}
	if *orig.DV != 6 {
		t.Errorf("clone shares dv: %d", *orig.DV)
	}
}

func TestNeighbors(t *testing.T) {
	a := New()
	a.Add(&Node{ID: 1, Connections: []int{1, 2, 5}})
	a.Add(&Node{ID: 2, Connections: []int{1}})

	got := a.Neighbors(1)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("expected [2], got %v", got)
	}
	if a.Neighbors(42) != nil {
		t.Error("unknown id should have no neighbors")
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]NodeType{
		"Entry Point":  EntryPoint,
		"entry_point":  EntryPoint,
		"CONTROL-NODE": ControlNode,
		"Black ICE":    BlackIce,
		"branch":       Branch,
		"Branch Point": Branch,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		if err != nil {
			t.Errorf("ParseType(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseType(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseType("mainframe"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestEdgesAndStats(t *testing.T) {
	a := loadSplit(t)

	edges := a.Edges()
	want := []Edge{{1, 2}, {1, 3}, {2, 4}}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %v", len(want), edges)
	}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edge %d: expected %v, got %v", i, want[i], edges[i])
		}
	}

	stats := a.GetStats()
	if stats.Nodes != 4 || stats.Edges != 3 || stats.Levels != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.ByType[Password] != 1 {
		t.Errorf("expected 1 password node, got %d", stats.ByType[Password])
	}
}

func TestExportJSON(t *testing.T) {
	a := loadSplit(t)
	data, err := a.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var out struct {
		Name  string `json:"name"`
		Nodes []Node `json:"nodes"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Name != "Test Rig" || len(out.Nodes) != 4 {
		t.Errorf("unexpected export: name=%q nodes=%d", out.Name, len(out.Nodes))
	}
	if out.Nodes[0].ID != 1 {
		t.Errorf("expected nodes in id order, first is %d", out.Nodes[0].ID)
	}
}

func TestExportTOML_ReloadsEqual(t *testing.T) {
	a := loadSplit(t)
	data, err := a.ExportTOML()
	if err != nil {
		t.Fatalf("ExportTOML failed: %v", err)
	}

	b, err := Parse("export.toml", data)
	if err != nil {
		t.Fatalf("reparse failed: %v\n%s", err, data)
	}
	if b.Len() != a.Len() || b.Name != a.Name {
		t.Errorf("reloaded architecture differs: %d nodes, name %q", b.Len(), b.Name)
	}
	if n, _ := b.Get(4); n.Content != "numbers" {
		t.Errorf("expected content preserved, got %q", n.Content)
	}
}

func TestExportDOT(t *testing.T) {
	a := loadSplit(t)
	dot := a.ExportDOT()

	if !strings.HasPrefix(dot, `graph "Test Rig" {`) {
		t.Errorf("unexpected header: %q", strings.SplitN(dot, "\n", 2)[0])
	}
	for _, want := range []string{"n1 -- n2;", "n1 -- n3;", "n2 -- n4;", `pos="24,0!"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected %q in DOT output", want)
		}
	}
	if strings.Contains(dot, "n2 -- n1;") {
		t.Error("edges should be emitted once, smaller id first")
	}
}
