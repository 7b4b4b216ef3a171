//go:build e2e

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var netmapBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "netmap-e2e-*")
	if err != nil {
		panic("failed to create temp dir: " + err.Error())
	}
	defer os.RemoveAll(tmp)

	netmapBin = filepath.Join(tmp, "netmap")
	build := exec.Command("go", "build", "-ldflags", "-X github.com/msalah0e/netmap/cmd.version=0.3.0-test", "-o", netmapBin, ".")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("failed to build netmap: " + err.Error())
	}

	os.Exit(m.Run())
}

// runNetmap executes the netmap binary with an isolated HOME directory.
func runNetmap(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(netmapBin, args...)
	home := t.TempDir()
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"NO_COLOR=1",
	)

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("failed to run netmap %v: %v", args, err)
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

// --- Core CLI ---

func TestE2E_Version(t *testing.T) {
	out, _, code := runNetmap(t, "--version")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "0.3.0-test") {
		t.Errorf("expected version output to contain '0.3.0-test', got %q", out)
	}
}

func TestE2E_Help(t *testing.T) {
	out, _, code := runNetmap(t, "--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Available Commands") {
		t.Errorf("expected help to contain 'Available Commands', got %q", out)
	}
}

func TestE2E_BareCommand(t *testing.T) {
	out, _, code := runNetmap(t)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "HEYWOOD HARBOUR") {
		t.Errorf("expected the architecture banner, got %q", out)
	}
}

// --- Nodes ---

func TestE2E_Nodes(t *testing.T) {
	out, _, code := runNetmap(t, "nodes")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Dock Terminal") {
		t.Errorf("expected the entry node, got %q", out)
	}
	if strings.Contains(out, "Manifest Lock") {
		t.Errorf("hidden nodes should not be listed, got %q", out)
	}
}

func TestE2E_NodesAllJSON(t *testing.T) {
	out, _, code := runNetmap(t, "nodes", "--all", "--json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(rows) != 14 {
		t.Errorf("expected 14 nodes, got %d", len(rows))
	}
}

func TestE2E_ShowMasked(t *testing.T) {
	out, _, code := runNetmap(t, "show", "2")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "LVL 1") || strings.Contains(out, "MANIFEST LOCK") {
		t.Errorf("node 2 should be masked, got %q", out)
	}

	out, _, _ = runNetmap(t, "show", "2", "--steps", "p,c:2")
	if !strings.Contains(out, "MANIFEST LOCK") {
		t.Errorf("node 2 should be revealed after the steps, got %q", out)
	}
}

func TestE2E_ShowUnknown(t *testing.T) {
	_, _, code := runNetmap(t, "show", "99")
	if code == 0 {
		t.Fatal("expected non-zero exit for unknown node")
	}
}

// --- Simulation ---

func TestE2E_SimJSON(t *testing.T) {
	out, _, code := runNetmap(t, "sim", "--steps", "p,c:2,c:5", "--json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	var res struct {
		Revealed []int `json:"revealed"`
		Visible  []int `json:"visible"`
		Selected int   `json:"selected"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(res.Revealed) != 3 || res.Selected != 5 {
		t.Errorf("unexpected state %+v", res)
	}
}

func TestE2E_SimBadSteps(t *testing.T) {
	_, _, code := runNetmap(t, "sim", "--steps", "jump:3")
	if code == 0 {
		t.Fatal("expected non-zero exit for a bad script")
	}
}

func TestE2E_SimJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	if _, _, code := runNetmap(t, "sim", "--steps", "c:1,p", "--log", path); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out, _, code := runNetmap(t, "journal", path)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "pathfinder") {
		t.Errorf("expected a pathfinder entry, got %q", out)
	}
}

// --- Export / validate ---

func TestE2E_ExportDOT(t *testing.T) {
	out, _, code := runNetmap(t, "export", "--format", "dot")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(out, "graph \"Heywood Harbour\" {") || !strings.Contains(out, "n1 -- n2;") {
		t.Errorf("unexpected DOT output %q", out)
	}
}

func TestE2E_ExportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.toml")
	if _, _, code := runNetmap(t, "export", "--format", "toml", "-o", path); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out, _, code := runNetmap(t, "validate", path)
	if code != 0 {
		t.Fatalf("exported dataset should validate, got %d: %s", code, out)
	}
}

func TestE2E_ValidateBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	data := "[[nodes]]\nid = 1\ntype = \"Entry Point\"\nlabel = \"Gate\"\nconnections = [2]\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, code := runNetmap(t, "validate", path)
	if code == 0 {
		t.Fatalf("expected non-zero exit, got output %q", out)
	}
	if !strings.Contains(out, "connection to unknown node") {
		t.Errorf("expected a dangling edge report, got %q", out)
	}
}

// --- Config ---

func TestE2E_ConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, _, code := runNetmap(t, "--config", path, "config", "init"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	out, _, code := runNetmap(t, "--config", path, "config")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "zoom_max = 2.5") {
		t.Errorf("expected viewport settings, got %q", out)
	}
}

func TestE2E_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		out, _, code := runNetmap(t, "completion", shell)
		if code != 0 {
			t.Fatalf("%s: expected exit 0, got %d", shell, code)
		}
		if len(out) == 0 {
			t.Errorf("%s: expected completion script", shell)
		}
	}
}
