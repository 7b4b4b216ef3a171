package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/msalah0e/netmap/internal/netarch"
	"github.com/msalah0e/netmap/internal/reveal"
)

func init() {
	color.NoColor = true
}

func node() *netarch.Node {
	dv := 6
	return &netarch.Node{
		ID:          2,
		Level:       1,
		Type:        netarch.Password,
		Label:       "Manifest Lock",
		Description: "Password gate",
		Content:     "Rotating passphrase",
		DV:          &dv,
	}
}

func TestRenderDetail_Revealed(t *testing.T) {
	out := RenderDetail(reveal.NodeView{Node: node(), Revealed: true})

	for _, want := range []string{"NODE ANALYSIS", "MANIFEST LOCK", "Password gate", "Password", "DV", "6", "Rotating passphrase"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in detail:\n%s", want, out)
		}
	}
}

func TestRenderDetail_Masked(t *testing.T) {
	out := RenderDetail(reveal.NodeView{Node: node(), Accessible: true})

	if !strings.Contains(out, "LVL 1") {
		t.Errorf("expected level placeholder, got:\n%s", out)
	}
	for _, hidden := range []string{"Manifest", "Rotating", "DV"} {
		if strings.Contains(out, hidden) {
			t.Errorf("masked detail leaks %q:\n%s", hidden, out)
		}
	}
	if !strings.Contains(out, "Accessible") {
		t.Errorf("expected accessibility hint, got:\n%s", out)
	}

	out = RenderDetail(reveal.NodeView{Node: node()})
	if !strings.Contains(out, "No revealed neighbor") {
		t.Errorf("expected route warning, got:\n%s", out)
	}
}

func TestTypeIcons(t *testing.T) {
	seen := make(map[string]bool)
	for _, typ := range netarch.Types {
		g := TypeGlyph(typ)
		if len(g) != 1 {
			t.Errorf("glyph for %s should be one ASCII cell, got %q", typ, g)
		}
		if seen[g] {
			t.Errorf("glyph %q used twice", g)
		}
		seen[g] = true
	}

	Emoji = false
	defer func() { Emoji = true }()
	if TypeIcon(netarch.File) != TypeGlyph(netarch.File) {
		t.Error("emoji off should fall back to ASCII glyphs")
	}
}

func TestSetColor(t *testing.T) {
	defer SetColor(false)

	SetColor(true)
	if color.NoColor {
		t.Error("SetColor(true) should enable color")
	}
	SetColor(false)
	if !color.NoColor {
		t.Error("SetColor(false) should disable color")
	}
}
