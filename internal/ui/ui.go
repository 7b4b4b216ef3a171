package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/msalah0e/netmap/internal/netarch"
	"github.com/msalah0e/netmap/internal/reveal"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Anchor = "⚓"

// Emoji toggles pictographic icons. ASCII fallbacks are used when false.
var Emoji = true

// SetColor enables or disables colored output globally.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// typeColors mirrors the map legend: one hue per node type.
var typeColors = map[netarch.NodeType]*color.Color{
	netarch.EntryPoint:  color.New(color.FgGreen),
	netarch.Password:    color.New(color.FgYellow),
	netarch.ControlNode: color.New(color.FgBlue),
	netarch.File:        color.New(color.FgMagenta),
	netarch.BlackIce:    color.New(color.FgRed),
	netarch.Branch:      color.New(color.FgCyan),
}

// TypeColor returns the color for a node type.
func TypeColor(t netarch.NodeType) *color.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return Info
}

// TypeIcon returns a one-glyph icon for a node type.
func TypeIcon(t netarch.NodeType) string {
	if !Emoji {
		return TypeGlyph(t)
	}
	switch t {
	case netarch.EntryPoint:
		return "▶"
	case netarch.Password:
		return "⚿"
	case netarch.ControlNode:
		return "⚙"
	case netarch.File:
		return "☰"
	case netarch.BlackIce:
		return "☠"
	default:
		return "✦"
	}
}

// TypeGlyph is the ASCII form of TypeIcon.
func TypeGlyph(t netarch.NodeType) string {
	switch t {
	case netarch.EntryPoint:
		return ">"
	case netarch.Password:
		return "#"
	case netarch.ControlNode:
		return "@"
	case netarch.File:
		return "="
	case netarch.BlackIce:
		return "!"
	default:
		return "+"
	}
}

// Banner prints the architecture header.
func Banner(a *netarch.Architecture, subtitle string) {
	title := strings.ToUpper(a.Name)
	if title == "" {
		title = "NETMAP"
	}
	fmt.Printf("%s %s\n", Anchor, Brand.Sprint(title))
	if a.Target != "" || a.ETA != "" {
		fmt.Printf("  %s\n", Subtle.Sprintf("TARGET: %s // ETA: %s", a.Target, a.ETA))
	}
	if subtitle != "" {
		fmt.Printf("  %s\n", subtitle)
	}
	fmt.Println()
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header
	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(headerLine)
	Subtle.Println(sepLine)

	// Print rows
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// RenderDetail produces the node analysis panel for v. Locked nodes only
// show what a scan would reveal: their level.
func RenderDetail(v reveal.NodeView) string {
	var b strings.Builder

	b.WriteString(Brand.Sprint("NODE ANALYSIS") + "\n\n")

	if !v.Revealed {
		b.WriteString(fmt.Sprintf("  %s %s\n", TypeIcon(netarch.Branch), Subtle.Sprint(v.DisplayLabel())))
		b.WriteString(fmt.Sprintf("  %s\n", Subtle.Sprint("Encrypted. Reveal this node to read it.")))
		if v.Accessible {
			b.WriteString(fmt.Sprintf("  %s\n", Good.Sprint("Accessible from a revealed node.")))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s\n", WarnIcon(), Warn.Sprint("No revealed neighbor.")))
		}
		return b.String()
	}

	c := TypeColor(v.Type)
	b.WriteString(fmt.Sprintf("  %s %s\n", c.Sprint(TypeIcon(v.Type)), c.Sprint(strings.ToUpper(v.Label))))
	if v.Description != "" {
		b.WriteString(fmt.Sprintf("  %s\n", Subtle.Sprint(v.Description)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", Info.Sprintf("%-8s", "TYPE"), c.Sprint(string(v.Type))))
	b.WriteString(fmt.Sprintf("  %s  %d\n", Info.Sprintf("%-8s", "LEVEL"), v.Level))
	if v.HasDV() {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Info.Sprintf("%-8s", "DV"), Warn.Sprint(*v.DV)))
	}
	if v.Content != "" {
		b.WriteString(fmt.Sprintf("  %s  %s\n", Info.Sprintf("%-8s", "CONTENT"), v.Content))
	}
	b.WriteString("\n" + Subtle.Sprint("  // END NODE STREAM") + "\n")
	return b.String()
}
