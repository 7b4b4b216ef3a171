package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/msalah0e/netmap/internal/netarch"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)

	detailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	actionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#005F87")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginLeft(1)
)

// Canvas inks. inkNone draws unstyled.
const (
	inkNone ink = iota
	inkEdgeDim
	inkEdgeLit
	inkLocked
	inkSelected
	inkEntry
	inkPassword
	inkControl
	inkFile
	inkBlackIce
	inkBranch
)

type ink int

var inks = map[ink]lipgloss.Style{
	inkEdgeDim:  lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A")),
	inkEdgeLit:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFAF")),
	inkLocked:   lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
	inkSelected: lipgloss.NewStyle().Bold(true).Reverse(true),
	inkEntry:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	inkPassword: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
	inkControl:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")),
	inkFile:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF")),
	inkBlackIce: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
	inkBranch:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF")),
}

func typeInk(t netarch.NodeType) ink {
	switch t {
	case netarch.EntryPoint:
		return inkEntry
	case netarch.Password:
		return inkPassword
	case netarch.ControlNode:
		return inkControl
	case netarch.File:
		return inkFile
	case netarch.BlackIce:
		return inkBlackIce
	default:
		return inkBranch
	}
}
