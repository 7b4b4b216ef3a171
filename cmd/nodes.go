package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/msalah0e/netmap/internal/reveal"
	"github.com/msalah0e/netmap/internal/session"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

// nodeRow is the JSON shape of one listed node.
type nodeRow struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	Level      int    `json:"level"`
	Revealed   bool   `json:"revealed"`
	Visible    bool   `json:"visible"`
	Accessible bool   `json:"accessible"`
	Selected   bool   `json:"selected,omitempty"`
}

func nodeRows(s *session.Session, all bool) []nodeRow {
	e := s.Engine()
	ids := e.VisibleIDs()
	if all {
		ids = s.Architecture().IDs()
	}

	rows := make([]nodeRow, 0, len(ids))
	for _, id := range ids {
		v, ok := e.View(id)
		if !ok {
			continue
		}
		label, typ := v.DisplayLabel(), v.DisplayType()
		if all {
			label, typ = v.Label, v.Type
		}
		rows = append(rows, nodeRow{
			ID:         id,
			Label:      label,
			Type:       string(typ),
			Level:      v.Level,
			Revealed:   v.Revealed,
			Visible:    e.IsVisible(id),
			Accessible: v.Accessible,
			Selected:   v.Selected,
		})
	}
	return rows
}

func stateLabel(r nodeRow) string {
	switch {
	case r.Revealed:
		return ui.Good.Sprint("revealed")
	case r.Visible && r.Accessible:
		return ui.Info.Sprint("accessible")
	case r.Visible:
		return ui.Warn.Sprint("locked")
	default:
		return ui.Subtle.Sprint("hidden")
	}
}

func printNodes(rows []nodeRow, progress reveal.Progress) {
	var table [][]string
	for _, r := range rows {
		id := strconv.Itoa(r.ID)
		if r.Selected {
			id += "*"
		}
		table = append(table, []string{id, r.Label, r.Type, strconv.Itoa(r.Level), stateLabel(r)})
	}
	ui.Table([]string{"ID", "Label", "Type", "Level", "State"}, table)
	fmt.Printf("\n  %d revealed · %d visible · %d total\n", progress.Revealed, progress.Visible, progress.Total)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		ui.Bad.Printf("  %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func nodesCmd() *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"ls", "list"},
		Short:   "List the nodes visible at the start of a run",
		Run: func(cmd *cobra.Command, args []string) {
			s := newSession(mustArchitecture(), nil)
			rows := nodeRows(s, all)

			if asJSON {
				printJSON(rows)
				return
			}

			ui.Banner(s.Architecture(), "")
			printNodes(rows, s.Engine().Progress())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every node, unmasked")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
