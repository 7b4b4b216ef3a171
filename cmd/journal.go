package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/msalah0e/netmap/internal/activity"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

func journalPath(args []string) string {
	switch {
	case len(args) == 1:
		return args[0]
	case logPath != "":
		return logPath
	default:
		return loadConfig().JournalPath()
	}
}

func readJournal(args []string) ([]activity.Entry, string) {
	path := journalPath(args)
	entries, err := activity.ReadFile(path)
	if err != nil {
		ui.Bad.Printf("  Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
	return entries, path
}

func journalCmd() *cobra.Command {
	var (
		action string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "journal [file]",
		Aliases: []string{"log", "activity"},
		Short:   "Show what happened during recorded runs",
		Long: `Show the session journal written by play and sim.

Recording is enabled with --log <file> or [journal] enabled = true in the
config file.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, path := readJournal(args)
			if action != "" {
				entries = activity.Filter(entries, action)
			}
			if len(entries) == 0 {
				fmt.Printf("  No journal entries in %s\n", ui.Subtle.Sprint(path))
				return
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			var rows [][]string
			for _, e := range entries {
				rows = append(rows, []string{
					e.Timestamp.Format("Jan 02 15:04:05"),
					e.Action,
					nodesCell(e),
					truncate(e.Details, 40),
				})
			}
			ui.Table([]string{"Time", "Action", "Nodes", "Details"}, rows)
			fmt.Printf("\n  Showing %d entries from %s\n", len(entries), ui.Subtle.Sprint(path))
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "Only show this action (reveal, select, pathfinder, ...)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Show at most this many recent entries (0 = all)")

	cmd.AddCommand(journalStatsCmd(), journalExportCmd())
	return cmd
}

func journalStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Count journal entries by action",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, _ := readJournal(args)
			if len(entries) == 0 {
				fmt.Println("  No journal data")
				return
			}

			counts := make(map[string]int)
			revealed := make(map[int]bool)
			runs := 0
			for _, e := range entries {
				counts[e.Action]++
				switch e.Action {
				case activity.ActionStart:
					runs++
				case activity.ActionReveal:
					revealed[e.Node] = true
				}
			}

			actions := make([]string, 0, len(counts))
			for a := range counts {
				actions = append(actions, a)
			}
			sort.Strings(actions)

			fmt.Printf("  Total entries: %d across %d run(s)\n\n", len(entries), runs)
			fmt.Println("  By action:")
			for _, a := range actions {
				fmt.Printf("    %-12s %d\n", a, counts[a])
			}
			fmt.Printf("\n  Distinct nodes revealed: %d\n", len(revealed))
		},
	}
}

func journalExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the journal as a JSON array",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, _ := readJournal(args)
			if entries == nil {
				entries = []activity.Entry{}
			}
			printJSON(entries)
		},
	}
}

func nodesCell(e activity.Entry) string {
	if len(e.Nodes) > 0 {
		ids := make([]string, len(e.Nodes))
		for i, n := range e.Nodes {
			ids[i] = strconv.Itoa(n)
		}
		return strings.Join(ids, ",")
	}
	if e.Node != 0 {
		return strconv.Itoa(e.Node)
	}
	return "-"
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
