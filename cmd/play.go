package cmd

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/msalah0e/netmap/internal/tui"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

func playCmd() *cobra.Command {
	var debugLog string

	cmd := &cobra.Command{
		Use:     "play",
		Aliases: []string{"map", "ui"},
		Short:   "Open the interactive map",
		Long: `Open the architecture map in the terminal.

  left click      reveal / select a node
  right drag      pan
  wheel, + / -    zoom
  p               run the pathfinder
  c               center the selected node

  netmap play
  netmap play --data ./heist.yaml --log run.jsonl`,
		Run: func(cmd *cobra.Command, args []string) {
			a := mustArchitecture()
			c := loadConfig()

			// The alt screen owns stdout; log lines go to a file or nowhere.
			if debugLog != "" {
				f, err := tea.LogToFile(debugLog, "netmap")
				if err != nil {
					ui.Bad.Printf("  Failed to open debug log: %v\n", err)
					os.Exit(1)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			j := openJournal()
			defer j.Close()

			sess := newSession(a, j)
			if err := tui.Run(sess, tui.Options{PanStep: c.Viewport.PanStep, Mouse: c.UI.Mouse}); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}

			p := sess.Engine().Progress()
			ui.Good.Printf("  %s Revealed %d of %d nodes\n", ui.StatusIcon(true), p.Revealed, p.Total)
		},
	}

	cmd.Flags().StringVar(&debugLog, "debug-log", "", "Write debug output to this file")
	return cmd
}
