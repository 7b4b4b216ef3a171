package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	var (
		revealAll bool
		steps     string
	)

	cmd := &cobra.Command{
		Use:               "show <id>",
		Aliases:           []string{"info", "node"},
		Short:             "Show the analysis panel of a node",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: nodeIDCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				ui.Bad.Printf("  Invalid node id %q\n", args[0])
				os.Exit(1)
			}

			s := newSession(mustArchitecture(), nil)
			if steps != "" {
				parsed, err := parseSteps(steps)
				if err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				applySteps(s, parsed)
			}

			v, ok := s.Engine().View(id)
			if !ok {
				ui.Bad.Printf("  Node %d not found\n", id)
				os.Exit(1)
			}
			if revealAll {
				v.Revealed = true
			}

			fmt.Println()
			fmt.Print(ui.RenderDetail(v))

			if v.Revealed {
				var links []string
				for _, n := range s.Architecture().Neighbors(id) {
					links = append(links, strconv.Itoa(n))
				}
				fmt.Printf("\n  %s  %s\n", ui.Info.Sprintf("%-8s", "LINKS"), strings.Join(links, ", "))
			}
		},
	}

	cmd.Flags().BoolVar(&revealAll, "reveal-all", false, "Show the node unmasked")
	cmd.Flags().StringVar(&steps, "steps", "", "Play these steps first (see `netmap sim`)")
	return cmd
}
