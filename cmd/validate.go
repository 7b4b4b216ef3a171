package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/msalah0e/netmap/internal/netarch"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

// loadRaw loads a dataset as written, without normalizing or validating it.
func loadRaw(path string) (*netarch.Architecture, string, error) {
	if path == "" {
		path = dataPath
	}
	if path == "" {
		path = loadConfig().Game.Dataset
	}
	if path != "" {
		a, err := netarch.LoadFile(path)
		return a, path, err
	}
	if datasetFS == nil {
		return nil, "", fmt.Errorf("no dataset available")
	}
	a, err := netarch.LoadFromFS(datasetFS, "data")
	return a, "built-in architecture", err
}

// problems flattens a joined error into its parts.
func problems(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func validateCmd() *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a dataset for structural problems",
		Long: `Check node fields, the entry node, and the edge list of a dataset.

Without a file the --data flag, the configured dataset, or the built-in
architecture is checked. With --normalize, edge problems that can be
repaired are fixed first and the repairs are listed.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			a, source, err := loadRaw(path)
			if err != nil {
				ui.Bad.Printf("  %s %v\n", ui.StatusIcon(false), err)
				os.Exit(1)
			}

			fmt.Printf("  Checking %s (%d nodes)\n\n", ui.Brand.Sprint(source), a.Len())

			if normalize {
				for _, fix := range a.Normalize() {
					fmt.Printf("  %s %s\n", ui.WarnIcon(), fix)
				}
			}

			errs := problems(a.Validate())
			if len(errs) == 0 {
				ui.Good.Printf("  %s No problems found\n", ui.StatusIcon(true))
				return
			}
			for _, e := range errs {
				label := "invalid"
				switch {
				case errors.Is(e, netarch.ErrAsymmetric), errors.Is(e, netarch.ErrDanglingEdge), errors.Is(e, netarch.ErrSelfLoop):
					label = "edge"
				case errors.Is(e, netarch.ErrEntryMissing):
					label = "entry"
				}
				fmt.Printf("  %s %s %v\n", ui.StatusIcon(false), ui.Subtle.Sprintf("%-7s", label), e)
			}
			fmt.Printf("\n  %d problem(s)\n", len(errs))
			os.Exit(1)
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "Repair edge problems before checking")
	return cmd
}
