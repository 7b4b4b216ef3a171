package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the architecture (json, dot, toml)",
		Long: `Export the full, unmasked architecture.

  netmap export --format json
  netmap export --format dot | dot -Kneato -Tsvg > net.svg
  netmap export --format toml -o heist.toml`,
		Run: func(cmd *cobra.Command, args []string) {
			a := mustArchitecture()

			var (
				data []byte
				err  error
			)
			switch format {
			case "json":
				data, err = a.ExportJSON()
			case "dot":
				data = []byte(a.ExportDOT())
			case "toml":
				data, err = a.ExportTOML()
			default:
				ui.Bad.Printf("  Unknown format %q (use json, dot or toml)\n", format)
				os.Exit(1)
			}
			if err != nil {
				ui.Bad.Printf("  Export failed: %v\n", err)
				os.Exit(1)
			}

			if output == "" {
				fmt.Print(string(data))
				return
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				ui.Bad.Printf("  Failed to write %s: %v\n", output, err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Exported %d nodes to %s\n", ui.StatusIcon(true), a.Len(), output)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, dot, toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
