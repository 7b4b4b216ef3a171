package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/netmap/internal/config"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

func activeConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.Path()
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			path := activeConfigPath()
			if _, err := os.Stat(path); os.IsNotExist(err) {
				fmt.Println(ui.Subtle.Sprintf("  # %s does not exist, showing defaults", path))
			} else {
				fmt.Println(ui.Subtle.Sprintf("  # %s", path))
			}
			if err := toml.NewEncoder(os.Stdout).Encode(loadConfig()); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(configInitCmd(), configPathCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Run: func(cmd *cobra.Command, args []string) {
			path := activeConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Printf("  %s %s already exists (use --force to overwrite)\n", ui.WarnIcon(), path)
				return
			}
			if err := config.SaveTo(path, config.Default()); err != nil {
				ui.Bad.Printf("  Failed to write config: %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Wrote %s\n", ui.StatusIcon(true), path)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(activeConfigPath())
		},
	}
}
