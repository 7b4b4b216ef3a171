package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/msalah0e/netmap/internal/activity"
	"github.com/msalah0e/netmap/internal/config"
	"github.com/msalah0e/netmap/internal/netarch"
	"github.com/msalah0e/netmap/internal/session"
	"github.com/msalah0e/netmap/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	datasetFS  fs.FS
	arch       *netarch.Architecture
	cfg        *config.Config
	configPath string
	dataPath   string
	logPath    string
)

// SetDatasetFS sets the embedded filesystem holding the built-in architecture.
func SetDatasetFS(fsys fs.FS) {
	datasetFS = fsys
}

func loadConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	path := configPath
	if path == "" {
		path = config.Path()
	}
	c, err := config.LoadFrom(path)
	if err != nil {
		ui.Warn.Printf("  %s config %s: %v (using defaults)\n", ui.WarnIcon(), path, err)
	}
	cfg = c
	return cfg
}

// loadArchitecture resolves the dataset: --data, then the config's dataset,
// then the embedded one.
func loadArchitecture() (*netarch.Architecture, error) {
	if arch != nil {
		return arch, nil
	}
	c := loadConfig()

	var (
		a   *netarch.Architecture
		err error
	)
	switch {
	case dataPath != "":
		a, err = netarch.LoadFile(dataPath)
	case c.Game.Dataset != "":
		a, err = netarch.LoadFile(c.Game.Dataset)
	case datasetFS != nil:
		a, err = netarch.LoadFromFS(datasetFS, "data")
	default:
		err = fmt.Errorf("no dataset available")
	}
	if err != nil {
		return nil, err
	}

	if c.Game.EntryNode != netarch.EntryID {
		if _, ok := a.Get(c.Game.EntryNode); ok {
			a.Entry = c.Game.EntryNode
		}
	}
	if c.Game.Normalize {
		for _, fix := range a.Normalize() {
			log.Printf("dataset: %s", fix)
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	arch = a
	return arch, nil
}

func mustArchitecture() *netarch.Architecture {
	a, err := loadArchitecture()
	if err != nil {
		ui.Bad.Printf("  Failed to load architecture: %v\n", err)
		os.Exit(1)
	}
	return a
}

// openJournal returns the session journal: --log wins, then the config.
// A nil journal disables recording.
func openJournal() *activity.Journal {
	c := loadConfig()
	path := logPath
	if path == "" && c.Journal.Enabled {
		path = c.JournalPath()
	}
	if path == "" {
		return nil
	}
	j, err := activity.Open(path)
	if err != nil {
		ui.Warn.Printf("  %s journal disabled: %v\n", ui.WarnIcon(), err)
		return nil
	}
	return j
}

func newSession(a *netarch.Architecture, j *activity.Journal) *session.Session {
	c := loadConfig()
	return session.New(a, session.Options{
		Limits:         c.Limits(),
		PannableFactor: c.Viewport.PannableFactor,
		InitialZoom:    c.Viewport.InitialZoom,
		Journal:        j,
	})
}

var rootCmd = &cobra.Command{
	Use:   "netmap",
	Short: "netmap — explore a NET architecture from the terminal",
	Long: ui.Brand.Sprint(ui.Anchor+" netmap") + " — reveal a netrun architecture node by node\n" +
		ui.Subtle.Sprint("Click through the map, run the pathfinder, and read what each node holds"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c := loadConfig()
		ui.SetColor(c.UI.Color && os.Getenv("NO_COLOR") == "")
		ui.Emoji = c.UI.Emoji
	},
	Run: func(cmd *cobra.Command, args []string) {
		a := mustArchitecture()
		stats := a.GetStats()
		ui.Banner(a, "")

		fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-10s", "Nodes"), stats.Nodes)
		fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-10s", "Edges"), stats.Edges)
		fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-10s", "Levels"), stats.Levels)
		fmt.Println()
		ui.Info.Println("  netmap play            # open the map")
		ui.Info.Println("  netmap sim --steps p   # run the pathfinder headless")
	},
}

func init() {
	rootCmd.SetVersionTemplate("netmap {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/netmap/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Load the architecture from a TOML or YAML file")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Append the session journal to this file")

	rootCmd.AddCommand(
		playCmd(),
		nodesCmd(),
		showCmd(),
		simCmd(),
		exportCmd(),
		validateCmd(),
		configCmd(),
		journalCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
