// Package ui implements the quorum command line interface.
package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"quorum/internal/config"
	"quorum/internal/db"
	"quorum/internal/event"
	"quorum/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     event.Repository
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	ownsRepo bool // Close the repo when this App opened it
}

// NewApp creates a new CLI application with the given repository and config.
func NewApp(repo event.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "quorum",
		Short: "Find a meeting time that works for everyone",
		Long: `Quorum collects everyone's availability over a date range and shows
where schedules overlap.

Running quorum with no arguments opens the interactive interface: pick an
event, drag across the grid to mark when you are free, and read the heatmap
to see which slots work best.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return tui.RunWithDebug(a.repo, a.config, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to quorum-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.createCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.resultsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("quorum %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo lazily opens the database for subcommands that need it.
// The root command leaves this to the TUI so startup stays instant.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if dbPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// Close releases the repository if this App opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
