// Package cli wires configuration, logging and storage into the terminal UI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/todo/internal/app"
	"github.com/nhle/todo/internal/config"
	"github.com/nhle/todo/internal/logging"
	"github.com/nhle/todo/internal/store"
)

var (
	configPath string
	dbPath     string
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "todo",
	Short:        "Terminal task manager",
	Long:         "A terminal task manager with task lists and undoable removals.",
	Version:      Version,
	SilenceUsage: true,
	RunE:         runTodo,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides database.path)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runTodo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	log, closeLog, err := logging.Open(logging.Config{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	log.Info().
		Str("config", configPath).
		Str("db", cfg.Database.Path).
		Dur("notification_timeout", cfg.NotificationTimeout()).
		Msg("starting")

	p := tea.NewProgram(app.New(s, cfg, log, app.WithConfigPath(configPath)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	log.Info().Msg("exited")
	return nil
}
