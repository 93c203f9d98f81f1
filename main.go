package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"vista/cmd"
	"vista/internal/dashboard"
	"vista/internal/db"
	"vista/internal/ui"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if errors.Is(err, cmd.ErrVersion) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := cmd.OpenLogger(config.LogFile, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger.Info("vista starting", "version", version, "db", config.DBPath)

	// Open database
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if config.Seed {
		seeded, err := db.Seed(database, db.SampleDataset())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed database: %v\n", err)
			os.Exit(1)
		}
		if seeded {
			logger.Info("loaded sample dataset", "db", config.DBPath)
		}
	}

	if config.Export != "" {
		if err := cmd.RunExport(context.Background(), config, database, os.Stdout, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		if err := printSnapshot(config, database, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create and run Bubble Tea app
	app := ui.New(ui.Options{
		DB:           database,
		Logger:       logger,
		Layout:       config.Layout,
		ExportDir:    config.ExportDir,
		CSVMode:      config.CSVMode,
		PrefsPath:    filepath.Join(config.ConfigDir, "ui_prefs.json"),
		Config:       config.Entries(),
		Capabilities: ui.DetectTerminalCapabilities(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

func printSnapshot(config *cmd.Config, database *sql.DB, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ds, err := db.LoadDataset(ctx, database)
	if err != nil {
		return err
	}
	boards, err := dashboard.New(ds, config.Layout, logger)
	if err != nil {
		return err
	}
	return cmd.PrintSnapshot(os.Stdout, ds, boards)
}
