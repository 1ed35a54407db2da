package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/logging"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/rgehrsitz/taxpilot/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := flag.String("db", "", "Draft database path (default from settings)")
	logPath := flag.String("log", "", "Write logs to this file (default: discard)")
	flag.Parse()

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if *dbPath != "" {
		settings.Database.Path = *dbPath
	}

	// The wizard owns the terminal, so logs only go to a file.
	logger := logging.Nop()
	if *logPath != "" {
		logger, err = logging.New(logging.Config{Level: settings.Log.Level, JSON: settings.Log.JSON, OutputPath: *logPath})
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	table, err := config.NewInputParser().ResolveTable(settings.Jurisdiction.TablePath)
	if err != nil {
		return err
	}
	engine := calculation.NewEngineWithOptions(table, calculation.Options{
		ApplyChildTaxCredit: settings.Calculation.ApplyChildTaxCredit,
	})

	var repo store.Repository = store.NewMemoryRepository()
	if settings.Database.Path != "" {
		sqlite, err := store.OpenSQLite(settings.Database.Path)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		repo = sqlite
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := store.NewSession(repo, engine, logger)
	if err := session.Load(ctx); err != nil {
		return err
	}
	logger.Info("wizard started", zap.String("db", settings.Database.Path), zap.Int("step", session.Step()))

	model := tui.NewModel(ctx, session, engine)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}
