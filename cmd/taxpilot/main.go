package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rgehrsitz/taxpilot/internal/calculation"
	"github.com/rgehrsitz/taxpilot/internal/config"
	"github.com/rgehrsitz/taxpilot/internal/logging"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds what the subcommands share. The engine and session are opened
// on first use so that commands like version never touch the database.
type app struct {
	out io.Writer

	dbPath    string
	tablePath string
	logLevel  string
	debug     bool

	settings config.Settings
	logger   *zap.Logger
	engine   *calculation.Engine
	session  *store.Session
	closers  []func() error
}

func newRootCmd(out io.Writer) *cobra.Command {
	return (&app{out: out}).rootCmd()
}

// execute runs one command line and releases the database and logger
// afterwards, including when the command fails.
func execute(ctx context.Context, out io.Writer, args []string) error {
	a := &app{out: out}
	root := a.rootCmd()
	root.SetErr(out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxpilot",
		Short: "Federal and state income tax estimator",
		Long: `Estimate a federal and state income tax return from a taxpayer draft,
preview Form 1040 lines, compare what-if scenarios and walk the return
through review, payment and e-filing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)

	flags := root.PersistentFlags()
	flags.StringVar(&a.dbPath, "db", "", "Draft database path (default from settings)")
	flags.StringVar(&a.tablePath, "table", "", "Jurisdiction table YAML override")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.BoolVar(&a.debug, "debug", false, "Log calculation details")

	root.AddCommand(
		a.calculateCmd(),
		a.previewCmd(),
		a.validateCmd(),
		a.statesCmd(),
		a.draftCmd(),
		a.statusCmd(),
		a.payCmd(),
		a.signCmd(),
		a.compareCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		settings.Database.Path = a.dbPath
	}
	if a.tablePath != "" {
		settings.Jurisdiction.TablePath = a.tablePath
	}
	if a.logLevel != "" {
		settings.Log.Level = a.logLevel
	}
	if a.debug {
		settings.Log.Level = "debug"
	}
	a.settings = settings

	logger, err := logging.New(logging.Config{Level: settings.Log.Level, JSON: settings.Log.JSON})
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})
	return nil
}

// calcEngine builds the engine from the configured table.
func (a *app) calcEngine() (*calculation.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	table, err := config.NewInputParser().ResolveTable(a.settings.Jurisdiction.TablePath)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewEngineWithOptions(table, calculation.Options{
		ApplyChildTaxCredit: a.settings.Calculation.ApplyChildTaxCredit,
	})
	if a.debug {
		engine.SetLogger(a.logger.Sugar())
	}
	a.engine = engine
	return engine, nil
}

// openSession loads the persisted draft. An empty database path keeps the
// draft in memory for this run only.
func (a *app) openSession(ctx context.Context) (*store.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	engine, err := a.calcEngine()
	if err != nil {
		return nil, err
	}

	var repo store.Repository
	if path := a.settings.Database.Path; path != "" {
		sqlite, err := store.OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlite.Close)
		repo = sqlite
		a.logger.Debug("opened draft database", zap.String("path", path))
	} else {
		repo = store.NewMemoryRepository()
	}

	session := store.NewSession(repo, engine, a.logger)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}
	a.session = session
	return session, nil
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxpilot %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
