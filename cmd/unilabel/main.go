package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-unilabel"
	"github.com/goliatone/go-unilabel/pkg/accordion"
	"github.com/goliatone/go-unilabel/pkg/config"
	"github.com/goliatone/go-unilabel/pkg/renderers/tui"
)

// app carries global flags and the state built by PersistentPreRunE. Callers
// release it with teardown once the command returns, error or not.
type app struct {
	configPath  string
	dbPath      string
	contentType string
	verbose     bool

	// driver overrides the survey prompts of the edit command.
	driver tui.PromptDriver

	logger  *zap.Logger
	runtime *unilabel.Runtime
}

func main() {
	a := &app{}
	err := newRootCmd(a).Execute()
	a.teardown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "unilabel",
		Short: "Manage unilabel content types from the command line",
		Long: `unilabel renders, edits and deletes the content of unilabel labels.

Labels are read from the labels section of the configuration file. Content
is stored in the SQLite database given by --db or database_path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides database_path)")
	root.PersistentFlags().StringVarP(&a.contentType, "type", "t", accordion.Namespace, "content type namespace")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newFormCmd(a),
	)
	return root
}

func (a *app) setup() error {
	logCfg := zap.NewProductionConfig()
	if a.verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	cfg, err := config.Load(a.configPath, accordion.Namespace)
	if err != nil {
		return err
	}
	if !a.verbose && cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
		}
		logCfg.Level = zap.NewAtomicLevelAt(level)
	}
	if a.dbPath != "" {
		cfg.DatabasePath = a.dbPath
	}

	a.logger, err = logCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.runtime, err = unilabel.Open(cfg, unilabel.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.logger.Debug("runtime ready",
		zap.String("database", cfg.DatabasePath),
		zap.Strings("content_types", a.runtime.Registry.List()),
	)
	return nil
}

func (a *app) teardown() {
	if a.runtime != nil {
		if err := a.runtime.Close(); err != nil && a.logger != nil {
			a.logger.Warn("close runtime", zap.Error(err))
		}
		a.runtime = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func parseLabelID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid label id %q", raw)
	}
	return id, nil
}
