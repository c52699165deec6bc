// Package main is the budgetctl command line tool for inspecting a budget ledger.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/domain/tax"
	"github.com/budget-ledger/backend/internal/infra/storage"
)

// options holds the global flags shared by every subcommand.
type options struct {
	backend     string
	sqlitePath  string
	taxSchedule string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Inspect and maintain a budget ledger",
		Long:          `budgetctl computes pay breakdowns and reports on the categories and expenses held by a budget ledger store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := config.LogConfig{Level: opts.logLevel}.SlogLevel()
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend (postgres, sqlite, redis); defaults to STORAGE_BACKEND")
	cmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "sqlite database file; defaults to SQLITE_PATH")
	cmd.PersistentFlags().StringVar(&opts.taxSchedule, "tax-schedule", "", "TOML file overriding the statutory rates; defaults to TAX_SCHEDULE_FILE")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	cmd.AddCommand(netPayCmd(opts))
	cmd.AddCommand(incomeCmd(opts))
	cmd.AddCommand(summaryCmd(opts))
	cmd.AddCommand(checkCmd(opts))

	return cmd
}

// loadConfig reads the environment and applies flag overrides.
func (o *options) loadConfig() *config.Config {
	cfg := config.Load()
	if o.backend != "" {
		cfg.Storage.Backend = strings.ToLower(o.backend)
	}
	if o.sqlitePath != "" {
		cfg.Database.SQLitePath = o.sqlitePath
	}
	if o.taxSchedule != "" {
		cfg.Tax.ScheduleFile = o.taxSchedule
	}
	return cfg
}

// calculator builds a tax calculator from the configured schedule.
func (o *options) calculator() (*tax.Calculator, error) {
	schedule, err := tax.LoadSchedule(o.loadConfig().Tax.ScheduleFile)
	if err != nil {
		return nil, err
	}
	return tax.NewCalculator(schedule), nil
}

// openStorage opens the configured store.
func (o *options) openStorage() (*storage.Storage, error) {
	cfg := o.loadConfig()
	s, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}
	return s, nil
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
