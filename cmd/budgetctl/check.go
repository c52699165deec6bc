package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budget-ledger/backend/internal/domain/ledger"
)

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify storage connectivity and ledger consistency",
		Long: `Connects to the configured backend, loads every category with its expenses
and verifies that spend totals match their expenses and category names are unique.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			out := cmd.OutOrStdout()
			if !s.HealthCheck() {
				return errors.New("storage health check failed")
			}
			fmt.Fprintf(out, "storage: %s connected\n", s.Backend)

			categories, err := s.Store.LoadCategoriesWithExpenses(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			expenses := 0
			for _, c := range categories {
				expenses += len(c.Expenses)
			}
			fmt.Fprintf(out, "ledger: %d categories, %d expenses\n", len(categories), expenses)

			if err := ledger.CheckInvariant(categories); err != nil {
				return fmt.Errorf("ledger inconsistent: %w", err)
			}
			fmt.Fprintln(out, "ledger: consistent")
			return nil
		},
	}
}
