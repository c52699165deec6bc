package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budget-ledger/backend/internal/application/usecase/income"
	"github.com/budget-ledger/backend/internal/domain/tax"
)

func incomeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Show or set the current monthly income",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			output, err := income.NewGetIncomeUseCase(s.Store).Execute(cmd.Context(), income.GetIncomeInput{})
			if err != nil {
				return err
			}
			if output.Breakdown == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No income saved. Use 'budgetctl income set <gross>' to add one.")
				return nil
			}
			return printBreakdown(cmd, *output.Breakdown)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <gross>",
		Short: "Save a gross monthly salary as the current income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := tax.ParseGrossPay(args[0])
			if err != nil {
				return err
			}

			calculator, err := opts.calculator()
			if err != nil {
				return err
			}

			s, err := opts.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			uc := income.NewSaveIncomeUseCase(s.Store, calculator)
			output, err := uc.Execute(cmd.Context(), income.SaveIncomeInput{GrossPay: gross})
			if err != nil {
				return err
			}
			return printBreakdown(cmd, output.Breakdown)
		},
	})

	return cmd
}
