package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/budget-ledger/backend/internal/application/usecase/income"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/tax"
)

func netPayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "netpay <gross>",
		Short: "Compute the statutory deductions and net pay for a gross monthly salary",
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

			uc := income.NewComputeNetPayUseCase(calculator)
			output, err := uc.Execute(cmd.Context(), income.ComputeNetPayInput{GrossPay: gross})
			if err != nil {
				return err
			}

			return printBreakdown(cmd, output.Breakdown)
		},
	}
}

func printBreakdown(cmd *cobra.Command, b entity.PayBreakdown) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		value string
	}{
		{"Gross pay", b.GrossPay.StringFixed(2)},
		{"SHA", b.SHA.StringFixed(2)},
		{"PAYE", b.PAYEE.StringFixed(2)},
		{"Housing levy", b.HousingLevy.StringFixed(2)},
		{"Total deductions", b.TotalDeductions.StringFixed(2)},
		{"Net pay", b.NetPay.StringFixed(2)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t\n", row.label, row.value)
	}
	return w.Flush()
}
