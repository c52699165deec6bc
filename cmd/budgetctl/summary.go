package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/budget-ledger/backend/internal/application/usecase/dashboard"
	"github.com/budget-ledger/backend/internal/domain/valueobject"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle = map[valueobject.BudgetStatus]lipgloss.Style{
		valueobject.BudgetStatusOnTrack:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		valueobject.BudgetStatusNearLimit:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		valueobject.BudgetStatusOverBudget: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

func renderStatus(status valueobject.BudgetStatus) string {
	if style, ok := statusStyle[status]; ok {
		return style.Render(string(status))
	}
	return string(status)
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print budget totals and per-category status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			uc := dashboard.NewGetSummaryUseCase(s.Store, dashboard.StoredCategories(s.Store))
			output, err := uc.Execute(cmd.Context(), dashboard.GetSummaryInput{})
			if err != nil {
				return err
			}

			summary := output.Summary
			out := cmd.OutOrStdout()
			if summary.HasIncome {
				fmt.Fprintf(out, "Net pay:          %s\n", summary.NetPay.StringFixed(2))
			} else {
				fmt.Fprintln(out, "Net pay:          (no income saved)")
			}
			fmt.Fprintf(out, "Allocated:        %s\n", summary.TotalAllocated.StringFixed(2))
			fmt.Fprintf(out, "Spent:            %s\n", summary.TotalSpent.StringFixed(2))
			fmt.Fprintf(out, "Remaining budget: %s\n", summary.RemainingBudget.StringFixed(2))
			fmt.Fprintf(out, "Over budget:      %d\n", summary.OverBudgetCount)
			fmt.Fprintf(out, "Near limit:       %d\n", summary.NearLimitCount)

			if len(summary.Categories) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("CATEGORY"),
				headerStyle.Render("PLANNED"),
				headerStyle.Render("SPENT"),
				headerStyle.Render("REMAINING"),
				headerStyle.Render("EXPENSES"),
				headerStyle.Render("STATUS"),
			)
			for _, c := range summary.Categories {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					c.Name,
					c.PlannedAmount.StringFixed(2),
					c.ActualSpent.StringFixed(2),
					c.Remaining.StringFixed(2),
					c.ExpenseCount,
					renderStatus(c.Status),
				)
			}
			return w.Flush()
		},
	}
}
