package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show aggregate reports",
}

var dashboardSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate appointment counts",
	Long: `Show aggregate appointment counts for a range.

Examples:
  clinicctl dashboard summary
  clinicctl dashboard summary --range week`,
	RunE: runDashboardSummary,
}

var dashboardStaffLoadCmd = &cobra.Command{
	Use:   "staff-load",
	Short: "Show the per-staff load report",
	RunE:  runDashboardStaffLoad,
}

var dashboardActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity logs",
	RunE:  runDashboardActivity,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.AddCommand(dashboardSummaryCmd, dashboardStaffLoadCmd, dashboardActivityCmd)

	for _, c := range []*cobra.Command{dashboardSummaryCmd, dashboardStaffLoadCmd, dashboardActivityCmd} {
		c.Flags().Bool("json", false, "output as JSON")
		c.Flags().String("range", "", "date range (today|week|month)")
	}
	dashboardActivityCmd.Flags().Int("limit", 20, "max entries")
}

func runDashboardSummary(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	rng, _ := cmd.Flags().GetString("range")
	summary, err := app.Resources.DashboardSummary(cmd.Context(), rng)
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), summary)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "total:     %d\n", summary.TotalAppointments)
	fmt.Fprintf(w, "completed: %d\n", summary.Completed)
	fmt.Fprintf(w, "scheduled: %d\n", summary.Scheduled)
	fmt.Fprintf(w, "pending:   %d\n", summary.Pending)
	fmt.Fprintf(w, "waiting:   %d\n", summary.WaitingQueueCount)

	newPrinter().PrintHints("dashboard summary")
	return nil
}

func runDashboardStaffLoad(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	rng, _ := cmd.Flags().GetString("range")
	items, err := app.Resources.DashboardStaffLoad(cmd.Context(), rng)
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "NAME", "ASSIGNED", "COMPLETED", "LOAD"})
	for _, s := range items {
		table.AddRow([]string{
			s.StaffID,
			s.StaffName,
			strconv.Itoa(s.Assigned),
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.CurrentLoad),
		})
	}
	table.Render()
	return nil
}

func runDashboardActivity(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	rng, _ := cmd.Flags().GetString("range")
	limit, _ := cmd.Flags().GetInt("limit")
	items, err := app.Resources.ActivityLogs(cmd.Context(), rng, limit)
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"TIME", "ACTION", "MESSAGE"})
	for _, e := range items {
		table.AddRow([]string{
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Action,
			e.Message,
		})
	}
	table.Render()
	return nil
}
