package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/output"
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Work with the waiting queue",
}

var queueWaitingCmd = &cobra.Command{
	Use:   "waiting",
	Short: "List the waiting queue in server order",
	RunE:  runQueueWaiting,
}

var queueAssignCmd = &cobra.Command{
	Use:   "assign <staff-id>",
	Short: "Assign the earliest waiting appointment to a staff member",
	Long: `Assign the earliest appointment from the waiting queue to a staff
member. Which appointment is earliest is the server's decision.

Examples:
  clinicctl queue assign st-2`,
	Args: cobra.ExactArgs(1),
	RunE: runQueueAssign,
}

func init() {
	rootCmd.AddCommand(queueCmd)
	queueCmd.AddCommand(queueWaitingCmd, queueAssignCmd)

	queueWaitingCmd.Flags().Bool("json", false, "output as JSON")
}

func runQueueWaiting(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	items, err := app.Resources.WaitingQueue(cmd.Context())
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"POS", "ID", "CUSTOMER", "SERVICE", "DATE"})
	for _, a := range items {
		table.AddRow([]string{
			strconv.Itoa(a.QueuePosition),
			a.ID,
			a.CustomerName,
			a.ServiceID,
			a.Date,
		})
	}
	table.Render()

	newPrinter().PrintHints("queue waiting")
	return nil
}

func runQueueAssign(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	assigned, err := app.Resources.AssignFromQueue(cmd.Context(), domain.AssignQueuePayload{
		StaffID: args[0],
	})
	if err != nil {
		return cliErr(err)
	}

	printer := newPrinter()
	printer.Success("appointment %s (%s) assigned to %s", assigned.ID, assigned.CustomerName, args[0])
	printer.PrintHints("queue assign")
	return nil
}
