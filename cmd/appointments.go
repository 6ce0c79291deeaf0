package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/output"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appointment", "appt"},
	Short:   "Manage appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List appointments",
	Long: `List appointments, optionally filtered.

Examples:
  clinicctl appointments list --date 2026-08-31
  clinicctl appointments list --staff st-1 --status waiting
  clinicctl appointments list --details`,
	RunE: runAppointmentsList,
}

var appointmentsGetCmd = &cobra.Command{
	Use:   "get <appointment-id>",
	Short: "Show one appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  runAppointmentsGet,
}

var appointmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book an appointment",
	Long: `Book an appointment. Without --staff it enters the waiting queue.

Examples:
  clinicctl appointments create --customer "Ana Reyes" --service sv-1 --date 2026-08-31
  clinicctl appointments create --customer "Ana Reyes" --service sv-1 --date 2026-08-31 --staff st-2 --time 14:30`,
	RunE: runAppointmentsCreate,
}

var appointmentsUpdateCmd = &cobra.Command{
	Use:   "update <appointment-id>",
	Short: "Update an appointment",
	RunE:  runAppointmentsUpdate,
	Args:  cobra.ExactArgs(1),
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <appointment-id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE("cancel"),
}

var appointmentsCompleteCmd = &cobra.Command{
	Use:   "complete <appointment-id>",
	Short: "Mark an appointment completed",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE("complete"),
}

var appointmentsNoShowCmd = &cobra.Command{
	Use:   "no-show <appointment-id>",
	Short: "Mark an appointment as a no-show",
	Args:  cobra.ExactArgs(1),
	RunE:  transitionRunE("no-show"),
}

var appointmentsAvailableStaffCmd = &cobra.Command{
	Use:   "available-staff <service-id>",
	Short: "List staff able to take a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runAvailableStaff,
}

func init() {
	rootCmd.AddCommand(appointmentsCmd)
	appointmentsCmd.AddCommand(
		appointmentsListCmd,
		appointmentsGetCmd,
		appointmentsCreateCmd,
		appointmentsUpdateCmd,
		appointmentsCancelCmd,
		appointmentsCompleteCmd,
		appointmentsNoShowCmd,
		appointmentsAvailableStaffCmd,
	)

	appointmentsListCmd.Flags().Bool("json", false, "output as JSON")
	appointmentsListCmd.Flags().Bool("details", false, "include service and staff details")
	appointmentsListCmd.Flags().String("date", "", "filter by date (YYYY-MM-DD)")
	appointmentsListCmd.Flags().String("staff", "", "filter by staff id")
	appointmentsListCmd.Flags().String("status", "", "filter by status")

	appointmentsGetCmd.Flags().Bool("json", false, "output as JSON")
	appointmentsGetCmd.Flags().Bool("details", false, "include service and staff details")

	appointmentsCreateCmd.Flags().String("customer", "", "customer name")
	appointmentsCreateCmd.Flags().String("phone", "", "customer phone")
	appointmentsCreateCmd.Flags().String("service", "", "service id")
	appointmentsCreateCmd.Flags().String("staff", "", "staff id (omit to join the waiting queue)")
	appointmentsCreateCmd.Flags().String("date", "", "date (YYYY-MM-DD)")
	appointmentsCreateCmd.Flags().String("time", "", "start time (HH:MM)")
	appointmentsCreateCmd.Flags().String("notes", "", "notes")
	_ = appointmentsCreateCmd.MarkFlagRequired("customer")
	_ = appointmentsCreateCmd.MarkFlagRequired("service")
	_ = appointmentsCreateCmd.MarkFlagRequired("date")

	appointmentsUpdateCmd.Flags().String("customer", "", "customer name")
	appointmentsUpdateCmd.Flags().String("phone", "", "customer phone")
	appointmentsUpdateCmd.Flags().String("service", "", "service id")
	appointmentsUpdateCmd.Flags().String("staff", "", "staff id")
	appointmentsUpdateCmd.Flags().String("date", "", "date (YYYY-MM-DD)")
	appointmentsUpdateCmd.Flags().String("time", "", "start time (HH:MM)")
	appointmentsUpdateCmd.Flags().String("notes", "", "notes")

	appointmentsAvailableStaffCmd.Flags().Bool("json", false, "output as JSON")
	appointmentsAvailableStaffCmd.Flags().String("date", "", "date (YYYY-MM-DD)")
}

func runAppointmentsList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	details, _ := cmd.Flags().GetBool("details")
	printer := newPrinter()

	if details {
		items, err := app.Resources.ListAppointmentsWithDetails(cmd.Context())
		if err != nil {
			return cliErr(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), items)
		}

		table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"", "ID", "CUSTOMER", "SERVICE", "STAFF", "DATE", "STATUS"})
		for _, a := range items {
			serviceName, staffName := "", "-"
			if a.Service != nil {
				serviceName = a.Service.Name
			}
			if a.Staff != nil {
				staffName = a.Staff.Name
			}
			table.AddRow([]string{
				printer.StatusBadge(a.Status),
				a.ID, a.CustomerName, serviceName, staffName, a.Date, a.Status,
			})
		}
		table.Render()
		return nil
	}

	date, _ := cmd.Flags().GetString("date")
	staffID, _ := cmd.Flags().GetString("staff")
	status, _ := cmd.Flags().GetString("status")

	items, err := app.Resources.ListAppointments(cmd.Context(), gateway.AppointmentFilter{
		Date:    date,
		StaffID: staffID,
		Status:  status,
	})
	if err != nil {
		return cliErr(err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"", "ID", "CUSTOMER", "SERVICE", "STAFF", "DATE", "STATUS"})
	for _, a := range items {
		staffCell := a.StaffID
		if staffCell == "" {
			staffCell = "-"
		}
		table.AddRow([]string{
			printer.StatusBadge(a.Status),
			a.ID, a.CustomerName, a.ServiceID, staffCell, a.Date, a.Status,
		})
	}
	table.Render()
	return nil
}

func runAppointmentsGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	details, _ := cmd.Flags().GetBool("details")

	if details {
		item, err := app.Resources.GetAppointmentDetails(cmd.Context(), args[0])
		if err != nil {
			return cliErr(err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printAppointment(cmd, &item.Appointment)
		w := cmd.OutOrStdout()
		if item.Service != nil {
			fmt.Fprintf(w, "service:  %s (%dm)\n", item.Service.Name, item.Service.DurationMinutes)
		}
		if item.Staff != nil {
			fmt.Fprintf(w, "staff:    %s\n", item.Staff.Name)
		}
		return nil
	}

	item, err := app.Resources.GetAppointment(cmd.Context(), args[0])
	if err != nil {
		return cliErr(err)
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), item)
	}
	printAppointment(cmd, item)
	return nil
}

func printAppointment(cmd *cobra.Command, a *domain.Appointment) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:       %s\n", a.ID)
	fmt.Fprintf(w, "customer: %s\n", a.CustomerName)
	fmt.Fprintf(w, "date:     %s", a.Date)
	if a.StartTime != "" {
		fmt.Fprintf(w, " %s", a.StartTime)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "status:   %s\n", a.Status)
	if a.Notes != "" {
		fmt.Fprintf(w, "notes:    %s\n", a.Notes)
	}
}

func runAppointmentsCreate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	customer, _ := cmd.Flags().GetString("customer")
	phone, _ := cmd.Flags().GetString("phone")
	service, _ := cmd.Flags().GetString("service")
	staffID, _ := cmd.Flags().GetString("staff")
	date, _ := cmd.Flags().GetString("date")
	startTime, _ := cmd.Flags().GetString("time")
	notes, _ := cmd.Flags().GetString("notes")

	created, err := app.Resources.CreateAppointment(cmd.Context(), domain.CreateAppointmentPayload{
		CustomerName:  customer,
		CustomerPhone: phone,
		ServiceID:     service,
		StaffID:       staffID,
		Date:          date,
		StartTime:     startTime,
		Notes:         notes,
	})
	if err != nil {
		return cliErr(err)
	}

	printer := newPrinter()
	if created.Status == domain.StatusWaiting {
		printer.Success("appointment %s created, waiting for assignment", created.ID)
	} else {
		printer.Success("appointment %s created", created.ID)
	}
	printer.PrintHints("appointments create")
	return nil
}

func runAppointmentsUpdate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	var p domain.UpdateAppointmentPayload
	setString := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
		}
	}
	setString("customer", &p.CustomerName)
	setString("phone", &p.CustomerPhone)
	setString("service", &p.ServiceID)
	setString("staff", &p.StaffID)
	setString("date", &p.Date)
	setString("time", &p.StartTime)
	setString("notes", &p.Notes)

	updated, err := app.Resources.UpdateAppointment(cmd.Context(), args[0], p)
	if err != nil {
		return cliErr(err)
	}

	newPrinter().Success("appointment %s updated", updated.ID)
	return nil
}

// transitionRunE builds the handler for the cancel/complete/no-show
// status transitions, which differ only in the mutation they issue.
func transitionRunE(action string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireSession(cmd.Context()); err != nil {
			return cliErr(err)
		}

		var (
			updated *domain.Appointment
			err     error
		)
		switch action {
		case "cancel":
			updated, err = app.Resources.CancelAppointment(cmd.Context(), args[0])
		case "complete":
			updated, err = app.Resources.CompleteAppointment(cmd.Context(), args[0])
		case "no-show":
			updated, err = app.Resources.NoShowAppointment(cmd.Context(), args[0])
		}
		if err != nil {
			return cliErr(err)
		}

		printer := newPrinter()
		printer.Success("appointment %s is now %s", updated.ID, updated.Status)
		printer.PrintHints("appointments " + action)
		return nil
	}
}

func runAvailableStaff(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	date, _ := cmd.Flags().GetString("date")
	items, err := app.Resources.AvailableStaff(cmd.Context(), args[0], date)
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "NAME", "SPECIALTY"})
	for _, s := range items {
		table.AddRow([]string{s.ID, s.Name, s.Specialty})
	}
	table.Render()
	return nil
}
