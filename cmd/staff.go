package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/output"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff members",
}

var staffListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all staff members",
	RunE:    runStaffList,
}

var staffGetCmd = &cobra.Command{
	Use:   "get <staff-id>",
	Short: "Show one staff member",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffGet,
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff member",
	Long: `Create a staff member.

Examples:
  clinicctl staff create --name "Dana" --email dana@clinic.test --capacity 3`,
	RunE: runStaffCreate,
}

var staffUpdateCmd = &cobra.Command{
	Use:   "update <staff-id>",
	Short: "Update a staff member",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffUpdate,
}

var staffDeleteCmd = &cobra.Command{
	Use:     "delete <staff-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a staff member",
	Args:    cobra.ExactArgs(1),
	RunE:    runStaffDelete,
}

var staffLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Show staff with current load and capacity",
	Long: `Show staff annotated with their server-computed appointment load
for a date (default: today, server-side).`,
	RunE: runStaffLoad,
}

func init() {
	rootCmd.AddCommand(staffCmd)
	staffCmd.AddCommand(staffListCmd, staffGetCmd, staffCreateCmd, staffUpdateCmd, staffDeleteCmd, staffLoadCmd)

	staffListCmd.Flags().Bool("json", false, "output as JSON")
	staffGetCmd.Flags().Bool("json", false, "output as JSON")
	staffLoadCmd.Flags().Bool("json", false, "output as JSON")
	staffLoadCmd.Flags().String("date", "", "date (YYYY-MM-DD)")

	staffCreateCmd.Flags().String("name", "", "staff name")
	staffCreateCmd.Flags().String("email", "", "staff email")
	staffCreateCmd.Flags().String("specialty", "", "specialty")
	staffCreateCmd.Flags().Int("capacity", 1, "max concurrent appointments")
	_ = staffCreateCmd.MarkFlagRequired("name")

	staffUpdateCmd.Flags().String("name", "", "staff name")
	staffUpdateCmd.Flags().String("email", "", "staff email")
	staffUpdateCmd.Flags().String("specialty", "", "specialty")
	staffUpdateCmd.Flags().Int("capacity", 0, "max concurrent appointments")
	staffUpdateCmd.Flags().String("active", "", "active flag (true|false)")
}

func runStaffList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	items, err := app.Resources.ListStaff(cmd.Context())
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "NAME", "SPECIALTY", "CAPACITY", "ACTIVE"})
	for _, s := range items {
		table.AddRow([]string{
			s.ID,
			s.Name,
			s.Specialty,
			strconv.Itoa(s.MaxCapacity),
			strconv.FormatBool(s.IsActive),
		})
	}
	table.Render()

	newPrinter().PrintHints("staff list")
	return nil
}

func runStaffGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	item, err := app.Resources.GetStaff(cmd.Context(), args[0])
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), item)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:        %s\n", item.ID)
	fmt.Fprintf(w, "name:      %s\n", item.Name)
	if item.Email != "" {
		fmt.Fprintf(w, "email:     %s\n", item.Email)
	}
	if item.Specialty != "" {
		fmt.Fprintf(w, "specialty: %s\n", item.Specialty)
	}
	fmt.Fprintf(w, "capacity:  %d\n", item.MaxCapacity)
	fmt.Fprintf(w, "active:    %t\n", item.IsActive)
	return nil
}

func runStaffCreate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	specialty, _ := cmd.Flags().GetString("specialty")
	capacity, _ := cmd.Flags().GetInt("capacity")

	created, err := app.Resources.CreateStaff(cmd.Context(), domain.CreateStaffPayload{
		Name:        name,
		Email:       email,
		Specialty:   specialty,
		MaxCapacity: capacity,
	})
	if err != nil {
		return cliErr(err)
	}

	newPrinter().Success("staff %s created (%s)", created.Name, created.ID)
	return nil
}

func runStaffUpdate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	var p domain.UpdateStaffPayload
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		p.Name = &name
	}
	if cmd.Flags().Changed("email") {
		email, _ := cmd.Flags().GetString("email")
		p.Email = &email
	}
	if cmd.Flags().Changed("specialty") {
		specialty, _ := cmd.Flags().GetString("specialty")
		p.Specialty = &specialty
	}
	if cmd.Flags().Changed("capacity") {
		capacity, _ := cmd.Flags().GetInt("capacity")
		p.MaxCapacity = &capacity
	}
	if cmd.Flags().Changed("active") {
		raw, _ := cmd.Flags().GetString("active")
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return cliErr(fmt.Errorf("%w: --active must be true or false", domain.ErrValidation))
		}
		p.IsActive = &active
	}

	updated, err := app.Resources.UpdateStaff(cmd.Context(), args[0], p)
	if err != nil {
		return cliErr(err)
	}

	newPrinter().Success("staff %s updated", updated.ID)
	return nil
}

func runStaffDelete(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	if err := app.Resources.DeleteStaff(cmd.Context(), args[0]); err != nil {
		return cliErr(err)
	}

	newPrinter().Success("staff %s deleted", args[0])
	return nil
}

func runStaffLoad(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	date, _ := cmd.Flags().GetString("date")
	items, err := app.Resources.StaffLoad(cmd.Context(), date)
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "NAME", "LOAD", "CAPACITY", "AT CAPACITY"})
	for _, s := range items {
		table.AddRow([]string{
			s.ID,
			s.Name,
			strconv.Itoa(s.CurrentLoad),
			strconv.Itoa(s.MaxCapacity),
			strconv.FormatBool(s.IsAtCapacity),
		})
	}
	table.Render()

	newPrinter().PrintHints("staff load")
	return nil
}
