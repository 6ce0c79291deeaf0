package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/output"
)

var servicesCmd = &cobra.Command{
	Use:     "services",
	Aliases: []string{"service", "svc"},
	Short:   "Manage bookable services",
}

var servicesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all services",
	RunE:    runServicesList,
}

var servicesGetCmd = &cobra.Command{
	Use:   "get <service-id>",
	Short: "Show one service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesGet,
}

var servicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a service",
	Long: `Create a bookable service.

Examples:
  clinicctl services create --name "Haircut" --duration 30 --price 25`,
	RunE: runServicesCreate,
}

var servicesUpdateCmd = &cobra.Command{
	Use:   "update <service-id>",
	Short: "Update a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesUpdate,
}

var servicesDeleteCmd = &cobra.Command{
	Use:     "delete <service-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a service",
	Args:    cobra.ExactArgs(1),
	RunE:    runServicesDelete,
}

func init() {
	rootCmd.AddCommand(servicesCmd)
	servicesCmd.AddCommand(servicesListCmd, servicesGetCmd, servicesCreateCmd, servicesUpdateCmd, servicesDeleteCmd)

	servicesListCmd.Flags().Bool("json", false, "output as JSON")
	servicesGetCmd.Flags().Bool("json", false, "output as JSON")

	servicesCreateCmd.Flags().String("name", "", "service name")
	servicesCreateCmd.Flags().String("description", "", "service description")
	servicesCreateCmd.Flags().Int("duration", 0, "duration in minutes")
	servicesCreateCmd.Flags().Float64("price", 0, "price")
	_ = servicesCreateCmd.MarkFlagRequired("name")
	_ = servicesCreateCmd.MarkFlagRequired("duration")

	servicesUpdateCmd.Flags().String("name", "", "service name")
	servicesUpdateCmd.Flags().String("description", "", "service description")
	servicesUpdateCmd.Flags().Int("duration", 0, "duration in minutes")
	servicesUpdateCmd.Flags().Float64("price", -1, "price")
	servicesUpdateCmd.Flags().String("active", "", "active flag (true|false)")
}

func runServicesList(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	items, err := app.Resources.ListServices(cmd.Context())
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), items)
	}

	table := output.NewTableWithWriter(cmd.OutOrStdout(), []string{"ID", "NAME", "DURATION", "PRICE", "ACTIVE"})
	for _, s := range items {
		table.AddRow([]string{
			s.ID,
			s.Name,
			fmt.Sprintf("%dm", s.DurationMinutes),
			fmt.Sprintf("%.2f", s.Price),
			strconv.FormatBool(s.IsActive),
		})
	}
	table.Render()

	newPrinter().PrintHints("services list")
	return nil
}

func runServicesGet(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	item, err := app.Resources.GetService(cmd.Context(), args[0])
	if err != nil {
		return cliErr(err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), item)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:          %s\n", item.ID)
	fmt.Fprintf(w, "name:        %s\n", item.Name)
	if item.Description != "" {
		fmt.Fprintf(w, "description: %s\n", item.Description)
	}
	fmt.Fprintf(w, "duration:    %dm\n", item.DurationMinutes)
	fmt.Fprintf(w, "price:       %.2f\n", item.Price)
	fmt.Fprintf(w, "active:      %t\n", item.IsActive)
	return nil
}

func runServicesCreate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	duration, _ := cmd.Flags().GetInt("duration")
	price, _ := cmd.Flags().GetFloat64("price")

	created, err := app.Resources.CreateService(cmd.Context(), domain.CreateServicePayload{
		Name:            name,
		Description:     description,
		DurationMinutes: duration,
		Price:           price,
	})
	if err != nil {
		return cliErr(err)
	}

	newPrinter().Success("service %s created (%s)", created.Name, created.ID)
	return nil
}

func runServicesUpdate(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	var p domain.UpdateServicePayload
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		p.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		p.Description = &description
	}
	if cmd.Flags().Changed("duration") {
		duration, _ := cmd.Flags().GetInt("duration")
		p.DurationMinutes = &duration
	}
	if cmd.Flags().Changed("price") {
		price, _ := cmd.Flags().GetFloat64("price")
		p.Price = &price
	}
	if cmd.Flags().Changed("active") {
		raw, _ := cmd.Flags().GetString("active")
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return cliErr(fmt.Errorf("%w: --active must be true or false", domain.ErrValidation))
		}
		p.IsActive = &active
	}

	updated, err := app.Resources.UpdateService(cmd.Context(), args[0], p)
	if err != nil {
		return cliErr(err)
	}

	newPrinter().Success("service %s updated", updated.ID)
	return nil
}

func runServicesDelete(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd.Context()); err != nil {
		return cliErr(err)
	}

	if err := app.Resources.DeleteService(cmd.Context(), args[0]); err != nil {
		return cliErr(err)
	}

	newPrinter().Success("service %s deleted", args[0])
	return nil
}
