package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Run the session bootstrap sequence and report its outcome:
the stored identity reconciled against the server, or "no session".`,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	snap, err := app.Bootstrap.Execute(cmd.Context())
	if err != nil {
		return cliErr(err)
	}
	if !snap.Authenticated() {
		return cliErr(domain.ErrNotAuthenticated)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), snap.User)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "id:       %s\n", snap.User.ID)
	if snap.User.Name != "" {
		fmt.Fprintf(w, "name:     %s\n", snap.User.Name)
	}
	fmt.Fprintf(w, "email:    %s\n", snap.User.Email)
	fmt.Fprintf(w, "verified: %t\n", snap.User.IsVerified)
	return nil
}
