package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear stored credentials",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	// Local credentials are cleared even when the server call fails.
	if err := app.Auth.Logout(cmd.Context()); err != nil {
		printer.Warning("server logout failed: %v", err)
	}

	printer.Success("logged out")
	printer.PrintHints("logout")
	return nil
}
