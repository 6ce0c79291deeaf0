package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the clinic API",
	Long: `Authenticate with email and password and persist the session.

The password is read from --password or, when omitted, from stdin.

Examples:
  clinicctl login --email reception@clinic.test --password s3cret
  echo "$PASSWORD" | clinicctl login --email reception@clinic.test`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (omit to read from stdin)")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if password == "" {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return cliErr(fmt.Errorf("%w: no password provided", domain.ErrValidation))
		}
		password = strings.TrimSpace(line)
	}

	snap, err := app.Auth.Login(cmd.Context(), domain.LoginPayload{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return cliErr(err)
	}

	printer := newPrinter()
	printer.Success("logged in as %s", snap.User.Email)
	printer.PrintHints("login")
	return nil
}
