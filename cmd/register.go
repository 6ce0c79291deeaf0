package cmd

import (
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account. The server emails a one-time code;
confirm it with 'clinicctl verify-otp'.

Examples:
  clinicctl register --name "Front Desk" --email reception@clinic.test --password s3cretpass`,
	RunE: runRegister,
}

var verifyOTPCmd = &cobra.Command{
	Use:   "verify-otp <email> <otp>",
	Short: "Confirm the registration code and establish a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runVerifyOTP,
}

var resendOTPCmd = &cobra.Command{
	Use:   "resend-otp <email>",
	Short: "Request a fresh registration code",
	Args:  cobra.ExactArgs(1),
	RunE:  runResendOTP,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyOTPCmd)
	rootCmd.AddCommand(resendOTPCmd)

	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	sentTo, err := app.Auth.Register(cmd.Context(), domain.RegisterPayload{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return cliErr(err)
	}

	printer := newPrinter()
	printer.Success("registration started, code sent to %s", sentTo)
	printer.PrintHints("register")
	return nil
}

func runVerifyOTP(cmd *cobra.Command, args []string) error {
	snap, err := app.Auth.VerifyOTP(cmd.Context(), domain.VerifyOTPPayload{
		Email: args[0],
		OTP:   args[1],
	})
	if err != nil {
		return cliErr(err)
	}

	printer := newPrinter()
	printer.Success("account verified, logged in as %s", snap.User.Email)
	printer.PrintHints("verify-otp")
	return nil
}

func runResendOTP(cmd *cobra.Command, args []string) error {
	if err := app.Auth.ResendOTP(cmd.Context(), args[0]); err != nil {
		return cliErr(err)
	}

	newPrinter().Success("code resent to %s", args[0])
	return nil
}
