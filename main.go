// Package main is the entry point for clinicctl CLI
package main

import (
	"errors"
	"os"

	"github.com/clinicdesk/clinicctl/cmd"
	"github.com/clinicdesk/clinicctl/internal/output"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			os.Exit(cliErr.ExitCode)
		}
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(output.ExitGeneral)
	}
}
