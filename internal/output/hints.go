package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":                {"whoami", "dashboard summary"},
	"register":             {"verify-otp <email> <otp>"},
	"verify-otp":           {"whoami"},
	"logout":               {"login"},
	"whoami":               {"logout"},
	"services list":        {"services create", "appointments create"},
	"staff list":           {"staff load", "queue assign <staff-id>"},
	"staff load":           {"queue waiting", "queue assign <staff-id>"},
	"appointments create":  {"appointments list", "queue waiting"},
	"appointments cancel":  {"appointments list"},
	"queue waiting":        {"queue assign <staff-id>", "staff load"},
	"queue assign":         {"queue waiting", "appointments list"},
	"dashboard summary":    {"dashboard staff-load", "dashboard activity"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "clinicctl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
