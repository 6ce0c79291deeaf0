// Package cmd contains all CLI commands for clinicctl
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clinicdesk/clinicctl/internal/adapter/gateway"
	"github.com/clinicdesk/clinicctl/internal/config"
	"github.com/clinicdesk/clinicctl/internal/domain"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/cache"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/credstore"
	"github.com/clinicdesk/clinicctl/internal/infrastructure/session"
	"github.com/clinicdesk/clinicctl/internal/output"
	"github.com/clinicdesk/clinicctl/internal/usecase"
)

var (
	cfgFile    string
	serverURL  string
	reqTimeout time.Duration
	verbose    bool
	cfg        *config.Config
	logger     *slog.Logger
	app        *appContext
	version    = "dev"
)

// appContext wires the gateway, cache, stores, and use cases once per
// invocation. Commands reach everything through it.
type appContext struct {
	Creds     *credstore.FileStore
	Sessions  *session.Store
	Gateway   *gateway.Client
	Cache     *cache.QueryCache
	Resources *usecase.Resources
	Auth      *usecase.Auth
	Bootstrap *usecase.BootstrapSession
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clinicctl",
	Short: "Clinic appointment and queue management CLI",
	Long: `clinicctl manages a clinic's services, staff, appointments, and
waiting queue against the clinic API.

Reads go through a tag-indexed cache so repeated fetches in one
invocation hit the network once; writes invalidate the partitions they
touch. Protected commands verify the stored session before running.

Example usage:
  clinicctl login                       # Establish a session
  clinicctl appointments list --date 2026-08-31
  clinicctl queue assign <staff-id>     # Assign earliest from queue
  clinicctl dashboard summary --range week`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .clinicctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "clinic API base URL")
	rootCmd.PersistentFlags().DurationVar(&reqTimeout, "timeout", 0, "request timeout (overrides server.timeout)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
}

// initApp reads configuration and wires the application graph.
func initApp() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if serverURL != "" {
		cfg.Server.URL = serverURL
	}
	if reqTimeout > 0 {
		cfg.Server.Timeout = reqTimeout
	}

	var logLevel slog.Level
	switch cfg.Logging.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	}

	credDir := cfg.Credentials.Dir
	if credDir == "" {
		credDir, err = credstore.DefaultDir()
		if err != nil {
			return fmt.Errorf("locating credential dir: %w", err)
		}
	}

	app = buildApp(cfg, credDir, logger)

	logger.Debug("configuration loaded",
		"server_url", cfg.Server.URL,
		"cache_ttl", cfg.Cache.TTL,
		"credential_dir", credDir,
	)

	return nil
}

// buildApp constructs the wiring for one invocation.
func buildApp(cfg *config.Config, credDir string, logger *slog.Logger) *appContext {
	creds := credstore.NewFileStore(credDir)
	sessions := session.NewStore()
	gw := gateway.NewClient(cfg.Server.URL, cfg.Server.Timeout, creds, logger)
	qc := cache.New(cfg.Cache.TTL, logger)
	resources := usecase.NewResources(gw, qc)
	auth := usecase.NewAuth(gw, creds, sessions, qc, logger)
	gw.SetAuthRejectHook(auth.HandleAuthReject)
	bootstrap := usecase.NewBootstrapSession(creds, sessions, gw, logger)

	return &appContext{
		Creds:     creds,
		Sessions:  sessions,
		Gateway:   gw,
		Cache:     qc,
		Resources: resources,
		Auth:      auth,
		Bootstrap: bootstrap,
	}
}

// requireSession runs the bootstrap sequence and fails with a login
// suggestion when no session survives it.
func requireSession(ctx context.Context) error {
	snap, err := app.Bootstrap.Execute(ctx)
	if err != nil {
		return err
	}
	if !snap.Authenticated() {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// cliErr formats an error for the terminal and carries its exit code
// out to main.
func cliErr(err error) error {
	if err == nil {
		return nil
	}
	e := output.FromError(err)
	newPrinter().FormatError(e)
	return e
}

func newPrinter() *output.Printer {
	colors := true
	if cfg != nil {
		colors = cfg.Output.Colors
	}
	return output.NewPrinter(colors)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
