package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/niels/staticserve/pkg/config"
	"github.com/niels/staticserve/pkg/logging"
	"github.com/niels/staticserve/pkg/server"
	"github.com/niels/staticserve/pkg/version"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	listenAddr  string
	suffix      string
	debug       bool
	showVersion bool
	cfg         *config.Config
)

// NewRootCmd creates the root command for staticserve
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.AppName + " [flags] <root-directory>",
		Short: version.Description,
		Long: fmt.Sprintf(`%s - %s

Serves .html files from a root directory over plain TCP, one GET request
per connection. The root directory is the only thing the server will ever
read from; anything resolving outside it is answered as 404.
`, version.AppName, version.Description),
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration
			if configPath != "" {
				cfg = config.LoadOrDefault(configPath)
			} else {
				cfg = config.LoadDefault()
			}

			logging.InitGlobalLogger(debug, cfg)
			logging.Info("Initializing staticserve")

			if debug {
				logging.Debug("Debug logging enabled")
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
				return nil
			}

			// Flags and the positional root argument override file values
			if len(args) > 0 {
				cfg.Server.Root = args[0]
			}
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listenAddr
			}
			if cmd.Flags().Changed("suffix") {
				cfg.Server.Suffix = suffix
			}

			if err := cfg.Validate(); err != nil {
				logging.Error("Invalid configuration: " + err.Error())
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := logging.WithComponent("server")
			srv := server.New(cfg, logger)

			fmt.Fprintf(cmd.OutOrStdout(), "%s serving %s on http://%s\n",
				version.AppName,
				color.GreenString(cfg.Server.Root),
				color.GreenString(cfg.Server.Listen))

			if err := srv.ListenAndServe(); err != nil {
				logging.Error("Server failed: " + err.Error())
				return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Listen, err)
			}
			return nil
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().StringVarP(&listenAddr, "listen", "l", "localhost:8080", "Bind address (host:port)")
	rootCmd.Flags().StringVarP(&suffix, "suffix", "s", ".html", "Suffix appended to non-root request paths")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug mode")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
