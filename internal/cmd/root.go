// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/config"
	"github.com/modctx/cli/internal/contexts"
	"github.com/modctx/cli/internal/modules"
	"github.com/modctx/cli/internal/output"
	"github.com/modctx/cli/internal/registry"
	"github.com/modctx/cli/internal/session"
	"github.com/modctx/cli/internal/version"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	cfg *config.Config
)

// NewRootCmd creates the root command for the modctx CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modctx",
		Short: "Reproducible module contexts for runtime sessions",
		Long: `modctx manages reproducible module contexts.

It snapshots the set of installed runtime modules into a versioned
manifest, and later restores that exact module set into an isolated
per-context directory so a session starts with a pinned environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: MODCTX_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewNewCmd())
	rootCmd.AddCommand(NewUseCmd())
	rootCmd.AddCommand(NewAddCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	logCfg := output.LogConfig{Verbose: verboseFlag}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	}
	output.SetupLogging(logCfg)

	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	cfg = loaded

	info := version.GetInfo()
	output.Debug("modctx started", "version", info.Version)

	return nil
}

// runtimeShell resolves the runtime binary from config or detection.
func runtimeShell() string {
	if cfg != nil && cfg.Runtime.Shell != "" {
		return cfg.Runtime.Shell
	}

	rt := version.DetectRuntimeBinary("")
	if rt.Found {
		return rt.Path
	}

	// Let exec fail with a useful message later.
	return "pwsh"
}

// newGallery builds the registry client from the loaded config.
func newGallery() *registry.Gallery {
	return registry.NewGallery(runtimeShell(), cfg.Registry)
}

// newSnapshotter builds the context snapshotter from the loaded config.
func newSnapshotter(gallery *registry.Gallery) *contexts.Snapshotter {
	return contexts.NewSnapshotter(gallery, cfg)
}

// newActivator builds the context activator from the loaded config.
func newActivator(gallery *registry.Gallery) *contexts.Activator {
	return contexts.NewActivator(
		modules.NewInstaller(gallery),
		newSnapshotter(gallery),
		session.NewRuntimeLauncher(cfg.Runtime.Shell),
	)
}
