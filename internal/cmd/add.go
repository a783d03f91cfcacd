package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/modules"
	"github.com/modctx/cli/internal/output"
)

// addOptions holds the flags for the add command.
type addOptions struct {
	root      string
	name      string
	version   string
	condition string
}

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	opts := &addOptions{}

	c := &cobra.Command{
		Use:   "add <root> <module>",
		Short: "Resolve a module from the registry into a context",
		Long: `Resolve a module against the registry, install it together with its
declared dependencies into the context's isolated Modules directory, and
refresh the context manifest to include them.

The requested condition applies to the module itself; dependencies are
always pinned to their declared versions.

Examples:
  # Add the latest Pester to ./dev-ctx
  modctx add ./dev-ctx Pester

  # Pin an exact version
  modctx add ./dev-ctx Pester --version 5.3.0

  # Treat the version as a floor instead of a pin
  modctx add ./dev-ctx Pester --version 5.0.0 --condition MinimumVersion`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			opts.root = args[0]
			opts.name = args[1]
			return runAdd(c, opts)
		},
	}

	c.Flags().StringVar(&opts.version, "version", "", "Module version to resolve (default: latest)")
	c.Flags().StringVar(&opts.condition, "condition", "", "Version condition: RequiredVersion, MinimumVersion or MaximumVersion")

	return c
}

func runAdd(c *cobra.Command, opts *addOptions) error {
	cond, err := manifest.ParseCondition(opts.condition)
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(opts.root)
	if err != nil {
		return err
	}

	gallery := newGallery()
	installer := modules.NewInstaller(gallery)

	err = output.RunWithSpinner(c.Context(), func() error {
		return installer.InstallWithDependencies(c.Context(), modules.InstallSpec{
			Name:      opts.name,
			Version:   opts.version,
			Condition: cond,
			Root:      absRoot,
		})
	}, output.WithTitle(fmt.Sprintf("Installing %s...", opts.name)))
	if err != nil {
		return err
	}

	// The manifest tracks what is materialized; re-snapshot so the new
	// module and its dependencies land in it.
	m, err := newSnapshotter(gallery).Snapshot(c.Context(), absRoot)
	if err != nil {
		return err
	}

	styles := output.GetStyles()
	output.Println(fmt.Sprintf("Added %s to context %s (version %s, %d modules)",
		styles.Name.Render(opts.name), styles.Name.Render(m.Name), m.Version, len(m.Modules)))

	return nil
}
