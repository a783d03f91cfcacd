package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/output"
)

// NewNewCmd creates the new command.
func NewNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <root>",
		Short: "Snapshot the current module set into a context",
		Long: `Snapshot the currently loaded modules, plus any modules already
materialized under <root>/Modules, into a versioned context manifest at
<root>/Context/Context_<name>.json.

Duplicate module names are merged keeping the highest version. Re-running
against an unchanged module set produces the same module list; only the
manifest version advances.

Examples:
  # Snapshot into ./dev-ctx
  modctx new ./dev-ctx

  # Snapshot an absolute context root
  modctx new /srv/contexts/build`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runNew(c, args[0])
		},
	}
}

func runNew(c *cobra.Command, root string) error {
	gallery := newGallery()
	snapshotter := newSnapshotter(gallery)

	m, err := snapshotter.Snapshot(c.Context(), root)
	if err != nil {
		return err
	}

	styles := output.GetStyles()
	output.Println(fmt.Sprintf("Created context %s (version %s, %d modules)",
		styles.Name.Render(m.Name), m.Version, len(m.Modules)))

	return nil
}
