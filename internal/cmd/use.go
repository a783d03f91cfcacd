package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/output"
)

// useOptions holds the flags for the use command.
type useOptions struct {
	root     string
	noLaunch bool
}

// NewUseCmd creates the use command.
func NewUseCmd() *cobra.Command {
	opts := &useOptions{}

	c := &cobra.Command{
		Use:   "use <root>",
		Short: "Restore a context and start a pinned session",
		Long: `Install every module listed in the context's manifest into the
context's isolated Modules directory, then start a runtime session with
the context root as working directory and the isolated directory first
on the module search path.

When no manifest exists yet, one is created from the current module set
instead; the next 'use' restores from it.

Examples:
  # Activate a context and start a session
  modctx use ./dev-ctx

  # Restore the module set without starting a session
  modctx use ./dev-ctx --no-launch`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts.root = args[0]
			return runUse(c, opts)
		},
	}

	c.Flags().BoolVar(&opts.noLaunch, "no-launch", false, "Restore modules without starting a session")

	return c
}

func runUse(c *cobra.Command, opts *useOptions) error {
	gallery := newGallery()
	activator := newActivator(gallery)

	env, err := activator.Activate(c.Context(), opts.root, !opts.noLaunch)
	if err != nil {
		return err
	}

	if opts.noLaunch {
		styles := output.GetStyles()
		output.Println(fmt.Sprintf("Context ready at %s", styles.Name.Render(env.Root)))
		output.Println("Module search path: " + env.ModulePathValue())
	}

	return nil
}
