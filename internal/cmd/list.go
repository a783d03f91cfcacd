package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/output"
)

// listOptions holds the flags for the list command.
type listOptions struct {
	root   string
	format string
}

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	opts := &listOptions{}

	c := &cobra.Command{
		Use:   "list <root>",
		Short: "List the modules pinned by a context",
		Long:  `Read a context's manifest and print its pinned module set.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			opts.root = args[0]
			return runList(opts)
		},
	}

	c.Flags().StringVarP(&opts.format, "output", "o", "table", "Output format (table, yaml, json)")

	return c
}

func runList(opts *listOptions) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	absRoot, err := filepath.Abs(opts.root)
	if err != nil {
		return err
	}

	m, err := manifest.Load(manifest.PathFor(absRoot))
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		output.Print(string(data))
	default:
		rows := make([]output.ModuleRow, 0, len(m.Modules))
		for _, ref := range m.Modules {
			rows = append(rows, output.ModuleRow{
				Name:      ref.Name,
				Version:   ref.Version,
				Condition: string(ref.Condition),
			})
		}
		output.Println(fmt.Sprintf("Context %s (version %s)", m.Name, m.Version))
		output.Println(output.RenderModuleTable(rows))
	}

	return nil
}
