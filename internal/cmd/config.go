package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modctx/cli/internal/config"
	"github.com/modctx/cli/internal/fsutil"
	"github.com/modctx/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Configuration operations",
		Long:  `Commands for creating and checking the modctx configuration file.`,
	}

	c.AddCommand(newConfigInitCmd())
	c.AddCommand(newConfigVetCmd())

	return c
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a config file with default values",
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigInit(force)
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	return c
}

func runConfigInit(force bool) error {
	path, err := config.GetConfigFile()
	if err != nil {
		return err
	}
	if configFlag != "" {
		path = configFlag
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}

	if _, err := fsutil.Provision(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	output.Println("Created config file at " + path)
	return nil
}

func newConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Check the config file and report resolved values",
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet()
		},
	}
}

func runConfigVet() error {
	exists, err := config.ConfigFileExists(configFlag)
	if err != nil {
		return err
	}
	if !exists {
		output.Warn("no config file found, defaults and environment apply")
	}

	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(loaded)
	if err != nil {
		return err
	}

	output.Println("Resolved configuration:")
	output.Print(string(data))
	return nil
}
