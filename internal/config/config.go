// Package config provides configuration loading and management.
package config

import "runtime"

// ToolModuleName is the runtime module that ships with this tool.
// It never appears in snapshots.
const ToolModuleName = "ModCtx"

// PromptModuleName is the companion prompt-customization module.
// It is session decoration, not part of a reproducible module set.
const PromptModuleName = "posh-git"

// RuntimeConfig contains settings for the scripting runtime the tool
// manages modules for.
type RuntimeConfig struct {
	// Shell is the runtime binary used for sessions and registry
	// operations. Empty means platform default (pwsh / powershell.exe).
	// Env: MODCTX_SHELL
	Shell string `mapstructure:"shell" yaml:"shell,omitempty"`

	// BuiltinPattern identifies the runtime's own system install
	// location. Loaded modules whose base path contains this pattern are
	// excluded from snapshots. The pattern must name the system
	// directory specifically: user-scope install locations also carry
	// the runtime's name in their paths and must not match.
	BuiltinPattern string `mapstructure:"builtinPattern" yaml:"builtinPattern,omitempty"`
}

// Config represents the modctx CLI configuration.
// Loaded from ~/.modctx/config.yaml, overridable via MODCTX_* env vars.
type Config struct {
	// Registry is the repository modules are installed from.
	// Env: MODCTX_REGISTRY
	Registry string `mapstructure:"registry" yaml:"registry,omitempty"`

	// Runtime contains runtime-specific settings.
	Runtime RuntimeConfig `mapstructure:"runtime" yaml:"runtime,omitempty"`

	// Exclude lists module names never included in snapshots.
	// Matches are exact and case-insensitive.
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `modctx config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		Registry: "PSGallery",
		Runtime: RuntimeConfig{
			BuiltinPattern: builtinPatternFor(runtime.GOOS),
		},
		Exclude: []string{ToolModuleName, PromptModuleName},
	}
}

// builtinPatternFor returns the runtime's system install location
// fragment for a platform. User-scope locations such as
// ~/.local/share/powershell/Modules or Documents\PowerShell\Modules
// must not match it.
func builtinPatternFor(goos string) string {
	if goos == "windows" {
		return `Program Files\PowerShell`
	}
	return "/opt/microsoft/powershell"
}

// WithDefaults fills unset fields with default values.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()

	if c.Registry == "" {
		c.Registry = def.Registry
	}
	if c.Runtime.BuiltinPattern == "" {
		c.Runtime.BuiltinPattern = def.Runtime.BuiltinPattern
	}
	if len(c.Exclude) == 0 {
		c.Exclude = def.Exclude
	}

	return c
}
