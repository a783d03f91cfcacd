// Package contexts implements context snapshotting and activation: a
// context is a named, versioned snapshot of a module set materialized
// as a manifest plus an isolated module directory.
package contexts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/modctx/cli/internal/fsutil"
	"github.com/modctx/cli/internal/modules"
)

// ModulePathEnvVar is the runtime's module search path variable.
const ModulePathEnvVar = "PSModulePath"

// ContextDirName is the directory under a context root that holds the
// manifest.
const ContextDirName = "Context"

// Environment carries a context's resolved directories and module
// search path. It is threaded explicitly through activation and handed
// to the session launcher; the tool's own process environment is never
// mutated.
type Environment struct {
	// Root is the context root directory.
	Root string

	// ModulesDir is the context's isolated module directory.
	ModulesDir string

	// ModulePath is the module search path for the session, with
	// ModulesDir in front of the inherited entries.
	ModulePath []string
}

// NewEnvironment provisions the context's module directory and builds
// the session environment from the current process environment.
func NewEnvironment(root string) (*Environment, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	modulesDir, err := fsutil.Provision(absRoot, modules.ModulesDirName)
	if err != nil {
		return nil, err
	}

	searchPath := []string{modulesDir}
	if inherited := os.Getenv(ModulePathEnvVar); inherited != "" {
		for _, p := range filepath.SplitList(inherited) {
			if p != "" {
				searchPath = append(searchPath, p)
			}
		}
	}

	return &Environment{
		Root:       absRoot,
		ModulesDir: modulesDir,
		ModulePath: searchPath,
	}, nil
}

// ModulePathValue renders the search path as an environment variable
// value.
func (e *Environment) ModulePathValue() string {
	return strings.Join(e.ModulePath, string(os.PathListSeparator))
}
