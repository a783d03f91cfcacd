package modules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/modver"
	"github.com/modctx/cli/internal/output"
	"github.com/modctx/cli/internal/registry"
)

// ModulesDirName is the directory under a context root that holds the
// context's own module copies.
const ModulesDirName = "Modules"

// InstallSpec describes one module to reconcile into a context.
type InstallSpec struct {
	Name    string
	Version string

	// Condition defaults to RequiredVersion when unset.
	Condition manifest.Condition

	// Root is the context root; the module lands under <Root>/Modules.
	Root string
}

// Installer reconciles modules into a context: reuse what is already
// there, copy what exists locally, install the rest from the registry.
type Installer struct {
	Registry registry.Client
	Locator  *Locator
}

// NewInstaller creates an Installer over the given registry client.
func NewInstaller(client registry.Client) *Installer {
	return &Installer{
		Registry: client,
		Locator:  NewLocator(client),
	}
}

// Install reconciles a single module. Any registry or filesystem
// failure aborts and propagates; re-running after a success is a no-op.
func (i *Installer) Install(ctx context.Context, spec InstallSpec) error {
	modulesRoot := filepath.Join(spec.Root, ModulesDirName)
	final := filepath.Join(modulesRoot, spec.Name, spec.Version)

	if _, err := os.Stat(final); err == nil {
		output.Info("module already present", "name", spec.Name, "version", spec.Version)
		return nil
	}

	// A locally visible copy serves multiple environments; copy it and
	// leave the shared one in place.
	found, err := i.Locator.Relocate(ctx, spec.Name, spec.Version, modulesRoot, TransferCopy)
	if err != nil {
		return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version, err)
	}
	if found {
		output.Info("module copied from local store", "name", spec.Name, "version", spec.Version)
		return nil
	}

	installed, err := i.Registry.Install(ctx, registry.InstallRequest{
		Name:               spec.Name,
		Version:            spec.Version,
		Condition:          spec.Condition.OrDefault(),
		SkipPublisherCheck: true,
		PassThru:           true,
	})
	if err != nil {
		return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version, err)
	}

	if installed != nil && installed.Version == spec.Version {
		// Exact pin: the environment owns its copy, free the shared
		// location.
		moved, err := i.Locator.Relocate(ctx, spec.Name, spec.Version, modulesRoot, TransferMove)
		if err != nil {
			return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version, err)
		}
		if !moved {
			return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version,
				errors.NewNotFoundError("installed module not visible for relocation",
					"The registry reported a successful install but no matching local copy was found."))
		}
		output.Info("module installed", "name", spec.Name, "version", spec.Version)
		return nil
	}

	// The registry substituted a different version (or returned no
	// pass-through record). Discover what now exists locally and copy
	// it, preserving the shared copy since it is not an exact pin.
	discovered, err := i.discoverLocalVersion(ctx, spec.Name)
	if err != nil {
		return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version, err)
	}

	found, err = i.Locator.Relocate(ctx, spec.Name, discovered, modulesRoot, TransferCopy)
	if err != nil {
		return fmt.Errorf("module %s %s: %w", spec.Name, discovered, err)
	}
	if !found {
		return fmt.Errorf("module %s %s: %w", spec.Name, spec.Version,
			errors.NewNotFoundError("no local copy found after install",
				"The registry install produced no locally visible module to materialize."))
	}

	output.Info("module installed with substituted version",
		"name", spec.Name, "requested", spec.Version, "installed", discovered)
	return nil
}

// InstallWithDependencies resolves a module against the registry and
// reconciles it plus its declared direct dependencies into the context.
// The requested condition applies to the root module only; dependencies
// are pinned to their declared versions. Installs run in dependency-list
// order, root first, and are fail-fast.
func (i *Installer) InstallWithDependencies(ctx context.Context, spec InstallSpec) error {
	data, err := i.Registry.Find(ctx, spec.Name, spec.Version)
	if err != nil {
		return fmt.Errorf("resolving module %s: %w", spec.Name, err)
	}

	deps, err := registry.DependencyList(data)
	if err != nil {
		return fmt.Errorf("resolving module %s: %w", spec.Name, err)
	}

	output.Debug("resolved dependency list", "name", data.Name, "modules", len(deps))

	for n, dep := range deps {
		cond := manifest.ConditionRequired
		if n == 0 {
			cond = spec.Condition.OrDefault()
		}
		if err := i.Install(ctx, InstallSpec{
			Name:      dep.Name,
			Version:   dep.Version,
			Condition: cond,
			Root:      spec.Root,
		}); err != nil {
			return err
		}
	}

	return nil
}

// discoverLocalVersion re-queries the locally visible modules for a
// name and returns the highest version now present.
func (i *Installer) discoverLocalVersion(ctx context.Context, name string) (string, error) {
	records, err := i.Registry.ListLocal(ctx, name)
	if err != nil {
		return "", err
	}

	best := ""
	for _, rec := range records {
		if best == "" || modver.GreaterThan(rec.Version, best) {
			best = rec.Version
		}
	}

	return best, nil
}
