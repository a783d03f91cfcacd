package contexts

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/modules"
	"github.com/modctx/cli/internal/output"
)

// Launcher hands a prepared environment off to a runtime session.
type Launcher interface {
	Launch(ctx context.Context, env *Environment) error
}

// Activator restores a context's module set from its manifest and
// starts a pinned session.
type Activator struct {
	Installer   *modules.Installer
	Snapshotter *Snapshotter
	Launcher    Launcher
}

// NewActivator creates an Activator.
func NewActivator(installer *modules.Installer, snapshotter *Snapshotter, launcher Launcher) *Activator {
	return &Activator{
		Installer:   installer,
		Snapshotter: snapshotter,
		Launcher:    launcher,
	}
}

// Activate installs every module listed in the context's manifest into
// the context's module directory, then hands the environment to the
// session launcher. Installs are sequential and fail-fast: the first
// failure aborts the rest.
//
// When no manifest exists yet, one is created from the current module
// set instead; no install pass happens on that first run. The manifest
// becomes the source of truth for the next activation.
func (a *Activator) Activate(ctx context.Context, root string, launch bool) (*Environment, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	env, err := NewEnvironment(absRoot)
	if err != nil {
		return nil, err
	}

	manifestPath := manifest.PathFor(absRoot)

	if manifest.Exists(manifestPath) {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}

		contextRoot := m.Root()
		for _, ref := range m.Modules {
			if err := a.Installer.Install(ctx, modules.InstallSpec{
				Name:      ref.Name,
				Version:   ref.Version,
				Condition: ref.Condition,
				Root:      contextRoot,
			}); err != nil {
				return nil, fmt.Errorf("activating context %s: %w", m.Name, err)
			}
		}

		output.Info("context restored", "name", m.Name, "modules", len(m.Modules))
	} else {
		if _, err := a.Snapshotter.Snapshot(ctx, absRoot); err != nil {
			return nil, err
		}
	}

	if launch {
		if err := a.Launcher.Launch(ctx, env); err != nil {
			return nil, err
		}
	}

	return env, nil
}
