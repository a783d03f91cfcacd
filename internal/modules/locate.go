// Package modules reconciles individual modules into a context's
// isolated module directory.
package modules

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/modctx/cli/internal/fsutil"
	"github.com/modctx/cli/internal/output"
	"github.com/modctx/cli/internal/registry"
)

// TransferMode selects how a located module reaches the target
// environment.
type TransferMode int

const (
	// TransferCopy duplicates the module tree; the source remains.
	TransferCopy TransferMode = iota

	// TransferMove relocates the module tree; the source is removed.
	TransferMove
)

// String returns the mode name.
func (m TransferMode) String() string {
	if m == TransferMove {
		return "move"
	}
	return "copy"
}

// Locator finds already-installed copies of modules among the modules
// visible to the current process and transfers them into a target
// environment.
type Locator struct {
	Registry registry.Client
}

// NewLocator creates a Locator over the given registry client.
func NewLocator(client registry.Client) *Locator {
	return &Locator{Registry: client}
}

// Relocate searches the locally visible modules for an exact
// name-version match and, on a hit, transfers the module tree to
// <modulesRoot>/<name>/<version>. A move narrows the search to the
// requested name; a copy searches all visible modules. At most one
// relocation happens per call; the first match wins.
//
// Returns false with no error and no side effect when nothing matches.
func (l *Locator) Relocate(ctx context.Context, name, version, modulesRoot string, mode TransferMode) (bool, error) {
	query := ""
	if mode == TransferMove {
		query = name
	}

	records, err := l.Registry.ListLocal(ctx, query)
	if err != nil {
		return false, err
	}

	for _, rec := range records {
		if !strings.EqualFold(rec.Name, name) || rec.Version != version {
			continue
		}

		src := rec.BasePath
		destParent, err := fsutil.Provision(modulesRoot, rec.Name)
		if err != nil {
			return false, err
		}
		dest := filepath.Join(destParent, rec.Version)

		output.Debug("relocating module",
			"name", rec.Name, "version", rec.Version, "mode", mode.String(),
			"from", src, "to", dest)

		if mode == TransferMove {
			if err := fsutil.MoveDir(src, dest); err != nil {
				return false, err
			}
		} else {
			if err := fsutil.CopyDir(src, dest); err != nil {
				return false, err
			}
		}

		return true, nil
	}

	return false, nil
}
