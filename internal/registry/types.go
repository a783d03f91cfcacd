// Package registry wraps the remote module registry and the set of
// locally visible modules.
package registry

import (
	"context"

	"github.com/modctx/cli/internal/manifest"
)

// ModuleData is the result of a registry lookup for one module.
// It is transient and never persisted.
type ModuleData struct {
	// Name is the module name as known to the registry.
	Name string

	// Version is the module version the registry resolved.
	Version string

	// Dependencies holds the declared dependency canonical ids, in
	// registry order.
	Dependencies []string
}

// InstalledModuleRecord describes a locally materialized module.
// The physical layout convention is <root>/<name>/<version>/.
type InstalledModuleRecord struct {
	Name    string `json:"name"`
	Version string `json:"version"`

	// BasePath is the version-named leaf directory holding the module.
	BasePath string `json:"basePath"`
}

// InstallRequest describes one install operation against the registry.
// The condition is carried structurally; the adapter translates it into
// whatever the registry's install surface expects.
type InstallRequest struct {
	Name      string
	Version   string
	Condition manifest.Condition

	// SkipPublisherCheck bypasses publisher certificate validation.
	SkipPublisherCheck bool

	// PassThru requests the installed record as the operation result.
	PassThru bool
}

// Client is the registry boundary. Operations block until complete; no
// timeouts are imposed beyond the supplied context.
type Client interface {
	// Find looks up a module by name, optionally pinned to a version.
	// Returns ErrNotFound when the registry has no matching module.
	Find(ctx context.Context, name, version string) (*ModuleData, error)

	// Install installs a module into the shared system location.
	// The returned record is nil when the registry produced no
	// pass-through result.
	Install(ctx context.Context, req InstallRequest) (*InstalledModuleRecord, error)

	// ListLocal enumerates locally visible modules, optionally narrowed
	// to a single name. An empty name lists everything.
	ListLocal(ctx context.Context, name string) ([]InstalledModuleRecord, error)
}
