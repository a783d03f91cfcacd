package contexts

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/modctx/cli/internal/config"
	"github.com/modctx/cli/internal/fsutil"
	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/modules"
	"github.com/modctx/cli/internal/modver"
	"github.com/modctx/cli/internal/output"
	"github.com/modctx/cli/internal/registry"
)

// LoadedLister enumerates the modules loaded in the current runtime
// session.
type LoadedLister interface {
	ListLoaded(ctx context.Context) ([]registry.InstalledModuleRecord, error)
}

// Snapshotter captures the current module set into a context manifest.
type Snapshotter struct {
	// Runtime lists the session's loaded modules.
	Runtime LoadedLister

	// Config supplies exclusion rules.
	Config *config.Config

	// Clock supplies the time for version synthesis. nil means the
	// wall clock.
	Clock func() time.Time
}

// NewSnapshotter creates a Snapshotter.
func NewSnapshotter(rt LoadedLister, cfg *config.Config) *Snapshotter {
	return &Snapshotter{Runtime: rt, Config: cfg}
}

// Snapshot enumerates the loaded modules and the modules already
// materialized under <root>/Modules, deduplicates by name keeping the
// highest version, and persists the manifest at
// <root>/Context/Context_<name>.json. Running it twice with no module
// changes yields identical module lists.
func (s *Snapshotter) Snapshot(ctx context.Context, root string) (*manifest.Manifest, error) {
	modulesDir, err := fsutil.Provision(root, modules.ModulesDirName)
	if err != nil {
		return nil, err
	}
	if _, err := fsutil.Provision(root, ContextDirName); err != nil {
		return nil, err
	}

	absRoot := filepath.Dir(modulesDir)
	name := manifest.ContextName(absRoot)

	m := &manifest.Manifest{
		Name: name,
		Path: filepath.Dir(absRoot),
	}

	// Modules already materialized in the context come first so their
	// positions are stable across re-snapshots.
	candidates, err := installedCandidates(modulesDir)
	if err != nil {
		return nil, err
	}
	for _, path := range candidates {
		modName, modVersion, ok := parseCandidate(path)
		if !ok {
			output.Debug("skipping non-module directory", "path", path)
			continue
		}
		m.Merge(manifest.ModuleRef{
			Name:      modName,
			Version:   modVersion,
			Condition: manifest.ConditionRequired,
		})
	}

	loaded, err := s.Runtime.ListLoaded(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range loaded {
		if s.excluded(rec) {
			output.Debug("excluding module from snapshot", "name", rec.Name)
			continue
		}
		if !modver.IsVersionLike(rec.Version) {
			output.Debug("skipping module with non-version version", "name", rec.Name, "version", rec.Version)
			continue
		}
		m.Merge(manifest.ModuleRef{
			Name:      rec.Name,
			Version:   rec.Version,
			Condition: manifest.ConditionRequired,
		})
	}

	manifestPath := manifest.PathFor(absRoot)

	prior := ""
	if manifest.Exists(manifestPath) {
		existing, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		prior = existing.Version
	}

	now := time.Now
	if s.Clock != nil {
		now = s.Clock
	}
	m.Version = manifest.Synthesize(prior, now())

	if err := manifest.Save(m, manifestPath); err != nil {
		return nil, err
	}

	output.Info("context snapshot written",
		"name", name, "version", m.Version, "modules", len(m.Modules), "path", manifestPath)

	return m, nil
}

// excluded applies the snapshot exclusion rules: modules living in the
// runtime's own built-in location, and modules named after this tool or
// its companion prompt module. Name matches are exact and
// case-insensitive.
func (s *Snapshotter) excluded(rec registry.InstalledModuleRecord) bool {
	pattern := s.Config.Runtime.BuiltinPattern
	if pattern != "" && strings.Contains(strings.ToLower(rec.BasePath), strings.ToLower(pattern)) {
		return true
	}

	for _, name := range s.Config.Exclude {
		if strings.EqualFold(rec.Name, name) {
			return true
		}
	}

	return false
}
