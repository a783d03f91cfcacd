package contexts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/modules"
	"github.com/modctx/cli/internal/registry"
	"github.com/modctx/cli/internal/testutil"
)

// stubRegistry materializes installs into a shared directory so they
// become locally visible, fails installs for named modules, and records
// install order.
type stubRegistry struct {
	t            *testing.T
	shared       string
	failFor      map[string]error
	installCalls []string
	local        map[string][]registry.InstalledModuleRecord
}

func newStubRegistry(t *testing.T) *stubRegistry {
	t.Helper()
	return &stubRegistry{
		t:      t,
		shared: t.TempDir(),
		local:  map[string][]registry.InstalledModuleRecord{},
	}
}

func (s *stubRegistry) Find(_ context.Context, name, _ string) (*registry.ModuleData, error) {
	return &registry.ModuleData{Name: name}, nil
}

func (s *stubRegistry) Install(_ context.Context, req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
	s.installCalls = append(s.installCalls, req.Name)
	if err := s.failFor[req.Name]; err != nil {
		return nil, err
	}

	src := testutil.MakeModuleDir(s.t, s.shared, req.Name, req.Version)
	rec := registry.InstalledModuleRecord{Name: req.Name, Version: req.Version, BasePath: src}
	s.local[req.Name] = []registry.InstalledModuleRecord{rec}
	return &rec, nil
}

func (s *stubRegistry) ListLocal(_ context.Context, name string) ([]registry.InstalledModuleRecord, error) {
	return s.local[name], nil
}

type stubLauncher struct {
	called bool
	env    *Environment
}

func (s *stubLauncher) Launch(_ context.Context, env *Environment) error {
	s.called = true
	s.env = env
	return nil
}

func writeManifest(t *testing.T, root string, refs ...manifest.ModuleRef) {
	t.Helper()

	m := &manifest.Manifest{
		Version: "1.0.9000.0",
		Name:    filepath.Base(root),
		Path:    filepath.Dir(root),
		Modules: refs,
	}
	testutil.EnsureDir(t, filepath.Join(root, ContextDirName))
	require.NoError(t, manifest.Save(m, manifest.PathFor(root)))
}

func newTestActivator(reg registry.Client, launcher Launcher) *Activator {
	return NewActivator(
		modules.NewInstaller(reg),
		newTestSnapshotter(fixedLister()),
		launcher,
	)
}

func TestActivate_InstallsAreFailFast(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root,
		manifest.ModuleRef{Name: "A", Version: "1.0.0", Condition: manifest.ConditionRequired},
		manifest.ModuleRef{Name: "B", Version: "2.0.0", Condition: manifest.ConditionRequired},
		manifest.ModuleRef{Name: "C", Version: "3.0.0", Condition: manifest.ConditionRequired},
	)

	// A is already materialized and never touches the registry.
	testutil.MakeModuleDir(t, filepath.Join(root, modules.ModulesDirName), "A", "1.0.0")

	reg := newStubRegistry(t)
	reg.failFor = map[string]error{"B": assert.AnError}
	launcher := &stubLauncher{}

	_, err := newTestActivator(reg, launcher).Activate(context.Background(), root, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "activating context")

	assert.Equal(t, []string{"B"}, reg.installCalls,
		"the failure must abort before C is attempted")
	assert.False(t, launcher.called, "no session on a failed activation")
}

func TestActivate_NoManifestSnapshotsInstead(t *testing.T) {
	root := t.TempDir()
	reg := newStubRegistry(t)
	launcher := &stubLauncher{}

	_, err := newTestActivator(reg, launcher).Activate(context.Background(), root, false)
	require.NoError(t, err)

	assert.True(t, manifest.Exists(manifest.PathFor(root)),
		"first activation captures the current state")
	assert.Empty(t, reg.installCalls, "no install pass on first activation")
}

func TestActivate_LauncherReceivesEnvironment(t *testing.T) {
	root := t.TempDir()
	reg := newStubRegistry(t)
	launcher := &stubLauncher{}

	env, err := newTestActivator(reg, launcher).Activate(context.Background(), root, true)
	require.NoError(t, err)

	require.True(t, launcher.called)
	assert.Same(t, env, launcher.env)
	assert.Equal(t, filepath.Join(root, modules.ModulesDirName), env.ModulesDir)
	require.NotEmpty(t, env.ModulePath)
	assert.Equal(t, env.ModulesDir, env.ModulePath[0],
		"the context's modules shadow everything else")
}

func TestActivate_NoLaunchSkipsLauncher(t *testing.T) {
	root := t.TempDir()
	launcher := &stubLauncher{}

	env, err := newTestActivator(newStubRegistry(t), launcher).Activate(context.Background(), root, false)
	require.NoError(t, err)

	assert.False(t, launcher.called)
	assert.NotNil(t, env)
}

func TestActivate_ManifestDrivesInstallSet(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root,
		manifest.ModuleRef{Name: "Pester", Version: "5.3.0", Condition: manifest.ConditionRequired},
		manifest.ModuleRef{Name: "PSReadLine", Version: "2.2.6", Condition: manifest.ConditionMinimum},
	)

	reg := newStubRegistry(t)
	_, err := newTestActivator(reg, &stubLauncher{}).Activate(context.Background(), root, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pester", "PSReadLine"}, reg.installCalls,
		"installs follow manifest order")
}
