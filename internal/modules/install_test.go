package modules

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/registry"
	"github.com/modctx/cli/internal/testutil"
)

func TestInstall_AlreadyPresentIsNoOp(t *testing.T) {
	root := t.TempDir()
	testutil.MakeModuleDir(t, filepath.Join(root, ModulesDirName), "Bar", "3.1.0")

	client := &fakeClient{}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.NoError(t, err)

	assert.Empty(t, client.listCalls, "a present module must not hit the registry")
	assert.Empty(t, client.installCalls)
}

func TestInstall_CopiesLocalAndPreservesShared(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()
	src := testutil.MakeModuleDir(t, shared, "Bar", "3.1.0")

	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{
		"": {{Name: "Bar", Version: "3.1.0", BasePath: src}},
	}}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Bar", "3.1.0", "Bar.psd1"))
	assert.DirExists(t, src, "the shared copy serves other environments")
	assert.Empty(t, client.installCalls, "a local hit must not install")
}

func TestInstall_ExactMatchMovesInstalledCopy(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()

	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{}}
	client.installFn = func(req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		src := testutil.MakeModuleDir(t, shared, req.Name, req.Version)
		rec := registry.InstalledModuleRecord{Name: req.Name, Version: req.Version, BasePath: src}
		client.local[req.Name] = []registry.InstalledModuleRecord{rec}
		return &rec, nil
	}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.NoError(t, err)

	require.Len(t, client.installCalls, 1)
	req := client.installCalls[0]
	assert.Equal(t, manifest.ConditionRequired, req.Condition, "unset condition defaults to required")
	assert.True(t, req.SkipPublisherCheck)
	assert.True(t, req.PassThru)

	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Bar", "3.1.0", "Bar.psd1"))
	assert.NoDirExists(t, filepath.Join(shared, "Bar", "3.1.0"),
		"an exact pin frees the shared location")
}

func TestInstall_SubstitutedVersionIsCopied(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()

	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{}}
	client.installFn = func(req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		// The registry resolved a newer release than requested.
		src := testutil.MakeModuleDir(t, shared, req.Name, "3.2.0")
		rec := registry.InstalledModuleRecord{Name: req.Name, Version: "3.2.0", BasePath: src}
		client.local[req.Name] = []registry.InstalledModuleRecord{rec}
		client.local[""] = []registry.InstalledModuleRecord{rec}
		return &rec, nil
	}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Bar", "3.2.0", "Bar.psd1"))
	assert.DirExists(t, filepath.Join(shared, "Bar", "3.2.0"),
		"a substituted version is not an exact pin; the shared copy stays")
}

func TestInstall_SubstitutionPicksHighestLocal(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()

	old := testutil.MakeModuleDir(t, shared, "Bar", "3.9.0")
	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{}}
	client.installFn = func(req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		src := testutil.MakeModuleDir(t, shared, req.Name, "3.10.0")
		recs := []registry.InstalledModuleRecord{
			{Name: req.Name, Version: "3.9.0", BasePath: old},
			{Name: req.Name, Version: "3.10.0", BasePath: src},
		}
		client.local[req.Name] = recs
		client.local[""] = recs
		return nil, nil
	}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "4.0.0", Root: root,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Bar", "3.10.0", "Bar.psd1"),
		"3.10.0 beats 3.9.0 numerically")
}

func TestInstallWithDependencies_RootFirstThenDeps(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()

	// Everything the resolver names is already visible locally, so each
	// install resolves through the copy path.
	roots := testutil.MakeModuleDir(t, shared, "Az", "9.5.0")
	accts := testutil.MakeModuleDir(t, shared, "Az.Accounts", "2.12.1")

	client := &fakeClient{
		findData: &registry.ModuleData{
			Name:         "Az",
			Version:      "9.5.0",
			Dependencies: []string{"nuget:Az.Accounts:[2.12.1]"},
		},
		local: map[string][]registry.InstalledModuleRecord{
			"": {
				{Name: "Az", Version: "9.5.0", BasePath: roots},
				{Name: "Az.Accounts", Version: "2.12.1", BasePath: accts},
			},
		},
	}
	installer := NewInstaller(client)

	err := installer.InstallWithDependencies(context.Background(), InstallSpec{
		Name: "Az", Root: root,
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Az", "9.5.0", "Az.psd1"))
	assert.FileExists(t, filepath.Join(root, ModulesDirName, "Az.Accounts", "2.12.1", "Az.Accounts.psd1"))
	assert.Empty(t, client.installCalls, "local copies satisfy everything")
}

func TestInstallWithDependencies_ConditionAppliesToRootOnly(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()

	client := &fakeClient{
		findData: &registry.ModuleData{
			Name:         "Az",
			Version:      "9.5.0",
			Dependencies: []string{"nuget:Az.Accounts:[2.12.1]"},
		},
		local: map[string][]registry.InstalledModuleRecord{},
	}
	client.installFn = func(req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		src := testutil.MakeModuleDir(t, shared, req.Name, req.Version)
		rec := registry.InstalledModuleRecord{Name: req.Name, Version: req.Version, BasePath: src}
		client.local[req.Name] = []registry.InstalledModuleRecord{rec}
		return &rec, nil
	}
	installer := NewInstaller(client)

	err := installer.InstallWithDependencies(context.Background(), InstallSpec{
		Name: "Az", Version: "9.5.0", Condition: manifest.ConditionMinimum, Root: root,
	})
	require.NoError(t, err)

	require.Len(t, client.installCalls, 2)
	assert.Equal(t, manifest.ConditionMinimum, client.installCalls[0].Condition)
	assert.Equal(t, manifest.ConditionRequired, client.installCalls[1].Condition)
}

func TestInstallWithDependencies_ResolveFailurePropagates(t *testing.T) {
	client := &fakeClient{findErr: assert.AnError}
	installer := NewInstaller(client)

	err := installer.InstallWithDependencies(context.Background(), InstallSpec{
		Name: "Az", Root: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "resolving module Az")
	assert.Empty(t, client.installCalls, "no installs after a failed resolve")
}

func TestInstall_RegistryFailurePropagates(t *testing.T) {
	client := &fakeClient{}
	client.installFn = func(registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		return nil, assert.AnError
	}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "module Bar 3.1.0")
}

func TestInstall_NothingMaterializedAfterInstallFails(t *testing.T) {
	root := t.TempDir()

	// The registry reports success without a pass-through record and
	// nothing becomes locally visible.
	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{}}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.Error(t, err, "a module the environment never received is not a success")
	assert.ErrorIs(t, err, merrors.ErrNotFound)
	assert.Contains(t, err.Error(), "module Bar 3.1.0")
	assert.NoDirExists(t, filepath.Join(root, ModulesDirName, "Bar"))
}

func TestInstall_ExactMatchNotVisibleFails(t *testing.T) {
	root := t.TempDir()

	// Pass-through reports the exact requested version, but the local
	// listing never surfaces it for the move.
	client := &fakeClient{local: map[string][]registry.InstalledModuleRecord{}}
	client.installFn = func(req registry.InstallRequest) (*registry.InstalledModuleRecord, error) {
		return &registry.InstalledModuleRecord{Name: req.Name, Version: req.Version, BasePath: "/gone"}, nil
	}
	installer := NewInstaller(client)

	err := installer.Install(context.Background(), InstallSpec{
		Name: "Bar", Version: "3.1.0", Root: root,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, merrors.ErrNotFound)
}
