package session

import (
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modctx/cli/internal/contexts"
	"github.com/modctx/cli/internal/errors"
)

func TestShellFor(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		override string
		want     string
		wantErr  bool
	}{
		{name: "windows default", goos: "windows", want: "powershell.exe"},
		{name: "linux default", goos: "linux", want: "pwsh"},
		{name: "override wins", goos: "darwin", override: "/opt/pwsh", want: "/opt/pwsh"},
		{name: "darwin unsupported", goos: "darwin", wantErr: true},
		{name: "freebsd unsupported", goos: "freebsd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := shellFor(tt.goos, tt.override)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrUnsupportedPlatform)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLaunch_CarriesSessionExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX utility binaries")
	}

	env := &contexts.Environment{Root: t.TempDir(), ModulePath: []string{t.TempDir()}}

	err := NewRuntimeLauncher("/bin/false").Launch(context.Background(), env)
	require.Error(t, err)

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code, "the session's own exit code is surfaced")
	assert.True(t, exitErr.Printed, "the session already reported through its stdio")
}

func TestLaunch_CleanSessionExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on POSIX utility binaries")
	}

	env := &contexts.Environment{Root: t.TempDir(), ModulePath: []string{t.TempDir()}}

	assert.NoError(t, NewRuntimeLauncher("/bin/true").Launch(context.Background(), env))
}

func TestEnvironWithout(t *testing.T) {
	t.Setenv(contexts.ModulePathEnvVar, "/somewhere/modules")

	for _, kv := range environWithout(contexts.ModulePathEnvVar) {
		assert.False(t, strings.HasPrefix(kv, contexts.ModulePathEnvVar+"="),
			"the inherited search path must not leak through: %s", kv)
	}
}
