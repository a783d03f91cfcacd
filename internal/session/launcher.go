// Package session starts runtime sessions pinned to a context.
package session

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/modctx/cli/internal/contexts"
	"github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/output"
)

// RuntimeLauncher launches an interactive runtime session with the
// context root as working directory and the context's module search
// path set on the child process only.
type RuntimeLauncher struct {
	// Shell overrides the platform-default runtime binary.
	Shell string

	// Stdio defaults to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRuntimeLauncher creates a launcher for the given shell override.
func NewRuntimeLauncher(shell string) *RuntimeLauncher {
	return &RuntimeLauncher{Shell: shell}
}

// Launch implements contexts.Launcher.
func (l *RuntimeLauncher) Launch(ctx context.Context, env *contexts.Environment) error {
	shell, err := shellFor(runtime.GOOS, l.Shell)
	if err != nil {
		return err
	}

	output.Info("launching session", "shell", shell, "dir", env.Root)

	cmd := exec.CommandContext(ctx, shell, "-NoLogo")
	cmd.Dir = env.Root
	cmd.Env = append(
		environWithout(contexts.ModulePathEnvVar),
		contexts.ModulePathEnvVar+"="+env.ModulePathValue(),
	)

	cmd.Stdin = l.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = l.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = l.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		// A session that exited non-zero already spoke through its own
		// stdio; carry its exit code instead of reporting a new error.
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			wrapped := errors.NewExitError(err, exitErr.ExitCode())
			wrapped.Printed = true
			return wrapped
		}
		return err
	}

	return nil
}

// shellFor resolves the runtime binary for a platform. Only windows and
// linux have a launch strategy.
func shellFor(goos, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	switch goos {
	case "windows":
		return "powershell.exe", nil
	case "linux":
		return "pwsh", nil
	default:
		return "", errors.Wrap(errors.ErrUnsupportedPlatform, "no session launch strategy for "+goos)
	}
}

// environWithout returns the process environment minus the named
// variable.
func environWithout(name string) []string {
	prefix := name + "="
	env := os.Environ()
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		out = append(out, kv)
	}
	return out
}
