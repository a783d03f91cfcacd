package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// runtimeVersionRegex matches version output like "PowerShell 7.4.1".
var runtimeVersionRegex = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// RuntimeInfo contains scripting runtime binary information.
type RuntimeInfo struct {
	// Version is the runtime binary version.
	Version string `json:"version"`

	// Path is the path to the runtime binary.
	Path string `json:"path"`

	// Found indicates if the runtime binary was found.
	Found bool `json:"found"`

	// Message provides additional detail when detection fails.
	Message string `json:"message,omitempty"`
}

// String returns a human-readable runtime info string.
func (r RuntimeInfo) String() string {
	if !r.Found {
		return "  Binary Version: not found\n  Binary Path:    -"
	}

	return fmt.Sprintf("  Binary Version: %s\n  Binary Path:    %s", r.Version, r.Path)
}

// DetectRuntimeBinary finds and checks the scripting runtime binary.
// An empty shell argument means "try the usual names".
func DetectRuntimeBinary(shell string) RuntimeInfo {
	candidates := []string{shell}
	if shell == "" {
		candidates = []string{"pwsh", "powershell"}
	}

	var path string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if p, err := exec.LookPath(c); err == nil {
			path = p
			break
		}
	}

	if path == "" {
		return RuntimeInfo{
			Found:   false,
			Message: "runtime binary not found in PATH",
		}
	}

	v, err := getRuntimeVersion(path)
	if err != nil {
		return RuntimeInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get runtime version: " + err.Error(),
		}
	}

	return RuntimeInfo{
		Version: v,
		Path:    path,
		Found:   true,
	}
}

// getRuntimeVersion executes '<shell> -v' and extracts the version string.
func getRuntimeVersion(path string) (string, error) {
	cmd := exec.Command(path, "-v")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion pulls a dotted version out of runtime output.
func extractVersion(s string) (string, error) {
	match := runtimeVersionRegex.FindString(strings.TrimSpace(s))
	if match == "" {
		return "", fmt.Errorf("no version found in output: %q", s)
	}
	return match, nil
}
