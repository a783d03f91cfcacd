// Package fsutil provides filesystem provisioning and transfer primitives.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/modctx/cli/internal/errors"
)

// Provision resolves the absolute form of path joined with any sub
// segments, creating the directory (including missing parents) when it
// does not exist. An existing path is returned unchanged with no side
// effect. Calling twice with the same input is safe.
func Provision(path string, sub ...string) (string, error) {
	joined := filepath.Join(append([]string{path}, sub...)...)

	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", errors.NewIOError("resolving path: "+err.Error(), joined)
	}

	if _, err := os.Stat(abs); err == nil {
		return abs, nil
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", errors.NewIOError("creating directory: "+err.Error(), abs)
	}

	return abs, nil
}
