package contexts

import (
	"os"
	"path/filepath"

	"github.com/modctx/cli/internal/modver"
)

// installedCandidates enumerates immediate-and-one-level-deep
// subdirectories under a context's Modules directory as raw path
// strings: each <name>/<version> pair becomes one candidate.
func installedCandidates(modulesDir string) ([]string, error) {
	names, err := os.ReadDir(modulesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var candidates []string
	for _, name := range names {
		if !name.IsDir() {
			continue
		}

		nameDir := filepath.Join(modulesDir, name.Name())
		versions, err := os.ReadDir(nameDir)
		if err != nil {
			return nil, err
		}

		for _, v := range versions {
			if !v.IsDir() {
				continue
			}
			candidates = append(candidates, filepath.Join(nameDir, v.Name()))
		}
	}

	return candidates, nil
}

// parseCandidate interprets the trailing two path segments of a
// candidate as <name>/<version>. A candidate is only accepted when its
// final segment has the shape of a module version.
func parseCandidate(path string) (name, version string, ok bool) {
	clean := filepath.Clean(path)
	version = filepath.Base(clean)
	name = filepath.Base(filepath.Dir(clean))

	if name == "" || name == "." || !modver.IsVersionLike(version) {
		return "", "", false
	}

	return name, version, true
}
