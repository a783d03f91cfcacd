package manifest

import (
	"encoding/json"
	"os"

	"github.com/modctx/cli/internal/errors"
)

// Exists reports whether a manifest file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("no manifest at "+path, "")
		}
		return nil, errors.NewIOError("reading manifest: "+err.Error(), path)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewParseError("malformed manifest: "+err.Error(), path)
	}

	return &m, nil
}

// Save persists the manifest as formatted UTF-8 JSON at path,
// overwriting any prior file.
func Save(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.NewParseError("encoding manifest: "+err.Error(), path)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.NewIOError("writing manifest: "+err.Error(), path)
	}

	return nil
}
