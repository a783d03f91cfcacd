package registry

import (
	"strings"

	"github.com/modctx/cli/internal/errors"
)

// Dependency is one flattened (name, version) pair from a module's
// declared dependency metadata.
type Dependency struct {
	Name    string
	Version string
}

// canonical id shape: "<source>:<name>:[<version>]", colon-delimited,
// version wrapped in brackets. Example: "nuget:Az.Accounts:[2.12.1]".
const canonicalDelimiter = ":"

// ParseCanonicalID extracts the name and version from a dependency
// canonical id. The name occupies the second token and the version the
// third, with surrounding brackets stripped.
func ParseCanonicalID(id string) (Dependency, error) {
	tokens := strings.Split(id, canonicalDelimiter)
	if len(tokens) < 3 {
		return Dependency{}, errors.NewParseError("canonical id has too few tokens", id)
	}

	name := strings.TrimSpace(tokens[1])
	if name == "" {
		return Dependency{}, errors.NewParseError("canonical id has empty module name", id)
	}

	version := strings.Trim(strings.TrimSpace(tokens[2]), "[]")

	return Dependency{Name: name, Version: version}, nil
}

// DependencyList flattens a module's declared dependency metadata into
// an ordered list of (name, version) pairs. The root module itself is
// position 0, followed by each declared dependency in registry order.
//
// Only the root module's declared list is flattened; dependencies' own
// dependencies are not walked. The registry's metadata is treated as
// already complete for the root module.
func DependencyList(data *ModuleData) ([]Dependency, error) {
	deps := make([]Dependency, 0, len(data.Dependencies)+1)
	deps = append(deps, Dependency{Name: data.Name, Version: data.Version})

	for _, id := range data.Dependencies {
		dep, err := ParseCanonicalID(id)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	return deps, nil
}
