// Package manifest defines the context manifest: the persisted
// description of a pinned module set.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/modver"
)

// Condition is the version-matching strategy requested for a dependency
// at install time.
type Condition string

// Version-matching conditions.
const (
	// ConditionMinimum accepts the given version or anything newer.
	ConditionMinimum Condition = "MinimumVersion"

	// ConditionMaximum accepts the given version or anything older.
	ConditionMaximum Condition = "MaximumVersion"

	// ConditionRequired accepts exactly the given version.
	ConditionRequired Condition = "RequiredVersion"
)

// OrDefault returns the condition, defaulting to ConditionRequired when
// unset.
func (c Condition) OrDefault() Condition {
	if c == "" {
		return ConditionRequired
	}
	return c
}

// ParseCondition parses a condition string, case-insensitively.
func ParseCondition(s string) (Condition, error) {
	switch strings.ToLower(s) {
	case "minimumversion":
		return ConditionMinimum, nil
	case "maximumversion":
		return ConditionMaximum, nil
	case "requiredversion", "":
		return ConditionRequired, nil
	default:
		return "", errors.NewParseError("unknown version condition", s)
	}
}

// ModuleRef is one entry in a manifest's module list.
type ModuleRef struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Condition Condition `json:"condition"`
}

// Manifest is the persisted JSON description of a context.
type Manifest struct {
	// Version is the manifest's synthetic 4-part version.
	Version string `json:"version"`

	// Name is the context name, derived from the last segment of the
	// context root directory.
	Name string `json:"name"`

	// Path is the parent directory of the context root.
	Path string `json:"path"`

	// Modules is the pinned module set. Names are unique.
	Modules []ModuleRef `json:"modules"`
}

// Root returns the context root directory the manifest describes.
func (m *Manifest) Root() string {
	return filepath.Join(m.Path, m.Name)
}

// Merge folds a module reference into the list, deduplicating by name.
// The first occurrence establishes the entry and its position; a later
// occurrence of the same name replaces the stored version only when it
// compares strictly greater, numeric dot-segment-wise.
func (m *Manifest) Merge(ref ModuleRef) {
	for i := range m.Modules {
		if strings.EqualFold(m.Modules[i].Name, ref.Name) {
			if modver.GreaterThan(ref.Version, m.Modules[i].Version) {
				m.Modules[i].Version = ref.Version
				m.Modules[i].Condition = ref.Condition
			}
			return
		}
	}
	m.Modules = append(m.Modules, ref)
}

// ContextName derives the context name from a root directory path.
func ContextName(root string) string {
	return filepath.Base(filepath.Clean(root))
}

// PathFor returns the expected manifest file path for a context root:
// <root>/Context/Context_<name>.json.
func PathFor(root string) string {
	return filepath.Join(root, "Context", fmt.Sprintf("Context_%s.json", ContextName(root)))
}
