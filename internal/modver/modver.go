// Package modver handles module version shapes and comparison.
//
// Module versions are dotted numeric strings with two to four segments
// ("1.0", "1.2.3", "1.2.3.4"). Comparison is numeric per segment, never
// lexicographic: "1.10.0" sorts above "1.9.0".
package modver

import (
	"regexp"

	goversion "github.com/hashicorp/go-version"

	"github.com/modctx/cli/internal/errors"
)

// versionPattern matches 2-3 dot-separated numeric groups, with an
// optional 4th group for extended version fields.
var versionPattern = regexp.MustCompile(`^\d+(\.\d+){1,3}$`)

// IsVersionLike reports whether s has the shape of a module version.
// A directory is only accepted as a module version directory when its
// name passes this check.
func IsVersionLike(s string) bool {
	return versionPattern.MatchString(s)
}

// Compare returns -1, 0, or 1 when a is less than, equal to, or greater
// than b. Segments are compared numerically.
func Compare(a, b string) (int, error) {
	va, err := goversion.NewVersion(a)
	if err != nil {
		return 0, errors.NewParseError("malformed version", a)
	}
	vb, err := goversion.NewVersion(b)
	if err != nil {
		return 0, errors.NewParseError("malformed version", b)
	}
	return va.Compare(vb), nil
}

// GreaterThan reports whether a compares strictly greater than b.
// Malformed input compares as not-greater.
func GreaterThan(a, b string) bool {
	c, err := Compare(a, b)
	if err != nil {
		return false
	}
	return c > 0
}
