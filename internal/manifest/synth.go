package manifest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// epoch anchors the build number: days are counted from 2000-01-01 UTC.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Synthesize derives a 4-part manifest version from the clock.
//
// major.minor carry over from the prior manifest version when one is
// supplied, else default to 1.0. build is the number of whole calendar
// days elapsed since 2000-01-01 UTC. revision is the seconds elapsed
// since local midnight, halved and rounded to nearest.
//
// For a fixed major.minor seed the resulting 4-tuple never decreases
// across same-day regenerations, and build strictly increases across
// calendar days.
func Synthesize(prior string, now time.Time) string {
	major, minor := 1, 0
	if maj, min, ok := seedFrom(prior); ok {
		major, minor = maj, min
	}

	utc := now.UTC()
	today := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	build := int(today.Sub(epoch).Hours() / 24)

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	revision := int(math.Round(now.Sub(midnight).Seconds() / 2))

	return fmt.Sprintf("%d.%d.%d.%d", major, minor, build, revision)
}

// SynthesizeNow is Synthesize against the wall clock.
func SynthesizeNow(prior string) string {
	return Synthesize(prior, time.Now())
}

// seedFrom extracts the major.minor seed from a prior version string.
// Anything that does not start with two numeric segments is ignored.
func seedFrom(prior string) (major, minor int, ok bool) {
	parts := strings.Split(prior, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	return major, minor, true
}
