package manifest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modctx/cli/internal/modver"
)

func TestSynthesize_DefaultSeed(t *testing.T) {
	// One day after the epoch, noon UTC: build 1,
	// revision 43200 seconds / 2 = 21600.
	now := time.Date(2000, time.January, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "1.0.1.21600", Synthesize("", now))
}

func TestSynthesize_SeedCarryover(t *testing.T) {
	now := time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "3.7.1.0", Synthesize("3.7.9000.123", now))
}

func TestSynthesize_MalformedSeedIgnored(t *testing.T) {
	now := time.Date(2000, time.January, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "1.0.1.0", Synthesize("garbage", now))
	assert.Equal(t, "1.0.1.0", Synthesize("7", now))
}

func TestSynthesize_RevisionHalved(t *testing.T) {
	// 10 seconds past local midnight: revision 5.
	now := time.Date(2026, time.March, 1, 0, 0, 10, 0, time.UTC)

	got := Synthesize("", now)
	var major, minor, build, revision int
	_, err := fmt.Sscanf(got, "%d.%d.%d.%d", &major, &minor, &build, &revision)
	require.NoError(t, err)
	assert.Equal(t, 5, revision)
}

func TestSynthesize_SameDayMonotonic(t *testing.T) {
	t1 := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, time.March, 1, 17, 30, 0, 0, time.UTC)

	v1 := Synthesize("1.0", t1)
	v2 := Synthesize("1.0", t2)

	c, err := modver.Compare(v2, v1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c, 0, "same-day regeneration must not decrease")
}

func TestSynthesize_BuildIncreasesAcrossDays(t *testing.T) {
	t1 := time.Date(2026, time.March, 1, 23, 59, 0, 0, time.UTC)
	t2 := time.Date(2026, time.March, 2, 0, 1, 0, 0, time.UTC)

	var b1, b2, x int
	_, err := fmt.Sscanf(Synthesize("1.0", t1), "%d.%d.%d.%d", &x, &x, &b1, &x)
	require.NoError(t, err)
	_, err = fmt.Sscanf(Synthesize("1.0", t2), "%d.%d.%d.%d", &x, &x, &b2, &x)
	require.NoError(t, err)

	assert.Equal(t, b1+1, b2, "build must strictly increase across calendar days")
}
