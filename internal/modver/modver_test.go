package modver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVersionLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two segments", "1.0", true},
		{"three segments", "1.2.3", true},
		{"four segments", "1.2.3.4", true},
		{"single segment", "7", false},
		{"five segments", "1.2.3.4.5", false},
		{"not a version", "not-a-version", false},
		{"prerelease suffix", "1.2.3-beta", false},
		{"empty", "", false},
		{"leading dot", ".1.2", false},
		{"trailing dot", "1.2.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVersionLike(tt.input))
		})
	}
}

func TestCompare_Numeric(t *testing.T) {
	// Numeric, not lexicographic: "1.10.0" sorts above "1.9.0".
	c, err := Compare("1.10.0", "1.9.0")
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = Compare("2.0.0", "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = Compare("1.0", "1.0.1")
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompare_Malformed(t *testing.T) {
	_, err := Compare("garbage", "1.0.0")
	require.Error(t, err)

	_, err = Compare("1.0.0", "garbage")
	require.Error(t, err)
}

func TestGreaterThan(t *testing.T) {
	assert.True(t, GreaterThan("2.0.0", "1.5.0"))
	assert.False(t, GreaterThan("1.5.0", "2.0.0"))
	assert.False(t, GreaterThan("1.5.0", "1.5.0"))

	// Malformed input compares as not-greater.
	assert.False(t, GreaterThan("garbage", "1.0.0"))
}
