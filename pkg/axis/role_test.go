package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRole(t *testing.T) {
	for _, r := range All() {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	r, err := ParseRole(" spatial ")
	require.NoError(t, err)
	assert.Equal(t, Spatial, r)

	r, err = ParseRole("unclassified")
	require.NoError(t, err)
	assert.Equal(t, Unclassified, r)

	_, err = ParseRole("frame")
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, Spatial.IsImage())
	assert.True(t, Reciprocal.IsImage())
	assert.False(t, Spectral.IsImage())
	assert.False(t, Temporal.IsImage())
	assert.False(t, Unclassified.IsImage())
}

func TestRoleYAML(t *testing.T) {
	in := []Role{Spatial, Spatial, Spectral}
	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SPECTRAL")

	var out []Role
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	var bad []Role
	assert.Error(t, yaml.Unmarshal([]byte("[bogus]"), &bad))
}

func TestRoleStringUnknown(t *testing.T) {
	assert.Equal(t, "Role(42)", Role(42).String())
}
