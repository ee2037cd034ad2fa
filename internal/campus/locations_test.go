package campus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	data := `[
		{"id": "merensky", "name": "Merensky 230", "building": "Merensky", "lat": -33.93, "lon": 18.86},
		{"id": "narga", "name": "Narga Hall", "building": "Natural Science", "lat": -33.93, "lon": 18.87}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, set.All(), 2)

	loc, ok := set.ByID("narga")
	require.True(t, ok)
	assert.Equal(t, "Natural Science", loc.Building)

	_, ok = set.ByID("nope")
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o600))
	_, err = Load(empty)
	assert.Error(t, err)
}
