package retention

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleter_RemovesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/file", []byte("x"), 0644))

	require.NoError(t, NewDeleter(fsys, false).Remove("/data/file"))

	exists, err := afero.Exists(fsys, "/data/file")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleter_VanishedPath(t *testing.T) {
	assert.NoError(t, NewDeleter(afero.NewMemMapFs(), false).Remove("/data/gone"))
}

func TestDeleter_DryRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/file", []byte("x"), 0644))

	require.NoError(t, NewDeleter(fsys, true).Remove("/data/file"))

	exists, err := afero.Exists(fsys, "/data/file")
	require.NoError(t, err)
	assert.True(t, exists)
}
