package retention

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoffFromDays(t *testing.T) {
	now := time.Date(2024, time.March, 10, 8, 30, 0, 0, time.UTC)

	cutoff, err := CutoffFromDays(now, 0)
	require.NoError(t, err)
	assert.Equal(t, now, cutoff)

	cutoff, err = CutoffFromDays(now, 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 3, 8, 30, 0, 0, time.UTC), cutoff)

	_, err = CutoffFromDays(now, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data/logs", 0755))

	assert.NoError(t, ValidateRoot(fsys, "/data/logs"))
	assert.ErrorIs(t, ValidateRoot(fsys, "data/logs"), ErrInvalidInput)
	assert.ErrorIs(t, ValidateRoot(fsys, "/data/missing"), ErrInvalidInput)
	assert.EqualError(t, ValidateRoot(fsys, "/data/missing"), "the file path /data/missing does not exist: invalid input")
}

func TestValidate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data/logs", 0755))
	valid := Config{Root: "/data/logs", Cutoff: time.Now()}

	assert.NoError(t, Validate(fsys, valid))

	config := valid
	config.Cutoff = time.Time{}
	assert.ErrorIs(t, Validate(fsys, config), ErrInvalidCutoff)

	config = valid
	config.Archive = "/data/logs/removed.tar.zst"
	assert.ErrorIs(t, Validate(fsys, config), ErrInvalidInput)

	config.Archive = "removed.tar.zst"
	assert.ErrorIs(t, Validate(fsys, config), ErrInvalidInput)

	config.Archive = "/data/logs-removed.tar.zst"
	assert.NoError(t, Validate(fsys, config))
}
