package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsFS_Pairs(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "sql/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups, downs := 0, 0
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups++
		case strings.HasSuffix(f, ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs, "each migration needs up and down")
}

func TestMigrationsFS_Source(t *testing.T) {
	source, err := iofs.New(migrationsFS, "sql")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := source.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestMigrationsFS_ActiveSlotIndex(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "sql/000001_create_bookings.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "bookings_active_slot_uidx")
	assert.Contains(t, string(data), "WHERE status IN ('pending', 'confirmed')")
}
