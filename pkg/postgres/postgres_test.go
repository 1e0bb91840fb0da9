package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/oncall-rota/pkg/db"
)

var _ db.Database = (*DB)(nil)

func TestMigrations_Ordered(t *testing.T) {
	files, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	assert.Equal(t, "001_init.sql", files[0])
	assert.IsNonDecreasing(t, files)
}

func TestMigrations_CreateTables(t *testing.T) {
	content, err := fs.ReadFile(migrationsFS, "migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	for _, table := range []string{"run", "assignment"} {
		assert.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS "+table+" "), "missing table %s", table)
	}
}

func TestGetRun_MalformedIDNotFound(t *testing.T) {
	d := &DB{}

	_, err := d.GetRun(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, db.ErrNotFound)
}
