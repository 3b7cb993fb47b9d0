package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.db")

	first, err := Open(SQLite, path)
	require.NoError(t, err)
	var applied int
	require.NoError(t, first.Get(&applied, `SELECT COUNT(*) FROM schema_migrations`))
	require.NoError(t, first.Close())

	second, err := Open(SQLite, path)
	require.NoError(t, err)
	defer second.Close()

	var again int
	require.NoError(t, second.Get(&again, `SELECT COUNT(*) FROM schema_migrations`))
	assert.Equal(t, applied, again)
	assert.Positive(t, again)

	var tables int
	require.NoError(t, second.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'flashcards', 'review_history', 'progress_snapshots')`))
	assert.Equal(t, 4, tables)
}

func TestOpen_UnknownDialect(t *testing.T) {
	_, err := Open(Dialect("oracle"), "whatever")
	assert.Error(t, err)
}

func TestBuilder_Placeholders(t *testing.T) {
	lite := &DB{Dialect: SQLite}
	pg := &DB{Dialect: Postgres}

	q, _, err := lite.Builder().Select("id").From("users").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE id = ?", q)

	q, _, err = pg.Builder().Select("id").From("users").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE id = $1", q)
}

func TestTx_RollsBackOnError(t *testing.T) {
	d, err := Open(SQLite, ":memory:")
	require.NoError(t, err)
	defer d.Close()
	ctx := context.Background()

	err = Tx(ctx, d, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (username) VALUES ('ghost')`); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var n int
	require.NoError(t, d.Get(&n, `SELECT COUNT(*) FROM users`))
	assert.Zero(t, n)
}

func TestSplitStatements(t *testing.T) {
	script := `
-- users
CREATE TABLE a (id INTEGER);

CREATE INDEX idx_a ON a(id);
-- trailing comment
`
	assert.Equal(t, []string{
		"CREATE TABLE a (id INTEGER)",
		"CREATE INDEX idx_a ON a(id)",
	}, splitStatements(script))
}
