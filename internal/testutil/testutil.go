package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/studyflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	store, err := db.Open(db.SQLite, ":memory:")
	require.NoError(t, err)
	return store
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// CreateUser inserts a user and returns its id.
func CreateUser(t *testing.T, store *db.DB, username string) int64 {
	var id int64
	err := store.QueryRowx(store.Rebind(`INSERT INTO users (username) VALUES (?) RETURNING id`), username).Scan(&id)
	require.NoError(t, err)
	return id
}
