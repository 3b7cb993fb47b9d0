package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/vytor/studyflash/internal/db"
	"github.com/vytor/studyflash/internal/logger"
)

// Helper functions shared across repository implementations

func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// insertReturningID runs an INSERT ... RETURNING id. Both SQLite and Postgres support it.
func insertReturningID(ctx context.Context, q sqlx.QueryerContext, query squirrel.InsertBuilder) (int64, error) {
	stmt, args, err := query.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := q.QueryRowxContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// affected reports whether exec changed at least one row.
func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func selectAll[T any](ctx context.Context, store *db.DB, log *logger.Logger, query squirrel.SelectBuilder) ([]T, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	out := []T{}
	if err := store.SelectContext(ctx, &out, stmt, args...); err != nil {
		log.Error("query failed: %v", err)
		return nil, err
	}
	return out, nil
}
