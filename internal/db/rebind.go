package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	dbgen "github.com/codr1/courtbook/internal/db/generated"
)

// rebindDBTX rewrites the generated "?" placeholders to PostgreSQL's "$n" form.
type rebindDBTX struct {
	inner dbgen.DBTX
}

func (r rebindDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return r.inner.ExecContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
}

func (r rebindDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return r.inner.PrepareContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query))
}

func (r rebindDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return r.inner.QueryContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
}

func (r rebindDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return r.inner.QueryRowContext(ctx, sqlx.Rebind(sqlx.DOLLAR, query), args...)
}
