package previews

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/assetbrowser/internal/dbx"
)

// SQLiteStore is a SQLiteRepository over a *sql.DB that can also run a
// group of repository calls in one transaction.
type SQLiteStore struct {
	*SQLiteRepository
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{SQLiteRepository: NewSQLiteRepository(db), db: db}
}

// InTx runs fn with a repository bound to a single transaction. Every
// change fn made is rolled back when it returns an error.
func (s *SQLiteStore) InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, NewSQLiteRepository(tx))
	})
}
