// Package previews provides the local cache of optimized preview blobs.
//
// # Overview
//
// The package defines a Repository interface for storing, reading,
// listing and evicting Preview records keyed by asset id, and a
// SQLite-backed implementation (SQLiteRepository) over a dbx.DBTX
// (*sql.DB or *sql.Tx). SQLiteStore adds InTx on top of it for callers
// that must change several previews atomically. The schema is created
// by the goose migrations in internal/client/migrations.
//
// Every stored blob carries a BLAKE2b-256 digest of its content. Get
// recomputes it and fails with ErrCorrupt when the stored bytes no longer
// match.
//
// Typical Usage
//
//	repo := previews.NewSQLiteRepository(db)
//	_ = repo.Put(ctx, &models.Preview{AssetID: id, Name: name, Data: b})
//	p, _ := repo.Get(ctx, id)
//	all, _ := repo.List(ctx)
//	_ = repo.Delete(ctx, id)
//
//	store := previews.NewSQLiteStore(db)
//	_ = store.InTx(ctx, func(ctx context.Context, tx previews.Repository) error {
//		return tx.Delete(ctx, id)
//	})
package previews
