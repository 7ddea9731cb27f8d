package previews

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE previews (
  asset_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  content_type TEXT NOT NULL,
  data BLOB NOT NULL,
  digest BLOB NOT NULL,
  size INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestPutGet_RoundTripAndReplace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := &models.Preview{AssetID: "a1", Name: "photo.webp", ContentType: "image/webp", Data: []byte("v1"), CreatedAt: created}
	require.NoError(t, r.Put(ctx, p))
	assert.Equal(t, Digest([]byte("v1")), p.Digest)
	assert.Equal(t, int64(2), p.Size)

	got, err := r.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "photo.webp", got.Name)
	assert.Equal(t, "image/webp", got.ContentType)
	assert.Equal(t, []byte("v1"), got.Data)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, &models.Blob{Data: []byte("v1"), ContentType: "image/webp"}, got.Blob())

	require.NoError(t, r.Put(ctx, &models.Preview{AssetID: "a1", Name: "photo.webp", ContentType: "image/webp", Data: []byte("v2-longer")}))
	got, err = r.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2-longer"), got.Data)
	assert.Equal(t, int64(9), got.Size)
}

func TestGet_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, err := r.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_DetectsCorruption(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, &models.Preview{AssetID: "a1", Name: "x", ContentType: "image/jpeg", Data: []byte("good")}))
	_, err := db.Exec(`UPDATE previews SET data = ? WHERE asset_id = ?`, []byte("evil"), "a1")
	require.NoError(t, err)

	_, err = r.Get(ctx, "a1")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDeleteAndList(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Put(ctx, &models.Preview{AssetID: "b", Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("bb"), CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, r.Put(ctx, &models.Preview{AssetID: "a", Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a"), CreatedAt: base}))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].AssetID)
	assert.Equal(t, "b", list[1].AssetID)
	assert.Nil(t, list[0].Data)
	assert.Equal(t, int64(2), list[1].Size)

	require.NoError(t, r.Delete(ctx, "a"))
	assert.ErrorIs(t, r.Delete(ctx, "a"), ErrNotFound)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPut_InsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Put(ctx, &models.Preview{AssetID: "t", Name: "t", ContentType: "image/png", Data: []byte("t")})
	})
	require.NoError(t, err)

	_, err = NewSQLiteRepository(db).Get(ctx, "t")
	assert.NoError(t, err)
}

func TestStoreInTx_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &models.Preview{AssetID: "a", Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")}))
	require.NoError(t, store.Put(ctx, &models.Preview{AssetID: "b", Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")}))

	err := store.InTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.Delete(ctx, "a"); err != nil {
			return err
		}
		return tx.Delete(ctx, "missing")
	})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, store.InTx(ctx, func(ctx context.Context, tx Repository) error {
		if err := tx.Delete(ctx, "a"); err != nil {
			return err
		}
		return tx.Delete(ctx, "b")
	}))
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
