package previews

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/dbx"
	"golang.org/x/crypto/blake2b"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Digest returns the BLAKE2b-256 of data.
func Digest(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

func (r *SQLiteRepository) Put(ctx context.Context, p *models.Preview) error {
	p.Digest = Digest(p.Data)
	p.Size = int64(len(p.Data))
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO previews (asset_id, name, content_type, data, digest, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(asset_id) DO UPDATE SET name = excluded.name,
				content_type = excluded.content_type,
				data = excluded.data,
				digest = excluded.digest,
				size = excluded.size,
				created_at = excluded.created_at
	`
	_, err := r.db.ExecContext(ctx, query, p.AssetID, p.Name, p.ContentType, p.Data, p.Digest, p.Size, p.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert preview: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, assetID string) (*models.Preview, error) {
	query := `SELECT asset_id, name, content_type, data, digest, size, created_at FROM previews WHERE asset_id = ?`
	row := r.db.QueryRowContext(ctx, query, assetID)

	p := &models.Preview{}
	var created int64
	err := row.Scan(&p.AssetID, &p.Name, &p.ContentType, &p.Data, &p.Digest, &p.Size, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, assetID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preview: %w", err)
	}
	p.CreatedAt = time.UnixMilli(created).UTC()

	if !bytes.Equal(Digest(p.Data), p.Digest) {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, assetID)
	}

	return p, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, assetID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM previews WHERE asset_id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete preview: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, assetID)
	}

	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Preview, error) {
	query := `SELECT asset_id, name, content_type, digest, size, created_at FROM previews ORDER BY created_at, asset_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting previews: %w", err)
	}
	defer rows.Close()

	var result []*models.Preview
	for rows.Next() {
		p := &models.Preview{}
		var created int64
		if err := rows.Scan(&p.AssetID, &p.Name, &p.ContentType, &p.Digest, &p.Size, &created); err != nil {
			return nil, err
		}
		p.CreatedAt = time.UnixMilli(created).UTC()
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
