package previews

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
)

var (
	ErrNotFound = errors.New("preview not found")
	ErrCorrupt  = errors.New("preview digest mismatch")
)

// Repository stores preview blobs by asset id.
type Repository interface {
	// Put inserts or replaces the preview of p.AssetID and sets p.Digest.
	Put(ctx context.Context, p *models.Preview) error

	// Get returns the preview of an asset, or ErrNotFound.
	Get(ctx context.Context, assetID string) (*models.Preview, error)

	// Delete evicts the preview of an asset, or fails with ErrNotFound.
	Delete(ctx context.Context, assetID string) error

	// List returns every cached preview, oldest first, without content.
	List(ctx context.Context) ([]*models.Preview, error)
}

// Store is a Repository whose calls can also be grouped atomically.
type Store interface {
	Repository

	// InTx runs fn against a transactional Repository. Nothing fn did is
	// kept when it returns an error.
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
