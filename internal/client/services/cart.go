package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/assetbrowser/internal/client/archive"
	"github.com/dmitrijs2005/assetbrowser/internal/client/client"
	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/repositories/previews"
	"github.com/dmitrijs2005/assetbrowser/internal/clock"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
	"golang.org/x/sync/errgroup"
)

// addConcurrency bounds the preview fetches of one Add call.
const addConcurrency = 4

// repoNameKey is the repository metadata property holding the asset name.
const repoNameKey = "repo:name"

// CartService keeps a selection of assets with their previews cached
// locally and downloads the selection.
//
// Contract:
//   - Add: fetch and cache the preview of every asset; one result per asset,
//     a failing asset never aborts the others.
//   - Remove: drop assets and their cached previews, all or none.
//   - List: the cached selection, oldest first.
//   - Download: one asset is downloaded directly, several through an archive.
type CartService interface {
	Add(ctx context.Context, assets []*models.Asset) []AddResult
	Remove(ctx context.Context, assetIDs ...string) error
	List(ctx context.Context) ([]*models.Preview, error)
	Download(ctx context.Context, assets []*models.Asset) error
}

// AddResult is the outcome of adding one asset.
type AddResult struct {
	AssetID string
	Err     error
}

// Archiver runs archive jobs.
type Archiver interface {
	Run(ctx context.Context, items []models.ArchiveItem) (*archive.Result, error)
}

type cartService struct {
	client   client.Client
	previews previews.Store
	archiver Archiver
	width    int
	clock    clock.Clock
	log      logging.Logger
}

// NewCartService constructs a CartService. width is the preview width in
// pixels.
func NewCartService(c client.Client, repo previews.Store, archiver Archiver, width int, clk clock.Clock, log logging.Logger) CartService {
	if clk == nil {
		clk = clock.Real{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &cartService{client: c, previews: repo, archiver: archiver, width: width, clock: clk, log: log}
}

func (s *cartService) Add(ctx context.Context, assets []*models.Asset) []AddResult {
	results := make([]AddResult, len(assets))

	var g errgroup.Group
	g.SetLimit(addConcurrency)
	for i, a := range assets {
		results[i].AssetID = a.AssetID
		g.Go(func() error {
			if err := s.add(ctx, a); err != nil {
				s.log.Warn(ctx, "cart add failed", "asset_id", a.AssetID, "error", err)
				results[i].Err = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *cartService) add(ctx context.Context, a *models.Asset) error {
	name, err := s.assetName(ctx, a)
	if err != nil {
		return err
	}

	blob, err := s.client.GetOptimizedDeliveryPreviewBlob(ctx, a.AssetID, name, s.width)
	if err != nil {
		return err
	}

	p := &models.Preview{
		AssetID:     a.AssetID,
		Name:        name,
		ContentType: blob.ContentType,
		Data:        blob.Data,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.previews.Put(ctx, p); err != nil {
		return fmt.Errorf("cache preview: %w", err)
	}
	return nil
}

// assetName returns the repository name the preview URL is built from.
// Assets not seen in a search carry no name, so it is read from their
// metadata instead.
func (s *cartService) assetName(ctx context.Context, a *models.Asset) (string, error) {
	if a.Name != "" {
		return a.Name, nil
	}

	md, err := s.client.GetMetadata(ctx, a.AssetID, "")
	if err != nil {
		return "", err
	}
	if md != nil {
		if name, ok := md.RepositoryMetadata[repoNameKey].(string); ok && name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownAssetName, a.AssetID)
}

func (s *cartService) Remove(ctx context.Context, assetIDs ...string) error {
	if len(assetIDs) == 0 {
		return ErrNothingSelected
	}
	return s.previews.InTx(ctx, func(ctx context.Context, repo previews.Repository) error {
		for _, id := range assetIDs {
			if err := repo.Delete(ctx, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *cartService) List(ctx context.Context) ([]*models.Preview, error) {
	return s.previews.List(ctx)
}

func (s *cartService) Download(ctx context.Context, assets []*models.Asset) error {
	switch len(assets) {
	case 0:
		return ErrNothingSelected
	case 1:
		_, err := s.client.DownloadAsset(ctx, assets[0], models.Original(), false)
		return err
	}

	items := make([]models.ArchiveItem, 0, len(assets))
	for _, a := range assets {
		items = append(items, models.ArchiveItem{
			AssetID:           a.AssetID,
			IncludeRenditions: []string{models.OriginalRendition},
		})
	}

	res, err := s.archiver.Run(ctx, items)
	if err != nil {
		return err
	}
	if !res.OK() {
		state := ""
		if res != nil {
			state = res.State.String()
		}
		return &BulkDownloadError{Failed: len(assets), Total: len(assets), State: state}
	}
	return nil
}
