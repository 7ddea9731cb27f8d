// Package services contains the application services of the asset
// browser. This file defines the asset service: search, collections,
// metadata with conditional refetch, rendition listings and single asset
// downloads.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/dmitrijs2005/assetbrowser/internal/client/client"
	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
)

// AssetService defines the asset operations of the CLI.
//
// Renditions and ImagePresets fill the asset's cached lists in place and
// return them without a request on later calls.
type AssetService interface {
	Search(ctx context.Context, s query.AssetSearch) (*models.SearchResult, error)
	SearchCollections(ctx context.Context, s query.CollectionSearch) (*models.CollectionResult, error)
	Metadata(ctx context.Context, assetID string) (*models.AssetMetadata, error)
	Renditions(ctx context.Context, asset *models.Asset) ([]models.Rendition, error)
	ImagePresets(ctx context.Context, asset *models.Asset) ([]models.Rendition, error)
	Presets(ctx context.Context) ([]models.Rendition, error)
	Download(ctx context.Context, asset *models.Asset, r models.Rendition, isImagePreset bool) (*models.Blob, error)
}

type assetService struct {
	client   client.Client
	compiler *query.Compiler
	log      logging.Logger

	mu       sync.Mutex
	metadata map[string]*models.AssetMetadata
}

// NewAssetService constructs an AssetService over a DAM client and a query
// compiler bound to the bucket's indexes.
func NewAssetService(c client.Client, compiler *query.Compiler, log logging.Logger) AssetService {
	if log == nil {
		log = logging.Discard()
	}
	return &assetService{
		client:   c,
		compiler: compiler,
		log:      log,
		metadata: make(map[string]*models.AssetMetadata),
	}
}

func (s *assetService) Search(ctx context.Context, search query.AssetSearch) (*models.SearchResult, error) {
	q := s.compiler.Assets(search)

	resp, err := s.client.SearchAssets(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) != len(q.Requests) {
		return nil, fmt.Errorf("search returned %d results for %d requests", len(resp.Results), len(q.Requests))
	}

	primary := resp.Results[0]
	assets, err := decodeHits[models.Asset](primary.Hits)
	if err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}

	facets := make(map[string]models.FacetCounts, len(primary.Facets))
	maps.Copy(facets, primary.Facets)
	for i, req := range q.Requests[1:] {
		if counts, ok := resp.Results[i+1].Facets[req.Facet]; ok {
			facets[req.Facet] = counts
		}
	}

	s.log.Debug(ctx, "search done", "query", search.Query, "hits", primary.NbHits, "requests", len(q.Requests))
	return &models.SearchResult{
		Assets:      assets,
		NbHits:      primary.NbHits,
		Page:        primary.Page,
		NbPages:     primary.NbPages,
		HitsPerPage: primary.HitsPerPage,
		Facets:      facets,
	}, nil
}

func (s *assetService) SearchCollections(ctx context.Context, search query.CollectionSearch) (*models.CollectionResult, error) {
	q, err := s.compiler.Collections(search)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.SearchCollections(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return &models.CollectionResult{}, nil
	}

	r := resp.Results[0]
	collections, err := decodeHits[models.Collection](r.Hits)
	if err != nil {
		return nil, fmt.Errorf("decode collections: %w", err)
	}
	return &models.CollectionResult{Collections: collections, NbHits: r.NbHits, Page: r.Page, NbPages: r.NbPages}, nil
}

// Metadata returns the metadata of an asset, revalidating a previously
// fetched copy with its ETag.
func (s *assetService) Metadata(ctx context.Context, assetID string) (*models.AssetMetadata, error) {
	s.mu.Lock()
	cached := s.metadata[assetID]
	s.mu.Unlock()

	var etag string
	if cached != nil {
		etag = cached.ETag
	}

	md, err := s.client.GetMetadata(ctx, assetID, etag)
	if errors.Is(err, client.ErrNotModified) && cached != nil {
		return cached, nil
	}
	if err != nil {
		return nil, err
	}

	if md.ETag != "" {
		s.mu.Lock()
		s.metadata[assetID] = md
		s.mu.Unlock()
	}
	return md, nil
}

func (s *assetService) Renditions(ctx context.Context, asset *models.Asset) ([]models.Rendition, error) {
	if asset.Renditions != nil {
		return asset.Renditions, nil
	}

	items, err := s.client.GetAssetRenditions(ctx, asset.AssetID)
	if err != nil {
		return nil, err
	}
	asset.Renditions = withOriginal(items)
	return asset.Renditions, nil
}

func (s *assetService) ImagePresets(ctx context.Context, asset *models.Asset) ([]models.Rendition, error) {
	if asset.ImagePresets != nil {
		return asset.ImagePresets, nil
	}

	items, err := s.client.GetAssetImagePresets(ctx, asset.AssetID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Rendition{}
	}
	asset.ImagePresets = items
	return items, nil
}

// Presets lists the image presets defined for the repository.
func (s *assetService) Presets(ctx context.Context) ([]models.Rendition, error) {
	return s.client.GetImagePresets(ctx)
}

func (s *assetService) Download(ctx context.Context, asset *models.Asset, r models.Rendition, isImagePreset bool) (*models.Blob, error) {
	return s.client.DownloadAsset(ctx, asset, r, isImagePreset)
}

// withOriginal makes sure the reserved original rendition is listed first.
func withOriginal(items []models.Rendition) []models.Rendition {
	for _, r := range items {
		if r.Name == models.OriginalRendition {
			return items
		}
	}
	return append([]models.Rendition{models.Original()}, items...)
}

func decodeHits[T any](hits []json.RawMessage) ([]*T, error) {
	out := make([]*T, 0, len(hits))
	for _, h := range hits {
		v := new(T)
		if err := json.Unmarshal(h, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
