package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/client/client"
	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dmitrijs2005/assetbrowser/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	mu sync.Mutex

	searchFn     func(q query.Query) (*models.SearchResponse, error)
	lastQuery    query.Query
	searchCalls  int
	metadataFn   func(id, etag string) (*models.AssetMetadata, error)
	renditions   []models.Rendition
	renditionErr error
	presets      []models.Rendition
	listCalls    int

	previewFn  func(id string) (*models.Blob, error)
	downloaded []string
	downloadFn func(a *models.Asset) error
}

func (f *fakeClient) SearchAssets(_ context.Context, q query.Query) (*models.SearchResponse, error) {
	f.searchCalls++
	f.lastQuery = q
	return f.searchFn(q)
}

func (f *fakeClient) SearchCollections(_ context.Context, q query.Query) (*models.SearchResponse, error) {
	f.searchCalls++
	f.lastQuery = q
	return f.searchFn(q)
}

func (f *fakeClient) GetMetadata(_ context.Context, id, etag string) (*models.AssetMetadata, error) {
	return f.metadataFn(id, etag)
}

func (f *fakeClient) GetAssetRenditions(context.Context, string) ([]models.Rendition, error) {
	f.listCalls++
	return f.renditions, f.renditionErr
}

func (f *fakeClient) GetAssetImagePresets(context.Context, string) ([]models.Rendition, error) {
	f.listCalls++
	return f.presets, nil
}

func (f *fakeClient) GetOptimizedDeliveryPreviewBlob(_ context.Context, id, _ string, _ int) (*models.Blob, error) {
	return f.previewFn(id)
}

func (f *fakeClient) DownloadAsset(_ context.Context, a *models.Asset, _ models.Rendition, _ bool) (*models.Blob, error) {
	f.mu.Lock()
	f.downloaded = append(f.downloaded, a.AssetID)
	f.mu.Unlock()
	if f.downloadFn != nil {
		if err := f.downloadFn(a); err != nil {
			return nil, err
		}
	}
	return &models.Blob{Data: []byte("x")}, nil
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func newCompiler() *query.Compiler {
	return query.NewCompiler("1-2", "1-2_collections", clock.NewFake(time.Unix(1_700_000_000, 0)))
}

func TestSearch_DecodesHitsAndMergesFacets(t *testing.T) {
	fc := &fakeClient{}
	fc.searchFn = func(q query.Query) (*models.SearchResponse, error) {
		results := make([]models.RawResult, len(q.Requests))
		results[0] = models.RawResult{
			Hits: []json.RawMessage{
				raw(t, map[string]any{"assetId": "a1", "repo-name": "can.png", "custom": "keep"}),
			},
			NbHits: 1, NbPages: 1, HitsPerPage: 24,
			Facets: map[string]models.FacetCounts{
				"brand": {"coke": 1},
				"type":  {"image": 1},
			},
		}
		for i, r := range q.Requests[1:] {
			results[i+1] = models.RawResult{Facets: map[string]models.FacetCounts{
				r.Facet: {r.Facet + "-all": 7},
			}}
		}
		return &models.SearchResponse{Results: results}, nil
	}

	svc := NewAssetService(fc, newCompiler(), nil)
	res, err := svc.Search(context.Background(), query.AssetSearch{
		Query:        "can",
		Facets:       []string{"brand", "type"},
		FacetFilters: [][]string{{"brand:coke"}},
	})
	require.NoError(t, err)

	require.Len(t, fc.lastQuery.Requests, 2)
	require.Len(t, res.Assets, 1)
	assert.Equal(t, "a1", res.Assets[0].AssetID)
	assert.Equal(t, "can.png", res.Assets[0].Name)
	v, ok := res.Assets[0].ExtraString("custom")
	assert.True(t, ok)
	assert.Equal(t, "keep", v)

	assert.Equal(t, models.FacetCounts{"brand-all": 7}, res.Facets["brand"])
	assert.Equal(t, models.FacetCounts{"image": 1}, res.Facets["type"])
	assert.Equal(t, 1, res.NbHits)
}

func TestSearch_ResultCountMismatch(t *testing.T) {
	fc := &fakeClient{searchFn: func(query.Query) (*models.SearchResponse, error) {
		return &models.SearchResponse{}, nil
	}}
	_, err := NewAssetService(fc, newCompiler(), nil).Search(context.Background(), query.AssetSearch{})
	assert.Error(t, err)
}

func TestSearchCollections(t *testing.T) {
	fc := &fakeClient{searchFn: func(q query.Query) (*models.SearchResponse, error) {
		return &models.SearchResponse{Results: []models.RawResult{{
			Hits:   []json.RawMessage{raw(t, models.Collection{CollectionID: "c1", Title: "Summer"})},
			NbHits: 1,
		}}}, nil
	}}
	svc := NewAssetService(fc, newCompiler(), nil)

	_, err := svc.SearchCollections(context.Background(), query.CollectionSearch{Query: "s"})
	require.ErrorIs(t, err, query.ErrMissingRequiredParameter)
	assert.Zero(t, fc.searchCalls)

	res, err := svc.SearchCollections(context.Background(), query.CollectionSearch{Query: "s", HitsPerPage: 10})
	require.NoError(t, err)
	require.Len(t, res.Collections, 1)
	assert.Equal(t, "Summer", res.Collections[0].Title)
	assert.Equal(t, "1-2_collections", fc.lastQuery.Requests[0].IndexName)
}

func TestMetadata_RevalidatesWithETag(t *testing.T) {
	var etags []string
	fc := &fakeClient{metadataFn: func(id, etag string) (*models.AssetMetadata, error) {
		etags = append(etags, etag)
		if etag == `"e1"` {
			return nil, client.ErrNotModified
		}
		return &models.AssetMetadata{AssetID: id, ETag: `"e1"`}, nil
	}}
	svc := NewAssetService(fc, newCompiler(), nil)
	ctx := context.Background()

	first, err := svc.Metadata(ctx, "a1")
	require.NoError(t, err)
	second, err := svc.Metadata(ctx, "a1")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, []string{"", `"e1"`}, etags)
}

func TestMetadata_NotModifiedWithoutCacheSurfaces(t *testing.T) {
	fc := &fakeClient{metadataFn: func(string, string) (*models.AssetMetadata, error) {
		return nil, client.ErrNotModified
	}}
	_, err := NewAssetService(fc, newCompiler(), nil).Metadata(context.Background(), "a1")
	assert.ErrorIs(t, err, client.ErrNotModified)
}

func TestRenditions_FilledInPlace(t *testing.T) {
	fc := &fakeClient{renditions: []models.Rendition{{Name: "cq5dam.web.1280.1280.jpeg"}}}
	svc := NewAssetService(fc, newCompiler(), nil)
	asset := &models.Asset{AssetID: "a1"}
	ctx := context.Background()

	rs, err := svc.Renditions(ctx, asset)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, models.OriginalRendition, rs[0].Name)
	assert.Equal(t, rs, asset.Renditions)

	_, err = svc.Renditions(ctx, asset)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.listCalls)

	ps, err := svc.ImagePresets(ctx, asset)
	require.NoError(t, err)
	assert.Empty(t, ps)
	assert.NotNil(t, asset.ImagePresets)
	_, _ = svc.ImagePresets(ctx, asset)
	assert.Equal(t, 2, fc.listCalls)
}

func TestRenditions_ErrorLeavesAssetUntouched(t *testing.T) {
	fc := &fakeClient{renditionErr: errors.New("boom")}
	asset := &models.Asset{AssetID: "a1"}
	_, err := NewAssetService(fc, newCompiler(), nil).Renditions(context.Background(), asset)
	assert.Error(t, err)
	assert.Nil(t, asset.Renditions)
}
