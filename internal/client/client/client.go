package client

import (
	"context"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
)

// Client is the DAM transfer API used by the services and the archive
// poller.
type Client interface {
	GetMetadata(ctx context.Context, assetID, ifNoneMatch string) (*models.AssetMetadata, error)
	SearchAssets(ctx context.Context, q query.Query) (*models.SearchResponse, error)
	SearchCollections(ctx context.Context, q query.Query) (*models.SearchResponse, error)
	GetImageBase64(ctx context.Context, assetID string) (string, error)
	GetOptimizedDeliveryPreviewBlob(ctx context.Context, assetID, repoName string, width int) (*models.Blob, error)
	GetOptimizedDeliveryPreviewURL(assetID, repoName string, width int) string
	GetDownloadToken(ctx context.Context, assetID string) (*models.DownloadToken, error)
	DownloadAsset(ctx context.Context, asset *models.Asset, r models.Rendition, isImagePreset bool) (*models.Blob, error)
	GetAssetRenditions(ctx context.Context, assetID string) ([]models.Rendition, error)
	GetAssetImagePresets(ctx context.Context, assetID string) ([]models.Rendition, error)
	GetImagePresets(ctx context.Context) ([]models.Rendition, error)
	CreateArchive(ctx context.Context, items []models.ArchiveItem) (*models.ArchiveJob, error)
	GetArchiveStatus(ctx context.Context, archiveID string) (*models.ArchiveStatus, error)
}
