package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/rendition"
)

// CreateArchive starts an archive job. A non-2xx response is a soft
// failure: nil job, nil error.
func (c *HTTPClient) CreateArchive(ctx context.Context, items []models.ArchiveItem) (*models.ArchiveJob, error) {
	resp, err := c.doRaw(ctx, request{
		method: http.MethodPost,
		path:   rendition.AssetPath("archives"),
		body:   models.ArchiveRequest{Items: items},
	})
	if err != nil {
		return nil, wrap(err, "create", "archive", "")
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.log.Warn(ctx, "archive not created", "status", resp.StatusCode, "items", len(items))
		return nil, nil
	}

	var job models.ArchiveJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetArchiveStatus polls an archive job once. A non-2xx response is a
// soft failure: nil status, nil error.
func (c *HTTPClient) GetArchiveStatus(ctx context.Context, archiveID string) (*models.ArchiveStatus, error) {
	resp, err := c.doRaw(ctx, request{method: http.MethodGet, path: rendition.AssetPath("archives", archiveID, "status")})
	if err != nil {
		return nil, wrap(err, "get", "status of archive", archiveID)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.log.Warn(ctx, "archive status unavailable", "archive_id", archiveID, "status", resp.StatusCode)
		return nil, nil
	}

	var st models.ArchiveStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, err
	}
	if st.ID == "" {
		st.ID = archiveID
	}
	return &st, nil
}
