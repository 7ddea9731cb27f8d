package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/query"
	"github.com/dmitrijs2005/assetbrowser/internal/client/rendition"
	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
)

// GetMetadata fetches the metadata of an asset. When ifNoneMatch is set
// the request is conditional and an unchanged document yields
// ErrNotModified.
func (c *HTTPClient) GetMetadata(ctx context.Context, assetID, ifNoneMatch string) (*models.AssetMetadata, error) {
	r := request{method: http.MethodGet, path: rendition.AssetPath(assetID, "metadata")}
	if ifNoneMatch != "" {
		r.header = http.Header{"If-None-Match": {ifNoneMatch}}
	}

	resp, err := c.doRaw(ctx, r)
	if err != nil {
		return nil, wrap(err, "get", "metadata for asset", assetID)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return nil, fmt.Errorf("metadata for asset %q: %w", assetID, ErrNotModified)
	}
	if err := checkStatus(resp); err != nil {
		return nil, wrap(err, "get", "metadata for asset", assetID)
	}

	var md models.AssetMetadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return nil, err
	}
	if md.AssetID == "" {
		md.AssetID = assetID
	}
	md.ETag = resp.Header.Get("ETag")
	return &md, nil
}

// SearchAssets runs a compiled asset query. Results come back in request
// order.
func (c *HTTPClient) SearchAssets(ctx context.Context, q query.Query) (*models.SearchResponse, error) {
	return c.search(ctx, q, "assets")
}

// SearchCollections runs a compiled collection query.
func (c *HTTPClient) SearchCollections(ctx context.Context, q query.Query) (*models.SearchResponse, error) {
	return c.search(ctx, q, "collections")
}

func (c *HTTPClient) search(ctx context.Context, q query.Query, subject string) (*models.SearchResponse, error) {
	var index string
	if len(q.Requests) > 0 {
		index = q.Requests[0].IndexName
	}

	var out models.SearchResponse
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   rendition.AssetPath("search"),
		body:   q,
		header: http.Header{headerRequestKind: {requestSearch}},
	}, &out)
	if err != nil {
		return nil, wrap(err, "search", subject+" in index", index)
	}
	return &out, nil
}

// GetImageBase64 fetches the binary of an asset as a data URL.
func (c *HTTPClient) GetImageBase64(ctx context.Context, assetID string) (string, error) {
	blob, err := c.getBlob(ctx, request{method: http.MethodGet, path: rendition.AssetPath(assetID)})
	if err != nil {
		return "", wrap(err, "fetch", "image", assetID)
	}
	return blob.DataURL(), nil
}

// GetOptimizedDeliveryPreviewBlob fetches the optimized preview of an
// asset at width pixels.
func (c *HTTPClient) GetOptimizedDeliveryPreviewBlob(ctx context.Context, assetID, repoName string, width int) (*models.Blob, error) {
	t := rendition.Preview(assetID, repoName, width)
	blob, err := c.getBlob(ctx, request{
		method: http.MethodGet,
		path:   t.Path,
		query:  t.Query,
		header: http.Header{headerRequestKind: {requestDelivery}},
	})
	if err != nil {
		return nil, wrap(err, "fetch", "preview", assetID)
	}
	return blob, nil
}

// GetOptimizedDeliveryPreviewURL returns the URL of the optimized
// preview of an asset without fetching it.
func (c *HTTPClient) GetOptimizedDeliveryPreviewURL(assetID, repoName string, width int) string {
	return rendition.Preview(assetID, repoName, width).URL(c.baseURL)
}

// GetDownloadToken fetches a short lived download token. A non-2xx
// response means no token and is not an error.
func (c *HTTPClient) GetDownloadToken(ctx context.Context, assetID string) (*models.DownloadToken, error) {
	resp, err := c.doRaw(ctx, request{method: http.MethodGet, path: rendition.AssetPath(assetID, "token")})
	if err != nil {
		return nil, wrap(err, "fetch", "download token for asset", assetID)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		c.log.Warn(ctx, "download token unavailable", "asset_id", assetID, "status", resp.StatusCode)
		return nil, nil
	}

	var tok models.DownloadToken
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// DownloadAsset fetches one rendition of an asset and, when a sink is
// configured, saves it under the resolved filename. A missing token does
// not stop the download; a failed download request does.
func (c *HTTPClient) DownloadAsset(ctx context.Context, asset *models.Asset, r models.Rendition, isImagePreset bool) (*models.Blob, error) {
	tok, err := c.GetDownloadToken(ctx, asset.AssetID)
	if err != nil {
		c.log.Warn(ctx, "downloading without token", "asset_id", asset.AssetID, "error", err)
	}

	t := rendition.Resolve(asset, r, isImagePreset)
	blob, err := c.getBlob(ctx, request{
		method: http.MethodGet,
		path:   t.Path,
		query:  rendition.WithToken(t.Query, tok),
	})
	if err != nil {
		return nil, wrap(err, "download", "asset", asset.AssetID)
	}

	if c.sink != nil && c.objectURLs != nil {
		if err := sink.Deliver(ctx, c.objectURLs, c.sink, blob, t.Filename); err != nil {
			return nil, fmt.Errorf("save %s: %w", t.Filename, err)
		}
		c.log.Info(ctx, "asset downloaded", "asset_id", asset.AssetID, "file", t.Filename, "bytes", len(blob.Data))
	}
	return blob, nil
}

// GetAssetRenditions lists the stored renditions of an asset.
func (c *HTTPClient) GetAssetRenditions(ctx context.Context, assetID string) ([]models.Rendition, error) {
	var out models.RenditionList
	if _, err := c.do(ctx, request{method: http.MethodGet, path: rendition.AssetPath(assetID, "renditions")}, &out); err != nil {
		return nil, wrap(err, "fetch", "renditions for asset", assetID)
	}
	return out.Items, nil
}

// GetAssetImagePresets lists the image presets available for an asset.
func (c *HTTPClient) GetAssetImagePresets(ctx context.Context, assetID string) ([]models.Rendition, error) {
	items, err := c.imagePresets(ctx)
	if err != nil {
		return nil, wrap(err, "fetch", "image presets for asset", assetID)
	}
	return items, nil
}

// GetImagePresets lists the image presets of the bucket.
func (c *HTTPClient) GetImagePresets(ctx context.Context) ([]models.Rendition, error) {
	items, err := c.imagePresets(ctx)
	if err != nil {
		return nil, wrap(err, "fetch", "image presets", "")
	}
	return items, nil
}

func (c *HTTPClient) imagePresets(ctx context.Context) ([]models.Rendition, error) {
	var out models.RenditionList
	if _, err := c.do(ctx, request{method: http.MethodGet, path: rendition.AssetPath("imagePresets")}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *HTTPClient) getBlob(ctx context.Context, r request) (*models.Blob, error) {
	resp, err := c.doRaw(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &url.Error{Op: "read", URL: c.baseURL + r.path, Err: err}
	}
	return &models.Blob{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
