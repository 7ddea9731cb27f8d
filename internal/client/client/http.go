package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/assetbrowser/internal/client/auth"
	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
)

const (
	headerAPIKey       = "x-api-key"
	headerExperimental = "x-adobe-accept-experimental"
	headerRequestKind  = "x-ch-request"

	requestSearch   = "search"
	requestDelivery = "delivery"
)

// Config holds what HTTPClient needs to reach one DAM bucket.
type Config struct {
	// BaseURL is the DAM origin, e.g. "https://delivery-p1-e2.adobeaemcloud.com".
	BaseURL string
	// APIKey is sent as x-api-key.
	APIKey string
	// Tokens supplies the bearer token of every request.
	Tokens auth.TokenProvider

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Logger defaults to logging.Discard().
	Logger logging.Logger

	// ObjectURLs and Sink receive downloaded assets. Downloads are only
	// returned, not saved, when either is nil.
	ObjectURLs sink.ObjectURLs
	Sink       sink.Sink
}

// HTTPClient implements Client over the DAM HTTP API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	tokens     auth.TokenProvider
	httpClient *http.Client
	log        logging.Logger
	objectURLs sink.ObjectURLs
	sink       sink.Sink
}

var _ Client = (*HTTPClient)(nil)

// New validates cfg and returns an HTTPClient.
func New(cfg Config) (*HTTPClient, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.New("client: base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: base url: %w", err)
	}
	if cfg.Tokens == nil {
		return nil, errors.New("client: token provider is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	var log logging.Logger = logging.Discard()
	if cfg.Logger != nil {
		log = cfg.Logger
	}

	return &HTTPClient{
		baseURL:    base,
		apiKey:     cfg.APIKey,
		tokens:     cfg.Tokens,
		httpClient: httpClient,
		log:        log,
		objectURLs: cfg.ObjectURLs,
		sink:       cfg.Sink,
	}, nil
}

// BaseURL returns the DAM origin requests are sent to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// request describes one call relative to the base URL.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	header http.Header
}

// doRaw sends r and returns the response whatever its status. The caller
// closes the body.
func (c *HTTPClient) doRaw(ctx context.Context, r request) (*http.Response, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerExperimental, "1")
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	c.log.Debug(ctx, "dam request", "method", r.method, "path", r.path)
	return c.httpClient.Do(req)
}

// do sends r, fails with *APIError on a non-2xx status and decodes a
// JSON body into out when out is not nil.
func (c *HTTPClient) do(ctx context.Context, r request, out any) (http.Header, error) {
	resp, err := c.doRaw(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, err
	}
	return resp.Header, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
