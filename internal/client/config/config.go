package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
)

// Sink kinds.
const (
	SinkFS = "fs"
	SinkS3 = "s3"
)

// Config holds runtime settings for the asset browser CLI.
//
// Fields:
//   - Bucket: delivery bucket, e.g. "delivery-p92206-e211033-cmstg".
//   - BaseURL: overrides the API base URL derived from Bucket.
//   - AccessToken: bearer token; prompted for when empty.
//   - PollInterval / PollMaxRetries: archive polling budget.
//   - SinkKind: where downloads go, SinkFS or SinkS3.
type Config struct {
	Bucket      string
	BaseURL     string
	AccessToken string

	HitsPerPage  int
	PreviewWidth int

	DownloadDir string
	StagingDir  string
	CacheDSN    string

	PollInterval   time.Duration
	PollMaxRetries int

	SinkKind string
	S3       sink.S3Config

	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.HitsPerPage = 24
	c.PreviewWidth = 350
	c.DownloadDir = "download"
	c.StagingDir = "staging"
	c.CacheDSN = "previews.db"
	c.PollInterval = 5 * time.Second
	c.PollMaxRetries = 60
	c.SinkKind = SinkFS
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("bucket is required")
	}
	if c.HitsPerPage <= 0 {
		return fmt.Errorf("hits per page must be positive, got %d", c.HitsPerPage)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.PollMaxRetries <= 0 {
		return fmt.Errorf("poll max retries must be positive, got %d", c.PollMaxRetries)
	}
	switch c.SinkKind {
	case SinkFS:
	case SinkS3:
		if c.S3.Bucket == "" {
			return errors.New("s3 sink requires a bucket")
		}
	default:
		return fmt.Errorf("unknown sink %q", c.SinkKind)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags. Later sources
// take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
