package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFiles are loaded before the environment is read. godotenv never
// overrides a variable that is already set, so the first file wins.
var dotenvFiles = []string{".env.local", ".env"}

// parseEnv overlays Config with DAM_* environment variables after loading
// any dotenv files present in the working directory.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	str := map[string]*string{
		"DAM_BUCKET":        &cfg.Bucket,
		"DAM_BASE_URL":      &cfg.BaseURL,
		"DAM_ACCESS_TOKEN":  &cfg.AccessToken,
		"DAM_DOWNLOAD_DIR":  &cfg.DownloadDir,
		"DAM_STAGING_DIR":   &cfg.StagingDir,
		"DAM_CACHE_DSN":     &cfg.CacheDSN,
		"DAM_SINK":          &cfg.SinkKind,
		"DAM_LOG_LEVEL":     &cfg.LogLevel,
		"DAM_S3_BUCKET":     &cfg.S3.Bucket,
		"DAM_S3_REGION":     &cfg.S3.Region,
		"DAM_S3_ENDPOINT":   &cfg.S3.Endpoint,
		"DAM_S3_ACCESS_KEY": &cfg.S3.AccessKey,
		"DAM_S3_SECRET_KEY": &cfg.S3.SecretKey,
		"DAM_S3_PREFIX":     &cfg.S3.Prefix,
	}
	for name, dst := range str {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"DAM_HITS_PER_PAGE":    &cfg.HitsPerPage,
		"DAM_PREVIEW_WIDTH":    &cfg.PreviewWidth,
		"DAM_POLL_MAX_RETRIES": &cfg.PollMaxRetries,
	}
	for name, dst := range ints {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}

	if v, ok := os.LookupEnv("DAM_POLL_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DAM_POLL_INTERVAL: %w", err)
		}
		cfg.PollInterval = d
	}
	return nil
}
