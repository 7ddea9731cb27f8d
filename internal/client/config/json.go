package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
	"github.com/dmitrijs2005/assetbrowser/internal/flagx"
	"github.com/dmitrijs2005/assetbrowser/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Pointers tell absent keys apart from zero values, so a file only
// overrides what it names. Intervals use timex.Duration and may be
// strings like "5s" or integer nanoseconds.
type JsonConfig struct {
	Bucket         *string         `json:"bucket"`
	BaseURL        *string         `json:"base_url"`
	AccessToken    *string         `json:"access_token"`
	HitsPerPage    *int            `json:"hits_per_page"`
	PreviewWidth   *int            `json:"preview_width"`
	DownloadDir    *string         `json:"download_dir"`
	StagingDir     *string         `json:"staging_dir"`
	CacheDSN       *string         `json:"cache_dsn"`
	PollInterval   *timex.Duration `json:"poll_interval"`
	PollMaxRetries *int            `json:"poll_max_retries"`
	Sink           *string         `json:"sink"`
	S3             *sink.S3Config  `json:"s3"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named
// by -c or -config. Without either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.Bucket, jc.Bucket)
	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.AccessToken, jc.AccessToken)
	setIf(&cfg.HitsPerPage, jc.HitsPerPage)
	setIf(&cfg.PreviewWidth, jc.PreviewWidth)
	setIf(&cfg.DownloadDir, jc.DownloadDir)
	setIf(&cfg.StagingDir, jc.StagingDir)
	setIf(&cfg.CacheDSN, jc.CacheDSN)
	setIf(&cfg.PollMaxRetries, jc.PollMaxRetries)
	setIf(&cfg.SinkKind, jc.Sink)
	setIf(&cfg.S3, jc.S3)
	setIf(&cfg.LogLevel, jc.LogLevel)
	if jc.PollInterval != nil {
		cfg.PollInterval = jc.PollInterval.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
