// Package config loads runtime configuration for the asset browser CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: .env.local and .env are loaded with godotenv, then
//     DAM_* variables are read (DAM_BUCKET, DAM_BASE_URL, DAM_ACCESS_TOKEN,
//     DAM_HITS_PER_PAGE, DAM_PREVIEW_WIDTH, DAM_DOWNLOAD_DIR,
//     DAM_STAGING_DIR, DAM_CACHE_DSN, DAM_POLL_INTERVAL,
//     DAM_POLL_MAX_RETRIES, DAM_SINK, DAM_S3_*, DAM_LOG_LEVEL).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "5s" or
// integer nanoseconds. Keys that are absent keep their earlier value:
//
//	{
//	  "bucket": "delivery-p92206-e211033-cmstg",
//	  "hits_per_page": 48,
//	  "poll_interval": "5s",
//	  "sink": "s3",
//	  "s3": {"bucket": "downloads", "region": "eu-west-1", "prefix": "dam/"}
//	}
//
// Primary API
//
//   - type Config
//   - func LoadConfig(args []string) (*Config, error)
//   - func (*Config) LoadDefaults()
//   - func (*Config) Validate() error
package config
