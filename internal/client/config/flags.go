package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/assetbrowser/internal/flagx"
)

var knownFlags = []string{"-b", "-u", "-t", "-n", "-w", "-d", "-s", "-db", "-i", "-r", "-sink", "-l"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-b string     delivery bucket
//	-u string     API base URL override
//	-t string     access token
//	-n int        hits per page
//	-w int        preview width in pixels
//	-d string     download directory
//	-s string     staging directory
//	-db string    preview cache DSN
//	-i duration   archive poll interval
//	-r int        archive poll max retries
//	-sink string  fs or s3
//	-l string     log level
//
// Arguments other than these flags are dropped with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("assetbrowser", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Bucket, "b", cfg.Bucket, "delivery bucket")
	fs.StringVar(&cfg.BaseURL, "u", cfg.BaseURL, "API base URL override")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.IntVar(&cfg.HitsPerPage, "n", cfg.HitsPerPage, "hits per page")
	fs.IntVar(&cfg.PreviewWidth, "w", cfg.PreviewWidth, "preview width in pixels")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.StagingDir, "s", cfg.StagingDir, "staging directory")
	fs.StringVar(&cfg.CacheDSN, "db", cfg.CacheDSN, "preview cache DSN")
	fs.DurationVar(&cfg.PollInterval, "i", cfg.PollInterval, "archive poll interval")
	fs.IntVar(&cfg.PollMaxRetries, "r", cfg.PollMaxRetries, "archive poll max retries")
	fs.StringVar(&cfg.SinkKind, "sink", cfg.SinkKind, "download sink: fs or s3")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
