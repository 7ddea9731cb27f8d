// Package bucket derives search index names, API-key tiers and service
// base URLs from an AEM delivery bucket identifier such as
// "delivery-p92206-e211033-cmstg".
package bucket

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidBucketFormat is returned when a bucket carries no
// p<digits>-e<digits> program/environment pair.
var ErrInvalidBucketFormat = errors.New("invalid bucket format")

// Tier selects which API key is sent with every request.
type Tier string

const (
	TierStage Tier = "stage"
	TierProd  Tier = "prod"
)

const (
	stageMarker = "-cmstg"

	stageAPIKey = "asset_search_service_stage"
	prodAPIKey  = "asset_search_service"
)

var programEnvPattern = regexp.MustCompile(`p(\d+)-e(\d+)`)

// IndexName returns "<program>-<environment>" for the first
// p<digits>-e<digits> pair found anywhere in b.
func IndexName(b string) (string, error) {
	m := programEnvPattern.FindStringSubmatch(b)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBucketFormat, b)
	}
	return m[1] + "-" + m[2], nil
}

// TierOf classifies the bucket as stage when it carries the -cmstg
// suffix marker, prod otherwise.
func TierOf(b string) Tier {
	if strings.Contains(b, stageMarker) {
		return TierStage
	}
	return TierProd
}

// APIKey returns the x-api-key value for the tier.
func (t Tier) APIKey() string {
	if t == TierStage {
		return stageAPIKey
	}
	return prodAPIKey
}

// Bucket bundles everything derived from one bucket identifier.
type Bucket struct {
	ID        string
	IndexName string
	Tier      Tier
}

// Parse resolves b. It fails fast, before any network call, when the
// identifier is malformed.
func Parse(b string) (Bucket, error) {
	b = strings.TrimSpace(b)
	index, err := IndexName(b)
	if err != nil {
		return Bucket{}, err
	}
	return Bucket{ID: b, IndexName: index, Tier: TierOf(b)}, nil
}

// CollectionsIndex is the index holding collections for this bucket.
func (b Bucket) CollectionsIndex() string {
	return b.IndexName + "_collections"
}

// APIKey is the x-api-key header value for the bucket's tier.
func (b Bucket) APIKey() string {
	return b.Tier.APIKey()
}

// BaseURL is the delivery host serving this bucket.
func (b Bucket) BaseURL() string {
	return "https://" + b.ID + ".adobeaemcloud.com"
}
