package services

import (
	"errors"
	"fmt"
)

var (
	ErrNothingSelected  = errors.New("nothing selected")
	ErrUnknownAssetName = errors.New("asset name unknown, search for the asset first")
)

// BulkDownloadError reports an archive download that did not complete.
type BulkDownloadError struct {
	Failed int
	Total  int
	// State is the terminal archive state, e.g. "FAILED" or "TIMED_OUT".
	State string
}

func (e *BulkDownloadError) Error() string {
	msg := fmt.Sprintf("failed to download %d of %d assets", e.Failed, e.Total)
	if e.State != "" {
		msg += " (archive " + e.State + ")"
	}
	return msg
}
