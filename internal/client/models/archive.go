package models

import "time"

// ArchiveState is the server-reported state of an archive job.
type ArchiveState string

const (
	ArchiveProcessing ArchiveState = "PROCESSING"
	ArchiveCompleted  ArchiveState = "COMPLETED"
	ArchiveFailed     ArchiveState = "FAILED"
)

// ArchiveItem selects the renditions of one asset to include.
type ArchiveItem struct {
	AssetID           string   `json:"assetId"`
	IncludeRenditions []string `json:"includeRenditions"`
}

// ArchiveRequest is the archive creation payload.
type ArchiveRequest struct {
	Items []ArchiveItem `json:"items"`
}

// ArchiveJob is returned when an archive is created.
type ArchiveJob struct {
	ID string `json:"id"`
}

// ArchiveStatus is one polled status of an archive job. Files is set
// only once the job is COMPLETED.
type ArchiveStatus struct {
	ID     string       `json:"id,omitempty"`
	Status ArchiveState `json:"status"`
	Files  []string     `json:"files,omitempty"`
}

// DownloadToken authorises a single download for a short time.
type DownloadToken struct {
	Token      string `json:"token"`
	ExpiryTime int64  `json:"expiryTime"`
}

// Expired reports whether the token expiry (milliseconds since epoch)
// has passed at now. A zero expiry never expires.
func (t *DownloadToken) Expired(now time.Time) bool {
	if t == nil {
		return true
	}
	if t.ExpiryTime == 0 {
		return false
	}
	return now.UnixMilli() >= t.ExpiryTime
}
