package sink

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/filex"
	"github.com/dmitrijs2005/assetbrowser/internal/netx"
	"github.com/google/uuid"
)

var ErrUnknownObjectURL = errors.New("unknown object url")

// ObjectURLs creates and revokes URLs for in-memory blobs. Open reads a
// URL it created and has not revoked; any other URL is ErrUnknownObjectURL.
type ObjectURLs interface {
	Create(blob *models.Blob) (string, error)
	Open(objectURL string) (io.ReadCloser, error)
	Revoke(objectURL string) error
}

// Staging backs object URLs with files in a staging directory. Revoking a
// URL removes its file; revoking it twice is an error.
type Staging struct {
	dir string

	mu   sync.Mutex
	live map[string]string
}

// NewStaging creates dir if needed and returns a Staging over it.
func NewStaging(dir string) (*Staging, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("staging dir: %w", err)
	}
	return &Staging{dir: abs, live: make(map[string]string)}, nil
}

func (s *Staging) Create(blob *models.Blob) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString())
	if err := os.WriteFile(path, blob.Data, 0o600); err != nil {
		return "", fmt.Errorf("stage blob: %w", err)
	}

	u := netx.FileURL(path)
	s.mu.Lock()
	s.live[u] = path
	s.mu.Unlock()
	return u, nil
}

func (s *Staging) Open(objectURL string) (io.ReadCloser, error) {
	s.mu.Lock()
	path, ok := s.live[objectURL]
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObjectURL, objectURL)
	}
	return os.Open(path)
}

func (s *Staging) Revoke(objectURL string) error {
	s.mu.Lock()
	path, ok := s.live[objectURL]
	delete(s.live, objectURL)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObjectURL, objectURL)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("revoke %s: %w", objectURL, err)
	}
	return nil
}

// Live returns the number of created URLs not yet revoked.
func (s *Staging) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// ArchiveFilename derives the file name of a remote archive file from the
// last segment of its URL path, ignoring any query. It falls back to
// "archive.zip".
func ArchiveFilename(rawURL string) string {
	const fallback = "archive.zip"

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	} else if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	if name := filex.SafeName(p); name != "" {
		return name
	}
	return fallback
}
