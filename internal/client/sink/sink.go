package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/filex"
	"github.com/dmitrijs2005/assetbrowser/internal/netx"
)

// Sink saves the content behind a URL under filename.
type Sink interface {
	Trigger(ctx context.Context, url, filename string) error
}

// Deliver stages blob as an object URL, triggers it into s and revokes
// the URL on every return path.
func Deliver(ctx context.Context, urls ObjectURLs, s Sink, blob *models.Blob, filename string) (err error) {
	objectURL, err := urls.Create(blob)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := urls.Revoke(objectURL); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}()

	return s.Trigger(ctx, objectURL, filename)
}

// open returns the content behind an http(s) URL or behind an object URL
// issued by objects. Anything else, a server supplied file:// URL
// included, is refused.
func open(ctx context.Context, client *http.Client, objects ObjectURLs, rawURL string) (io.ReadCloser, error) {
	if netx.IsRemote(rawURL) {
		return netx.Open(ctx, client, rawURL)
	}
	if objects == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObjectURL, rawURL)
	}
	return objects.Open(rawURL)
}

// FileSink writes triggered downloads into a directory.
type FileSink struct {
	dir     string
	client  *http.Client
	objects ObjectURLs
}

// NewFileSink creates dir if needed. client fetches remote URLs; nil
// means http.DefaultClient. objects resolves object URLs; with nil only
// remote URLs are accepted.
func NewFileSink(dir string, client *http.Client, objects ObjectURLs) (*FileSink, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, fmt.Errorf("download dir: %w", err)
	}
	return &FileSink{dir: abs, client: client, objects: objects}, nil
}

// Dir is the absolute download directory.
func (s *FileSink) Dir() string { return s.dir }

func (s *FileSink) Trigger(ctx context.Context, url, filename string) error {
	name := filex.SafeName(filename)
	if name == "" {
		name = ArchiveFilename(url)
	}

	src, err := open(ctx, s.client, s.objects, url)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}
