package archive

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/dmitrijs2005/assetbrowser/internal/client/sink"
	"github.com/dmitrijs2005/assetbrowser/internal/clock"
	"github.com/dmitrijs2005/assetbrowser/internal/logging"
	"github.com/dmitrijs2005/assetbrowser/internal/netx"
	"github.com/google/uuid"
)

const (
	DefaultInterval   = 5 * time.Second
	DefaultMaxRetries = 60
)

// State is the local state of an archive job.
type State int

const (
	StateCreating State = iota
	StatePolling
	StateCompleted
	StateFailed
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateCreating:
		return "CREATING"
	case StatePolling:
		return "POLLING"
	case StateCompleted:
		return "COMPLETED"
	case StateFailed:
		return "FAILED"
	case StateTimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateTimedOut
}

// API is the part of the transfer client the poller needs.
type API interface {
	CreateArchive(ctx context.Context, items []models.ArchiveItem) (*models.ArchiveJob, error)
	GetArchiveStatus(ctx context.Context, archiveID string) (*models.ArchiveStatus, error)
}

// Result describes how a job ended.
type Result struct {
	State     State
	ArchiveID string
	Polls     int
	Files     []string
	// FailedFiles counts archive files the sink could not save.
	FailedFiles int
}

// OK reports whether the job completed.
func (r *Result) OK() bool {
	return r != nil && r.State == StateCompleted
}

type Poller struct {
	api        API
	sink       sink.Sink
	clock      clock.Clock
	interval   time.Duration
	maxRetries int
	log        logging.Logger
}

type Option func(*Poller)

func WithClock(c clock.Clock) Option {
	return func(p *Poller) { p.clock = c }
}

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func WithMaxRetries(n int) Option {
	return func(p *Poller) { p.maxRetries = n }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Poller) { p.log = l }
}

// New returns a poller that saves archive files into s. With a nil s the
// job still runs but every file of a completed archive counts as failed.
func New(api API, s sink.Sink, opts ...Option) *Poller {
	p := &Poller{
		api:        api,
		sink:       s,
		clock:      clock.Real{},
		interval:   DefaultInterval,
		maxRetries: DefaultMaxRetries,
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(p)
	}
	if p.maxRetries <= 0 {
		p.maxRetries = DefaultMaxRetries
	}
	if p.interval < 0 {
		p.interval = 0
	}
	return p
}

// Run creates an archive of items and follows it to a terminal state.
//
// Transport errors during creation or polling are returned. A non-2xx
// creation or status response, a FAILED job and an exhausted retry budget
// are not errors: they come back as a Result whose OK is false.
func (p *Poller) Run(ctx context.Context, items []models.ArchiveItem) (*Result, error) {
	log := p.log.With("run_id", uuid.NewString())
	res := &Result{State: StateCreating}

	job, err := p.api.CreateArchive(ctx, items)
	if err != nil {
		res.State = StateFailed
		return res, err
	}
	if job == nil || job.ID == "" {
		log.Warn(ctx, "archive creation rejected", "items", len(items))
		res.State = StateFailed
		return res, nil
	}

	res.ArchiveID = job.ID
	res.State = StatePolling
	log = log.With("archive_id", job.ID)
	log.Info(ctx, "archive created", "items", len(items))

	retries := 0
	for {
		st, err := p.api.GetArchiveStatus(ctx, job.ID)
		res.Polls++
		if err != nil {
			res.State = StateFailed
			return res, err
		}
		if st == nil {
			log.Warn(ctx, "archive status unavailable", "polls", res.Polls)
			res.State = StateFailed
			return res, nil
		}

		switch st.Status {
		case models.ArchiveFailed:
			log.Warn(ctx, "archive failed", "polls", res.Polls)
			res.State = StateFailed
			return res, nil
		case models.ArchiveCompleted:
			res.Files = st.Files
			res.FailedFiles = p.downloadAll(ctx, log, st.Files)
			res.State = StateCompleted
			log.Info(ctx, "archive completed", "polls", res.Polls, "files", len(st.Files), "failed_files", res.FailedFiles)
			return res, nil
		}

		retries++
		if retries >= p.maxRetries {
			log.Warn(ctx, "archive timed out", "polls", res.Polls)
			res.State = StateTimedOut
			return res, nil
		}

		log.Debug(ctx, "archive processing", "status", st.Status, "retry", retries)
		select {
		case <-ctx.Done():
			res.State = StateFailed
			return res, ctx.Err()
		case <-p.clock.After(p.interval):
		}
	}
}

// downloadAll saves every file in parallel and returns how many failed.
// Only http and https files reach the sink; any other scheme counts as failed.
func (p *Poller) downloadAll(ctx context.Context, log logging.Logger, files []string) int {
	if p.sink == nil {
		log.Warn(ctx, "archive files not saved: no sink configured", "files", len(files))
		return len(files)
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, f := range files {
		if !netx.IsRemote(f) {
			failed.Add(1)
			log.Warn(ctx, "archive file refused", "file", f, "error", netx.ErrUnsupportedScheme)
			continue
		}
		wg.Add(1)
		go func(fileURL string) {
			defer wg.Done()
			name := sink.ArchiveFilename(fileURL)
			if err := p.sink.Trigger(ctx, fileURL, name); err != nil {
				failed.Add(1)
				log.Warn(ctx, "archive file download failed", "file", name, "error", err)
			}
		}(f)
	}
	wg.Wait()
	return int(failed.Load())
}
