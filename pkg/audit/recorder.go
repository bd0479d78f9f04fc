// Package audit appends human-readable audit lines to per-day log blobs
// and trims expired days on a schedule.
package audit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/tg-relay/pkg/repository"
)

//go:generate moq -out mocks/blob_store.go -pkg mocks -skip-ensure -fmt goimports . BlobStore

// BlobStore is the key-value storage audit logs live in
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}

const logPrefix = "logs/"

// Recorder appends events to the current day's log blob and deletes whole
// day-units older than the retention window. Day boundaries follow the
// configured timezone.
type Recorder struct {
	store         BlobStore
	loc           *time.Location
	keepDays      int
	checkInterval time.Duration

	nowFn       func() time.Time // injectable for tests
	lastCleanup string           // local date of the last cleanup run
}

// Params holds recorder configuration
type Params struct {
	Store         BlobStore
	Location      *time.Location
	KeepDays      int
	CheckInterval time.Duration
}

// NewRecorder creates a recorder with the given retention parameters
func NewRecorder(p Params) *Recorder {
	if p.Location == nil {
		p.Location = time.UTC
	}
	if p.KeepDays == 0 {
		p.KeepDays = 3
	}
	if p.CheckInterval == 0 {
		p.CheckInterval = time.Minute
	}
	return &Recorder{
		store:         p.Store,
		loc:           p.Location,
		keepDays:      p.KeepDays,
		checkInterval: p.CheckInterval,
		nowFn:         time.Now,
	}
}

// Record appends a timestamped line to today's log blob with
// read-modify-write. Failures are logged, an audit miss never breaks the
// operation being audited.
func (r *Recorder) Record(ctx context.Context, event string) {
	now := r.nowFn().In(r.loc)
	key := logKey(now)
	line := fmt.Sprintf("%s - %s\n", now.Format("2006-01-02 15:04:05"), event)

	content, err := r.store.Get(ctx, key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		lgr.Printf("[WARN] failed to read log %s: %v", key, err)
		return
	}

	if err := r.store.Put(ctx, key, append(content, line...)); err != nil {
		lgr.Printf("[WARN] failed to append log %s: %v", key, err)
	}
}

// Run executes the retention loop until the context is canceled. Cleanup
// fires once at startup and then whenever the local date has changed since
// the last run, checked on the polling interval.
func (r *Recorder) Run(ctx context.Context) {
	lgr.Printf("[INFO] audit retention started, keep %d days, tz %s", r.keepDays, r.loc)

	r.runCleanup(ctx)

	ticker := time.NewTicker(r.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] audit retention stopped")
			return
		case <-ticker.C:
			if r.nowFn().In(r.loc).Format("2006-01-02") != r.lastCleanup {
				r.runCleanup(ctx)
			}
		}
	}
}

func (r *Recorder) runCleanup(ctx context.Context) {
	r.lastCleanup = r.nowFn().In(r.loc).Format("2006-01-02")
	if err := r.Cleanup(ctx); err != nil {
		lgr.Printf("[WARN] log cleanup failed: %v", err)
	}
}

// Cleanup deletes log blobs for days older than the retention window.
// Keys that don't parse as day logs are left alone.
func (r *Recorder) Cleanup(ctx context.Context) error {
	keys, err := r.store.List(ctx, logPrefix)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	cutoff := r.nowFn().In(r.loc).AddDate(0, 0, -r.keepDays)

	removed := 0
	for _, key := range keys {
		day, ok := parseLogKey(key, r.loc)
		if !ok {
			continue
		}
		if !day.Before(cutoff) {
			continue
		}
		if err := r.store.Delete(ctx, key); err != nil {
			lgr.Printf("[WARN] failed to delete expired log %s: %v", key, err)
			continue
		}
		removed++
		r.Record(ctx, fmt.Sprintf("removed expired log %s", key))
	}

	if removed > 0 {
		lgr.Printf("[INFO] removed %d expired log files", removed)
	}
	return nil
}

func logKey(t time.Time) string {
	return logPrefix + t.Format("2006-01-02") + ".log"
}

func parseLogKey(key string, loc *time.Location) (time.Time, bool) {
	name := strings.TrimSuffix(strings.TrimPrefix(key, logPrefix), ".log")
	day, err := time.ParseInLocation("2006-01-02", name, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
