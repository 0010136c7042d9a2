// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs batches of subjects through fetch, extraction and
// reconciliation, and imports record files into the store.
//
// Each subject is processed independently: a failure is reported on the
// status writer, counted, and the batch moves on.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/pdiddy/player-scraper/internal/extract"
	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

const defaultWorkers = 4

// ErrBatchFailures reports that at least one subject failed.
var ErrBatchFailures = errors.New("batch had failures")

// Fetcher retrieves a parsed page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Reconciler merges a record into persistent storage.
type Reconciler interface {
	Reconcile(ctx context.Context, rec types.PlayerRecord, mode store.Mode) (store.Outcome, error)
}

// Status is the outcome of one subject.
type Status int

const (
	StatusScraped Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusScraped:
		return "scraped"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Item is the result for one input URL.
type Item struct {
	URL    string
	Status Status
	Record *types.PlayerRecord
	Err    error
}

// BatchResult holds the outcome of a scrape run. Items follow input order.
type BatchResult struct {
	Scraped int
	Skipped int
	Failed  int
	Items   []Item
}

// Total returns the number of subjects processed.
func (r BatchResult) Total() int {
	return r.Scraped + r.Skipped + r.Failed
}

// HasFailures reports whether any subject failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Records returns the extracted records in input order.
func (r BatchResult) Records() []types.PlayerRecord {
	var recs []types.PlayerRecord
	for _, it := range r.Items {
		if it.Record != nil {
			recs = append(recs, *it.Record)
		}
	}
	return recs
}

// Runner scrapes subjects concurrently.
type Runner struct {
	Fetcher Fetcher

	// Store, when set, receives every extracted record in refresh mode.
	Store Reconciler

	// Workers bounds concurrent subjects (default 4).
	Workers int

	// Now is the extraction clock. Defaults to time.Now.
	Now func() time.Time

	Log *logging.Logger

	// Out receives one status line per subject and the batch summary.
	Out io.Writer

	outMu sync.Mutex
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	r.outMu.Lock()
	defer r.outMu.Unlock()
	fmt.Fprintf(r.Out, format, args...)
}

// Run processes urls and returns the per-subject outcomes. A cancelled
// context stops new subjects from starting; those already running finish.
// The returned error is non-nil only when the batch could not run or was
// cancelled.
func (r *Runner) Run(ctx context.Context, urls []string) (BatchResult, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return BatchResult{}, errors.Wrap(err, "creating worker pool")
	}
	defer pool.Release()

	items := make([]Item, len(urls))
	var wg sync.WaitGroup

	var runErr error
	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			items[i] = r.process(ctx, url)
		}); err != nil {
			wg.Done()
			runErr = errors.Wrapf(err, "submitting %s", url)
			break
		}
	}
	wg.Wait()

	var result BatchResult
	for _, it := range items {
		// Never started.
		if it.URL == "" {
			continue
		}
		switch it.Status {
		case StatusScraped:
			result.Scraped++
		case StatusSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
		result.Items = append(result.Items, it)
	}

	r.printf("\nBatch summary: %d scraped, %d skipped, %d failed (total: %d)\n",
		result.Scraped, result.Skipped, result.Failed, result.Total())
	r.Log.Info("batch finished",
		"scraped", result.Scraped, "skipped", result.Skipped, "failed", result.Failed,
		"requested", len(urls))

	return result, runErr
}

// process handles one subject end to end. A record that fails to
// reconcile is still returned with the item.
func (r *Runner) process(ctx context.Context, url string) Item {
	it := Item{URL: url}

	doc, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return r.fail(it, err)
	}

	rec, ok := extract.Player(doc, url, extract.Options{Now: r.Now})
	if !ok {
		it.Status = StatusSkipped
		r.printf("skipped: %s (not a football player page)\n", url)
		r.Log.Debug("page out of scope", "url", url)
		return it
	}
	it.Record = &rec

	if r.Store != nil {
		out, err := r.Store.Reconcile(ctx, rec, store.ModeRefresh)
		if err != nil {
			return r.fail(it, fmt.Errorf("reconciling: %w", err))
		}
		rec.PlayerID = out.PlayerID
	}

	it.Status = StatusScraped
	r.printf("scraped: %s\n", url)
	r.Log.Debug("subject scraped", "url", url, "club", rec.CurrentClub)
	return it
}

func (r *Runner) fail(it Item, err error) Item {
	it.Status = StatusFailed
	it.Err = err
	r.printf("failed:  %s (%v)\n", it.URL, err)
	r.Log.Warn("subject failed", "url", it.URL, "err", err)
	return it
}
