// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/player-scraper/internal/logging"
	"github.com/pdiddy/player-scraper/internal/store"
	"github.com/pdiddy/player-scraper/pkg/types"
)

// ImportResult holds the outcome of an import run.
type ImportResult struct {
	Created int
	Updated int
	Failed  int
}

// Total returns the number of records processed.
func (r ImportResult) Total() int {
	return r.Created + r.Updated + r.Failed
}

// HasFailures reports whether any record failed.
func (r ImportResult) HasFailures() bool {
	return r.Failed > 0
}

// Import reconciles recs into s under mode, in file order so that a URL
// listed twice ends with its last row. A failed record is reported and
// skipped. Import stops early only when ctx is cancelled.
func Import(ctx context.Context, s Reconciler, recs []types.PlayerRecord, mode store.Mode, w io.Writer, log *logging.Logger) (ImportResult, error) {
	var result ImportResult
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out, err := s.Reconcile(ctx, rec, mode)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", rec.URL, err)
			log.Warn("import failed", "url", rec.URL, "mode", mode.String(), "err", err)
			result.Failed++
			continue
		}
		if out.Created {
			fmt.Fprintf(w, "created: %s (%s)\n", rec.URL, out.PlayerID)
			result.Created++
		} else {
			fmt.Fprintf(w, "updated: %s (%s)\n", rec.URL, out.PlayerID)
			result.Updated++
		}
	}

	fmt.Fprintf(w, "\nImport summary (%s): %d created, %d updated, %d failed (total: %d)\n",
		mode, result.Created, result.Updated, result.Failed, result.Total())
	log.Info("import finished", "mode", mode.String(), "created", result.Created,
		"updated", result.Updated, "failed", result.Failed)
	return result, nil
}
