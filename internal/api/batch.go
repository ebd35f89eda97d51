package api

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is how many submission details are requested at once.
const DefaultBatchSize = 5

// DetailFetcher fetches one submission detail. *Client implements it.
type DetailFetcher interface {
	Submission(ctx context.Context, id string) (*SubmissionDetail, error)
}

// FetchDetails fetches the details for ids in strict batches of batchSize.
// Requests inside a batch run concurrently and the whole batch finishes before
// the next one starts. A failed item is logged and left out of the result.
// Cancellation is checked before each batch; once ctx is done the results
// gathered so far are returned together with ctx.Err().
func FetchDetails(ctx context.Context, f DetailFetcher, ids []string, batchSize int, logger *slog.Logger) (map[string]*SubmissionDetail, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make(map[string]*SubmissionDetail, len(ids))
	var mu sync.Mutex

	for start := 0; start < len(ids); start += batchSize {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		end := min(start+batchSize, len(ids))

		// Item errors never fail the group, so Wait only synchronizes.
		var g errgroup.Group
		for _, id := range ids[start:end] {
			g.Go(func() error {
				detail, err := f.Submission(ctx, id)
				if err != nil {
					logger.Warn("skipping submission detail", "id", id, "error", err)
					return nil
				}
				mu.Lock()
				results[id] = detail
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}
	return results, nil
}
