package ioresolve

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amphdata/amprep/pkg/store"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"
)

// resolveBatch queries the geocoding database for every token of the
// deduplicated batch. Lookups are independent, so they run on a
// worker pool; results are joined here, before the single-writer
// merge/persist step.
//
// A failed lookup is recoverable: the token is logged and treated as
// no-match, the rest of the batch continues. Only cancellation stops
// the batch.
func (r *resolver) resolveBatch(
	ctx context.Context,
	tokens []string,
) ([]store.RegionRecord, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	bar := pb.Full.Start(len(tokens))
	bar.Set("prefix", "Resolving locations: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	chIn := make(chan string)
	chOut := make(chan store.RegionRecord)

	g, gCtx := errgroup.WithContext(ctx)

	// Feed tokens to the workers.
	g.Go(func() error {
		defer close(chIn)
		for _, token := range tokens {
			select {
			case <-gCtx.Done():
				return CancelledError(gCtx.Err())
			case chIn <- token:
			}
		}
		return nil
	})

	// Worker pool over the batch. Each worker owns its lookups; the
	// store is never touched here.
	jobs := r.cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return r.lookupWorker(gCtx, chIn, chOut, bar)
		})
	}

	// Close chOut after all workers finish so the collector below
	// knows no more data is coming.
	go func() {
		wg.Wait()
		close(chOut)
	}()

	var found []store.RegionRecord
	g.Go(func() error {
		for rec := range chOut {
			found = append(found, rec)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return found, nil
}

// lookupWorker resolves tokens one by one. A query failure or timeout
// downgrades to no-match for that token; the token may resolve on a
// future run when the external data changes.
func (r *resolver) lookupWorker(
	ctx context.Context,
	chIn <-chan string,
	chOut chan<- store.RegionRecord,
	bar *pb.ProgressBar,
) error {
	for token := range chIn {
		res, ok, err := r.finder.Find(ctx, token)
		bar.Increment()
		if err != nil {
			slog.Warn("Geocode lookup failed, treating as no match",
				"token", token,
				"error", err,
			)
			continue
		}
		if !ok {
			slog.Debug("No geocode match", "token", token)
			continue
		}

		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		case chOut <- res.Record(token):
		}
	}
	return nil
}
