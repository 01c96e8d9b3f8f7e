// Package ioresolve implements the location resolution pass: it finds
// location tokens unknown to the reference store, resolves them in one
// batch against the geocoding database, folds the results back into
// the store, and renders a canonical location column for every row.
// This is an impure I/O package that implements amprep.Normalizer.
package ioresolve

import (
	"context"
	"log/slog"
	"time"

	"github.com/amphdata/amprep/pkg/amprep"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/amphdata/amprep/pkg/geocode"
	"github.com/amphdata/amprep/pkg/location"
	"github.com/amphdata/amprep/pkg/records"
	"github.com/amphdata/amprep/pkg/store"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// resolver implements the amprep.Normalizer interface.
type resolver struct {
	cfg    *config.Config
	store  store.Store
	finder geocode.Finder
}

// New creates a Normalizer over the given reference store and
// geocode finder.
func New(
	cfg *config.Config,
	st store.Store,
	finder geocode.Finder,
) amprep.Normalizer {
	return &resolver{cfg: cfg, store: st, finder: finder}
}

// UpdateLocations runs one resolution pass over the record set.
// The pass is additive: the raw location column stays untouched and a
// canonical column is appended. The reference store is loaded once,
// mutated in memory, and persisted once, after all upserts.
func (r *resolver) UpdateLocations(
	ctx context.Context,
	rs *records.RecordSet,
) error {
	runID := uuid.New().String()
	startTime := time.Now()
	slog.Info("Starting location resolution pass",
		"run_id", runID,
		"rows", rs.Len(),
	)

	if err := r.store.Load(); err != nil {
		return err
	}
	slog.Info("Reference store loaded",
		"run_id", runID,
		"regions", r.store.Len(),
	)

	locField := r.cfg.Records.LocationField
	rawCol, ok := rs.Column(locField)
	if !ok {
		return MissingFieldError(locField)
	}

	// One deduplicated batch across the whole input, not per row.
	unknowns := r.collectUnknowns(rawCol)
	slog.Info("Collected unknown tokens",
		"run_id", runID,
		"unknown", len(unknowns),
	)

	found, err := r.resolveBatch(ctx, unknowns)
	if err != nil {
		return err
	}

	if err = r.mergeAndPersist(found); err != nil {
		return err
	}

	formatted := make([]string, len(rawCol))
	for i, raw := range rawCol {
		formatted[i] = location.Render(location.Resolve(raw, r.store))
	}
	if err = rs.AddColumn(r.cfg.Records.FormattedField, formatted); err != nil {
		return ColumnError(r.cfg.Records.FormattedField, err)
	}

	slog.Info("Location resolution pass finished",
		"run_id", runID,
		"rows", humanize.Comma(int64(rs.Len())),
		"resolved", len(found),
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return nil
}

// collectUnknowns walks every row's raw location string and unions
// the unknown tokens into one batch. Tokens are deduplicated by their
// lowercase key; the first spelling seen is the one queried.
func (r *resolver) collectUnknowns(rawCol []string) []string {
	seen := make(map[string]struct{})
	var res []string
	for _, raw := range rawCol {
		for _, token := range location.FindUnknown(raw, r.store) {
			key := store.Key(token)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			res = append(res, token)
		}
	}
	return res
}

// mergeAndPersist upserts resolved records into the store and writes
// the store back. The write is skipped for an empty batch; nothing
// changed, and skipping keeps a read-only rerun cheap.
func (r *resolver) mergeAndPersist(found []store.RegionRecord) error {
	if len(found) == 0 {
		slog.Info("No new regions resolved, store left as is")
		return nil
	}

	for _, rec := range found {
		r.store.Upsert(rec)
	}
	if err := r.store.Save(); err != nil {
		return err
	}

	slog.Info("Reference store updated",
		"added", len(found),
		"regions", r.store.Len(),
	)
	return nil
}
