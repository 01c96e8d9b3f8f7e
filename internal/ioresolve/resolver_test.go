package ioresolve_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/amphdata/amprep/internal/ioresolve"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/amphdata/amprep/pkg/geocode"
	"github.com/amphdata/amprep/pkg/records"
	"github.com/amphdata/amprep/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory store for orchestrator tests. It counts
// Save calls to verify persistence semantics.
type memStore struct {
	order     []string
	recs      map[string]store.RegionRecord
	saveCalls int
	saveErr   error
}

func newMemStore(recs ...store.RegionRecord) *memStore {
	res := &memStore{recs: make(map[string]store.RegionRecord)}
	for _, rec := range recs {
		res.Upsert(rec)
	}
	return res
}

func (m *memStore) Load() error { return nil }
func (m *memStore) Len() int    { return len(m.recs) }

func (m *memStore) Save() error {
	m.saveCalls++
	return m.saveErr
}

func (m *memStore) Lookup(name string) (store.RegionRecord, bool) {
	rec, ok := m.recs[store.Key(name)]
	return rec, ok
}

func (m *memStore) Upsert(rec store.RegionRecord) {
	key := store.Key(rec.Region)
	if _, ok := m.recs[key]; !ok {
		m.order = append(m.order, key)
	}
	m.recs[key] = rec
}

func (m *memStore) Regions() []store.RegionRecord {
	res := make([]store.RegionRecord, len(m.order))
	for i, key := range m.order {
		res[i] = m.recs[key]
	}
	return res
}

// memFinder is a canned geocode finder. It records the queried tokens;
// workers run concurrently, so access is guarded.
type memFinder struct {
	mu      sync.Mutex
	results map[string]geocode.Result
	failOn  map[string]bool
	queried []string
}

func newMemFinder() *memFinder {
	return &memFinder{
		results: make(map[string]geocode.Result),
		failOn:  make(map[string]bool),
	}
}

func (f *memFinder) Connect(ctx context.Context) error { return nil }
func (f *memFinder) Close() error                      { return nil }

func (f *memFinder) Find(
	ctx context.Context,
	name string,
) (geocode.Result, bool, error) {
	f.mu.Lock()
	f.queried = append(f.queried, name)
	f.mu.Unlock()

	if f.failOn[name] {
		return geocode.Result{}, false, fmt.Errorf("lookup of %q failed", name)
	}
	res, ok := f.results[name]
	return res, ok, nil
}

func (f *memFinder) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queried)
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(2)})
	return cfg
}

func testRecords(t *testing.T, locations ...string) *records.RecordSet {
	t.Helper()
	rows := make([][]string, len(locations))
	for i, loc := range locations {
		rows[i] = []string{fmt.Sprintf("sp%d", i), loc}
	}
	rs, err := records.New([]string{"Species", "GeographicRegion"}, rows)
	require.NoError(t, err)
	return rs
}

func formattedColumn(t *testing.T, rs *records.RecordSet) []string {
	t.Helper()
	col, ok := rs.Column("FormattedGeographicRegion")
	require.True(t, ok)
	return col
}

func bolivia() store.RegionRecord {
	return store.RegionRecord{
		Region:          "Bolivia",
		Country:         "Bolivia",
		CountryFullName: "Bolivia, Plurinational State of",
		Continent:       "South America",
		CountryCode:     "BO",
	}
}

// TestUpdateLocations runs the reference scenario: a known segment is
// canonicalized, an unknown one is queried once, passes through and
// nothing in the raw column changes.
func TestUpdateLocations(t *testing.T) {
	st := newMemStore(bolivia())
	finder := newMemFinder()
	rs := testRecords(t, "Bolivia/Unknownia", "Bolivia")

	norm := ioresolve.New(testConfig(), st, finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))

	assert.Equal(t,
		[]string{"South America Bolivia Bolivia/Unknownia",
			"South America Bolivia Bolivia"},
		formattedColumn(t, rs),
	)

	// raw column untouched
	raw, _ := rs.Column("GeographicRegion")
	assert.Equal(t, []string{"Bolivia/Unknownia", "Bolivia"}, raw)

	// exactly one external query, for the one unknown token
	assert.Equal(t, []string{"Unknownia"}, finder.queried)

	// nothing resolved, so the store is not rewritten
	assert.Zero(t, st.saveCalls)
}

// TestUpdateLocations_Resolves verifies that a successful lookup is
// folded into the store, persisted once, and used for rendering.
func TestUpdateLocations_Resolves(t *testing.T) {
	st := newMemStore()
	finder := newMemFinder()
	finder.results["Cusco"] = geocode.Result{
		CountryFullName: "Peru",
		Continent:       "South America",
		CountryCode:     "PE",
	}
	rs := testRecords(t, "Cusco", "Cusco/Atlantis")

	norm := ioresolve.New(testConfig(), st, finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))

	assert.Equal(t,
		[]string{"South America Peru Cusco",
			"South America Peru Cusco/Atlantis"},
		formattedColumn(t, rs),
	)

	assert.Equal(t, 1, st.saveCalls)
	rec, ok := st.Lookup("cusco")
	require.True(t, ok)
	assert.Equal(t, "Peru", rec.Country)
}

// TestUpdateLocations_Dedup verifies the batch is deduplicated
// case-insensitively before any lookup runs.
func TestUpdateLocations_Dedup(t *testing.T) {
	st := newMemStore()
	finder := newMemFinder()
	rs := testRecords(t, "Alpha", "alpha", "ALPHA/Beta", "Beta")

	norm := ioresolve.New(testConfig(), st, finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))

	assert.Equal(t, 2, finder.queryCount())
	// the first spelling seen is the one queried
	assert.Contains(t, finder.queried, "Alpha")
	assert.Contains(t, finder.queried, "Beta")
}

// TestUpdateLocations_LookupFailure verifies that one failed lookup
// does not abort the pass; the token passes through unresolved.
func TestUpdateLocations_LookupFailure(t *testing.T) {
	st := newMemStore()
	finder := newMemFinder()
	finder.failOn["Brokenia"] = true
	finder.results["Cusco"] = geocode.Result{
		CountryFullName: "Peru",
		Continent:       "South America",
	}
	rs := testRecords(t, "Brokenia", "Cusco")

	norm := ioresolve.New(testConfig(), st, finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))

	assert.Equal(t,
		[]string{"Brokenia", "South America Peru Cusco"},
		formattedColumn(t, rs),
	)
}

// TestUpdateLocations_Idempotent verifies that a second pass over the
// same input needs no new lookups once the store learned the region.
func TestUpdateLocations_Idempotent(t *testing.T) {
	st := newMemStore()
	finder := newMemFinder()
	finder.results["Cusco"] = geocode.Result{
		CountryFullName: "Peru",
		Continent:       "South America",
	}
	cfg := testConfig()

	rs := testRecords(t, "Cusco")
	norm := ioresolve.New(cfg, st, finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))
	first := formattedColumn(t, rs)

	rs2 := testRecords(t, "Cusco")
	require.NoError(t, norm.UpdateLocations(context.Background(), rs2))

	assert.Equal(t, first, formattedColumn(t, rs2))
	assert.Equal(t, 1, finder.queryCount(), "second pass hits the store")
	assert.Equal(t, 1, st.saveCalls)
}

// TestUpdateLocations_SaveFailure verifies a persist failure aborts
// the pass before any column is added.
func TestUpdateLocations_SaveFailure(t *testing.T) {
	st := newMemStore()
	st.saveErr = fmt.Errorf("disk full")
	finder := newMemFinder()
	finder.results["Cusco"] = geocode.Result{
		CountryFullName: "Peru",
		Continent:       "South America",
	}
	rs := testRecords(t, "Cusco")

	norm := ioresolve.New(testConfig(), st, finder)
	err := norm.UpdateLocations(context.Background(), rs)
	require.Error(t, err)
	assert.False(t, rs.HasField("FormattedGeographicRegion"))

	// the in-memory store still holds the resolved record
	_, ok := st.Lookup("cusco")
	assert.True(t, ok)
}

func TestUpdateLocations_MissingColumn(t *testing.T) {
	rs, err := records.New([]string{"Species"}, [][]string{{"sp0"}})
	require.NoError(t, err)

	norm := ioresolve.New(testConfig(), newMemStore(), newMemFinder())
	err = norm.UpdateLocations(context.Background(), rs)
	assert.Error(t, err)
}

// TestUpdateLocations_EmptyLocation verifies that rows with an empty
// location produce an empty canonical value and no lookups.
func TestUpdateLocations_EmptyLocation(t *testing.T) {
	finder := newMemFinder()
	rs := testRecords(t, "", "/")

	norm := ioresolve.New(testConfig(), newMemStore(), finder)
	require.NoError(t, norm.UpdateLocations(context.Background(), rs))

	assert.Equal(t, []string{"", "/"}, formattedColumn(t, rs))
	assert.Zero(t, finder.queryCount())
}
