package iostore_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/amphdata/amprep/internal/iostore"
	"github.com/amphdata/amprep/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "habitat": {"cloud forest": {"elevation_m": 2000}},
  "region": {
    "bolivia": {
      "region": "Bolivia",
      "country": "Bolivia",
      "country_full_name": "Bolivia, Plurinational State of",
      "continent": "South America",
      "latitude": -16.5,
      "longitude": -68.1,
      "country_code": "BO"
    },
    "la paz": {
      "region": "La Paz",
      "country": "Bolivia",
      "country_full_name": "Bolivia, Plurinational State of",
      "continent": "South America",
      "latitude": -16.49,
      "longitude": -68.11,
      "country_code": "BO"
    }
  },
  "taxonomy": ["Anura", "Caudata"]
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "location.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestLoadLookup(t *testing.T) {
	st := iostore.New(writeDoc(t, sampleDoc), false)
	require.NoError(t, st.Load())

	assert.Equal(t, 2, st.Len())

	// lookups are case-insensitive
	for _, name := range []string{"bolivia", "Bolivia", "BOLIVIA"} {
		rec, ok := st.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "Bolivia", rec.Region, name)
		assert.Equal(t, "South America", rec.Continent, name)
	}

	_, ok := st.Lookup("peru")
	assert.False(t, ok)
}

// TestRegionsOrder verifies records come back in document order; the
// substring tie-break during resolution depends on it.
func TestRegionsOrder(t *testing.T) {
	st := iostore.New(writeDoc(t, sampleDoc), false)
	require.NoError(t, st.Load())

	regs := st.Regions()
	require.Len(t, regs, 2)
	assert.Equal(t, "Bolivia", regs[0].Region)
	assert.Equal(t, "La Paz", regs[1].Region)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location.json")

	// missing document aborts by default
	st := iostore.New(path, false)
	require.Error(t, st.Load())

	// with bootstrap it yields an empty store
	st = iostore.New(path, true)
	require.NoError(t, st.Load())
	assert.Zero(t, st.Len())
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		msg, doc string
	}{
		{"truncated", `{"region": {`},
		{"root not object", `["region"]`},
		{"region not object", `{"region": 42}`},
	}

	for _, tt := range tests {
		path := writeDoc(t, tt.doc)
		// bootstrap covers a missing document only, never a broken one
		st := iostore.New(path, true)
		assert.Error(t, st.Load(), tt.msg)
	}
}

// TestSaveRoundtrip verifies that foreign top-level sections and their
// order survive a load/upsert/save cycle untouched.
func TestSaveRoundtrip(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	st := iostore.New(path, false)
	require.NoError(t, st.Load())

	st.Upsert(store.RegionRecord{
		Region:    "Cochabamba",
		Country:   "Bolivia",
		Continent: "South America",
	})
	require.NoError(t, st.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "habitat")
	assert.Contains(t, doc, "region")
	assert.Contains(t, doc, "taxonomy")
	assert.JSONEq(t,
		`{"cloud forest": {"elevation_m": 2000}}`, string(doc["habitat"]))
	assert.JSONEq(t, `["Anura", "Caudata"]`, string(doc["taxonomy"]))

	// reload through a fresh store, order and content intact
	st2 := iostore.New(path, false)
	require.NoError(t, st2.Load())
	assert.Equal(t, 3, st2.Len())

	regs := st2.Regions()
	require.Len(t, regs, 3)
	assert.Equal(t, "Bolivia", regs[0].Region)
	assert.Equal(t, "La Paz", regs[1].Region)
	assert.Equal(t, "Cochabamba", regs[2].Region)

	rec, ok := st2.Lookup("COCHABAMBA")
	require.True(t, ok)
	assert.Equal(t, "Bolivia", rec.Country)
}

// TestSaveBootstrap verifies a bootstrapped store writes a valid
// document with a region section from scratch.
func TestSaveBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "location.json")
	st := iostore.New(path, true)
	require.NoError(t, st.Load())

	st.Upsert(store.RegionRecord{Region: "Bolivia", Country: "Bolivia"})
	require.NoError(t, st.Save())

	st2 := iostore.New(path, false)
	require.NoError(t, st2.Load())
	assert.Equal(t, 1, st2.Len())
	_, ok := st2.Lookup("bolivia")
	assert.True(t, ok)
}

func TestUpsertReplaces(t *testing.T) {
	st := iostore.New(writeDoc(t, sampleDoc), false)
	require.NoError(t, st.Load())

	st.Upsert(store.RegionRecord{Region: "BOLIVIA", Country: "Bolivia"})
	assert.Equal(t, 2, st.Len(), "same key, no growth")

	rec, ok := st.Lookup("bolivia")
	require.True(t, ok)
	assert.Equal(t, "BOLIVIA", rec.Region, "last write wins")

	// replacement does not reorder
	assert.Equal(t, "BOLIVIA", st.Regions()[0].Region)
}
