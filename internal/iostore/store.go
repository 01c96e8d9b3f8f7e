// Package iostore implements the reference store on top of a JSON
// document. This is an impure I/O package that implements the
// contract defined in pkg/store.
package iostore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/amphdata/amprep/pkg/store"
)

const regionSection = "region"

// jsonStore holds the reference document in memory between Load and
// Save. Top-level sections other than "region" are kept as raw bytes
// and written back untouched.
type jsonStore struct {
	path      string
	bootstrap bool

	topOrder []string
	sections map[string]json.RawMessage

	order   []string
	regions map[string]store.RegionRecord
}

// New creates a reference store backed by the JSON document at path.
// When bootstrap is true a missing document yields an empty store
// instead of a load error; a malformed document is always an error.
func New(path string, bootstrap bool) store.Store {
	return &jsonStore{
		path:      path,
		bootstrap: bootstrap,
		sections:  make(map[string]json.RawMessage),
		regions:   make(map[string]store.RegionRecord),
	}
}

// Load reads the whole document. Region keys keep the order they have
// in the document, so substring tie-breaks during segment resolution
// are reproducible across runs.
func (s *jsonStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && s.bootstrap {
			return nil
		}
		return ReadError(s.path, err)
	}

	topOrder, sections, err := decodeSections(data)
	if err != nil {
		return DecodeError(s.path, err)
	}
	s.topOrder = topOrder
	s.sections = sections

	raw, ok := sections[regionSection]
	if !ok {
		return nil
	}

	order, regions, err := decodeRegions(raw)
	if err != nil {
		return DecodeError(s.path, err)
	}
	s.order = order
	s.regions = regions
	return nil
}

// Lookup finds a record by region name, case-insensitively.
func (s *jsonStore) Lookup(regionName string) (store.RegionRecord, bool) {
	rec, ok := s.regions[store.Key(regionName)]
	return rec, ok
}

// Upsert adds or replaces a record. Last write wins; a new key is
// appended to the iteration order.
func (s *jsonStore) Upsert(rec store.RegionRecord) {
	key := store.Key(rec.Region)
	if _, ok := s.regions[key]; !ok {
		s.order = append(s.order, key)
	}
	s.regions[key] = rec
}

// Regions returns all records in insertion order.
func (s *jsonStore) Regions() []store.RegionRecord {
	res := make([]store.RegionRecord, len(s.order))
	for i, key := range s.order {
		res[i] = s.regions[key]
	}
	return res
}

// Len returns the number of region records.
func (s *jsonStore) Len() int {
	return len(s.regions)
}

// Save rewrites the whole document atomically: the region section is
// re-encoded from memory, every other top-level section is written
// back byte-for-byte, and the result replaces the document via a
// rename in the same directory.
func (s *jsonStore) Save() error {
	doc, err := s.encode()
	if err != nil {
		return PersistError(s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".location-*.json")
	if err != nil {
		return PersistError(s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err = tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return PersistError(s.path, err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return PersistError(s.path, err)
	}
	if err = os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return PersistError(s.path, err)
	}
	return nil
}

func (s *jsonStore) encode() ([]byte, error) {
	region, err := encodeRegions(s.order, s.regions)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')

	order := s.topOrder
	if !contains(order, regionSection) {
		order = append([]string{regionSection}, order...)
	}

	for i, key := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if key == regionSection {
			buf.Write(region)
		} else {
			buf.Write(s.sections[key])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
