// Package iorecords reads and writes species record sets as CSV
// files. This is the upstream record source and downstream sink of
// the pipeline; it does no cleaning, coercion or deduplication.
package iorecords

import (
	"encoding/csv"
	"os"

	"github.com/amphdata/amprep/pkg/records"
)

// Read loads a record set from a CSV file. The first row is the
// header; every following row is one species record.
func Read(path string) (*records.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, ReadError(path, err)
	}
	if len(rows) == 0 {
		return nil, ReadError(path, ErrNoHeader)
	}

	rs, err := records.New(rows[0], rows[1:])
	if err != nil {
		return nil, ReadError(path, err)
	}
	return rs, nil
}

// Write saves a record set to a CSV file, header first, rows in
// their original order.
func Write(path string, rs *records.RecordSet) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}

	w := csv.NewWriter(f)
	if err = w.Write(rs.Header()); err != nil {
		f.Close()
		return WriteError(path, err)
	}
	if err = w.WriteAll(rs.Rows()); err != nil {
		f.Close()
		return WriteError(path, err)
	}
	w.Flush()
	if err = w.Error(); err != nil {
		f.Close()
		return WriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return WriteError(path, err)
	}
	return nil
}
