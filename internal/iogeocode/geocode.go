// Package iogeocode implements the geocoding lookup against a local
// SQLite reference database. This is an impure I/O package that
// implements the contract defined in pkg/geocode.
//
// The database schema is the geonames-style dump used by the report
// pipeline: a geocode table (place_name, alternate_names, coordinates,
// country_code) joined to a country_codes reference table.
package iogeocode

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/amphdata/amprep/pkg/geocode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	// SQLite driver, cgo-free.
	_ "modernc.org/sqlite"
)

const findQuery = `
SELECT Country_Name, Continent_Name, latitude, longitude, country_code
FROM geocode
JOIN country_codes
  ON geocode.country_code = country_codes.Two_Letter_Country_Code
WHERE place_name LIKE ? OR alternate_names LIKE ?
LIMIT 1
`

// sqliteFinder implements geocode.Finder over database/sql with the
// modernc sqlite driver.
type sqliteFinder struct {
	path    string
	timeout time.Duration
	title   cases.Caser
	db      *sql.DB
}

// New creates a finder for the SQLite database at path. Every lookup
// is bounded by timeout; a lookup that runs out of time reports a
// query error which the resolver downgrades to no-match.
func New(path string, timeout time.Duration) geocode.Finder {
	return &sqliteFinder{
		path:    path,
		timeout: timeout,
		title:   cases.Title(language.English),
	}
}

// Connect opens the database and verifies it is reachable. The sqlite
// driver would silently create an empty database for a missing file,
// so existence is checked first.
func (f *sqliteFinder) Connect(ctx context.Context) error {
	if _, err := os.Stat(f.path); err != nil {
		return OpenError(f.path, err)
	}

	db, err := sql.Open("sqlite", f.path)
	if err != nil {
		return OpenError(f.path, err)
	}
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return OpenError(f.path, err)
	}
	f.db = db
	return nil
}

// Close releases the database handle.
func (f *sqliteFinder) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}

// DB exposes the underlying handle. Used by tests to seed in-memory
// databases.
func (f *sqliteFinder) DB() *sql.DB {
	return f.db
}

// Find looks up a place name. The match is a title-cased substring
// match against the primary place name and the alternate names,
// limited to the first row.
func (f *sqliteFinder) Find(
	ctx context.Context,
	name string,
) (geocode.Result, bool, error) {
	var res geocode.Result
	if f.db == nil {
		return res, false, NotConnectedError()
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	pattern := "%" + f.title.String(name) + "%"
	row := f.db.QueryRowContext(ctx, findQuery, pattern, pattern)
	err := row.Scan(
		&res.CountryFullName, &res.Continent,
		&res.Latitude, &res.Longitude, &res.CountryCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return res, false, nil
	}
	if err != nil {
		return res, false, QueryError(name, err)
	}
	return res, true, nil
}
