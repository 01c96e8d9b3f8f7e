// Package records provides the tabular record set model shared by the
// record source, the location orchestrator and the name checker. The
// model is format-agnostic; reading and writing files is the business
// of internal/iorecords.
package records

// RecordSet is an ordered collection of rows under a named header.
// Row order is preserved through every transform.
type RecordSet struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// New creates a record set from a header and rows. Every row must
// have the same number of cells as the header.
func New(header []string, rows [][]string) (*RecordSet, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &FieldCountError{Row: i, Got: len(row), Want: len(header)}
		}
	}
	return &RecordSet{header: header, index: index, rows: rows}, nil
}

// Header returns the column names in order.
func (rs *RecordSet) Header() []string {
	return rs.header
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.rows)
}

// Rows returns the underlying rows. Callers must treat the result as
// read-only; mutation goes through AddColumn.
func (rs *RecordSet) Rows() [][]string {
	return rs.rows
}

// HasField reports whether a column exists.
func (rs *RecordSet) HasField(name string) bool {
	_, ok := rs.index[name]
	return ok
}

// Field returns the value of a named column in row i.
func (rs *RecordSet) Field(i int, name string) (string, bool) {
	col, ok := rs.index[name]
	if !ok {
		return "", false
	}
	return rs.rows[i][col], true
}

// Column returns all values of a named column in row order, one entry
// per row, duplicates preserved.
func (rs *RecordSet) Column(name string) ([]string, bool) {
	col, ok := rs.index[name]
	if !ok {
		return nil, false
	}
	res := make([]string, len(rs.rows))
	for i, row := range rs.rows {
		res[i] = row[col]
	}
	return res, true
}

// AddColumn appends a new column with one value per row. Existing
// columns are never overwritten; the transform is additive.
func (rs *RecordSet) AddColumn(name string, values []string) error {
	if _, ok := rs.index[name]; ok {
		return &ColumnExistsError{Name: name}
	}
	if len(values) != len(rs.rows) {
		return &ColumnLengthError{Name: name, Got: len(values), Want: len(rs.rows)}
	}
	rs.index[name] = len(rs.header)
	rs.header = append(rs.header, name)
	for i := range rs.rows {
		rs.rows[i] = append(rs.rows[i], values[i])
	}
	return nil
}
