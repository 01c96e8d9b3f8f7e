package records

import "fmt"

// FieldCountError is returned when a row does not match the header.
type FieldCountError struct {
	Row  int
	Got  int
	Want int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf(
		"row %d has %d fields, header has %d", e.Row, e.Got, e.Want,
	)
}

// ColumnExistsError is returned when adding a column that is already
// present.
type ColumnExistsError struct {
	Name string
}

func (e *ColumnExistsError) Error() string {
	return fmt.Sprintf("column %q already exists", e.Name)
}

// ColumnLengthError is returned when a new column does not have one
// value per row.
type ColumnLengthError struct {
	Name string
	Got  int
	Want int
}

func (e *ColumnLengthError) Error() string {
	return fmt.Sprintf(
		"column %q has %d values for %d rows", e.Name, e.Got, e.Want,
	)
}
