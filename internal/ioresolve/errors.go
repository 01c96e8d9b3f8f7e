package ioresolve

import (
	"fmt"
	"runtime"

	"github.com/amphdata/amprep/pkg/errcode"
	"github.com/gnames/gn"
)

func MissingFieldError(field string) error {
	msg := `Records have no <em>%s</em> column.
   Set the raw location column with <em>--location-field</em>.`
	vars := []any{field}
	return &gn.Error{
		Code: errcode.RecordsFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing column %q", field),
	}
}

func ColumnError(field string, err error) error {
	msg := "Cannot add column <em>%s</em> to records"
	vars := []any{field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordsFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot add column %q: %w", fn, field, err),
	}
}

func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ResolveCancelledError,
		Msg:  "Resolution pass was cancelled",
		Err:  fmt.Errorf("resolution pass cancelled: %w", err),
	}
}
