package iorecords

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/amphdata/amprep/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrNoHeader is returned for a CSV file without a header row.
var ErrNoHeader = errors.New("file has no header row")

func ReadError(path string, err error) error {
	msg := "Cannot read records from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordsReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read records %s: %w",
			fn, path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write records to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecordsWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write records %s: %w",
			fn, path, err),
	}
}
