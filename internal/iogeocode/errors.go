package iogeocode

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/amphdata/amprep/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	msg := `Cannot open geocoding database at <em>%s</em>.
   Set its location with <em>--geocode-db</em> or in config.yaml.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open geocode db %s: %w",
			fn, path, err),
	}
}

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.GeocodeNotConnectedError,
		Msg:  "Geocoding database is not connected",
		Err:  errors.New("geocode finder used before Connect"),
	}
}

func QueryError(name string, err error) error {
	msg := "Lookup of <em>%s</em> in geocoding database failed"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GeocodeQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: geocode query for %q: %w",
			fn, name, err),
	}
}
