package iostore

import (
	"fmt"
	"runtime"

	"github.com/amphdata/amprep/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	msg := `Cannot read reference store at <em>%s</em>.
   Use <em>--bootstrap-store</em> to start from an empty store.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read store %s: %w",
			fn, path, err),
	}
}

func DecodeError(path string, err error) error {
	msg := `Reference store at <em>%s</em> is malformed.
   The document was left untouched, fix or remove it manually.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot decode store %s: %w",
			fn, path, err),
	}
}

func PersistError(path string, err error) error {
	msg := "Cannot write reference store to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StorePersistError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write store %s: %w",
			fn, path, err),
	}
}
