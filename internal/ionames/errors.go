package ionames

import (
	"fmt"

	"github.com/amphdata/amprep/pkg/errcode"
	"github.com/gnames/gn"
)

func MissingFieldError(field string) error {
	msg := `Records have no <em>%s</em> column.
   Set the name columns with <em>--genus-field</em> and <em>--species-field</em>.`
	vars := []any{field}
	return &gn.Error{
		Code: errcode.RecordsFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing column %q", field),
	}
}
