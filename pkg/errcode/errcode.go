package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	ReadFileError
	WriteConfigError

	// Logging errors
	CreateLogFileError

	// Reference store errors
	StoreReadError
	StoreDecodeError
	StorePersistError

	// Geocode database errors
	GeocodeOpenError
	GeocodeNotConnectedError
	GeocodeQueryError

	// Records errors
	RecordsReadError
	RecordsWriteError
	RecordsFieldError

	// Name check errors
	NamesParseError

	// Resolution pass errors
	ResolveCancelledError
)
