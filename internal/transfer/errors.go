package transfer

import "errors"

var (
	ErrInvalidFormat     = errors.New("invalid import file")
	ErrNoEntries         = errors.New("no entries to import")
	ErrUnsupportedFormat = errors.New("unsupported file type")
	ErrNothingToExport   = errors.New("no entries to export")
)
