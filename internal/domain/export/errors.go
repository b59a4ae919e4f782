package export

import "errors"

var (
	ErrNothingToExport   = errors.New("there are no rows to export")
	ErrUnsupportedFormat = errors.New("format must be one of: csv, xlsx, pdf")
	ErrUnsupportedLogo   = errors.New("logo must be a PNG or JPEG image")
	ErrRenderFailed      = errors.New("failed to render export")
)
