package export

import (
	"strings"
	"time"
)

type Format string

const (
	FormatCSV         Format = "csv"
	FormatSpreadsheet Format = "xlsx"
	FormatDocument    Format = "pdf"
)

// ParseFormat accepts the file extension or the format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "spreadsheet":
		return FormatSpreadsheet, nil
	case "pdf", "document":
		return FormatDocument, nil
	}
	return "", ErrUnsupportedFormat
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatSpreadsheet:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDocument:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func (f Format) Extension() string {
	return string(f)
}

// DocumentHeader is rendered above the table of a DOCUMENT export.
type DocumentHeader struct {
	Logo        []byte // PNG or JPEG, optional
	CompanyName string
	CompanyID   string
	GeneratedAt time.Time
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
}
