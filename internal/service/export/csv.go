package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
)

// ExportCSV writes a header row plus one record per row. Fields are quoted
// per RFC 4180 and timestamps are ISO-8601 UTC with milliseconds.
func ExportCSV(rows []attendance.PresenceRow, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(opts.Locale.Columns()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(newRecord(row, opts, false).strings()); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", row.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
