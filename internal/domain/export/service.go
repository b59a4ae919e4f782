package export

import (
	"context"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
)

// ExportService renders an already composed row list. It knows nothing about filters.
type ExportService interface {
	Export(ctx context.Context, rows []attendance.PresenceRow, format Format, header DocumentHeader) (File, error)
}
