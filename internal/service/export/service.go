package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/attendance"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
)

type ExportServiceImpl struct {
	opts  Options
	logos LogoSource
	now   func() time.Time
}

// NewExportService returns the export boundary. logos may be nil.
func NewExportService(opts Options, logos LogoSource) export.ExportService {
	return &ExportServiceImpl{
		opts:  opts,
		logos: logos,
		now:   time.Now,
	}
}

// Export implements export.ExportService.
func (s *ExportServiceImpl) Export(ctx context.Context, rows []attendance.PresenceRow, f export.Format, header export.DocumentHeader) (export.File, error) {
	if len(rows) == 0 {
		return export.File{}, export.ErrNothingToExport
	}
	if header.GeneratedAt.IsZero() {
		header.GeneratedAt = s.now()
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case export.FormatCSV:
		data, err = ExportCSV(rows, s.opts)
	case export.FormatSpreadsheet:
		data, err = ExportSpreadsheet(rows, s.opts)
	case export.FormatDocument:
		if header.Logo == nil && s.logos != nil {
			header.Logo = s.logos.Logo(ctx, header.CompanyID)
		}
		data, err = ExportDocument(rows, header, s.opts)
	default:
		return export.File{}, export.ErrUnsupportedFormat
	}
	if err != nil {
		return export.File{}, fmt.Errorf("render %s export: %w", f, err)
	}

	slog.Info("Attendance export rendered",
		"format", string(f),
		"company_id", header.CompanyID,
		"rows", len(rows),
		"bytes", len(data),
	)

	return export.File{
		Name:        s.fileName(f, header.GeneratedAt),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

func (s *ExportServiceImpl) fileName(f export.Format, generatedAt time.Time) string {
	return "fichajes_" + generatedAt.In(s.opts.location()).Format("2006-01-02_150405") + "." + f.Extension()
}
