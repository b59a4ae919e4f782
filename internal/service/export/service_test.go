package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/export"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogos struct {
	logo  []byte
	calls int
}

func (s *stubLogos) Logo(ctx context.Context, companyID string) []byte {
	s.calls++
	return s.logo
}

type stubCompanies struct {
	companies map[string]company.Company
}

func (s stubCompanies) ResolveCompanyForUser(ctx context.Context, userID string) (*string, error) {
	return nil, nil
}

func (s stubCompanies) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (s stubCompanies) ListUserIDs(ctx context.Context, companyID string, limit int) ([]string, error) {
	return nil, nil
}

func newTestExportService(logos LogoSource) *ExportServiceImpl {
	svc := NewExportService(testOpts, logos).(*ExportServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 6, 15, 4, 5, 0, time.UTC) }
	return svc
}

func TestExportService_Export(t *testing.T) {
	tests := []struct {
		format      export.Format
		contentType string
		name        string
	}{
		{export.FormatCSV, "text/csv; charset=utf-8", "fichajes_2024-03-06_090405.csv"},
		{export.FormatSpreadsheet, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "fichajes_2024-03-06_090405.xlsx"},
		{export.FormatDocument, "application/pdf", "fichajes_2024-03-06_090405.pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			svc := newTestExportService(nil)

			file, err := svc.Export(context.Background(), sampleRows(), tt.format, export.DocumentHeader{CompanyID: "acme"})

			require.NoError(t, err)
			assert.Equal(t, tt.name, file.Name)
			assert.Equal(t, tt.contentType, file.ContentType)
			assert.NotEmpty(t, file.Data)
		})
	}
}

func TestExportService_RejectsEmptyRows(t *testing.T) {
	svc := newTestExportService(nil)

	for _, f := range []export.Format{export.FormatCSV, export.FormatSpreadsheet, export.FormatDocument} {
		_, err := svc.Export(context.Background(), nil, f, export.DocumentHeader{})
		assert.ErrorIs(t, err, export.ErrNothingToExport, string(f))
	}
}

func TestExportService_UnsupportedFormat(t *testing.T) {
	_, err := newTestExportService(nil).Export(context.Background(), sampleRows(), export.Format("docx"), export.DocumentHeader{})
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestExportService_LoadsLogoOnlyForDocuments(t *testing.T) {
	logos := &stubLogos{logo: testPNG(t)}
	svc := newTestExportService(logos)

	_, err := svc.Export(context.Background(), sampleRows(), export.FormatCSV, export.DocumentHeader{})
	require.NoError(t, err)
	assert.Equal(t, 0, logos.calls)

	file, err := svc.Export(context.Background(), sampleRows(), export.FormatDocument, export.DocumentHeader{CompanyID: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 1, logos.calls)
	assert.True(t, bytes.Contains(file.Data, []byte("/Subtype /Image")))
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatSpreadsheet, f)

	_, err = export.ParseFormat("docx")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)
}

func TestStorageLogoSource(t *testing.T) {
	dir := t.TempDir()
	logo := testPNG(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logos"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos", "acme.png"), logo, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos", "default.png"), logo, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos", "broken.png"), []byte("not an image"), 0644))

	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	acmeLogo := "logos/acme.png"
	brokenLogo := "logos/broken.png"
	remoteLogo := "https://cdn.example.com/logo.png"
	companies := stubCompanies{companies: map[string]company.Company{
		"acme":   {ID: "acme", LogoURL: &acmeLogo},
		"broken": {ID: "broken", LogoURL: &brokenLogo},
		"remote": {ID: "remote", LogoURL: &remoteLogo},
	}}

	src := NewStorageLogoSource(files, companies, "logos/default.png")
	ctx := context.Background()

	assert.Equal(t, logo, src.Logo(ctx, "acme"))
	assert.Equal(t, logo, src.Logo(ctx, "broken"), "falls back to the branding logo")
	assert.Equal(t, logo, src.Logo(ctx, "remote"))
	assert.Equal(t, logo, src.Logo(ctx, "unknown"))

	noFallback := NewStorageLogoSource(files, companies, "")
	assert.Nil(t, noFallback.Logo(ctx, "broken"))
	assert.Nil(t, noFallback.Logo(ctx, ""))
}
