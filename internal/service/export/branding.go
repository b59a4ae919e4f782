package export

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/storage"
)

const maxLogoBytes = 2 << 20

// LogoSource finds the logo printed on DOCUMENT exports.
type LogoSource interface {
	Logo(ctx context.Context, companyID string) []byte
}

// StorageLogoSource reads the company logo from the asset store, falling back
// to the branding logo. Missing or unusable logos yield nil.
type StorageLogoSource struct {
	files        storage.FileStorage
	companies    company.CompanyRepository
	fallbackPath string
}

func NewStorageLogoSource(files storage.FileStorage, companies company.CompanyRepository, fallbackPath string) *StorageLogoSource {
	return &StorageLogoSource{
		files:        files,
		companies:    companies,
		fallbackPath: fallbackPath,
	}
}

func (s *StorageLogoSource) Logo(ctx context.Context, companyID string) []byte {
	for _, path := range s.candidates(ctx, companyID) {
		data, err := s.files.ReadFile(ctx, path, maxLogoBytes)
		if err != nil {
			if !errors.Is(err, storage.ErrFileNotFound) {
				slog.Warn("Failed to read logo", "path", path, "error", err)
			}
			continue
		}
		if _, err := LogoImageType(data); err != nil {
			slog.Warn("Ignoring logo with unsupported format", "path", path)
			continue
		}
		return data
	}
	return nil
}

func (s *StorageLogoSource) candidates(ctx context.Context, companyID string) []string {
	var paths []string
	if companyID != "" && s.companies != nil {
		c, err := s.companies.GetByID(ctx, companyID)
		switch {
		case err == nil && c.LogoURL != nil && isStoragePath(*c.LogoURL):
			paths = append(paths, *c.LogoURL)
		case err != nil && !errors.Is(err, company.ErrCompanyNotFound):
			slog.Warn("Failed to look up company logo", "company_id", companyID, "error", err)
		}
	}
	if s.fallbackPath != "" {
		paths = append(paths, s.fallbackPath)
	}
	return paths
}

// isStoragePath rejects remote URLs, only files of the local asset store are embedded.
func isStoragePath(p string) bool {
	p = strings.TrimSpace(p)
	return p != "" && !strings.Contains(p, "://")
}
