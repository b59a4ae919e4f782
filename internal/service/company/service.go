package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
)

// DefaultMaxEmployees caps how many employee ids a single scope carries.
const DefaultMaxEmployees = 5000

type ScopeServiceImpl struct {
	company.CompanyRepository
	maxEmployees int
}

func NewScopeService(repo company.CompanyRepository, maxEmployees int) company.ScopeService {
	if maxEmployees <= 0 {
		maxEmployees = DefaultMaxEmployees
	}
	return &ScopeServiceImpl{
		CompanyRepository: repo,
		maxEmployees:      maxEmployees,
	}
}

// ResolveScope implements company.ScopeService.
func (s *ScopeServiceImpl) ResolveScope(ctx context.Context, userID string) (company.Scope, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return company.Scope{}, nil
	}

	companyID, err := s.CompanyRepository.ResolveCompanyForUser(ctx, userID)
	if err != nil {
		return company.Scope{}, fmt.Errorf("%w: resolve company for user: %w", company.ErrScopeUnavailable, err)
	}
	if companyID == nil || *companyID == "" {
		slog.Debug("User has no company, scope is empty", "user_id", userID)
		return company.Scope{}, nil
	}

	scope := company.Scope{CompanyID: *companyID}

	companyData, err := s.CompanyRepository.GetByID(ctx, *companyID)
	switch {
	case err == nil:
		scope.CompanyName = companyData.Name
	case errors.Is(err, company.ErrCompanyNotFound):
		// Employees may still reference a company row that was removed.
		slog.Warn("Company referenced by user not found", "user_id", userID, "company_id", *companyID)
	default:
		return company.Scope{}, fmt.Errorf("%w: get company: %w", company.ErrScopeUnavailable, err)
	}

	// Ask for one more than the cap to detect truncation.
	userIDs, err := s.CompanyRepository.ListUserIDs(ctx, *companyID, s.maxEmployees+1)
	if err != nil {
		return company.Scope{}, fmt.Errorf("%w: list employees: %w", company.ErrScopeUnavailable, err)
	}
	if len(userIDs) > s.maxEmployees {
		userIDs = userIDs[:s.maxEmployees]
		scope.Truncated = true
		slog.Warn("Company scope truncated",
			"company_id", *companyID,
			"limit", s.maxEmployees,
		)
	}
	scope.UserIDs = userIDs

	return scope, nil
}

// MaxEmployees returns the cap applied to every scope.
func (s *ScopeServiceImpl) MaxEmployees() int {
	return s.maxEmployees
}
