package company

import "context"

type CompanyRepository interface {
	// ResolveCompanyForUser returns nil when the user has no company
	ResolveCompanyForUser(ctx context.Context, userID string) (*string, error)
	GetByID(ctx context.Context, id string) (Company, error)
	// ListUserIDs returns at most limit user ids of the company, ordered by id
	ListUserIDs(ctx context.Context, companyID string, limit int) ([]string, error)
}
