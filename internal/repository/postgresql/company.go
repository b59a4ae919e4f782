package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/database"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db database.Querier
}

func NewCompanyRepository(db database.Querier) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// ResolveCompanyForUser implements company.CompanyRepository.
func (c *companyRepositoryImpl) ResolveCompanyForUser(ctx context.Context, userID string) (*string, error) {
	if !validator.IsValidUUID(userID) {
		return nil, nil
	}

	query := `SELECT id_empresa::text FROM usuarios WHERE id = $1::uuid`

	var companyID *string
	err := c.db.QueryRow(ctx, query, userID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve company for user %s: %w", userID, err)
	}
	return companyID, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	if !validator.IsValidUUID(id) {
		return company.Company{}, company.ErrCompanyNotFound
	}

	query := `
		SELECT id::text, COALESCE(nombre, ''), logo_url
		FROM empresas
		WHERE id = $1::uuid
	`

	var found company.Company
	err := c.db.QueryRow(ctx, query, id).Scan(&found.ID, &found.Name, &found.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}
	return found, nil
}

// ListUserIDs implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListUserIDs(ctx context.Context, companyID string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, company.ErrInvalidScopeLimit
	}

	query := `
		SELECT id::text
		FROM usuarios
		WHERE id_empresa = $1::uuid
		ORDER BY id
		LIMIT $2
	`

	rows, err := c.db.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users of company %s: %w", companyID, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users of company %s: %w", companyID, err)
	}
	return ids, nil
}
