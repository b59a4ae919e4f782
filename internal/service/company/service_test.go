package company

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCompanyRepository struct {
	mock.Mock
}

func (m *mockCompanyRepository) ResolveCompanyForUser(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	id, _ := args.Get(0).(*string)
	return id, args.Error(1)
}

func (m *mockCompanyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(company.Company), args.Error(1)
}

func (m *mockCompanyRepository) ListUserIDs(ctx context.Context, companyID string, limit int) ([]string, error) {
	args := m.Called(ctx, companyID, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestScopeService_ResolveScope_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCompanyRepository)
	repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(strPtr("acme"), nil)
	repo.On("GetByID", ctx, "acme").Return(company.Company{ID: "acme", Name: "Acme S.A."}, nil)
	repo.On("ListUserIDs", ctx, "acme", 4).Return([]string{"u1", "u2", "u3"}, nil)

	svc := NewScopeService(repo, 3)
	scope, err := svc.ResolveScope(ctx, "viewer-1")

	require.NoError(t, err)
	assert.Equal(t, "acme", scope.CompanyID)
	assert.Equal(t, "Acme S.A.", scope.CompanyName)
	assert.Equal(t, []string{"u1", "u2", "u3"}, scope.UserIDs)
	assert.False(t, scope.Truncated)
	repo.AssertExpectations(t)
}

func TestScopeService_ResolveScope_Truncated(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCompanyRepository)
	repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(strPtr("acme"), nil)
	repo.On("GetByID", ctx, "acme").Return(company.Company{ID: "acme", Name: "Acme"}, nil)
	repo.On("ListUserIDs", ctx, "acme", 3).Return([]string{"u1", "u2", "u3"}, nil)

	svc := NewScopeService(repo, 2)
	scope, err := svc.ResolveScope(ctx, "viewer-1")

	require.NoError(t, err)
	assert.True(t, scope.Truncated)
	assert.Equal(t, []string{"u1", "u2"}, scope.UserIDs)
}

func TestScopeService_ResolveScope_EmptyIdentity(t *testing.T) {
	repo := new(mockCompanyRepository)
	svc := NewScopeService(repo, 10)

	scope, err := svc.ResolveScope(context.Background(), "  ")

	require.NoError(t, err)
	assert.True(t, scope.IsEmpty())
	repo.AssertNotCalled(t, "ResolveCompanyForUser", mock.Anything, mock.Anything)
}

func TestScopeService_ResolveScope_NoCompany(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCompanyRepository)
	repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(nil, nil)

	svc := NewScopeService(repo, 10)
	scope, err := svc.ResolveScope(ctx, "viewer-1")

	require.NoError(t, err)
	assert.True(t, scope.IsEmpty())
	assert.Empty(t, scope.CompanyID)
	repo.AssertNotCalled(t, "ListUserIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestScopeService_ResolveScope_MissingCompanyRow(t *testing.T) {
	ctx := context.Background()
	repo := new(mockCompanyRepository)
	repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(strPtr("ghost"), nil)
	repo.On("GetByID", ctx, "ghost").Return(company.Company{}, company.ErrCompanyNotFound)
	repo.On("ListUserIDs", ctx, "ghost", 11).Return([]string{"u1"}, nil)

	svc := NewScopeService(repo, 10)
	scope, err := svc.ResolveScope(ctx, "viewer-1")

	require.NoError(t, err)
	assert.Equal(t, "ghost", scope.CompanyID)
	assert.Empty(t, scope.CompanyName)
	assert.Equal(t, []string{"u1"}, scope.UserIDs)
}

func TestScopeService_ResolveScope_StoreFailure(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(repo *mockCompanyRepository)
	}{
		{
			name: "resolve company",
			setup: func(repo *mockCompanyRepository) {
				repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(nil, storeErr)
			},
		},
		{
			name: "get company",
			setup: func(repo *mockCompanyRepository) {
				repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(strPtr("acme"), nil)
				repo.On("GetByID", ctx, "acme").Return(company.Company{}, storeErr)
			},
		},
		{
			name: "list employees",
			setup: func(repo *mockCompanyRepository) {
				repo.On("ResolveCompanyForUser", ctx, "viewer-1").Return(strPtr("acme"), nil)
				repo.On("GetByID", ctx, "acme").Return(company.Company{ID: "acme"}, nil)
				repo.On("ListUserIDs", ctx, "acme", 11).Return(nil, storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockCompanyRepository)
			tt.setup(repo)

			_, err := NewScopeService(repo, 10).ResolveScope(ctx, "viewer-1")

			assert.ErrorIs(t, err, company.ErrScopeUnavailable)
			assert.ErrorIs(t, err, storeErr)
		})
	}
}

func TestNewScopeService_DefaultCap(t *testing.T) {
	svc := NewScopeService(new(mockCompanyRepository), 0).(*ScopeServiceImpl)
	assert.Equal(t, DefaultMaxEmployees, svc.MaxEmployees())
}
