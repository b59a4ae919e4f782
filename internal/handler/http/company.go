package http

import (
	"net/http"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/domain/company"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/handler/http/response"
)

type CompanyHandler interface {
	// GetScope returns the company and employee set the viewer can see
	GetScope(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	scopeService company.ScopeService
}

func NewCompanyHandler(scopeService company.ScopeService) CompanyHandler {
	return &CompanyHandlerImpl{scopeService: scopeService}
}

// GetScope handles GET /companies/my/scope
func (c *CompanyHandlerImpl) GetScope(w http.ResponseWriter, r *http.Request) {
	scope, err := c.scopeService.ResolveScope(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.NewScopeResponse(scope))
}
