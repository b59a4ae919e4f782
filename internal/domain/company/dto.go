package company

type ScopeResponse struct {
	CompanyID     string `json:"company_id,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	EmployeeCount int    `json:"employee_count"`
	Truncated     bool   `json:"truncated"`
}

func NewScopeResponse(s Scope) ScopeResponse {
	return ScopeResponse{
		CompanyID:     s.CompanyID,
		CompanyName:   s.CompanyName,
		EmployeeCount: len(s.UserIDs),
		Truncated:     s.Truncated,
	}
}
