package company

type Company struct {
	ID      string
	Name    string
	LogoURL *string
}

// Scope is the set of employees a viewer is allowed to see.
type Scope struct {
	CompanyID   string
	CompanyName string
	UserIDs     []string
	// Truncated is set when the company has more employees than the resolver cap.
	Truncated bool
}

// IsEmpty reports whether the scope can only produce "no data".
func (s Scope) IsEmpty() bool {
	return len(s.UserIDs) == 0
}
