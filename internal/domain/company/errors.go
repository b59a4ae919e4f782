package company

import "errors"

var (
	ErrCompanyNotFound   = errors.New("company not found")
	ErrScopeUnavailable  = errors.New("company scope could not be resolved")
	ErrInvalidScopeLimit = errors.New("scope limit must be a positive number")
)
