package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrCompanyRequired       = errors.New("company_id claim is missing or invalid")
	ErrEmployeeRequired      = errors.New("employee_id claim is missing or invalid")
	ErrManagerAccessRequired = errors.New("manager access required")
)
