package employee

import "context"

// EmployeeService serves the caller's own profile
type EmployeeService interface {
	GetProfile(ctx context.Context) (ProfileResponse, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)
}
