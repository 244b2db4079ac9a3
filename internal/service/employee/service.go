package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-portal-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-portal-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/jwt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context) (employee.ProfileResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	if claims.EmployeeID == "" {
		return employee.ProfileResponse{}, auth.ErrEmployeeRequired
	}

	e, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID, claims.CompanyID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	return toProfileResponse(e), nil
}

// UpdateProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	claims, err := jwt.FromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	if claims.EmployeeID == "" {
		return employee.ProfileResponse{}, auth.ErrEmployeeRequired
	}

	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, claims.EmployeeID, claims.CompanyID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		e.PhoneNumber = optional(*req.PhoneNumber)
	}
	if req.Address != nil {
		e.Address = optional(*req.Address)
	}

	updated, err := s.employeeRepo.UpdateProfile(ctx, e)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	slog.Info("profile updated", "employee_id", updated.ID)

	return toProfileResponse(updated), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func toProfileResponse(e employee.Employee) employee.ProfileResponse {
	return employee.ProfileResponse{
		ID:           e.ID,
		EmployeeCode: e.EmployeeCode,
		FullName:     e.FullName,
		Email:        e.Email,
		PhoneNumber:  e.PhoneNumber,
		Address:      e.Address,
		Position:     e.Position,
		HireDate:     e.HireDate.Format("2006-01-02"),
		UpdatedAt:    e.UpdatedAt.Format(time.RFC3339),
	}
}
