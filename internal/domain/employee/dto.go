package employee

import (
	"strings"

	"github.com/cmlabs-hris/hris-portal-go/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil {
		*r.FullName = strings.TrimSpace(*r.FullName)
		if *r.FullName == "" {
			errs.Add("full_name", "full_name must not be empty")
		} else if len(*r.FullName) > 255 {
			errs.Add("full_name", "full_name must not exceed 255 characters")
		}
	}
	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must start with 08, 62 or +62 and have 10-13 digits")
	}
	if r.Address != nil && len(*r.Address) > 500 {
		errs.Add("address", "address must not exceed 500 characters")
	}
	if r.FullName == nil && r.PhoneNumber == nil && r.Address == nil {
		errs.Add("body", "at least one field must be provided")
	}

	return errs.Err()
}

type ProfileResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Address      *string `json:"address,omitempty"`
	Position     *string `json:"position,omitempty"`
	HireDate     string  `json:"hire_date"`
	UpdatedAt    string  `json:"updated_at"`
}
