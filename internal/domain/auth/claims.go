package auth

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Can approve leave and manage records
	RoleEmployee Role = "employee" // Regular employee
)

// Claims is the caller identity carried by an access token.
type Claims struct {
	UserID     string
	EmployeeID string
	CompanyID  string
	Role       Role
}

// IsManager checks if the caller is manager or owner
func (c Claims) IsManager() bool {
	return c.Role == RoleManager || c.Role == RoleOwner
}
