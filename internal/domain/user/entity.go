package user

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access
	RoleHR       Role = "HR"       // People operations: payroll, documents, approvals
	RoleManager  Role = "MANAGER"  // Can approve leave and review the team
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsAdminOrHR checks if the caller may act on any employee's records
func (p Principal) IsAdminOrHR() bool {
	return p.Role == RoleAdmin || p.Role == RoleHR
}

// CanApprove checks if the caller can approve requests
func (p Principal) CanApprove() bool {
	return p.IsAdminOrHR() || p.Role == RoleManager
}

// HasEmployee reports whether the user is linked to an employee profile.
func (p Principal) HasEmployee() bool {
	return p.EmployeeID != ""
}
