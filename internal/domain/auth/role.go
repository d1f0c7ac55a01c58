package auth

// Role is carried in the "role" claim of access tokens.
type Role string

const (
	// RoleOwner may change payment status and send messages.
	RoleOwner Role = "owner"
	// RoleStaff records attendance and reads payroll.
	RoleStaff Role = "staff"
)

func (r Role) IsValid() bool {
	return r == RoleOwner || r == RoleStaff
}
