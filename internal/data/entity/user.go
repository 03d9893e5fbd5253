package entity

type UserRole string

const (
	RoleStudent     UserRole = "student"
	RoleProfessor   UserRole = "professor"
	RoleCoordinator UserRole = "coordinator"
	RoleAdmin       UserRole = "admin"
)

// CanDecide reports whether the role may approve or reject reservations.
func (r UserRole) CanDecide() bool {
	return r == RoleCoordinator || r == RoleAdmin
}

func (r UserRole) CanViewReports() bool {
	return r != RoleStudent
}

// User is an account. RequestedRole holds a privileged role picked at
// sign-up until an admin grants it.
type User struct {
	BaseSimple
	FullName      string   `json:"full_name"`
	Email         string   `json:"email"`
	RA            string   `json:"ra"`
	Course        string   `json:"course"`
	Role          UserRole `json:"role"`
	RequestedRole UserRole `json:"requested_role,omitempty"`
	PasswordHash  string   `json:"-"`
}
