package models

// Role determines which operations an identity may perform.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Identity is the resolved caller attached to a request. A nil *Identity is
// an anonymous caller.
type Identity struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IsStudent reports whether the identity holds the student role.
func (i *Identity) IsStudent() bool {
	return i != nil && i.Role == RoleStudent
}
