package models

// RegisterRequest carries a registration for either role. The role field
// decides which of the remaining fields apply.
type RegisterRequest struct {
	Role      Role   `json:"role" validate:"required,oneof=student admin"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginRequest carries credentials for either role.
type LoginRequest struct {
	Role      Role   `json:"role" validate:"required,oneof=student admin"`
	StudentID string `json:"student_id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResult is what a successful login produces: the resolved identity and
// the opaque session token the handler turns into a cookie.
type LoginResult struct {
	Identity Identity
	Token    string
}
