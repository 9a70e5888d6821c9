package auth

import "github.com/Satyam6458/HR-Management/internal/employee"

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is shared by both login strategies. Token is empty for
// employee logins unless employee tokens are enabled.
type LoginResponse struct {
	Token     string                     `json:"token,omitempty"`
	ExpiresAt string                     `json:"expiresAt,omitempty"`
	User      *UserResponse              `json:"user,omitempty"`
	Employee  *employee.EmployeeResponse `json:"employee,omitempty"`
}
