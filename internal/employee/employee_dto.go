package employee

import "github.com/Satyam6458/HR-Management/internal/ledger"

type CreateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	Position      string `json:"position"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Department    string `json:"department"`
	Password      string `json:"password" binding:"required,min=6"`
	JoiningDate   string `json:"joiningdate"`
	Address       string `json:"address"`
	MaritalStatus string `json:"maritalStatus"`
	Gender        string `json:"gender"`
}

// UpdateEmployeeRequest replaces the editable fields. An empty password
// keeps the stored hash.
type UpdateEmployeeRequest struct {
	Name          string `json:"name" binding:"required"`
	Position      string `json:"position"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Department    string `json:"department"`
	Password      string `json:"password" binding:"omitempty,min=6"`
	JoiningDate   string `json:"joiningdate"`
	Address       string `json:"address"`
	MaritalStatus string `json:"maritalStatus"`
	Gender        string `json:"gender"`
}

// UpdateProfileRequest is bound from the multipart profile form.
type UpdateProfileRequest struct {
	Name          string `form:"name" binding:"required"`
	Position      string `form:"position"`
	Email         string `form:"email" binding:"required,email"`
	Phone         string `form:"phone"`
	Department    string `form:"department"`
	JoiningDate   string `form:"joiningdate"`
	Address       string `form:"address"`
	MaritalStatus string `form:"maritalStatus"`
	Gender        string `form:"gender"`
	Password      string `form:"password" binding:"omitempty,min=6"`

	// PhotoPath is set by the handler after the upload is stored.
	PhotoPath string `form:"-"`
}

type EmployeeResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Position      string         `json:"position"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Department    string         `json:"department"`
	JoiningDate   string         `json:"joiningdate,omitempty"`
	Address       string         `json:"address"`
	MaritalStatus string         `json:"maritalStatus"`
	Gender        string         `json:"gender"`
	Photo         string         `json:"photo,omitempty"`
	LeaveBalance  ledger.Balance `json:"leaveBalance"`
}
