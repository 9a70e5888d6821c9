package domain

// EnforceRequest asks whether a role may perform action on resource. It
// lives here so the HTTP middleware can authorize without importing rbac.
type EnforceRequest struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PolicyResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
