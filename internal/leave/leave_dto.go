package leave

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Reason     string `json:"reason"`
	LeaveType  string `json:"leaveType" binding:"required"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type LeaveResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Reason       string `json:"reason"`
	LeaveType    string `json:"leaveType"`
	Status       string `json:"status"`
	WorkingDays  int    `json:"workingDays"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type WithdrawLeaveResponse struct {
	UpdatedLeaves []LeaveResponse `json:"updatedLeaves"`
}
