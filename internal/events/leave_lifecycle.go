package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveApplied   = "leave_applied"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
	LeaveWithdrawn = "leave_withdrawn"
)

// LeaveLifecycleEvent is published whenever a leave request changes state.
// BalanceAfter is the employee's balance once the transition committed.
type LeaveLifecycleEvent struct {
	EventType     string         `json:"event_type"`
	RequestID     string         `json:"request_id,omitempty"`
	LeaveID       string         `json:"leave_id"`
	EmployeeID    string         `json:"employee_id"`
	EmployeeName  string         `json:"employee_name,omitempty"`
	EmployeeEmail string         `json:"employee_email,omitempty"`
	LeaveType     string         `json:"leave_type"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	WorkingDays   int            `json:"working_days"`
	Status        string         `json:"status"`
	BalanceAfter  map[string]int `json:"balance_after,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}
