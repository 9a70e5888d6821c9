package leave

import (
	"time"

	"github.com/Satyam6458/HR-Management/internal/ledger"

	"github.com/google/uuid"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusWithdrawn = "Withdrawn"
)

type Leave struct {
	ID         uuid.UUID `gorm:"primaryKey"`
	EmployeeID uuid.UUID `gorm:"not null;index:idx_leaves_employee_dates"`
	StartDate  time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate    time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	Reason     string    `gorm:"type:text"`
	LeaveType  string    `gorm:"size:100;not null"`
	Status     string    `gorm:"size:20;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Employee *EmployeeAccount `gorm:"foreignKey:EmployeeID"`
}

// EmployeeAccount is the slice of the employees table the leave workflow
// reads and writes: identity for notifications and the balance itself.
type EmployeeAccount struct {
	ID           uuid.UUID `gorm:"primaryKey"`
	Name         string
	Email        string
	LeaveBalance ledger.Balance `gorm:"column:leave_balance"`
}

func (EmployeeAccount) TableName() string {
	return "employees"
}

// IsTerminal reports whether no further transition is allowed from status.
func IsTerminal(status string) bool {
	return status != StatusPending
}
