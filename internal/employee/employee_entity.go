package employee

import (
	"time"

	"github.com/Satyam6458/HR-Management/internal/ledger"

	"github.com/google/uuid"
)

type Employee struct {
	ID            uuid.UUID  `gorm:"primaryKey"`
	Name          string     `gorm:"size:255;not null"`
	Position      string     `gorm:"size:255"`
	Email         string     `gorm:"size:255;uniqueIndex;not null"`
	Phone         string     `gorm:"size:50"`
	Department    string     `gorm:"size:255"`
	Password      string     `gorm:"size:255;not null"`
	JoiningDate   *time.Time `gorm:"type:date"`
	Address       string     `gorm:"type:text"`
	MaritalStatus string     `gorm:"size:50"`
	Gender        string     `gorm:"size:50"`
	Photo         string     `gorm:"size:512"`
	LeaveBalance  ledger.Balance
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
