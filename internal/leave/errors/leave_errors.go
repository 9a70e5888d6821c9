package leaveerrors

import (
	"net/http"

	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"startDate must be before or equal endDate",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeLeaveOverlap,
		"Leave already applied for this period. Please select a new date to apply leave.",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"Insufficient leave balance",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrNotWithdrawable = apperror.New(
		apperror.CodeInvalidState,
		"Cannot withdraw this leave",
		http.StatusBadRequest,
	)
)

// OverlapDetails names the existing request that blocks a new application.
type OverlapDetails struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func Overlap(startDate, endDate string) *apperror.AppError {
	return ErrLeaveOverlap.WithDetails(map[string]OverlapDetails{
		"overlap": {StartDate: startDate, EndDate: endDate},
	})
}
