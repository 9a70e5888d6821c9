package employeeerrors

import (
	"net/http"

	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeHasLeaveRequests = apperror.New(
		apperror.CodeConflict,
		"Employee has leave requests and cannot be deleted",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidJoiningDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid joiningdate format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPhotoTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Photo exceeds the upload size limit",
		http.StatusBadRequest,
	)
	ErrInvalidPhotoType = apperror.New(
		apperror.CodeInvalidInput,
		"Photo must be a jpg, jpeg, png or webp file",
		http.StatusBadRequest,
	)
)
