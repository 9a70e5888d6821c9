package apperror

import (
	"fmt"
	"net/http"
)

// Fallbacks ToHTTP uses for errors that are not AppErrors.
var (
	ErrNotFound = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal = New(CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
)

func RequiredField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is required", field), http.StatusBadRequest)
}

func InvalidField(field string) *AppError {
	return New(CodeValidation, fmt.Sprintf("%s is invalid", field), http.StatusBadRequest)
}
