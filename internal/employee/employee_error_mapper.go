package employee

import (
	"errors"

	employeeerrors "github.com/Satyam6458/HR-Management/internal/employee/errors"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if apperror.IsUniqueViolation(err) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
