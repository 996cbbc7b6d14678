package service

import (
	"errors"
	"fmt"
	"strings"

	apperrors "tenant-admin-backend/internal/errors"

	"github.com/go-playground/validator/v10"
)

// validationError reports the first failed rule of a validator error as a
// ValidationError the handlers can show to the client.
func validationError(entity string, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(toSnake(fe.Field()), fmt.Sprintf("failed %q rule", fe.Tag()))
	}
	return apperrors.NewValidationError(entity, err.Error())
}

func toSnake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
