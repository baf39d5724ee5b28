package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// FieldError 第一个校验失败的字段
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e *FieldError) Error() string {
	if e.Rule == "eqfield" {
		return fmt.Sprintf("field [%s] must match [%s]", e.Field, e.Param)
	}
	return fmt.Sprintf("field [%s] failed on rule [%s]", e.Field, e.Rule)
}

func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return &FieldError{
				Field: firstError.Field(),
				Rule:  firstError.Tag(),
				Param: firstError.Param(),
			}
		}
		return err
	}
	return nil
}
