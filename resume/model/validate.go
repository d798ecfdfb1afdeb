package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		opt, ok := field.Interface().(Optional)
		if !ok {
			return nil
		}
		if value, set := opt.Get(); set {
			return value
		}
		return nil
	}, Optional{})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return isPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

func validateRecord(r CandidateRecord) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "record", Constraint: ConstraintType, Cause: err}
	}
	fe := fieldErrs[0]
	return &ValidationError{
		Field:      fieldPath(fe.Namespace()),
		Constraint: constraintFor(fe.Tag()),
		Param:      fe.Param(),
	}
}

// fieldPath drops the root type name: "CandidateRecord.contact.email" -> "contact.email".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func constraintFor(tag string) string {
	switch tag {
	case "required":
		return ConstraintRequired
	case "min":
		return ConstraintMinLength
	case "max":
		return ConstraintMaxLength
	case "email":
		return ConstraintEmail
	case "phone":
		return ConstraintPhone
	default:
		return tag
	}
}

// isPhone accepts digits with common separators, 6 to 15 digits, optional leading +.
func isPhone(value string) bool {
	value = strings.TrimPrefix(strings.TrimSpace(value), "+")
	digits := 0
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 6 && digits <= 15
}
