package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/princeprakhar/partnerhub/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct runs the `validate` tags of s.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FirstInvalidField returns the JSON field name and failing tag of the
// first validation error, or empty strings when err is not a validation error.
func FirstInvalidField(err error) (field, tag string) {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "", ""
	}
	return errs[0].Field(), errs[0].Tag()
}

func IsValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FieldErrors converts validation errors into the API's field map, one
// message per failing field.
func FieldErrors(err error) types.FieldErrors {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return types.FieldErrors{"non_field_errors": {err.Error()}}
	}
	out := make(types.FieldErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = append(out[fe.Field()], fieldMessage(fe.Tag()))
	}
	return out
}

func fieldMessage(tag string) string {
	switch tag {
	case "required":
		return "이 필드는 필수 항목입니다."
	case "email":
		return "유효한 이메일 주소를 입력하십시오."
	case "url":
		return "유효한 URL을 입력하십시오."
	case "min":
		return "이 필드의 글자 수가 너무 적습니다."
	default:
		return "올바르지 않은 값입니다."
	}
}
