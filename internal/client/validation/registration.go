package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator"

	"github.com/heva-credit/heva/internal/client/models"
	"github.com/heva-credit/heva/internal/common"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateRegistration checks a registration payload right before it is
// sent. It complements the per-keystroke field rules, which the payload may
// have bypassed (for example when a caller builds RegisterData directly).
func ValidateRegistration(data models.RegisterData) []common.FormError {
	err := structValidator().Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []common.FormError{*common.NewFieldError("", err.Error())}
	}

	errs := make([]common.FormError, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, *common.NewFieldError(fe.Field(), registrationMessage(fe)))
	}
	return errs
}

func registrationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldFirstName:
		return "First name is required"
	case FieldLastName:
		return "Last name is required"
	case FieldEmail:
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Please enter a valid email address"
	case FieldPassword:
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return "Password must be at least 6 characters"
	case "role":
		return "Role must be admin or user"
	}
	return fe.Field() + " is invalid"
}
