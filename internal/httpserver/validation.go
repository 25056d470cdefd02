package httpserver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"storefront/internal/domain"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the "category" tag to gin's validator engine.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = errors.New("httpserver: unexpected validator engine")
			return
		}
		validatorsErr = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return domain.Category(fl.Field().String()).Valid()
		})
	})
	return validatorsErr
}

// bindingError turns gin binding failures into validation errors with field names.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return domain.Invalid("%s", strings.Join(msgs, "; "))
	}
	return domain.Invalid("malformed request body")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "category":
		return field + " must be one of makeup, accessories"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// validID reports whether id looks like a store id. Malformed ids can never match.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
