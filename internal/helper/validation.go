package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/SundayYogurt/league_service/internal/domain"
	"github.com/go-playground/validator/v10"
)

const minBirthYear = 1900

var (
	validate     *validator.Validate
	validateOnce sync.Once

	postalCodeRe = regexp.MustCompile(`^\d{4,5}$`)
	phoneRe      = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Validator returns the shared validator. Field errors are reported by json name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("birthyear", func(fl validator.FieldLevel) bool {
			switch fl.Field().Kind() {
			case reflect.Int, reflect.Int32, reflect.Int64:
				return ValidBirthYear(int(fl.Field().Int()))
			}
			return false
		})
		_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
			return ValidPostalCode(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return ValidPhone(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidBirthYear accepts four-digit years from 1900 through the current year.
func ValidBirthYear(year int) bool {
	return year >= minBirthYear && year <= time.Now().Year()
}

func ValidPostalCode(code string) bool {
	return postalCodeRe.MatchString(code)
}

func ValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// ValidateStruct runs the struct tags and folds failures into ErrValidation.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, fe.Field())
		}
		return domain.ErrValidation.WithFields(fields...)
	}
	return domain.ErrValidation.Wrap(err)
}
