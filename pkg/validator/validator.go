package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

// CustomValidator валидатор DTO с правилами для времени слотов
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор и регистрирует кастомные правила:
//   - slotrange: "h:mm AM - h:mm PM"
//   - date: YYYY-MM-DD
//   - clock: "HH:MM" или "h:mm AM"
func NewValidator() *CustomValidator {
	v := validator.New()

	// Имена полей в ошибках берем из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("slotrange", func(fl validator.FieldLevel) bool {
		_, _, err := slottime.ParseDisplayRange(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := slottime.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := slottime.ParseClock(fl.Field().String())
		return err == nil
	})

	return &CustomValidator{validator: v}
}

// Validate проверяет структуру по тегам validate
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors переводит ошибки валидации в map поле -> сообщение
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "min":
				errors[field] = field + " must be at least " + e.Param()
			case "max":
				errors[field] = field + " must be at most " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "slotrange":
				errors[field] = field + " must look like 10:00 AM - 11:00 AM"
			case "date":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "clock":
				errors[field] = field + " must be a time like 09:00"
			case "email":
				errors[field] = field + " must be a valid email address"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
