package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks dst against its `validate` tags and records one message per
// failing field in ms. A `rangemsg` tag overrides the message for min/max
// failures.
func Validate(dst any, ms ModelState) {
	err := validate.Struct(dst)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ms.AddError(KeyBody, err.Error())
		return
	}

	t := reflect.Indirect(reflect.ValueOf(dst)).Type()
	for _, fe := range verrs {
		ms.AddError(fe.Field(), message(t, fe))
	}
}

func message(t reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "min", "max", "gte", "lte":
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if msg := sf.Tag.Get("rangemsg"); msg != "" {
				return msg
			}
		}
		if fe.Kind() == reflect.String {
			if fe.Tag() == "max" || fe.Tag() == "lte" {
				return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
			}
			return fmt.Sprintf("The field %s must be a string with a minimum length of %s.", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("The field %s is out of range (%s %s).", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("The field %s is invalid.", fe.Field())
	}
}
