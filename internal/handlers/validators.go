package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

var hundred = decimal.NewFromInt(100)

// ensureValidators teaches gin's validator about decimal amounts.
// Decimals are presented to validators as their string form.
func ensureValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				return d.String()
			}
			return nil
		}, decimal.Decimal{})

		_ = v.RegisterValidation("decimal_gt0", decimalRule(func(d decimal.Decimal) bool { return d.IsPositive() }))
		_ = v.RegisterValidation("decimal_gte0", decimalRule(func(d decimal.Decimal) bool { return !d.IsNegative() }))
		_ = v.RegisterValidation("percent", decimalRule(func(d decimal.Decimal) bool {
			return !d.IsNegative() && d.LessThanOrEqual(hundred)
		}))
	})
}

func decimalRule(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, parsed := fieldDecimal(fl.Field())
		return parsed && ok(d)
	}
}

func fieldDecimal(field reflect.Value) (decimal.Decimal, bool) {
	switch field.Kind() {
	case reflect.String:
		d, err := decimal.NewFromString(field.String())
		return d, err == nil
	case reflect.Struct:
		d, ok := field.Interface().(decimal.Decimal)
		return d, ok
	}
	return decimal.Decimal{}, false
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// bindingDetails turns binding failures into field errors. Malformed JSON yields a single "body" entry.
func bindingDetails(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
	}
	details := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apperrors.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: ruleMessage(fe),
		})
	}
	return details
}

// fieldPath drops the root struct name: "CreateMetalTransactionRequest.items[0].weight" -> "items[0].weight".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must contain at least " + fe.Param() + " entries"
	case "oneof":
		return "must be one of " + fe.Param()
	case "decimal_gt0":
		return "must be greater than 0"
	case "decimal_gte0":
		return "must not be negative"
	case "percent":
		return "must be between 0 and 100"
	case "email":
		return "must be a valid email address"
	case "uri":
		return "must be a valid URI"
	}
	return "failed the " + fe.Tag() + " rule"
}
