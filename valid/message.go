package valid

import (
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// A MessageFunc phrases a failed "validate" tag rule for clients.
type MessageFunc func(fe v10.FieldError) string

// message phrases fe with the MessageFunc registered for its tag or the default phrasing.
func (v *Validator) message(fe v10.FieldError) string {
	if fn, ok := v.messages[fe.Tag()]; ok {
		return fn(fe)
	}

	return defaultMessage(fe)
}

func defaultMessage(fe v10.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with", "required_without":
		return "The value is required."

	case "max", "lte":
		return bound(fe.Kind(), "<=", param)

	case "min", "gte":
		return bound(fe.Kind(), ">=", param)

	case "lt":
		return bound(fe.Kind(), "<", param)

	case "gt":
		return bound(fe.Kind(), ">", param)

	case "len":
		return bound(fe.Kind(), "==", param)

	case "eq":
		return fmt.Sprintf("The value must be equal to %s.", param)

	case "ne":
		return fmt.Sprintf("The value must not be equal to %s.", param)

	case "oneof":
		return fmt.Sprintf("The value must be in [%s].", strings.Join(strings.Fields(param), ", "))

	case "unique":
		return "The items must be unique."

	case "email":
		return "The value must be a valid email address."

	case "url", "http_url":
		return "The value must be a valid URL."

	case "uuid", "uuid4":
		return "The value must be a valid UUID."

	case "alphanum":
		return "The value must contain only letters and digits."

	case "enum":
		return "The value must be one of the enumerated values."

	default:
		if param != "" {
			return fmt.Sprintf("The value must satisfy the %q rule.", fe.Tag()+"="+param)
		}
		return fmt.Sprintf("The value must satisfy the %q rule.", fe.Tag())
	}
}

// bound phrases a comparison the way it applies to the kind of value compared:
// the length of a string, the length of a collection, or a number.
func bound(kind reflect.Kind, op, param string) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("The length of the value must be %s %s.", op, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("The length of the items must be %s %s.", op, param)
	default:
		return fmt.Sprintf("The number must be %s %s.", op, param)
	}
}
