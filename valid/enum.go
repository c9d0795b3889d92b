package valid

import (
	"reflect"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/vouch"
)

// validateEnumerable validates whether field is a valid vouch.Enumerable or slice of valid vouch.Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()

	if field.Kind() == reflect.Slice {
		vals := []reflect.Value{}
		for i := 0; i < field.Len(); i++ {
			vals = append(vals, field.Index(i))
		}

		return checkEnums(vals...)
	}

	return checkEnums(field)
}

// checkEnums asserts each [reflect.Value] is a vouch.Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(vouch.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
