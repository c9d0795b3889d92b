package valid

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"
	"github.com/xy-planning-network/vouch"
)

// Validatable is implemented by payloads checking rules struct tags cannot express.
//
// Returning an *Errors places each message at its field;
// any other error becomes a message about the value as a whole.
type Validatable interface {
	Validate() error
}

// A Validator checks a decoded value against the rules attached to its type:
//
//  1. "validate" struct tags, evaluated by [github.com/go-playground/validator/v10];
//  2. a JSON Schema document, when the type implements [SchemaProvider];
//  3. the type's own Validate method, when it implements [Validatable].
//
// Every step runs; their violations are merged into one *Errors.
//
// A Validator is safe for concurrent use.
type Validator struct {
	valid    *v10.Validate
	messages map[string]MessageFunc

	// Pool of *schemaCache; each in-flight validation owns the one it borrows.
	caches *sync.Pool
}

// New constructs a *Validator, applying default configuration before opts.
func New(opts ...Option) *Validator {
	v := v10.New(v10.WithRequiredStructEnabled())
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(fieldName)

	val := &Validator{
		valid:    v,
		messages: make(map[string]MessageFunc),
		caches: &sync.Pool{New: func() any {
			return &schemaCache{compiled: make(map[reflect.Type]*gojsonschema.Schema)}
		}},
	}

	for _, opt := range opts {
		opt(val)
	}

	return val
}

// Validate checks the value structPtr points to.
// On success, Validate returns no error.
// On failure, Validate returns an *Errors holding every violation.
//
// Any other error is an issue with calling code or configuration:
// a nil structPtr, or one pointing at a nil pointer, returns ErrBadAny
// and an unusable JSON schema returns ErrBadConfig.
func (v *Validator) Validate(structPtr any) error {
	rv := reflect.ValueOf(structPtr)
	if !rv.IsValid() {
		return fmt.Errorf("%w: cannot validate nil", vouch.ErrBadAny)
	}

	for elem := rv; elem.Kind() == reflect.Pointer; elem = elem.Elem() {
		if elem.IsNil() {
			return fmt.Errorf("%w: cannot validate nil %T", vouch.ErrBadAny, structPtr)
		}
	}

	errs := newRoot(rv)
	if err := v.validateTags(rv, errs); err != nil {
		return err
	}

	if err := v.validateSchema(structPtr, errs); err != nil {
		return err
	}

	validateSelf(structPtr, errs)

	if errs.Empty() {
		return nil
	}

	return errs
}

// validateTags runs the "validate" struct tags, translating each failure into a message at its field.
// Values that are not structs carry no tags and are skipped.
func (v *Validator) validateTags(rv reflect.Value, errs *Errors) error {
	s := indirect(rv)
	if s.Kind() != reflect.Struct {
		return nil
	}

	err := v.valid.Struct(s.Interface())
	if err == nil {
		return nil
	}

	var fieldErrs v10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", vouch.ErrUnexpected, err)
	}

	for _, fe := range fieldErrs {
		// NOTE: the namespace leads with the struct's type name, e.g., "User.address.city".
		field := fe.Namespace()
		if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
			field = ns[1]
		} else {
			field = ""
		}

		errs.locate(rv, pathKeys(field)).Add(v.message(fe))
	}

	return nil
}

// validateSelf calls Validate on values implementing Validatable.
func validateSelf(structPtr any, errs *Errors) {
	self, ok := asType[Validatable](structPtr)
	if !ok {
		return
	}

	err := self.Validate()
	if err == nil {
		return
	}

	var set *Errors
	if errors.As(err, &set) {
		errs.Merge(set)
		return
	}

	errs.Add(err.Error())
}

// asType finds a T in ptr or, failing that, in the value ptr points to.
// A nil pointer is never a T: its methods could not be called safely.
func asType[T any](ptr any) (T, bool) {
	var zero T
	rv := reflect.ValueOf(ptr)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return zero, false
	}

	if t, ok := ptr.(T); ok {
		return t, true
	}

	if rv.Kind() != reflect.Pointer {
		return zero, false
	}

	elem := rv.Elem()
	if elem.Kind() == reflect.Pointer && elem.IsNil() {
		return zero, false
	}

	t, ok := elem.Interface().(T)
	return t, ok
}

// fieldName names fields in violations after their "json" tag, falling back to their "schema" tag.
func fieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		name = ""
	}

	if name == "" {
		name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
	}

	if name == "-" {
		name = ""
	}

	return name
}
