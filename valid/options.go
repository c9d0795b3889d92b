package valid

import (
	"fmt"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/vouch"
)

// An Option configures a *Validator when constructing a new one.
type Option func(*Validator)

// WithRule registers fn as the rule evaluated for the "validate" tag named tag.
// Registering a tag already known replaces it.
//
// WithRule panics if tag is empty or fn is nil; both are programming errors.
func WithRule(tag string, fn v10.Func) Option {
	return func(v *Validator) {
		if err := v.valid.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Errorf("%w: cannot register rule %q: %s", vouch.ErrBadConfig, tag, err))
		}
	}
}

// WithMessage overrides the message reported when the rule named tag fails.
func WithMessage(tag string, fn MessageFunc) Option {
	return func(v *Validator) {
		v.messages[tag] = fn
	}
}
