package vouch

import "strings"

// An Environment is a different context in which a vouch service operates.
type Environment string

const (
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

func (e Environment) String() string { return string(e) }

func (e Environment) Valid() error {
	switch e {
	case Development, Production, Staging, Testing:
		return nil
	default:
		return ErrNotValid
	}
}

func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// ReportsPanics asserts whether the Environment recovers panics and reports them
// instead of letting them crash the request goroutine loudly.
func (e Environment) ReportsPanics() bool {
	switch e {
	case Production, Staging:
		return true
	default:
		return false
	}
}

// ParseEnvironment upper cases val and casts it into an [Environment],
// or returns def if val is not a valid [Environment].
func ParseEnvironment(val string, def Environment) Environment {
	env := Environment(strings.ToUpper(strings.TrimSpace(val)))
	if err := env.Valid(); err != nil {
		return def
	}

	return env
}
